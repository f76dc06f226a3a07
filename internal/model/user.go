package model

import "time"

// User represents an application account as stored in the `users`
// table.  The username doubles as the stable identifier placed in the
// preferred_username token claim; registrations reference it rather
// than the numeric ID so they stay meaningful even if accounts are
// re-provisioned.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name (preferred_username claim).
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (ADMIN or USER).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Roles understood by the authorization middleware.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// RefreshToken models an entry in the `refresh_tokens` table.  Only
// the SHA-256 hash of the raw token value is persisted.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
