package model

import "time"

// PreferredContact enumerates the ways a registrant may be contacted.
type PreferredContact string

const (
	ContactEmail  PreferredContact = "EMAIL"
	ContactMobile PreferredContact = "MOBILE"
)

// Valid reports whether the value is one of the known contact channels.
func (p PreferredContact) Valid() bool {
	return p == ContactEmail || p == ContactMobile
}

// Registration binds one user identity to one workshop.  The workshop
// is referenced by its code only; a registration is a separate
// aggregate, never an owned child of the workshop, so deleting a
// workshop can never cascade into registrations.  Identity fields are
// captured from the caller's token at creation time and are immutable
// afterwards.
//
// Fields:
//  ID               – primary key identifier.
//  WorkshopCode     – code of the workshop being registered for.
//  UserName         – stable user identifier (preferred_username claim).
//  UserEmail        – email captured from the token.
//  UserPhone        – optional phone number supplied by the registrant.
//  PreferredContact – how the registrant wants to be contacted.
//  CreatedAt        – creation timestamp.
type Registration struct {
	ID               uint64           `json:"id"`                   // registrations.id
	WorkshopCode     string           `json:"workshop_code"`        // registrations.workshop_code
	UserName         string           `json:"user_name"`            // registrations.user_name
	UserEmail        string           `json:"user_email"`           // registrations.user_email
	UserPhone        *string          `json:"user_phone,omitempty"` // registrations.user_phone (nullable)
	PreferredContact PreferredContact `json:"preferred_contact"`    // registrations.preferred_contact
	CreatedAt        time.Time        `json:"created_at"`           // registrations.created_at
}
