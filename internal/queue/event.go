// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published after a registration is
// accepted.  It carries enough detail for downstream consumers to log
// or notify without querying the primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID   uint64 `json:"registration_id"`
	WorkshopCode     string `json:"workshop_code"`
	WorkshopName     string `json:"workshop_name"`
	UserName         string `json:"user_name"`
	UserEmail        string `json:"user_email"`
	PreferredContact string `json:"preferred_contact"`
	StartsAt         string `json:"starts_at"`
	EndsAt           string `json:"ends_at"`
	ConfirmedAt      string `json:"confirmed_at"`
}
