package model

import "time"

// Workshop represents a scheduled, capacity-bounded event that users
// may register for.  Workshops are addressed by a unique human
// readable code which never changes after creation.  The time window
// is stored in UTC and must satisfy StartTime < EndTime.
//
// Fields:
//  ID          – primary key identifier.
//  Code        – unique workshop code (5–15 characters, immutable).
//  Name        – display name of the workshop.
//  Description – free-form description.
//  StartTime   – when the workshop begins.
//  EndTime     – when the workshop ends (must be after StartTime).
//  Capacity    – maximum number of confirmed registrations.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Workshop struct {
	ID          uint64    `json:"id"`          // workshops.id
	Code        string    `json:"code"`        // workshops.code
	Name        string    `json:"name"`        // workshops.name
	Description string    `json:"description"` // workshops.description
	StartTime   time.Time `json:"start_time"`  // workshops.start_time
	EndTime     time.Time `json:"end_time"`    // workshops.end_time
	Capacity    int       `json:"capacity"`    // workshops.capacity
	CreatedAt   time.Time `json:"created_at"`  // workshops.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // workshops.updated_at
}

// WorkshopDetail is the admin projection of a workshop.  It carries
// the full registration listing alongside the workshop itself.  The
// public upcoming listing uses the plain Workshop type instead.
type WorkshopDetail struct {
	Workshop
	Registrations []Registration `json:"registrations"`
}
