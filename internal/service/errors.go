// Package service implements the admission control core: the workshop
// lifecycle manager and the registration admission logic, built on top
// of store interfaces so the same rules run against MySQL in production
// and the in-memory stores in tests.  All business failures are
// reported as a single typed error so the HTTP boundary can translate
// them through one exhaustive mapping table.
package service

import "fmt"

// Kind enumerates every business failure the core can produce.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidUser
	KindWorkshopNotFound
	KindRegistrationNotFound
	KindWorkshopAlreadyExist
	KindUserAlreadyRegistered
	KindWorkshopFull
	KindInvalidWorkshopData
	KindWorkshopHasRegistrations
)

// Label returns the stable header string used in error payloads.
func (k Kind) Label() string {
	switch k {
	case KindInvalidUser:
		return "InvalidUser"
	case KindWorkshopNotFound:
		return "WorkshopNotFound"
	case KindRegistrationNotFound:
		return "RegistrationNotFound"
	case KindWorkshopAlreadyExist:
		return "WorkshopAlreadyExist"
	case KindUserAlreadyRegistered:
		return "UserAlreadyRegistered"
	case KindWorkshopFull:
		return "WorkshopFull"
	case KindInvalidWorkshopData:
		return "InvalidWorkshopData"
	case KindWorkshopHasRegistrations:
		return "WorkshopHasRegistrations"
	default:
		return "InternalError"
	}
}

// Error is the typed failure returned by all core operations.  The
// message is safe to surface to API clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// errf builds a typed error with a formatted message.
func errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error returned by the core.
// Unexpected failures (store I/O and the like) map to KindInternal.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}
