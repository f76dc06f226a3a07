// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// service layer to distinguish between different failure scenarios
// without inspecting driver specific error strings. For example,
// ErrDuplicateRegistration surfaces the unique key on
// (workshop_code, user_name) so the admission logic can report the
// duplicate even if the in-process check was bypassed.
package repository

import "errors"

// ErrWorkshopNotFound indicates that no workshop exists for the given code.
var ErrWorkshopNotFound = errors.New("workshop not found")

// ErrRegistrationNotFound indicates that no registration exists for the
// given id.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrDuplicateCode is returned when an insert collides with the unique
// index on workshops.code.
var ErrDuplicateCode = errors.New("workshop code already exists")

// ErrDuplicateRegistration is returned when an insert collides with the
// unique index on registrations (workshop_code, user_name).
var ErrDuplicateRegistration = errors.New("user already registered for workshop")
