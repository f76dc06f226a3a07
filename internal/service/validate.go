package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/workshop-registration/internal/model"
)

// Workshop code length bounds, matching the wire contract.
const (
	codeMinLen = 5
	codeMaxLen = 15
)

// validateCode checks the workshop code format shared by create and
// register.
func validateCode(code string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(code)); n < codeMinLen || n > codeMaxLen {
		return errf(KindInvalidWorkshopData, "workshop code must be %d-%d characters", codeMinLen, codeMaxLen)
	}
	return nil
}

// validateNewWorkshop checks every field invariant required at
// creation time: code format, non-empty name and description,
// capacity of at least one seat, and a well-formed time window that
// does not start in the past.
func validateNewWorkshop(w *model.Workshop, now time.Time) error {
	if err := validateCode(w.Code); err != nil {
		return err
	}
	if strings.TrimSpace(w.Name) == "" {
		return errf(KindInvalidWorkshopData, "workshop name must not be empty")
	}
	if strings.TrimSpace(w.Description) == "" {
		return errf(KindInvalidWorkshopData, "workshop description must not be empty")
	}
	if w.Capacity < 1 {
		return errf(KindInvalidWorkshopData, "capacity must be at least 1")
	}
	if w.StartTime.IsZero() || w.EndTime.IsZero() {
		return errf(KindInvalidWorkshopData, "start/end time must be specified")
	}
	if !w.StartTime.Before(w.EndTime) {
		return errf(KindInvalidWorkshopData, "start time must be before end time")
	}
	if w.StartTime.Before(now) {
		return errf(KindInvalidWorkshopData, "start time must not be in the past")
	}
	if w.EndTime.Before(now) {
		return errf(KindInvalidWorkshopData, "end time must not be in the past")
	}
	return nil
}

// WorkshopUpdate carries a partial workshop mutation.  Nil fields are
// left untouched.
type WorkshopUpdate struct {
	Name        *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Capacity    *int
}

// applyUpdate validates the partial update against the stored workshop
// and mutates it in place.  The time rules differ from creation: when
// both bounds are supplied they are checked against each other and
// against now; when only one is supplied it is checked against now,
// and a lone end time must additionally stay after the *stored* start
// time.  Capacity may be lowered to zero, which freezes further
// registrations without deleting history.
func applyUpdate(w *model.Workshop, upd WorkshopUpdate, now time.Time) error {
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return errf(KindInvalidWorkshopData, "workshop name must not be empty")
		}
		w.Name = *upd.Name
	}
	if upd.Description != nil {
		if strings.TrimSpace(*upd.Description) == "" {
			return errf(KindInvalidWorkshopData, "workshop description must not be empty")
		}
		w.Description = *upd.Description
	}
	if upd.Capacity != nil {
		if *upd.Capacity < 0 {
			return errf(KindInvalidWorkshopData, "capacity must not be negative")
		}
		w.Capacity = *upd.Capacity
	}
	switch {
	case upd.StartTime != nil && upd.EndTime != nil:
		if upd.StartTime.Before(now) {
			return errf(KindInvalidWorkshopData, "start time must not be in the past")
		}
		if upd.EndTime.Before(now) {
			return errf(KindInvalidWorkshopData, "end time must not be in the past")
		}
		if !upd.StartTime.Before(*upd.EndTime) {
			return errf(KindInvalidWorkshopData, "end time must be after start time")
		}
		w.StartTime = *upd.StartTime
		w.EndTime = *upd.EndTime
	case upd.StartTime != nil:
		if upd.StartTime.Before(now) {
			return errf(KindInvalidWorkshopData, "start time must not be in the past")
		}
		w.StartTime = *upd.StartTime
	case upd.EndTime != nil:
		if upd.EndTime.Before(now) {
			return errf(KindInvalidWorkshopData, "end time must not be in the past")
		}
		if !upd.EndTime.After(w.StartTime) {
			return errf(KindInvalidWorkshopData, "end time must be after start time")
		}
		w.EndTime = *upd.EndTime
	}
	return nil
}
