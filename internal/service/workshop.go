package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/workshop-registration/internal/model"
	"github.com/iliyamo/workshop-registration/internal/repository"
)

// WorkshopService manages the workshop lifecycle: creation, partial
// updates, guarded deletion and the read projections.  It never
// touches registrations except to enforce the deletion guard; writing
// registrations is the AdmissionService's job.
type WorkshopService struct {
	workshops     WorkshopStore
	registrations RegistrationStore
	locks         *CodeLocks
	now           func() time.Time
}

// NewWorkshopService wires a WorkshopService.  The lock set must be
// the same instance given to the AdmissionService so deletion and
// admission on one code serialize against each other.
func NewWorkshopService(w WorkshopStore, r RegistrationStore, locks *CodeLocks) *WorkshopService {
	if w == nil || r == nil || locks == nil {
		panic("nil dependency passed to NewWorkshopService")
	}
	return &WorkshopService{workshops: w, registrations: r, locks: locks, now: time.Now}
}

// Create validates and persists a new workshop.  It fails with
// WorkshopAlreadyExist when the code is taken and InvalidWorkshopData
// on any field or time-window violation.
func (s *WorkshopService) Create(ctx context.Context, w *model.Workshop) (*model.Workshop, error) {
	if err := validateNewWorkshop(w, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.workshops.Create(ctx, w); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, errf(KindWorkshopAlreadyExist, "workshop already exists with given code: %s", w.Code)
		}
		return nil, err
	}
	return w, nil
}

// Update applies a partial update to the workshop addressed by code.
// Provided fields replace stored ones; absent fields are untouched.
func (s *WorkshopService) Update(ctx context.Context, code string, upd WorkshopUpdate) (*model.Workshop, error) {
	w, err := s.getByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(w, upd, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.workshops.Update(ctx, w); err != nil {
		if errors.Is(err, repository.ErrWorkshopNotFound) {
			return nil, errf(KindWorkshopNotFound, "workshop not found with given code: %s", code)
		}
		return nil, err
	}
	return w, nil
}

// Delete removes a workshop, refusing while any registration still
// references its code.  The check and the delete run under the
// per-code lock so a concurrent Register cannot slip a registration in
// between them.
func (s *WorkshopService) Delete(ctx context.Context, code string) error {
	unlock := s.locks.Lock(code)
	defer unlock()

	if _, err := s.getByCode(ctx, code); err != nil {
		return err
	}
	n, err := s.registrations.CountByWorkshop(ctx, code)
	if err != nil {
		return err
	}
	if n > 0 {
		return errf(KindWorkshopHasRegistrations, "cannot delete workshop %s: %d registrations exist", code, n)
	}
	if err := s.workshops.Delete(ctx, code); err != nil {
		if errors.Is(err, repository.ErrWorkshopNotFound) {
			return errf(KindWorkshopNotFound, "workshop not found with given code: %s", code)
		}
		return err
	}
	return nil
}

// GetByCode returns a single workshop or WorkshopNotFound.
func (s *WorkshopService) GetByCode(ctx context.Context, code string) (*model.Workshop, error) {
	return s.getByCode(ctx, code)
}

func (s *WorkshopService) getByCode(ctx context.Context, code string) (*model.Workshop, error) {
	w, err := s.workshops.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrWorkshopNotFound) {
			return nil, errf(KindWorkshopNotFound, "workshop not found with given code: %s", code)
		}
		return nil, err
	}
	return w, nil
}

// ListUpcoming returns workshops whose end time lies after now.  The
// projection deliberately omits registrations; it feeds the public,
// unauthenticated listing.
func (s *WorkshopService) ListUpcoming(ctx context.Context) ([]model.Workshop, error) {
	all, err := s.workshops.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]model.Workshop, 0, len(all))
	for _, w := range all {
		if w.EndTime.After(now) {
			out = append(out, w)
		}
	}
	return out, nil
}

// ListAll returns the admin projection: every workshop together with
// its registrations.
func (s *WorkshopService) ListAll(ctx context.Context) ([]model.WorkshopDetail, error) {
	all, err := s.workshops.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.WorkshopDetail, 0, len(all))
	for _, w := range all {
		regs, err := s.registrations.ListByWorkshop(ctx, w.Code)
		if err != nil {
			return nil, err
		}
		out = append(out, model.WorkshopDetail{Workshop: w, Registrations: regs})
	}
	return out, nil
}
