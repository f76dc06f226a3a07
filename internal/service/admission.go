package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/workshop-registration/internal/model"
	"github.com/iliyamo/workshop-registration/internal/repository"
)

// Identity is the already-resolved caller identity handed in by the
// HTTP layer.  The core never parses tokens or computes roles; it only
// consumes these two claims.
type Identity struct {
	UserName string // stable user identifier (preferred_username claim)
	Email    string // email claim
}

// RegistrationDetails carries the optional fields a registrant may
// supply alongside the workshop code.
type RegistrationDetails struct {
	Phone            *string
	PreferredContact model.PreferredContact
}

// AdmissionService decides, under concurrent requests, whether a
// registration may be accepted.  The duplicate check, the capacity
// check and the insert run under a per-workshop-code mutex, so two
// concurrent calls for the same code can never both observe a free
// seat and both insert.  Calls for different codes do not contend.
// The store's unique key on (workshop_code, user_name) remains as a
// durable backstop for the duplicate invariant.
type AdmissionService struct {
	workshops     WorkshopStore
	registrations RegistrationStore
	locks         *CodeLocks
}

// NewAdmissionService wires an AdmissionService.  The lock set must be
// shared with the WorkshopService (see NewWorkshopService).
func NewAdmissionService(w WorkshopStore, r RegistrationStore, locks *CodeLocks) *AdmissionService {
	if w == nil || r == nil || locks == nil {
		panic("nil dependency passed to NewAdmissionService")
	}
	return &AdmissionService{workshops: w, registrations: r, locks: locks}
}

// Register admits one user into one workshop.  Failure modes, in
// order: InvalidUser when the identity is incomplete, an invalid code
// or contact channel, WorkshopNotFound, UserAlreadyRegistered, and
// WorkshopFull once the registration count has reached capacity.
func (s *AdmissionService) Register(ctx context.Context, code string, id Identity, det RegistrationDetails) (*model.Registration, error) {
	if strings.TrimSpace(id.UserName) == "" || strings.TrimSpace(id.Email) == "" {
		return nil, errf(KindInvalidUser, "user identity could not be resolved")
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	contact := det.PreferredContact
	if contact == "" {
		contact = model.ContactEmail
	}
	if !contact.Valid() {
		return nil, errf(KindInvalidWorkshopData, "preferred contact must be MOBILE or EMAIL")
	}

	// Critical section: everything from the duplicate lookup to the
	// insert is serialized per workshop code.
	unlock := s.locks.Lock(code)
	defer unlock()

	w, err := s.workshops.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrWorkshopNotFound) {
			return nil, errf(KindWorkshopNotFound, "workshop not found with given code: %s", code)
		}
		return nil, err
	}
	exists, err := s.registrations.ExistsByWorkshopAndUser(ctx, code, id.UserName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errf(KindUserAlreadyRegistered, "user %s already registered for workshop %s", id.UserName, code)
	}
	count, err := s.registrations.CountByWorkshop(ctx, code)
	if err != nil {
		return nil, err
	}
	if count >= w.Capacity {
		return nil, errf(KindWorkshopFull, "workshop %s is full (capacity %d)", code, w.Capacity)
	}

	reg := &model.Registration{
		WorkshopCode:     code,
		UserName:         id.UserName,
		UserEmail:        id.Email,
		UserPhone:        det.Phone,
		PreferredContact: contact,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return nil, errf(KindUserAlreadyRegistered, "user %s already registered for workshop %s", id.UserName, code)
		}
		return nil, err
	}
	return reg, nil
}

// Unregister deletes a registration by id.  The delete only shrinks
// the per-workshop count, so no capacity interaction and no lock are
// needed.
func (s *AdmissionService) Unregister(ctx context.Context, id uint64) error {
	if err := s.registrations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return errf(KindRegistrationNotFound, "registration not available with given id: %d", id)
		}
		return err
	}
	return nil
}

// ListByWorkshop returns all registrations for one workshop code.
func (s *AdmissionService) ListByWorkshop(ctx context.Context, code string) ([]model.Registration, error) {
	return s.registrations.ListByWorkshop(ctx, code)
}

// ListByUser returns all registrations created by the given user.
func (s *AdmissionService) ListByUser(ctx context.Context, id Identity) ([]model.Registration, error) {
	if strings.TrimSpace(id.UserName) == "" {
		return nil, errf(KindInvalidUser, "user identity could not be resolved")
	}
	return s.registrations.ListByUser(ctx, id.UserName)
}

// ListAll returns every registration in the system.
func (s *AdmissionService) ListAll(ctx context.Context) ([]model.Registration, error) {
	return s.registrations.ListAll(ctx)
}
