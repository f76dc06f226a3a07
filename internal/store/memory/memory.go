// Package memory provides map-backed implementations of the service
// store interfaces.  They honour the same sentinel error contract as
// the MySQL repositories and are used by the test suite and for
// running the server without a database.  Each individual call is
// atomic under an internal mutex, mirroring the atomicity of a single
// SQL statement; cross-call serialization stays with the service layer.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/workshop-registration/internal/model"
	"github.com/iliyamo/workshop-registration/internal/repository"
)

// WorkshopStore is an in-memory WorkshopStore implementation.
type WorkshopStore struct {
	mu     sync.Mutex
	nextID uint64
	byCode map[string]model.Workshop
}

// NewWorkshopStore returns an empty in-memory workshop store.
func NewWorkshopStore() *WorkshopStore {
	return &WorkshopStore{byCode: make(map[string]model.Workshop)}
}

func (s *WorkshopStore) Create(_ context.Context, w *model.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[w.Code]; ok {
		return repository.ErrDuplicateCode
	}
	s.nextID++
	w.ID = s.nextID
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	s.byCode[w.Code] = *w
	return nil
}

func (s *WorkshopStore) GetByCode(_ context.Context, code string) (*model.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.byCode[code]
	if !ok {
		return nil, repository.ErrWorkshopNotFound
	}
	out := w
	return &out, nil
}

func (s *WorkshopStore) Update(_ context.Context, w *model.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byCode[w.Code]
	if !ok {
		return repository.ErrWorkshopNotFound
	}
	w.ID = stored.ID
	w.CreatedAt = stored.CreatedAt
	w.UpdatedAt = time.Now().UTC()
	s.byCode[w.Code] = *w
	return nil
}

func (s *WorkshopStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[code]; !ok {
		return repository.ErrWorkshopNotFound
	}
	delete(s.byCode, code)
	return nil
}

func (s *WorkshopStore) List(_ context.Context) ([]model.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Workshop, 0, len(s.byCode))
	for _, w := range s.byCode {
		out = append(out, w)
	}
	// order by start time then id, matching the SQL store
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// RegistrationStore is an in-memory RegistrationStore implementation.
type RegistrationStore struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]model.Registration
}

// NewRegistrationStore returns an empty in-memory registration store.
func NewRegistrationStore() *RegistrationStore {
	return &RegistrationStore{byID: make(map[uint64]model.Registration)}
}

func (s *RegistrationStore) Create(_ context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.WorkshopCode == reg.WorkshopCode && r.UserName == reg.UserName {
			return repository.ErrDuplicateRegistration
		}
	}
	s.nextID++
	reg.ID = s.nextID
	reg.CreatedAt = time.Now().UTC()
	s.byID[reg.ID] = *reg
	return nil
}

func (s *RegistrationStore) GetByID(_ context.Context, id uint64) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrRegistrationNotFound
	}
	out := r
	return &out, nil
}

func (s *RegistrationStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return repository.ErrRegistrationNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *RegistrationStore) CountByWorkshop(_ context.Context, code string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.byID {
		if r.WorkshopCode == code {
			n++
		}
	}
	return n, nil
}

func (s *RegistrationStore) ExistsByWorkshopAndUser(_ context.Context, code, userName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.WorkshopCode == code && r.UserName == userName {
			return true, nil
		}
	}
	return false, nil
}

func (s *RegistrationStore) collect(keep func(model.Registration) bool) []model.Registration {
	out := make([]model.Registration, 0)
	for _, r := range s.byID {
		if keep(r) {
			out = append(out, r)
		}
	}
	// order by id, which follows insertion order
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *RegistrationStore) ListByWorkshop(_ context.Context, code string) ([]model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(r model.Registration) bool { return r.WorkshopCode == code }), nil
}

func (s *RegistrationStore) ListByUser(_ context.Context, userName string) ([]model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(r model.Registration) bool { return r.UserName == userName }), nil
}

func (s *RegistrationStore) ListAll(_ context.Context) ([]model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(model.Registration) bool { return true }), nil
}
