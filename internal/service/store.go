package service

import (
	"context"

	"github.com/iliyamo/workshop-registration/internal/model"
)

// WorkshopStore abstracts persistence for workshops.  Implementations
// report missing rows with repository.ErrWorkshopNotFound and code
// collisions with repository.ErrDuplicateCode.
type WorkshopStore interface {
	Create(ctx context.Context, w *model.Workshop) error
	GetByCode(ctx context.Context, code string) (*model.Workshop, error)
	Update(ctx context.Context, w *model.Workshop) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]model.Workshop, error)
}

// RegistrationStore abstracts persistence for registrations.
// Implementations report missing rows with
// repository.ErrRegistrationNotFound and duplicate
// (workshop_code, user_name) pairs with
// repository.ErrDuplicateRegistration.  Individual calls must be
// atomic; the admission logic provides the cross-call serialization
// per workshop code.
type RegistrationStore interface {
	Create(ctx context.Context, reg *model.Registration) error
	GetByID(ctx context.Context, id uint64) (*model.Registration, error)
	Delete(ctx context.Context, id uint64) error
	CountByWorkshop(ctx context.Context, code string) (int, error)
	ExistsByWorkshopAndUser(ctx context.Context, code, userName string) (bool, error)
	ListByWorkshop(ctx context.Context, code string) ([]model.Registration, error)
	ListByUser(ctx context.Context, userName string) ([]model.Registration, error)
	ListAll(ctx context.Context) ([]model.Registration, error)
}
