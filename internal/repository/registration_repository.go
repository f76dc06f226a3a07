package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/workshop-registration/internal/model"
)

// RegistrationRepo manages persistence for registrations.  A
// registration references its workshop by code only; the table carries
// a unique key on (workshop_code, user_name) which backs the duplicate
// invariant at the engine level even when the in-process admission
// check is bypassed (e.g. a second server instance).
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

const registrationCols = `id, workshop_code, user_name, user_email, user_phone, preferred_contact, created_at`

func scanRegistration(row interface{ Scan(...any) error }, reg *model.Registration) error {
	var phone sql.NullString
	var contact string
	if err := row.Scan(&reg.ID, &reg.WorkshopCode, &reg.UserName, &reg.UserEmail, &phone, &contact, &reg.CreatedAt); err != nil {
		return err
	}
	if phone.Valid {
		p := phone.String
		reg.UserPhone = &p
	}
	reg.PreferredContact = model.PreferredContact(contact)
	return nil
}

// Create inserts a new registration and populates the generated ID and
// created_at on the given struct.  ErrDuplicateRegistration is
// returned when the (workshop_code, user_name) unique key is violated.
func (r *RegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	const q = `INSERT INTO registrations (workshop_code, user_name, user_email, user_phone, preferred_contact) VALUES (?, ?, ?, ?, ?)`
	var phone any
	if reg.UserPhone != nil {
		phone = *reg.UserPhone
	}
	res, err := r.db.ExecContext(ctx, q, reg.WorkshopCode, reg.UserName, reg.UserEmail, phone, string(reg.PreferredContact))
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateRegistration
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	const sel = `SELECT ` + registrationCols + ` FROM registrations WHERE id = ?`
	return scanRegistration(r.db.QueryRowContext(ctx, sel, reg.ID), reg)
}

// GetByID retrieves a registration by id.  It returns
// ErrRegistrationNotFound if there is no matching row.
func (r *RegistrationRepo) GetByID(ctx context.Context, id uint64) (*model.Registration, error) {
	const q = `SELECT ` + registrationCols + ` FROM registrations WHERE id = ?`
	var reg model.Registration
	if err := scanRegistration(r.db.QueryRowContext(ctx, q, id), &reg); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// Delete removes a registration by id.  ErrRegistrationNotFound is
// returned when no row was deleted.
func (r *RegistrationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// CountByWorkshop returns the number of registrations for a workshop code.
func (r *RegistrationRepo) CountByWorkshop(ctx context.Context, code string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE workshop_code = ?`, code).Scan(&n)
	return n, err
}

// ExistsByWorkshopAndUser reports whether the user already has a
// registration for the workshop code.
func (r *RegistrationRepo) ExistsByWorkshopAndUser(ctx context.Context, code, userName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE workshop_code = ? AND user_name = ?)`,
		code, userName).Scan(&exists)
	return exists, err
}

func (r *RegistrationRepo) list(ctx context.Context, q string, args ...any) ([]model.Registration, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Registration, 0)
	for rows.Next() {
		var reg model.Registration
		if err := scanRegistration(rows, &reg); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

// ListByWorkshop returns all registrations for a workshop code ordered
// by creation time ascending (admission order).
func (r *RegistrationRepo) ListByWorkshop(ctx context.Context, code string) ([]model.Registration, error) {
	const q = `SELECT ` + registrationCols + ` FROM registrations WHERE workshop_code = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, q, code)
}

// ListByUser returns all registrations created by the given user.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userName string) ([]model.Registration, error) {
	const q = `SELECT ` + registrationCols + ` FROM registrations WHERE user_name = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, q, userName)
}

// ListAll returns every registration in the system (admin view).
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]model.Registration, error) {
	const q = `SELECT ` + registrationCols + ` FROM registrations ORDER BY created_at ASC, id ASC`
	return r.list(ctx, q)
}
