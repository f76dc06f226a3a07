// Package repository contains the MySQL data access layer. Each repository
// wraps a *sql.DB and exposes CRUD operations using plain SQL with ?
// placeholders. All timestamp columns are DATETIME stored in UTC and are
// scanned into time.Time via the parseTime DSN option.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/workshop-registration/internal/model"
)

// WorkshopRepo manages persistence for workshops.
type WorkshopRepo struct {
	db *sql.DB
}

// NewWorkshopRepo constructs a WorkshopRepo with the given DB handle.
func NewWorkshopRepo(db *sql.DB) *WorkshopRepo { return &WorkshopRepo{db: db} }

// isDuplicateKey reports whether the error is a MySQL duplicate entry
// violation (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

const workshopCols = `id, code, name, description, start_time, end_time, capacity, created_at, updated_at`

func scanWorkshop(row interface{ Scan(...any) error }, w *model.Workshop) error {
	return row.Scan(&w.ID, &w.Code, &w.Name, &w.Description, &w.StartTime, &w.EndTime, &w.Capacity, &w.CreatedAt, &w.UpdatedAt)
}

// Create inserts a new workshop and populates the generated ID and the
// DB-assigned timestamps on the given struct.  It returns
// ErrDuplicateCode when the unique index on code is violated.
func (r *WorkshopRepo) Create(ctx context.Context, w *model.Workshop) error {
	const q = `INSERT INTO workshops (code, name, description, start_time, end_time, capacity) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, w.Code, w.Name, w.Description, w.StartTime.UTC(), w.EndTime.UTC(), w.Capacity)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateCode
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = uint64(id)
	// Query back the full row to populate created_at/updated_at defaults.
	const sel = `SELECT ` + workshopCols + ` FROM workshops WHERE id = ?`
	return scanWorkshop(r.db.QueryRowContext(ctx, sel, w.ID), w)
}

// GetByCode retrieves a workshop by its code.  It returns
// ErrWorkshopNotFound if there is no matching row.
func (r *WorkshopRepo) GetByCode(ctx context.Context, code string) (*model.Workshop, error) {
	const q = `SELECT ` + workshopCols + ` FROM workshops WHERE code = ?`
	var w model.Workshop
	if err := scanWorkshop(r.db.QueryRowContext(ctx, q, code), &w); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrWorkshopNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Update persists the mutable fields of a workshop addressed by its
// code.  The code itself is immutable and used only as the lookup key.
// ErrWorkshopNotFound is returned when no row matches.
func (r *WorkshopRepo) Update(ctx context.Context, w *model.Workshop) error {
	const q = `UPDATE workshops SET name = ?, description = ?, start_time = ?, end_time = ?, capacity = ? WHERE code = ?`
	res, err := r.db.ExecContext(ctx, q, w.Name, w.Description, w.StartTime.UTC(), w.EndTime.UTC(), w.Capacity, w.Code)
	if err != nil {
		return err
	}
	// RowsAffected is zero both when the row is missing and when the
	// update is a no-op, so confirm existence before reporting not found.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM workshops WHERE code = ?)`, w.Code).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrWorkshopNotFound
		}
	}
	const sel = `SELECT ` + workshopCols + ` FROM workshops WHERE code = ?`
	return scanWorkshop(r.db.QueryRowContext(ctx, sel, w.Code), w)
}

// Delete removes a workshop by code.  It returns ErrWorkshopNotFound
// when no row was deleted.  Registrations are never touched here; the
// service layer guards deletion while registrations exist.
func (r *WorkshopRepo) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workshops WHERE code = ?`, code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWorkshopNotFound
	}
	return nil
}

// List returns all workshops ordered by start time ascending.  An
// empty slice is returned when there are none.
func (r *WorkshopRepo) List(ctx context.Context) ([]model.Workshop, error) {
	const q = `SELECT ` + workshopCols + ` FROM workshops ORDER BY start_time ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Workshop, 0)
	for rows.Next() {
		var w model.Workshop
		if err := scanWorkshop(rows, &w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
