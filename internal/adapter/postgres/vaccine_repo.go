package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petcare/internal/domain"
)

const vaccineSelect = `SELECT v.id, v.user_id, v.pet_id, v.name, v.description, v.application_date,
	v.next_dose_date, v.veterinarian, v.batch_number, v.created_at, p.name, p.species
	FROM vaccines v JOIN pets p ON p.id = v.pet_id`

func scanVaccine(row rowScanner) (*domain.VaccineWithPet, error) {
	var v domain.VaccineWithPet
	err := row.Scan(&v.ID, &v.UserID, &v.PetID, &v.Name, &v.Description, &v.ApplicationDate,
		&v.NextDoseDate, &v.Veterinarian, &v.BatchNumber, &v.CreatedAt, &v.PetName, &v.PetSpecies)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *DB) queryVaccines(ctx context.Context, query string, args ...any) ([]domain.VaccineWithPet, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.VaccineWithPet, 0)
	for rows.Next() {
		v, err := scanVaccine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// CreateVaccine inserts a vaccine. The pet must belong to the same user.
func (d *DB) CreateVaccine(ctx context.Context, v *domain.Vaccine) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO vaccines (user_id, pet_id, name, description, application_date, next_dose_date, veterinarian, batch_number, created_at)
		SELECT $1, p.id, $3::text, $4::text, $5::date, $6::date, $7::text, $8::text, $9::timestamptz FROM pets p WHERE p.id = $2 AND p.user_id = $1
		RETURNING id;`,
		v.UserID, v.PetID, v.Name, v.Description, v.ApplicationDate, v.NextDoseDate, v.Veterinarian, v.BatchNumber, v.CreatedAt.UTC(),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return id, err
}

// UpdateVaccine replaces the editable fields of a vaccine, scoped to its owner.
func (d *DB) UpdateVaccine(ctx context.Context, v *domain.Vaccine) error {
	return expectOne(d.sql.ExecContext(ctx,
		`UPDATE vaccines SET pet_id = $1, name = $2, description = $3, application_date = $4,
		next_dose_date = $5, veterinarian = $6, batch_number = $7
		WHERE id = $8 AND user_id = $9 AND EXISTS (SELECT 1 FROM pets WHERE id = $1 AND user_id = $9);`,
		v.PetID, v.Name, v.Description, v.ApplicationDate, v.NextDoseDate, v.Veterinarian, v.BatchNumber, v.ID, v.UserID,
	))
}

// DeleteVaccine removes a vaccine owned by userID.
func (d *DB) DeleteVaccine(ctx context.Context, userID, id int64) error {
	return expectOne(d.sql.ExecContext(ctx, "DELETE FROM vaccines WHERE id = $1 AND user_id = $2;", id, userID))
}

// GetVaccine retrieves a vaccine owned by userID, joined with its pet.
func (d *DB) GetVaccine(ctx context.Context, userID, id int64) (*domain.VaccineWithPet, error) {
	v, err := scanVaccine(d.sql.QueryRowContext(ctx, vaccineSelect+" WHERE v.id = $1 AND v.user_id = $2;", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return v, err
}

// ListVaccines lists the vaccines of userID, most recent application first.
func (d *DB) ListVaccines(ctx context.Context, userID int64) ([]domain.VaccineWithPet, error) {
	return d.queryVaccines(ctx, vaccineSelect+" WHERE v.user_id = $1 ORDER BY v.application_date DESC, v.id DESC;", userID)
}

// ListNextDoseDates returns the next-dose date, possibly NULL, of every
// vaccine of userID.
func (d *DB) ListNextDoseDates(ctx context.Context, userID int64) ([]*domain.Date, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT next_dose_date FROM vaccines WHERE user_id = $1;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]*domain.Date, 0)
	for rows.Next() {
		var next *domain.Date
		if err := rows.Scan(&next); err != nil {
			return nil, err
		}
		out = append(out, next)
	}
	return out, rows.Err()
}

// ListDueBy lists vaccines of userID whose next dose is on or before until.
func (d *DB) ListDueBy(ctx context.Context, userID int64, until domain.Date) ([]domain.VaccineWithPet, error) {
	return d.queryVaccines(ctx,
		vaccineSelect+" WHERE v.user_id = $1 AND v.next_dose_date IS NOT NULL AND v.next_dose_date <= $2 ORDER BY v.next_dose_date ASC, v.id ASC;",
		userID, until)
}

// ListAllDueBefore lists vaccines of every user whose next dose is strictly
// before the given date.
func (d *DB) ListAllDueBefore(ctx context.Context, before domain.Date) ([]domain.VaccineWithPet, error) {
	return d.queryVaccines(ctx,
		vaccineSelect+" WHERE v.next_dose_date IS NOT NULL AND v.next_dose_date < $1 ORDER BY v.next_dose_date ASC, v.id ASC;",
		before)
}
