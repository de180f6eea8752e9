package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petcare/internal/domain"
)

const petColumns = "id, user_id, name, species, breed, birth_date, weight_kg, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (*domain.Pet, error) {
	var p domain.Pet
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &p.BirthDate, &p.WeightKg, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePet inserts a pet.
func (d *DB) CreatePet(ctx context.Context, p *domain.Pet) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO pets (user_id, name, species, breed, birth_date, weight_kg, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;",
		p.UserID, p.Name, p.Species, p.Breed, p.BirthDate, p.WeightKg, p.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// UpdatePet replaces the editable fields of a pet, scoped to its owner.
func (d *DB) UpdatePet(ctx context.Context, p *domain.Pet) error {
	return expectOne(d.sql.ExecContext(ctx,
		"UPDATE pets SET name = $1, species = $2, breed = $3, birth_date = $4, weight_kg = $5 WHERE id = $6 AND user_id = $7;",
		p.Name, p.Species, p.Breed, p.BirthDate, p.WeightKg, p.ID, p.UserID,
	))
}

// DeletePet removes a pet and, by cascade, its vaccines.
func (d *DB) DeletePet(ctx context.Context, userID, id int64) error {
	return expectOne(d.sql.ExecContext(ctx, "DELETE FROM pets WHERE id = $1 AND user_id = $2;", id, userID))
}

// GetPet retrieves a pet owned by userID.
func (d *DB) GetPet(ctx context.Context, userID, id int64) (*domain.Pet, error) {
	p, err := scanPet(d.sql.QueryRowContext(ctx,
		"SELECT "+petColumns+" FROM pets WHERE id = $1 AND user_id = $2;", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// ListPets returns the pets of userID newest first. limit <= 0 means all.
func (d *DB) ListPets(ctx context.Context, userID int64, limit int) ([]domain.Pet, error) {
	query := "SELECT " + petColumns + " FROM pets WHERE user_id = $1 ORDER BY created_at DESC, id DESC"
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := d.sql.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// CountPets returns the number of pets owned by userID.
func (d *DB) CountPets(ctx context.Context, userID int64) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM pets WHERE user_id = $1;", userID).Scan(&n)
	return n, err
}
