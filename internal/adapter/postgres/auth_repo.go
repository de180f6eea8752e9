package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"petcare/internal/domain"
)

const userColumns = "id, email, password_hash, full_name, cpf, phone, phone_confirmed, created_at"

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CPF, &u.Phone, &u.PhoneConfirmed, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail retrieves a user by email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// GetByCPF retrieves a user by CPF digits.
func (d *DB) GetByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE cpf = $1", cpf))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	out, err := scanUser(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (email, password_hash, full_name, cpf, phone, phone_confirmed, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING "+userColumns,
		u.Email, u.PasswordHash, u.FullName, u.CPF, u.Phone, u.PhoneConfirmed, createdAt,
	))
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	return out, err
}

// UpdateProfile stores the name, email and phone of u.
func (d *DB) UpdateProfile(ctx context.Context, u *domain.User) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE users SET full_name = $1, email = $2, phone = $3, phone_confirmed = $4 WHERE id = $5",
		u.FullName, u.Email, u.Phone, u.PhoneConfirmed, u.ID,
	)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return expectOne(res, err)
}

// UpdatePassword replaces the password hash of user id.
func (d *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return expectOne(d.sql.ExecContext(ctx,
		"UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, id))
}

// Delete removes a user; pets, vaccines, notifications and sessions go with it.
func (d *DB) Delete(ctx context.Context, id int64) error {
	return expectOne(d.sql.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id))
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, user_agent, ip, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		s.Token, s.UserID, s.UserAgent, s.IP, s.ExpiresAt, createdAt,
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, user_agent, ip, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteForUser deletes every session of a user.
func (r *SessionRepo) DeleteForUser(ctx context.Context, userID int64) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = $1", userID)
	return err
}

// DeleteExpired deletes all sessions that expired before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
