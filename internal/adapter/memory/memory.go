// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"petcare/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu            sync.Mutex
	users         []*domain.User
	sessions      map[string]*domain.Session
	pets          []*domain.Pet
	vaccines      []*domain.Vaccine
	notifications []*domain.Notification

	userIDCounter         int64
	petIDCounter          int64
	vaccineIDCounter      int64
	notificationIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.PetRepository = (*DB)(nil)
var _ domain.VaccineRepository = (*DB)(nil)
var _ domain.NotificationRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

func (db *DB) findUser(match func(*domain.User) bool) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return db.findUser(func(u *domain.User) bool { return u.Email == email })
}

// GetByCPF retrieves a user by CPF digits.
func (db *DB) GetByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	return db.findUser(func(u *domain.User) bool { return u.CPF == cpf })
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return db.findUser(func(u *domain.User) bool { return u.ID == id })
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, in *domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == in.Email || u.CPF == in.CPF {
			return nil, domain.ErrConflict
		}
	}

	db.userIDCounter++
	u := *in
	u.ID = db.userIDCounter
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	db.users = append(db.users, &u)
	out := u
	return &out, nil
}

// UpdateProfile stores name, email and phone fields of u.
func (db *DB) UpdateProfile(ctx context.Context, in *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == in.ID {
			u.FullName = in.FullName
			u.Email = in.Email
			u.Phone = in.Phone
			u.PhoneConfirmed = in.PhoneConfirmed
			return nil
		}
	}
	return domain.ErrNotFound
}

// UpdatePassword replaces the password hash of user id.
func (db *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete removes a user and everything they own.
func (db *DB) Delete(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i, u := range db.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrNotFound
	}
	db.users = append(db.users[:idx], db.users[idx+1:]...)

	db.pets = filter(db.pets, func(p *domain.Pet) bool { return p.UserID != id })
	db.vaccines = filter(db.vaccines, func(v *domain.Vaccine) bool { return v.UserID != id })
	db.notifications = filter(db.notifications, func(n *domain.Notification) bool { return n.UserID != id })
	for k, s := range db.sessions {
		if s.UserID == id {
			delete(db.sessions, k)
		}
	}
	return nil
}

// --- PetRepository ---

// CreatePet adds a pet.
func (db *DB) CreatePet(ctx context.Context, in *domain.Pet) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.petIDCounter++
	p := *in
	p.ID = db.petIDCounter
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	db.pets = append(db.pets, &p)
	return p.ID, nil
}

// UpdatePet replaces the editable fields of a pet owned by in.UserID.
func (db *DB) UpdatePet(ctx context.Context, in *domain.Pet) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.pet(in.UserID, in.ID)
	if p == nil {
		return domain.ErrNotFound
	}
	p.Name = in.Name
	p.Species = in.Species
	p.Breed = in.Breed
	p.BirthDate = in.BirthDate
	p.WeightKg = in.WeightKg
	return nil
}

// DeletePet removes a pet and its vaccines.
func (db *DB) DeletePet(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.pet(userID, id) == nil {
		return domain.ErrNotFound
	}
	db.pets = filter(db.pets, func(p *domain.Pet) bool { return p.ID != id })
	db.vaccines = filter(db.vaccines, func(v *domain.Vaccine) bool { return v.PetID != id })
	for _, n := range db.notifications {
		if n.PetID != nil && *n.PetID == id {
			n.PetID = nil
			n.VaccineID = nil
		}
	}
	return nil
}

// GetPet retrieves a pet owned by userID.
func (db *DB) GetPet(ctx context.Context, userID, id int64) (*domain.Pet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.pet(userID, id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

// ListPets lists the pets of userID, newest first. limit <= 0 means all.
func (db *DB) ListPets(ctx context.Context, userID int64, limit int) ([]domain.Pet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Pet, 0)
	for _, p := range db.pets {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CountPets returns the number of pets owned by userID.
func (db *DB) CountPets(ctx context.Context, userID int64) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := 0
	for _, p := range db.pets {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (db *DB) pet(userID, id int64) *domain.Pet {
	for _, p := range db.pets {
		if p.ID == id && p.UserID == userID {
			return p
		}
	}
	return nil
}

// --- VaccineRepository ---

// CreateVaccine adds a vaccine. The pet must belong to the same user.
func (db *DB) CreateVaccine(ctx context.Context, in *domain.Vaccine) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.pet(in.UserID, in.PetID) == nil {
		return 0, domain.ErrNotFound
	}

	db.vaccineIDCounter++
	v := *in
	v.ID = db.vaccineIDCounter
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	db.vaccines = append(db.vaccines, &v)
	return v.ID, nil
}

// UpdateVaccine replaces the editable fields of a vaccine owned by in.UserID.
func (db *DB) UpdateVaccine(ctx context.Context, in *domain.Vaccine) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	v := db.vaccine(in.UserID, in.ID)
	if v == nil || db.pet(in.UserID, in.PetID) == nil {
		return domain.ErrNotFound
	}
	v.PetID = in.PetID
	v.Name = in.Name
	v.Description = in.Description
	v.ApplicationDate = in.ApplicationDate
	v.NextDoseDate = in.NextDoseDate
	v.Veterinarian = in.Veterinarian
	v.BatchNumber = in.BatchNumber
	return nil
}

// DeleteVaccine removes a vaccine owned by userID.
func (db *DB) DeleteVaccine(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.vaccine(userID, id) == nil {
		return domain.ErrNotFound
	}
	db.vaccines = filter(db.vaccines, func(v *domain.Vaccine) bool { return v.ID != id })
	for _, n := range db.notifications {
		if n.VaccineID != nil && *n.VaccineID == id {
			n.VaccineID = nil
		}
	}
	return nil
}

// GetVaccine retrieves a vaccine owned by userID, joined with its pet.
func (db *DB) GetVaccine(ctx context.Context, userID, id int64) (*domain.VaccineWithPet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v := db.vaccine(userID, id)
	if v == nil {
		return nil, domain.ErrNotFound
	}
	out := db.withPet(v)
	return &out, nil
}

// ListVaccines lists the vaccines of userID, most recent application first.
func (db *DB) ListVaccines(ctx context.Context, userID int64) ([]domain.VaccineWithPet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.selectVaccines(func(v *domain.Vaccine) bool { return v.UserID == userID })
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].ApplicationDate, result[j].ApplicationDate
		if a.Equal(b) {
			return result[i].ID > result[j].ID
		}
		return a.After(b)
	})
	return result, nil
}

// ListNextDoseDates returns the next-dose date of every vaccine of userID.
func (db *DB) ListNextDoseDates(ctx context.Context, userID int64) ([]*domain.Date, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*domain.Date, 0)
	for _, v := range db.vaccines {
		if v.UserID != userID {
			continue
		}
		var d *domain.Date
		if v.NextDoseDate != nil {
			c := *v.NextDoseDate
			d = &c
		}
		result = append(result, d)
	}
	return result, nil
}

// ListDueBy lists vaccines of userID whose next dose is on or before until,
// soonest first.
func (db *DB) ListDueBy(ctx context.Context, userID int64, until domain.Date) ([]domain.VaccineWithPet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.selectVaccines(func(v *domain.Vaccine) bool {
		return v.UserID == userID && v.NextDoseDate != nil && !v.NextDoseDate.After(until)
	})
	sortByNextDose(result)
	return result, nil
}

// ListAllDueBefore lists vaccines of every user whose next dose is strictly
// before the given date, soonest first.
func (db *DB) ListAllDueBefore(ctx context.Context, before domain.Date) ([]domain.VaccineWithPet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.selectVaccines(func(v *domain.Vaccine) bool {
		return v.NextDoseDate != nil && v.NextDoseDate.Before(before)
	})
	sortByNextDose(result)
	return result, nil
}

func (db *DB) vaccine(userID, id int64) *domain.Vaccine {
	for _, v := range db.vaccines {
		if v.ID == id && v.UserID == userID {
			return v
		}
	}
	return nil
}

func (db *DB) withPet(v *domain.Vaccine) domain.VaccineWithPet {
	out := domain.VaccineWithPet{Vaccine: *v}
	if p := db.pet(v.UserID, v.PetID); p != nil {
		out.PetName = p.Name
		out.PetSpecies = p.Species
	}
	return out
}

func (db *DB) selectVaccines(keep func(*domain.Vaccine) bool) []domain.VaccineWithPet {
	result := make([]domain.VaccineWithPet, 0)
	for _, v := range db.vaccines {
		if keep(v) {
			result = append(result, db.withPet(v))
		}
	}
	return result
}

func sortByNextDose(items []domain.VaccineWithPet) {
	sort.Slice(items, func(i, j int) bool {
		a, b := *items[i].NextDoseDate, *items[j].NextDoseDate
		if a.Equal(b) {
			return items[i].ID < items[j].ID
		}
		return a.Before(b)
	})
}

// --- NotificationRepository ---

// CreateNotification adds a notification.
func (db *DB) CreateNotification(ctx context.Context, in *domain.Notification) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.notificationIDCounter++
	n := *in
	n.ID = db.notificationIDCounter
	if n.Type == "" {
		n.Type = domain.NotificationGeneral
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	db.notifications = append(db.notifications, &n)
	return n.ID, nil
}

// ListNotifications lists the notifications of userID, newest first.
func (db *DB) ListNotifications(ctx context.Context, userID int64, f domain.NotificationFilter) ([]domain.Notification, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Notification, 0)
	for _, n := range db.notifications {
		if n.UserID != userID {
			continue
		}
		switch f {
		case domain.FilterUnread:
			if n.IsRead {
				continue
			}
		case domain.FilterVaccineReminder:
			if n.Type != domain.NotificationVaccineReminder {
				continue
			}
		}
		result = append(result, *n)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// MarkRead marks one notification of userID as read.
func (db *DB) MarkRead(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, n := range db.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// MarkAllRead marks every unread notification of userID as read.
func (db *DB) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var changed int64
	for _, n := range db.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	return changed, nil
}

// DeleteNotification removes a notification of userID.
func (db *DB) DeleteNotification(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	before := len(db.notifications)
	db.notifications = filter(db.notifications, func(n *domain.Notification) bool {
		return n.ID != id || n.UserID != userID
	})
	if len(db.notifications) == before {
		return domain.ErrNotFound
	}
	return nil
}

// CountUnread returns the number of unread notifications of userID.
func (db *DB) CountUnread(ctx context.Context, userID int64) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := 0
	for _, x := range db.notifications {
		if x.UserID == userID && !x.IsRead {
			n++
		}
	}
	return n, nil
}

// ReminderExists reports whether a reminder for the vaccine and dose date exists.
func (db *DB) ReminderExists(ctx context.Context, vaccineID int64, scheduledFor domain.Date) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, n := range db.notifications {
		if n.Type == domain.NotificationVaccineReminder &&
			n.VaccineID != nil && *n.VaccineID == vaccineID &&
			n.ScheduledFor != nil && n.ScheduledFor.Equal(scheduledFor) {
			return true, nil
		}
	}
	return false, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c := *s
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	r.db.sessions[s.Token] = &c
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		c := *s
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteForUser deletes every session of userID.
func (r *SessionRepo) DeleteForUser(ctx context.Context, userID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k, v := range r.db.sessions {
		if v.UserID == userID {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// DeleteExpired deletes all sessions that expired before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
			n++
		}
	}
	return n, nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
