package app_test

import (
	"context"
	"time"

	"petcare/internal/app"
	"petcare/internal/domain"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testCalendar() app.Calendar {
	return app.NewCalendar(func() time.Time { return testNow }, time.UTC)
}

func mustDate(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *domain.Date {
	d := mustDate(s)
	return &d
}

type mockPetRepo struct {
	createFn func(ctx context.Context, p *domain.Pet) (int64, error)
	updateFn func(ctx context.Context, p *domain.Pet) error
	deleteFn func(ctx context.Context, userID, id int64) error
	getFn    func(ctx context.Context, userID, id int64) (*domain.Pet, error)
	listFn   func(ctx context.Context, userID int64, limit int) ([]domain.Pet, error)
	countFn  func(ctx context.Context, userID int64) (int, error)
}

func (m *mockPetRepo) CreatePet(ctx context.Context, p *domain.Pet) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return 1, nil
}

func (m *mockPetRepo) UpdatePet(ctx context.Context, p *domain.Pet) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockPetRepo) DeletePet(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockPetRepo) GetPet(ctx context.Context, userID, id int64) (*domain.Pet, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPetRepo) ListPets(ctx context.Context, userID int64, limit int) ([]domain.Pet, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockPetRepo) CountPets(ctx context.Context, userID int64) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, userID)
	}
	return 0, nil
}

type mockVaccineRepo struct {
	createFn    func(ctx context.Context, v *domain.Vaccine) (int64, error)
	updateFn    func(ctx context.Context, v *domain.Vaccine) error
	deleteFn    func(ctx context.Context, userID, id int64) error
	getFn       func(ctx context.Context, userID, id int64) (*domain.VaccineWithPet, error)
	listFn      func(ctx context.Context, userID int64) ([]domain.VaccineWithPet, error)
	nextDatesFn func(ctx context.Context, userID int64) ([]*domain.Date, error)
	dueByFn     func(ctx context.Context, userID int64, until domain.Date) ([]domain.VaccineWithPet, error)
	allDueFn    func(ctx context.Context, before domain.Date) ([]domain.VaccineWithPet, error)
}

func (m *mockVaccineRepo) CreateVaccine(ctx context.Context, v *domain.Vaccine) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, v)
	}
	return 1, nil
}

func (m *mockVaccineRepo) UpdateVaccine(ctx context.Context, v *domain.Vaccine) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, v)
	}
	return nil
}

func (m *mockVaccineRepo) DeleteVaccine(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockVaccineRepo) GetVaccine(ctx context.Context, userID, id int64) (*domain.VaccineWithPet, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockVaccineRepo) ListVaccines(ctx context.Context, userID int64) ([]domain.VaccineWithPet, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockVaccineRepo) ListNextDoseDates(ctx context.Context, userID int64) ([]*domain.Date, error) {
	if m.nextDatesFn != nil {
		return m.nextDatesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockVaccineRepo) ListDueBy(ctx context.Context, userID int64, until domain.Date) ([]domain.VaccineWithPet, error) {
	if m.dueByFn != nil {
		return m.dueByFn(ctx, userID, until)
	}
	return nil, nil
}

func (m *mockVaccineRepo) ListAllDueBefore(ctx context.Context, before domain.Date) ([]domain.VaccineWithPet, error) {
	if m.allDueFn != nil {
		return m.allDueFn(ctx, before)
	}
	return nil, nil
}

type mockNotificationRepo struct {
	createFn      func(ctx context.Context, n *domain.Notification) (int64, error)
	listFn        func(ctx context.Context, userID int64, filter domain.NotificationFilter) ([]domain.Notification, error)
	markReadFn    func(ctx context.Context, userID, id int64) error
	markAllReadFn func(ctx context.Context, userID int64) (int64, error)
	deleteFn      func(ctx context.Context, userID, id int64) error
	countUnreadFn func(ctx context.Context, userID int64) (int, error)
	existsFn      func(ctx context.Context, vaccineID int64, scheduledFor domain.Date) (bool, error)
}

func (m *mockNotificationRepo) CreateNotification(ctx context.Context, n *domain.Notification) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return 1, nil
}

func (m *mockNotificationRepo) ListNotifications(ctx context.Context, userID int64, filter domain.NotificationFilter) ([]domain.Notification, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID, id int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, userID, id)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) DeleteNotification(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) ReminderExists(ctx context.Context, vaccineID int64, scheduledFor domain.Date) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, vaccineID, scheduledFor)
	}
	return false, nil
}
