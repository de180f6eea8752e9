package app_test

import (
	"context"
	"errors"
	"testing"

	"petcare/internal/app"
	"petcare/internal/domain"
	"petcare/internal/validation"
)

func newDashboard(pets *mockPetRepo, vaccines *mockVaccineRepo, notes *mockNotificationRepo) *app.DashboardService {
	v := validation.New()
	cal := testCalendar()
	return app.NewDashboardService(
		app.NewPetService(pets, v, cal),
		app.NewVaccineService(vaccines, pets, v, cal),
		notes,
	)
}

func TestDashboardService_GetSummary(t *testing.T) {
	pets := &mockPetRepo{
		countFn: func(_ context.Context, _ int64) (int, error) { return 2, nil },
		listFn: func(_ context.Context, _ int64, limit int) ([]domain.Pet, error) {
			if limit != 5 {
				t.Errorf("expected limit 5, got %d", limit)
			}
			return []domain.Pet{{ID: 2, Name: "Mimi"}, {ID: 1, Name: "Rex"}}, nil
		},
	}
	vaccines := &mockVaccineRepo{
		nextDatesFn: func(_ context.Context, _ int64) ([]*domain.Date, error) {
			return []*domain.Date{datePtr("2024-06-01"), datePtr("2024-06-20"), nil}, nil
		},
		dueByFn: func(_ context.Context, _ int64, _ domain.Date) ([]domain.VaccineWithPet, error) {
			return []domain.VaccineWithPet{
				{Vaccine: domain.Vaccine{ID: 1, NextDoseDate: datePtr("2024-06-01")}},
				{Vaccine: domain.Vaccine{ID: 2, NextDoseDate: datePtr("2024-06-20")}},
			}, nil
		},
	}
	notes := &mockNotificationRepo{
		countUnreadFn: func(_ context.Context, _ int64) (int, error) { return 4, nil },
	}

	sum, err := newDashboard(pets, vaccines, notes).GetSummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.PetCount != 2 || sum.UnreadCount != 4 {
		t.Errorf("unexpected counts %+v", sum)
	}
	want := domain.VaccineStats{Total: 3, Overdue: 1, Upcoming: 1, UpToDate: 1}
	if sum.Stats != want {
		t.Errorf("expected stats %+v, got %+v", want, sum.Stats)
	}
	if len(sum.RecentPets) != 2 || len(sum.Upcoming) != 2 {
		t.Errorf("unexpected lists %+v", sum)
	}
	if sum.Upcoming[0].Status != domain.DueOverdue {
		t.Errorf("expected first upcoming overdue, got %s", sum.Upcoming[0].Status)
	}
}

func TestDashboardService_GetSummary_Empty(t *testing.T) {
	sum, err := newDashboard(&mockPetRepo{}, &mockVaccineRepo{}, &mockNotificationRepo{}).GetSummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.RecentPets == nil || sum.Upcoming == nil {
		t.Error("expected empty slices, not nil")
	}
	if sum.Stats != (domain.VaccineStats{}) {
		t.Errorf("expected zero stats, got %+v", sum.Stats)
	}
}

func TestDashboardService_GetSummary_Error(t *testing.T) {
	pets := &mockPetRepo{
		countFn: func(_ context.Context, _ int64) (int, error) { return 0, errors.New("db down") },
	}
	if _, err := newDashboard(pets, &mockVaccineRepo{}, &mockNotificationRepo{}).GetSummary(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}
