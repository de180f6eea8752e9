package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"petcare/internal/app"
	"petcare/internal/domain"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.NotificationFilter
		wantErr bool
	}{
		{"", domain.FilterAll, false},
		{"all", domain.FilterAll, false},
		{"unread", domain.FilterUnread, false},
		{"vaccine_reminder", domain.FilterVaccineReminder, false},
		{"spam", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := app.ParseFilter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNotificationService_List(t *testing.T) {
	var gotFilter domain.NotificationFilter
	repo := &mockNotificationRepo{
		listFn: func(_ context.Context, _ int64, f domain.NotificationFilter) ([]domain.Notification, error) {
			gotFilter = f
			return nil, nil
		},
	}
	svc := app.NewNotificationService(repo, &mockVaccineRepo{}, testCalendar())

	items, err := svc.List(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFilter != domain.FilterAll {
		t.Errorf("expected filter all, got %q", gotFilter)
	}
	if items == nil {
		t.Error("expected empty slice, got nil")
	}

	if _, err := svc.List(context.Background(), 1, "bogus"); !errors.Is(err, app.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestNotificationService_GenerateReminders(t *testing.T) {
	var before domain.Date
	vaccines := &mockVaccineRepo{
		allDueFn: func(_ context.Context, b domain.Date) ([]domain.VaccineWithPet, error) {
			before = b
			return []domain.VaccineWithPet{
				{Vaccine: domain.Vaccine{ID: 1, UserID: 1, PetID: 10, Name: "V10", NextDoseDate: datePtr("2024-06-10")}, PetName: "Rex"},
				{Vaccine: domain.Vaccine{ID: 2, UserID: 2, PetID: 20, Name: "Raiva", NextDoseDate: datePtr("2024-06-18")}, PetName: "Mimi"},
				{Vaccine: domain.Vaccine{ID: 3, UserID: 2, PetID: 20, Name: "FeLV", NextDoseDate: datePtr("2024-06-19")}, PetName: "Mimi"},
			}, nil
		},
	}

	var created []*domain.Notification
	repo := &mockNotificationRepo{
		existsFn: func(_ context.Context, vaccineID int64, _ domain.Date) (bool, error) {
			return vaccineID == 3, nil
		},
		createFn: func(_ context.Context, n *domain.Notification) (int64, error) {
			created = append(created, n)
			return int64(len(created)), nil
		},
	}

	svc := app.NewNotificationService(repo, vaccines, testCalendar())
	n, err := svc.GenerateReminders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before.String() != "2024-06-22" {
		t.Errorf("expected cutoff 2024-06-22, got %s", before)
	}
	if n != 2 || len(created) != 2 {
		t.Fatalf("expected 2 reminders, got %d", n)
	}

	overdue := created[0]
	if overdue.Type != domain.NotificationVaccineReminder || overdue.UserID != 1 {
		t.Errorf("unexpected reminder %+v", overdue)
	}
	if overdue.Title != "Vacina atrasada" {
		t.Errorf("expected overdue title, got %q", overdue.Title)
	}
	if !strings.Contains(overdue.Message, "10/06/2024") || !strings.Contains(overdue.Message, "Rex") {
		t.Errorf("unexpected message %q", overdue.Message)
	}
	if overdue.VaccineID == nil || *overdue.VaccineID != 1 || overdue.PetID == nil || *overdue.PetID != 10 {
		t.Errorf("reminder not linked to vaccine and pet: %+v", overdue)
	}
	if overdue.ScheduledFor == nil || overdue.ScheduledFor.String() != "2024-06-10" {
		t.Errorf("unexpected scheduledFor %v", overdue.ScheduledFor)
	}

	if created[1].Title != "Vacina próxima" || created[1].UserID != 2 {
		t.Errorf("unexpected second reminder %+v", created[1])
	}
}

func TestNotificationService_GenerateReminders_StopsOnError(t *testing.T) {
	vaccines := &mockVaccineRepo{
		allDueFn: func(_ context.Context, _ domain.Date) ([]domain.VaccineWithPet, error) {
			return []domain.VaccineWithPet{
				{Vaccine: domain.Vaccine{ID: 1, NextDoseDate: datePtr("2024-06-16")}},
			}, nil
		},
	}
	repo := &mockNotificationRepo{
		createFn: func(_ context.Context, _ *domain.Notification) (int64, error) {
			return 0, errors.New("db down")
		},
	}

	n, err := app.NewNotificationService(repo, vaccines, testCalendar()).GenerateReminders(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if n != 0 {
		t.Errorf("expected 0 created, got %d", n)
	}
}

func TestNotificationService_GenerateReminders_SkipsConcurrentDuplicate(t *testing.T) {
	vaccines := &mockVaccineRepo{
		allDueFn: func(_ context.Context, _ domain.Date) ([]domain.VaccineWithPet, error) {
			return []domain.VaccineWithPet{
				{Vaccine: domain.Vaccine{ID: 1, NextDoseDate: datePtr("2024-06-16")}},
				{Vaccine: domain.Vaccine{ID: 2, NextDoseDate: datePtr("2024-06-17")}},
			}, nil
		},
	}
	var created []int64
	repo := &mockNotificationRepo{
		createFn: func(_ context.Context, n *domain.Notification) (int64, error) {
			if *n.VaccineID == 1 {
				return 0, domain.ErrConflict
			}
			created = append(created, *n.VaccineID)
			return 10, nil
		},
	}

	n, err := app.NewNotificationService(repo, vaccines, testCalendar()).GenerateReminders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 created, got %d", n)
	}
	if len(created) != 1 || created[0] != 2 {
		t.Errorf("expected reminder for vaccine 2 only, got %v", created)
	}
}
