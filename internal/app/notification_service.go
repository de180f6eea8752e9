package app

import (
	"context"
	"errors"
	"fmt"

	"petcare/internal/domain"
)

// NotificationService manages the user's inbox and creates vaccine
// reminders.
type NotificationService struct {
	repo     domain.NotificationRepository
	vaccines domain.VaccineRepository
	cal      Calendar
}

// NewNotificationService creates a NotificationService backed by the given
// repositories.
func NewNotificationService(repo domain.NotificationRepository, vaccines domain.VaccineRepository, cal Calendar) *NotificationService {
	return &NotificationService{repo: repo, vaccines: vaccines, cal: cal}
}

// ParseFilter maps a query value to a filter. An empty value means all.
func ParseFilter(raw string) (domain.NotificationFilter, error) {
	switch f := domain.NotificationFilter(raw); f {
	case "":
		return domain.FilterAll, nil
	case domain.FilterAll, domain.FilterUnread, domain.FilterVaccineReminder:
		return f, nil
	default:
		return "", ErrInvalidFilter
	}
}

// List returns the notifications of userID matching filter, newest first.
func (s *NotificationService) List(ctx context.Context, userID int64, filter domain.NotificationFilter) ([]domain.Notification, error) {
	if _, err := ParseFilter(string(filter)); err != nil {
		return nil, err
	}
	if filter == "" {
		filter = domain.FilterAll
	}
	items, err := s.repo.ListNotifications(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return items, nil
}

// MarkRead flags a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) error {
	return s.repo.MarkRead(ctx, userID, id)
}

// MarkAllRead flags every unread notification of userID as read and returns
// how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteNotification(ctx, userID, id)
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// GenerateReminders creates one vaccine_reminder notification for every
// vaccine whose next dose falls before today+7, across all users. A reminder
// is created once per vaccine and dose date. It returns how many were
// created.
func (s *NotificationService) GenerateReminders(ctx context.Context) (int, error) {
	today := s.cal.Today()
	due, err := s.vaccines.ListAllDueBefore(ctx, today.AddDays(domain.UrgentWindowDays))
	if err != nil {
		return 0, err
	}

	created := 0
	for _, v := range due {
		if v.NextDoseDate == nil {
			continue
		}
		exists, err := s.repo.ReminderExists(ctx, v.ID, *v.NextDoseDate)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		title, msg := reminderText(v, today)
		petID, vaccineID := v.PetID, v.ID
		next := *v.NextDoseDate
		_, err = s.repo.CreateNotification(ctx, &domain.Notification{
			UserID:       v.UserID,
			PetID:        &petID,
			VaccineID:    &vaccineID,
			Title:        title,
			Message:      msg,
			Type:         domain.NotificationVaccineReminder,
			ScheduledFor: &next,
			CreatedAt:    s.cal.Now().UTC(),
		})
		if errors.Is(err, domain.ErrConflict) {
			// Another instance created it after the existence check.
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func reminderText(v domain.VaccineWithPet, today domain.Date) (string, string) {
	when := formatBR(*v.NextDoseDate)
	if v.NextDoseDate.Before(today) {
		return "Vacina atrasada",
			fmt.Sprintf("A vacina %s de %s estava prevista para %s.", v.Name, v.PetName, when)
	}
	return "Vacina próxima",
		fmt.Sprintf("A vacina %s de %s está prevista para %s.", v.Name, v.PetName, when)
}

func formatBR(d domain.Date) string {
	return d.Time().Format("02/01/2006")
}
