package domain

import (
	"context"
	"time"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationVaccineReminder NotificationType = "vaccine_reminder"
	NotificationGeneral         NotificationType = "general"
	NotificationSystem          NotificationType = "system"
)

// NotificationFilter selects which notifications List returns.
type NotificationFilter string

const (
	FilterAll             NotificationFilter = "all"
	FilterUnread          NotificationFilter = "unread"
	FilterVaccineReminder NotificationFilter = "vaccine_reminder"
)

// Notification is a message shown in the user's inbox.
type Notification struct {
	ID           int64            `json:"id"`
	UserID       int64            `json:"userId"`
	PetID        *int64           `json:"petId,omitempty"`
	VaccineID    *int64           `json:"vaccineId,omitempty"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	Type         NotificationType `json:"type"`
	IsRead       bool             `json:"isRead"`
	ScheduledFor *Date            `json:"scheduledFor,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// NotificationRepository is the port for notification persistence.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *Notification) (int64, error)
	// ListNotifications returns the user's notifications newest first.
	ListNotifications(ctx context.Context, userID int64, filter NotificationFilter) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	DeleteNotification(ctx context.Context, userID, id int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
	// ReminderExists reports whether a vaccine reminder for vaccineID and the
	// given dose date was already created.
	ReminderExists(ctx context.Context, vaccineID int64, scheduledFor Date) (bool, error)
}
