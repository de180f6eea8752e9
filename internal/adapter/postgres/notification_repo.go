package postgres

import (
	"context"

	"petcare/internal/domain"
)

// CreateNotification inserts a notification.
func (d *DB) CreateNotification(ctx context.Context, n *domain.Notification) (int64, error) {
	typ := n.Type
	if typ == "" {
		typ = domain.NotificationGeneral
	}
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO notifications (user_id, pet_id, vaccine_id, title, message, type, is_read, scheduled_for, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;`,
		n.UserID, n.PetID, n.VaccineID, n.Title, n.Message, string(typ), n.IsRead, n.ScheduledFor, n.CreatedAt.UTC(),
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, domain.ErrConflict
	}
	return id, err
}

// ListNotifications lists the notifications of userID matching filter, newest first.
func (d *DB) ListNotifications(ctx context.Context, userID int64, filter domain.NotificationFilter) ([]domain.Notification, error) {
	query := "SELECT id, user_id, pet_id, vaccine_id, title, message, type, is_read, scheduled_for, created_at FROM notifications WHERE user_id = $1"
	switch filter {
	case domain.FilterUnread:
		query += " AND NOT is_read"
	case domain.FilterVaccineReminder:
		query += " AND type = 'vaccine_reminder'"
	}
	query += " ORDER BY created_at DESC, id DESC;"

	rows, err := d.sql.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &n.PetID, &n.VaccineID, &n.Title, &n.Message, &typ, &n.IsRead, &n.ScheduledFor, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(typ)
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead marks one notification of userID as read.
func (d *DB) MarkRead(ctx context.Context, userID, id int64) error {
	return expectOne(d.sql.ExecContext(ctx, "UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2;", id, userID))
}

// MarkAllRead marks every unread notification of userID as read.
func (d *DB) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res, err := d.sql.ExecContext(ctx, "UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read;", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteNotification removes a notification of userID.
func (d *DB) DeleteNotification(ctx context.Context, userID, id int64) error {
	return expectOne(d.sql.ExecContext(ctx, "DELETE FROM notifications WHERE id = $1 AND user_id = $2;", id, userID))
}

// CountUnread returns the number of unread notifications of userID.
func (d *DB) CountUnread(ctx context.Context, userID int64) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read;", userID).Scan(&n)
	return n, err
}

// ReminderExists reports whether a reminder for the vaccine and dose date exists.
func (d *DB) ReminderExists(ctx context.Context, vaccineID int64, scheduledFor domain.Date) (bool, error) {
	var exists bool
	err := d.sql.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM notifications WHERE type = 'vaccine_reminder' AND vaccine_id = $1 AND scheduled_for = $2);",
		vaccineID, scheduledFor,
	).Scan(&exists)
	return exists, err
}
