package repository

import (
	"context"
	"database/sql"

	"github.com/harborline/charter-booking/internal/model"
)

// NotificationRepo persists in-app notifications.  Rows are written by the
// queue consumer and read/acknowledged by users.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification row.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (company_id, user_id, kind, message) VALUES (?,?,?,?)",
		n.CompanyID, n.UserID, n.Kind, n.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByUser returns a user's notifications, newest first, optionally only
// unread ones.
func (r *NotificationRepo) ListByUser(ctx context.Context, companyID, userID uint64, unreadOnly bool) ([]model.Notification, error) {
	q := `SELECT id, company_id, user_id, kind, message, read_at, created_at
	      FROM notifications WHERE company_id=? AND user_id=?`
	if unreadOnly {
		q += " AND read_at IS NULL"
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.DB.QueryContext(ctx, q, companyID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var (
			n      model.Notification
			readAt sql.NullTime
		)
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.UserID, &n.Kind, &n.Message, &readAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		if readAt.Valid {
			t := readAt.Time.UTC()
			n.ReadAt = &t
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead stamps a notification as read for its owning user.
func (r *NotificationRepo) MarkRead(ctx context.Context, companyID, userID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET read_at=UTC_TIMESTAMP() WHERE id=? AND company_id=? AND user_id=? AND read_at IS NULL",
		id, companyID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
