package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

// NotificationRepository manages persistence for header notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, title, body, audience, read, cleared, created_by, created_at`

// List returns notifications newest first. Cleared entries are excluded
// unless explicitly requested.
func (r *NotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	baseQuery := `FROM notifications WHERE 1=1`
	var conditions []string

	if !filter.IncludeCleared {
		conditions = append(conditions, "cleared = FALSE")
	}
	if filter.UnreadOnly {
		conditions = append(conditions, "read = FALSE")
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", notificationColumns, baseQuery, pageSize, offset)

	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, listQuery); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	return notifications, total, nil
}

// FindByID returns a notification by identifier.
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1 LIMIT 1`, notificationColumns)
	var n models.Notification
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find notification by id: %w", err)
	}
	return &n, nil
}

// Create inserts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Audience == "" {
		n.Audience = models.AudienceAll
	}
	const query = `INSERT INTO notifications (id, title, body, audience, read, cleared, created_by, created_at) VALUES (:id, :title, :body, :audience, :read, :cleared, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// MarkRead flags a single notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	const query = `UPDATE notifications SET read = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead flags every visible notification as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	const query = `UPDATE notifications SET read = TRUE WHERE cleared = FALSE`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// ClearAll hides every notification from the dropdown. Rows are kept.
func (r *NotificationRepository) ClearAll(ctx context.Context) error {
	const query = `UPDATE notifications SET cleared = TRUE, read = TRUE WHERE cleared = FALSE`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// CountUnread counts visible unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE cleared = FALSE AND read = FALSE`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
