package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type notificationRepository interface {
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	Create(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	ClearAll(ctx context.Context) error
	CountUnread(ctx context.Context) (int, error)
}

// PublishNotificationRequest is the payload for broadcasting a notification.
type PublishNotificationRequest struct {
	Title    string                      `json:"title" validate:"required"`
	Body     string                      `json:"body" validate:"required"`
	Audience models.NotificationAudience `json:"audience" validate:"omitempty,oneof=all admins trainers"`
}

// NotificationService provides the header notification lifecycle: publish,
// mark read, clear. Clearing hides entries without deleting rows.
type NotificationService struct {
	repo      notificationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationRepository, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NotificationService{repo: repo, validator: validate, logger: logger}
}

// List returns notifications with pagination metadata and the unread count.
func (s *NotificationService) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, *models.Pagination, int, error) {
	notifications, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}

	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		s.logger.Warn("failed to count unread notifications", zap.Error(err))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return notifications, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, unread, nil
}

// Publish broadcasts a notification to the configured audience.
func (s *NotificationService) Publish(ctx context.Context, actorID string, req PublishNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "notification needs a title and body")
	}

	n := &models.Notification{
		Title:     req.Title,
		Body:      req.Body,
		Audience:  req.Audience,
		CreatedBy: actorID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish notification")
	}
	return n, nil
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notification")
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	return nil
}

// MarkAllRead flags every visible notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := s.repo.MarkAllRead(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notifications read")
	}
	return nil
}

// ClearAll hides every notification from the dropdown.
func (s *NotificationService) ClearAll(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear notifications")
	}
	return nil
}
