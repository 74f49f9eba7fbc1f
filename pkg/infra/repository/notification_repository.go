package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/notification"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, entity *notification.Notification) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *notificationRepository) ListUnread(ctx context.Context, parentID uuid.UUID, limit int) ([]notification.Notification, error) {
	var entities []notification.Notification
	query := r.db.WithContext(ctx).
		Where("parent_id = ? AND read = ?", parentID, false).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, parentID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ? AND parent_id = ?", id, parentID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", notification.ErrNotFound, id)
	}
	return nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sent":    true,
			"sent_at": &now,
		}).Error
}
