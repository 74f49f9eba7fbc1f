package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/activity"
	"gorm.io/gorm"
)

const recentFlagsLimit = 10

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.Repository {
	return &activityRepository{
		db: db,
	}
}

func (r *activityRepository) Create(ctx context.Context, entity *activity.Activity) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *activityRepository) Get(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	entity := new(activity.Activity)
	if err := r.db.WithContext(ctx).First(entity, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("activity not found: %w", err)
	}
	return entity, nil
}

func (r *activityRepository) List(ctx context.Context, parentID uuid.UUID, filter activity.Filter) ([]activity.Activity, error) {
	var entities []activity.Activity
	query := r.filtered(ctx, parentID, filter).Order("observed_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *activityRepository) MarkNotificationSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&activity.Activity{}).
		Where("id = ?", id).
		Update("notification_sent", true).Error
}

func (r *activityRepository) UpdateDuration(ctx context.Context, id uuid.UUID, seconds int) error {
	result := r.db.WithContext(ctx).
		Model(&activity.Activity{}).
		Where("id = ?", id).
		Update("duration_seconds", seconds)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("activity not found: %s", id)
	}
	return nil
}

func (r *activityRepository) Stats(ctx context.Context, parentID uuid.UUID, filter activity.Filter) (*activity.Stats, error) {
	stats := &activity.Stats{
		ActivitiesByKind: make(map[string]int64),
	}

	if err := r.filtered(ctx, parentID, filter).Count(&stats.TotalActivities).Error; err != nil {
		return nil, err
	}
	if err := r.filtered(ctx, parentID, filter).Where("flagged = ?", true).Count(&stats.FlaggedActivities).Error; err != nil {
		return nil, err
	}
	stats.SafeActivities = stats.TotalActivities - stats.FlaggedActivities
	if stats.TotalActivities > 0 {
		stats.FlagRate = float64(stats.FlaggedActivities) / float64(stats.TotalActivities)
	}

	var byKind []struct {
		Kind  string
		Count int64
	}
	if err := r.filtered(ctx, parentID, filter).
		Select("kind, count(*) as count").
		Group("kind").
		Scan(&byKind).Error; err != nil {
		return nil, err
	}
	for _, row := range byKind {
		stats.ActivitiesByKind[row.Kind] = row.Count
	}

	if err := r.filtered(ctx, parentID, filter).
		Where("flagged = ?", true).
		Order("observed_at DESC").
		Limit(recentFlagsLimit).
		Find(&stats.RecentFlags).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *activityRepository) filtered(ctx context.Context, parentID uuid.UUID, filter activity.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&activity.Activity{}).
		Where("parent_id = ?", parentID)
	if filter.ChildName != "" {
		query = query.Where("child_name = ?", filter.ChildName)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Flagged != nil {
		query = query.Where("flagged = ?", *filter.Flagged)
	}
	if !filter.Since.IsZero() {
		query = query.Where("observed_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		query = query.Where("observed_at <= ?", filter.Until)
	}
	return query
}
