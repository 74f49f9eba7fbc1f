package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/parent"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type parentRepository struct {
	db *gorm.DB
}

func NewParentRepository(db *gorm.DB) parent.Repository {
	return &parentRepository{
		db: db,
	}
}

func (r *parentRepository) Get(ctx context.Context, id uuid.UUID) (*parent.Parent, error) {
	entity := new(parent.Parent)
	if err := r.db.WithContext(ctx).First(entity, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("parent not found: %w", err)
	}
	return entity, nil
}

func (r *parentRepository) GetByEmail(ctx context.Context, email string) (*parent.Parent, error) {
	entity := new(parent.Parent)
	if err := r.db.WithContext(ctx).First(entity, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("parent not found: %w", err)
	}
	return entity, nil
}

func (r *parentRepository) Create(ctx context.Context, entity *parent.Parent) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *parentRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings parent.Settings) error {
	result := r.db.WithContext(ctx).
		Model(&parent.Parent{}).
		Where("id = ?", id).
		Update("settings", settings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("parent not found: %s", id)
	}
	return nil
}

func (r *parentRepository) AddDeviceToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity := new(parent.Parent)
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(entity, "id = ?", id).Error; err != nil {
			return fmt.Errorf("parent not found: %w", err)
		}
		for _, existing := range entity.DeviceTokens {
			if existing == token {
				return nil
			}
		}
		entity.DeviceTokens = append(entity.DeviceTokens, token)
		return tx.Model(entity).Update("device_tokens", entity.DeviceTokens).Error
	})
}
