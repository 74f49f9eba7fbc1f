package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/parent"
	"github.com/safenest/safenest/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Updater --dir=. --output=./mocks --filename=settings_updater_mock.go --case=underscore --with-expecter

// Updater persists a settings change and invalidates both cache tiers so the
// next moderation request sees the new thresholds.
type Updater interface {
	Update(ctx context.Context, id uuid.UUID, settings parent.Settings) error
}

type updater struct {
	repo   parent.Repository
	cache  cache.Client
	logger *logrus.Logger
}

func NewUpdater(repository parent.Repository, c cache.Client, logger *logrus.Logger) Updater {
	return &updater{
		repo:   repository,
		cache:  c,
		logger: logger,
	}
}

func (u *updater) Update(ctx context.Context, id uuid.UUID, settings parent.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if err := u.repo.UpdateSettings(ctx, id, settings); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	u.cache.GetTTLMap(cache.ParentTTLName).Delete(id.String())
	if err := u.cache.DeleteParent(ctx, id); err != nil {
		u.logger.WithError(err).WithField("parent_id", id).Warn("failed to invalidate cached parent")
	}

	u.logger.WithField("parent_id", id).Info("parent settings updated")
	return nil
}
