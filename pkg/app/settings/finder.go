package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/parent"
	"github.com/safenest/safenest/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for parent model")

//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=settings_finder_mock.go --case=underscore --with-expecter

// Finder resolves a parent (and thereby its threshold policy) through the
// memory and redis tiers before hitting the repository.
type Finder interface {
	Find(ctx context.Context, id uuid.UUID) (*parent.Parent, error)
}

type finder struct {
	repo        parent.Repository
	cache       cache.Client
	memoryCache *cache.TTLMap
	logger      *logrus.Logger
}

func NewFinder(repository parent.Repository, c cache.Client, logger *logrus.Logger) Finder {
	return &finder{
		repo:        repository,
		cache:       c,
		logger:      logger,
		memoryCache: c.GetTTLMap(cache.ParentTTLName),
	}
}

func (f *finder) Find(ctx context.Context, id uuid.UUID) (*parent.Parent, error) {
	if entity, err := f.getFromMemoryCache(id); err == nil {
		return entity, nil
	} else if errors.Is(err, ErrInvalidCacheType) {
		f.logger.WithError(err).Debug("memory cache read parent failure")
	}

	if cached, err := f.cache.GetParent(ctx, id); err == nil && cached != nil {
		f.memoryCache.Set(id.String(), cached)
		return cached, nil
	}

	entity, err := f.repo.Get(ctx, id)
	if err != nil {
		f.logger.WithError(err).WithField("parent_id", id).Error("failed to fetch parent from repository")
		return nil, err
	}

	f.saveToCaches(ctx, entity)
	return entity, nil
}

func (f *finder) getFromMemoryCache(id uuid.UUID) (*parent.Parent, error) {
	cachedValue, found := f.memoryCache.Get(id.String())
	if !found {
		return nil, errors.New("parent not found in memory cache")
	}
	entity, ok := cachedValue.(*parent.Parent)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	return entity, nil
}

func (f *finder) saveToCaches(ctx context.Context, entity *parent.Parent) {
	f.memoryCache.Set(entity.ID.String(), entity)
	if err := f.cache.SaveParent(ctx, entity); err != nil {
		f.logger.WithError(err).Debug("failed to cache parent in redis")
	}
}
