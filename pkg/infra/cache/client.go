package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/parent"
	"github.com/sirupsen/logrus"
)

const (
	ParentKeyPattern = "parent:%s"

	ParentTTLName = "parent"
)

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap

	GetParent(ctx context.Context, id uuid.UUID) (*parent.Parent, error)
	SaveParent(ctx context.Context, entity *parent.Parent) error
	DeleteParent(ctx context.Context, id uuid.UUID) error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type client struct {
	redisClient *redis.Client
	ttlMaps     sync.Map
	ttl         time.Duration
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host": config.Host,
			"port": config.Port,
		}).WithError(err).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Info("redis connected successfully")

	return &client{
		redisClient: redisClient,
		ttl:         5 * time.Minute,
	}, nil
}

// NewClientWithRedis wraps an existing redis client. Used by tests with
// redismock.
func NewClientWithRedis(redisClient *redis.Client) Client {
	return &client{
		redisClient: redisClient,
		ttl:         5 * time.Minute,
	}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	ttlMap := NewTTLMap(ttl)
	c.ttlMaps.Store(name, ttlMap)
	return ttlMap
}

func (c *client) GetTTLMap(name string) *TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		if ttlMap, ok := value.(*TTLMap); ok {
			return ttlMap
		}
	}
	return c.CreateTTLMap(name, c.ttl)
}

func (c *client) GetParent(ctx context.Context, id uuid.UUID) (*parent.Parent, error) {
	raw, err := c.redisClient.Get(ctx, fmt.Sprintf(ParentKeyPattern, id)).Result()
	if err != nil {
		return nil, err
	}
	var entity parent.Parent
	if err := json.Unmarshal([]byte(raw), &entity); err != nil {
		return nil, fmt.Errorf("corrupt cached parent: %w", err)
	}
	return &entity, nil
}

func (c *client) SaveParent(ctx context.Context, entity *parent.Parent) error {
	raw, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal parent: %w", err)
	}
	return c.redisClient.Set(ctx, fmt.Sprintf(ParentKeyPattern, entity.ID), string(raw), c.ttl).Err()
}

func (c *client) DeleteParent(ctx context.Context, id uuid.UUID) error {
	return c.redisClient.Del(ctx, fmt.Sprintf(ParentKeyPattern, id)).Err()
}
