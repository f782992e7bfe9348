package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petfolk/petcare/config"
	"github.com/petfolk/petcare/internal/domain"
	"github.com/petfolk/petcare/internal/draft"
)

// RedisCache backs two concerns: the read-only services catalog cache and
// the durable per-session order drafts.
type RedisCache struct {
	client      *redis.Client
	servicesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, servicesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		servicesTTL: servicesTTL,
	}
}

func (c *RedisCache) GetServices(ctx context.Context) ([]domain.Service, error) {
	data, err := c.client.Get(ctx, servicesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *RedisCache) SetServices(ctx context.Context, services []domain.Service) error {
	payload, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, servicesKey(), payload, c.servicesTTL).Err()
}

// InvalidateServices drops the cached catalog so the next read refetches.
func (c *RedisCache) InvalidateServices(ctx context.Context) error {
	return c.client.Del(ctx, servicesKey()).Err()
}

// SaveDraft persists a session's order draft. Drafts survive page reloads,
// so they carry no TTL.
func (c *RedisCache) SaveDraft(ctx context.Context, sessionID string, d draft.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, draftKey(sessionID), payload, 0).Err()
}

func (c *RedisCache) LoadDraft(ctx context.Context, sessionID string) (*draft.Draft, error) {
	data, err := c.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var d draft.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func servicesKey() string {
	return "cache:services"
}

func draftKey(sessionID string) string {
	return "draft:" + sessionID
}
