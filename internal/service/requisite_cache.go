package service

import (
	"context"
	"encoding/json"
	"time"

	"ower-data/internal/domain"
	"ower-data/internal/store"

	"go.uber.org/zap"
)

const requisiteTTL = 5 * time.Minute

// requisiteCache fronts the settings singletons with a short redis TTL.
// Cache failures fall through to Postgres with a warning.
type requisiteCache struct {
	kv     store.KV
	logger *zap.Logger
}

func newRequisiteCache(kv store.KV, logger *zap.Logger) *requisiteCache {
	return &requisiteCache{kv: kv, logger: logger}
}

func (c *requisiteCache) get(ctx context.Context, key string, load func(context.Context) (*domain.Requisite, error)) (*domain.Requisite, error) {
	if c.kv != nil {
		if val, err := c.kv.Get(ctx, key); err == nil {
			var req domain.Requisite
			if err := json.Unmarshal([]byte(val), &req); err == nil {
				return &req, nil
			}
			// Unparseable cache entry: drop it and reload
			_ = c.kv.Del(ctx, key)
		} else if err != store.ErrMiss {
			c.logger.Warn("requisite cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	req, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if c.kv != nil {
		if data, err := json.Marshal(req); err == nil {
			if err := c.kv.Set(ctx, key, string(data), requisiteTTL); err != nil {
				c.logger.Warn("requisite cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return req, nil
}
