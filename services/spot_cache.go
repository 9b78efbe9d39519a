package services

import (
	"context"
	"fmt"
	"time"

	"spotbook/dto"
	"spotbook/services/logger"

	"github.com/redis/go-redis/v9"
)

const DefaultSpotCacheTTL = 10 * time.Minute

// SpotCache holds rendered spot details between writes. Cache failures are
// logged and fall through to the store.
type SpotCache interface {
	Get(ctx context.Context, spotID uint) (*dto.SpotDetail, bool, error)
	Set(ctx context.Context, detail *dto.SpotDetail) error
	Invalidate(ctx context.Context, spotID uint) error
}

type RedisSpotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSpotCache(rdb *redis.Client, ttl time.Duration) *RedisSpotCache {
	if ttl <= 0 {
		ttl = DefaultSpotCacheTTL
	}
	return &RedisSpotCache{rdb: rdb, ttl: ttl}
}

func spotDetailKey(spotID uint) string {
	return fmt.Sprintf("spots:detail:%d", spotID)
}

func (c *RedisSpotCache) Get(ctx context.Context, spotID uint) (*dto.SpotDetail, bool, error) {
	var detail dto.SpotDetail
	found, err := GetFromRedis(ctx, c.rdb, spotDetailKey(spotID), &detail)
	if err != nil || !found {
		return nil, false, err
	}
	return &detail, true, nil
}

func (c *RedisSpotCache) Set(ctx context.Context, detail *dto.SpotDetail) error {
	return SetToRedis(ctx, c.rdb, spotDetailKey(detail.ID), detail, c.ttl)
}

func (c *RedisSpotCache) Invalidate(ctx context.Context, spotID uint) error {
	return DeleteFromRedis(ctx, c.rdb, spotDetailKey(spotID))
}

type noSpotCache struct{}

func (noSpotCache) Get(context.Context, uint) (*dto.SpotDetail, bool, error) { return nil, false, nil }
func (noSpotCache) Set(context.Context, *dto.SpotDetail) error               { return nil }
func (noSpotCache) Invalidate(context.Context, uint) error                   { return nil }

func defaultSpotCache(c SpotCache) SpotCache {
	if c == nil {
		return noSpotCache{}
	}
	return c
}

// invalidateSpot drops a cached detail after a write that changes it.
func invalidateSpot(ctx context.Context, cache SpotCache, log logger.Logger, spotID uint) {
	if err := cache.Invalidate(ctx, spotID); err != nil {
		log.Error("invalidate spot %d: %v", spotID, err)
	}
}
