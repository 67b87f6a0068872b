package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-gin-event-map/internal/metrics"
	"go-gin-event-map/internal/model"
	"go-gin-event-map/internal/repository"
	"go-gin-event-map/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// VenueCache 以 Redis hash 快取場地資料的 read-through 裝飾器。
// Redis 出錯時直接改查底層 repository，快取不影響查詢結果。
type VenueCache struct {
	client  *redis.Client
	next    repository.VenueRepository
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewVenueCache(client *redis.Client, next repository.VenueRepository, ttl time.Duration, m *metrics.Metrics) repository.VenueRepository {
	return &VenueCache{
		client:  client,
		next:    next,
		ttl:     ttl,
		metrics: m,
		log:     logger.WithComponent("venue_cache"),
	}
}

// 場地 key
func (c *VenueCache) getVenueKey(venueID int) string {
	return fmt.Sprintf("venue:%d:info", venueID)
}

func (c *VenueCache) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	fields, err := c.client.HGetAll(ctx, c.getVenueKey(id)).Result()
	if err != nil {
		c.record("error")
		c.log.Warn("Redis read failed, falling back to repository", zap.Int("venue_id", id), zap.Error(err))
		return c.next.FindByID(ctx, id)
	}
	if venue, ok := c.decode(id, fields); ok {
		c.record("hit")
		return venue, nil
	}

	c.record("miss")
	venue, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, venue)
	return venue, nil
}

func (c *VenueCache) FindByIDs(ctx context.Context, ids []int) (map[int]*model.Venue, error) {
	if len(ids) == 0 {
		return make(map[int]*model.Venue), nil
	}

	pipe := c.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, c.getVenueKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		c.record("error")
		c.log.Warn("Redis pipeline failed, falling back to repository", zap.Ints("venue_ids", ids), zap.Error(err))
		return c.next.FindByIDs(ctx, ids)
	}

	venues := make(map[int]*model.Venue, len(ids))
	var misses []int
	for i, id := range ids {
		if venue, ok := c.decode(id, cmds[i].Val()); ok {
			c.record("hit")
			venues[id] = venue
			continue
		}
		c.record("miss")
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return venues, nil
	}

	loaded, err := c.next.FindByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, venue := range loaded {
		venues[id] = venue
		c.store(ctx, venue)
	}
	return venues, nil
}

func (c *VenueCache) store(ctx context.Context, venue *model.Venue) {
	key := c.getVenueKey(venue.ID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeVenue(venue))
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("Redis write failed", zap.Int("venue_id", venue.ID), zap.Error(err))
	}
}

func (c *VenueCache) decode(id int, fields map[string]string) (*model.Venue, bool) {
	if len(fields) == 0 {
		return nil, false
	}
	venue, err := decodeVenue(id, fields)
	if err != nil {
		c.log.Warn("Corrupted venue cache entry", zap.Int("venue_id", id), zap.Error(err))
		return nil, false
	}
	return venue, true
}

func (c *VenueCache) record(result string) {
	if c.metrics != nil {
		c.metrics.VenueCache.WithLabelValues(result).Inc()
	}
}

func encodeVenue(v *model.Venue) map[string]interface{} {
	fields := map[string]interface{}{
		"name":      v.Name,
		"address":   v.Address,
		"latitude":  strconv.FormatFloat(v.Latitude, 'g', -1, 64),
		"longitude": strconv.FormatFloat(v.Longitude, 'g', -1, 64),
	}
	if v.Description != nil {
		fields["description"] = *v.Description
	}
	return fields
}

func decodeVenue(id int, fields map[string]string) (*model.Venue, error) {
	lat, err := strconv.ParseFloat(fields["latitude"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %v", err)
	}
	lng, err := strconv.ParseFloat(fields["longitude"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %v", err)
	}

	venue := &model.Venue{
		ID:        id,
		Name:      fields["name"],
		Address:   fields["address"],
		Latitude:  lat,
		Longitude: lng,
	}
	if d, ok := fields["description"]; ok {
		venue.Description = &d
	}
	return venue, nil
}
