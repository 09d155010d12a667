// Package cache provides a Redis-backed cache for the doctor's day-queue
// view. Cache failures are logged and otherwise ignored; the database stays
// the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mediconnect-server/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const queueTTL = 30 * time.Second

// Config holds Redis connection details.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// QueueCache caches day-queue results under queue:<doctorId>:<date> keys.
type QueueCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewQueueCache connects to Redis and verifies the connection with a ping.
func NewQueueCache(cfg Config, log zerolog.Logger) (*QueueCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return &QueueCache{client: client, log: log}, nil
}

func queueKey(doctorID uint, date models.Date) string {
	return fmt.Sprintf("queue:%d:%s", doctorID, date)
}

// GetQueue returns the cached queue for (doctorID, date), if present.
func (c *QueueCache) GetQueue(doctorID uint, date models.Date) ([]models.Appointment, bool) {
	data, err := c.client.Get(context.Background(), queueKey(doctorID, date)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("redis get failed")
		return nil, false
	}
	var appts []models.Appointment
	if err := json.Unmarshal(data, &appts); err != nil {
		c.log.Warn().Err(err).Msg("corrupt queue cache entry")
		return nil, false
	}
	return appts, true
}

// SetQueue stores the queue for (doctorID, date) with a short TTL.
func (c *QueueCache) SetQueue(doctorID uint, date models.Date, appts []models.Appointment) {
	data, err := json.Marshal(appts)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to marshal queue")
		return
	}
	if err := c.client.Set(context.Background(), queueKey(doctorID, date), data, queueTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis set failed")
	}
}

// Invalidate drops the cached queue for (doctorID, date).
func (c *QueueCache) Invalidate(doctorID uint, date models.Date) {
	if err := c.client.Del(context.Background(), queueKey(doctorID, date)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis del failed")
	}
}
