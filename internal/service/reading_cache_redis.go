package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"heart-monitor/internal/domain"
)

// ReadingCache guarda la ultima lectura por paciente para servir la vista
// "actual" sin tocar la base.
type ReadingCache interface {
	SetLatest(ctx context.Context, reading domain.Reading) error
	GetLatest(ctx context.Context, patientID string) (domain.Reading, bool, error)
}

type redisGetSetter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type redisReadingCache struct {
	client redisGetSetter
	ttl    time.Duration
	prefix string
}

func NewRedisReadingCache(client *redis.Client, ttl time.Duration) ReadingCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisReadingCache{
		client: client,
		ttl:    ttl,
		prefix: "reading:latest:",
	}
}

func (c *redisReadingCache) SetLatest(ctx context.Context, reading domain.Reading) error {
	if c == nil || c.client == nil {
		return nil
	}
	if strings.TrimSpace(reading.PatientID) == "" {
		return nil
	}
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+reading.PatientID, payload, c.ttl).Err()
}

func (c *redisReadingCache) GetLatest(ctx context.Context, patientID string) (domain.Reading, bool, error) {
	if c == nil || c.client == nil {
		return domain.Reading{}, false, nil
	}
	if strings.TrimSpace(patientID) == "" {
		return domain.Reading{}, false, nil
	}
	payload, err := c.client.Get(ctx, c.prefix+patientID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Reading{}, false, nil
		}
		return domain.Reading{}, false, err
	}
	var reading domain.Reading
	if err := json.Unmarshal(payload, &reading); err != nil {
		// Una entrada corrupta se trata como cache miss.
		return domain.Reading{}, false, nil
	}
	return reading, true, nil
}
