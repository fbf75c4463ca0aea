package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisAlertRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisAlertRateLimiter
		if !l.Allow("patient-1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		l := &redisAlertRateLimiter{
			client: &mockRedisEvaler{result: 1},
			window: time.Minute,
			max:    1,
			prefix: "alert:rl:",
		}
		if l.Allow("   ") {
			t.Fatalf("expected empty key to be rejected")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 1}
		l := &redisAlertRateLimiter{
			client: mock,
			window: 30 * time.Minute,
			max:    1,
			prefix: "alert:rl:",
		}
		if !l.Allow("Patient-1") {
			t.Fatalf("expected first alert to pass")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "alert:rl:patient-1" {
			t.Fatalf("unexpected redis key %v", mock.lastKeys)
		}
	})

	t.Run("deny when over max", func(t *testing.T) {
		l := &redisAlertRateLimiter{
			client: &mockRedisEvaler{result: 2},
			window: 30 * time.Minute,
			max:    1,
			prefix: "alert:rl:",
		}
		if l.Allow("patient-1") {
			t.Fatalf("expected second alert in window to be blocked")
		}
	})

	t.Run("redis error fails open", func(t *testing.T) {
		l := &redisAlertRateLimiter{
			client: &mockRedisEvaler{err: errors.New("redis down")},
			window: 30 * time.Minute,
			max:    1,
			prefix: "alert:rl:",
		}
		if !l.Allow("patient-1") {
			t.Fatalf("expected fail-open on redis error")
		}
	})
}

func TestAlertRateLimiterWindow(t *testing.T) {
	l := NewAlertRateLimiter(time.Hour, 2)
	if !l.Allow("p") || !l.Allow("p") {
		t.Fatalf("expected two alerts within the limit")
	}
	if l.Allow("p") {
		t.Fatalf("expected third alert to be blocked")
	}
	if !l.Allow("other") {
		t.Fatalf("keys must be limited independently")
	}
}
