package service

import (
	"sync"
	"time"
)

// AlertRateLimiter limita cuantas alertas por paciente salen en una ventana,
// para que una racha de lecturas de riesgo alto no inunde al cuidador.
type AlertRateLimiter interface {
	Allow(key string) bool
}

type alertRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewAlertRateLimiter crea un rate limiter en memoria.
func NewAlertRateLimiter(window time.Duration, max int) AlertRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &alertRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *alertRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	kept = append(kept, now)
	l.hits[key] = kept
	return true
}
