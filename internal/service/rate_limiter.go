package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter limita la frecuencia de turnos del asistente por clave.
type RateLimiter interface {
	Allow(key string) bool
}

type rateWindow struct {
	start time.Time
	count int
}

type memoryRateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string]rateWindow
	now     func() time.Time
}

// NewMemoryRateLimiter crea un rate limiter de ventana fija en memoria.
func NewMemoryRateLimiter(win time.Duration, max int) RateLimiter {
	if max <= 0 {
		max = 1
	}
	if win <= 0 {
		win = time.Minute
	}
	return &memoryRateLimiter{
		window:  win,
		max:     max,
		entries: make(map[string]rateWindow),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (l *memoryRateLimiter) Allow(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = rateWindow{start: now}
	}
	w.count++
	l.entries[key] = w

	// barrido oportunista de ventanas vencidas
	if len(l.entries) > 1024 {
		for k, e := range l.entries {
			if now.Sub(e.start) >= l.window {
				delete(l.entries, k)
			}
		}
	}
	return w.count <= l.max
}

const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisRateLimiter(client *redis.Client, win time.Duration, max int) RateLimiter {
	if client == nil {
		return nil
	}
	if win <= 0 {
		win = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisRateLimiter{
		client: client,
		window: win,
		max:    max,
		prefix: "nagacare:assistant:rl:",
	}
}

// Allow falla abierto si Redis no responde.
func (l *redisRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisAllowScript, []string{l.prefix + normalizedKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
