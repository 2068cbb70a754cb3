package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request counter keyed by caller identity.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RetryAfter(ctx context.Context, key string) (time.Duration, error)
}

type Policy struct {
	Name        string
	Window      time.Duration
	MaxRequests int
}

type entry struct {
	count       int
	windowStart time.Time
	lastRequest time.Time
}

// Memory keeps counters in process memory. State is lost on restart.
type Memory struct {
	policy Policy
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func NewMemory(policy Policy) *Memory {
	return NewMemoryWithClock(policy, time.Now)
}

func NewMemoryWithClock(policy Policy, now func() time.Time) *Memory {
	return &Memory{
		policy:  policy,
		now:     now,
		entries: make(map[string]*entry),
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || now.Sub(e.windowStart) > m.policy.Window {
		m.entries[key] = &entry{count: 1, windowStart: now, lastRequest: now}
		return true, nil
	}
	if e.count >= m.policy.MaxRequests {
		return false, nil
	}
	e.count++
	e.lastRequest = now
	return true, nil
}

func (m *Memory) RetryAfter(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return 0, nil
	}
	remaining := m.policy.Window - m.now().Sub(e.windowStart)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Sweep drops entries whose window has elapsed.
func (m *Memory) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k, e := range m.entries {
		if now.Sub(e.windowStart) > m.policy.Window {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]*entry)
	m.mu.Unlock()
}

// Redis shares counters between instances. The key expires with the window.
type Redis struct {
	policy Policy
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable, policy Policy) *Redis {
	return &Redis{client: client, policy: policy}
}

func (r *Redis) key(key string) string {
	return fmt.Sprintf(KeyRateLimit, r.policy.Name, key)
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.key(key)
	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, k, r.policy.Window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(r.policy.MaxRequests), nil
}

func (r *Redis) RetryAfter(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.PTTL(ctx, r.key(key)).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// KeyRateLimit is ratelimit:{policy}:{caller}.
const KeyRateLimit = "ratelimit:%s:%s"
