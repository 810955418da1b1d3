package ownerlock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "focusflow:lock:"

	minRetryDelay = 5 * time.Millisecond
	maxRetryDelay = 100 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// refreshScript extends the lease only while the lock still holds our token
var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Redis is a Locker shared by every process talking to the same Redis.
// Each lock is a key holding a random token with a TTL lease, so a crashed
// holder cannot block the owner forever. A live holder keeps extending its
// lease until it unlocks.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Locker = (*Redis)(nil)

// NewRedis creates a Redis-backed Locker whose leases expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) key(ownerID string) string {
	return keyPrefix + ownerID
}

func (r *Redis) Lock(ctx context.Context, ownerID string) (Unlock, error) {
	key := r.key(ownerID)
	token := uuid.NewString()
	delay := minRetryDelay

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire owner lock: %w", err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, maxRetryDelay)
	}

	// release and refresh even when the request context is already cancelled
	bg := context.WithoutCancel(ctx)
	stop, done := make(chan struct{}), make(chan struct{})
	go r.keepAlive(bg, key, token, stop, done)
	stopRefresh := sync.OnceFunc(func() {
		close(stop)
		<-done
	})

	return func() error {
		stopRefresh()
		released, err := releaseScript.Run(bg, r.client, []string{key}, token).Int()
		if err != nil {
			return fmt.Errorf("release owner lock: %w", err)
		}
		if released == 0 {
			return ErrLockLost
		}
		return nil
	}, nil
}

// keepAlive pushes the lease expiry forward every third of the TTL until stop
// is closed or the lease turns out to belong to someone else.
func (r *Redis) keepAlive(ctx context.Context, key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(max(r.ttl/3, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		extended, err := refreshScript.Run(ctx, r.client, []string{key}, token, r.ttl.Milliseconds()).Int()
		if err != nil {
			slog.Warn("failed to extend owner lock lease", "key", key, "error", err)
			continue
		}
		if extended == 0 {
			slog.Warn("owner lock lease lost while held", "key", key)
			return
		}
	}
}
