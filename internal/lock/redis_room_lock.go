package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hotelhub/reservation/internal/domain"
)

const roomLockKeyPrefix = "roomlock:"

// releaseScript deletes the lock key only if it still holds our token, so an
// expired lock reacquired by another instance is never released by us.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisRoomLock is a RoomLocker backed by Redis SET NX, for deployments
// where the engine is horizontally partitioned and an in-process mutex
// cannot cover all writers of a room. The TTL bounds how long a crashed
// holder can block a room.
type RedisRoomLock struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
}

// RedisRoomLockConfig contains configuration for RedisRoomLock
type RedisRoomLockConfig struct {
	TTL           time.Duration
	RetryInterval time.Duration
}

// NewRedisRoomLock creates a new RedisRoomLock
func NewRedisRoomLock(client *redis.Client, cfg *RedisRoomLockConfig) *RedisRoomLock {
	ttl := 10 * time.Second
	retryInterval := 20 * time.Millisecond
	if cfg != nil {
		if cfg.TTL > 0 {
			ttl = cfg.TTL
		}
		if cfg.RetryInterval > 0 {
			retryInterval = cfg.RetryInterval
		}
	}
	return &RedisRoomLock{
		client:        client,
		ttl:           ttl,
		retryInterval: retryInterval,
	}
}

// Lock acquires the distributed lock for roomID, polling until it is free or
// ctx is done.
func (l *RedisRoomLock) Lock(ctx context.Context, roomID string) (func(), error) {
	key := roomLockKeyPrefix + roomID
	token := uuid.New().String()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, domain.NewStorageError("acquire room lock", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		l.client.Eval(ctx, releaseScript, []string{key}, token)
	}
	return release, nil
}
