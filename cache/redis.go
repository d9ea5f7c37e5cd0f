package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockPrefix = "cinema:lock:"

var releaseScript = redis.NewScript(`
	-- KEYS[1] = cinema:lock:{name}
	-- ARGV[1] = token of the holder
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// RedisLocker holds locks as redis keys so replicas share them.
type RedisLocker struct {
	Client *redis.Client
	log    *zap.Logger
}

// NewRedisClient connects and pings redis. It returns nil when the server is unreachable.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func NewRedisLocker(client *redis.Client, log *zap.Logger) *RedisLocker {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLocker{Client: client, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	key := lockPrefix + name
	token := uuid.NewString()
	ok, err := l.Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.Client, []string{key}, token).Err(); err != nil {
			l.log.Warn("lock release failed", zap.String("lock", name), zap.Error(err))
		}
	}, nil
}

// NewLocker prefers redis and falls back to an in-process lock.
func NewLocker(client *redis.Client, log *zap.Logger) Locker {
	if client == nil {
		return NewMutexLocker()
	}
	return NewRedisLocker(client, log)
}
