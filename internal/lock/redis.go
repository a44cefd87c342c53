package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// RedisLocker is a lease lock shared by every instance of the service. A holder that outlives
// ttl loses the lease.
type RedisLocker struct {
	client    redis.UniversalClient
	ttl       time.Duration
	retry     time.Duration
	keyPrefix string
	log       *logrus.Logger
}

func NewRedisLocker(client redis.UniversalClient, ttl time.Duration, logger *logrus.Logger) *RedisLocker {
	return &RedisLocker{
		client:    client,
		ttl:       ttl,
		retry:     25 * time.Millisecond,
		keyPrefix: "tribalcraft:lock:",
		log:       logger,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.keyPrefix + key
	token := uuid.NewString()

	// bound the wait by the lease length unless the caller already set a tighter deadline
	waitCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	delay := l.retry
	for {
		acquired, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				return nil, lockError(key, waitCtx.Err())
			}
			l.log.Errorf("Lock: Failed to acquire %s: %v", redisKey, err)
			return nil, lockError(key, err)
		}
		if acquired {
			break
		}

		select {
		case <-time.After(delay):
		case <-waitCtx.Done():
			l.log.Warnf("Lock: Timed out waiting for %s", redisKey)
			return nil, lockError(key, waitCtx.Err())
		}
		if delay < 200*time.Millisecond {
			delay *= 2
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		result, err := l.client.Eval(releaseCtx, releaseScript, []string{redisKey}, token).Int64()
		if err != nil {
			l.log.Errorf("Lock: Failed to release %s: %v", redisKey, err)
			return
		}
		if result == 0 {
			l.log.Warnf("Lock: %s expired before release", redisKey)
		}
	}, nil
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
