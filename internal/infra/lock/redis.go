package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const retryInterval = 25 * time.Millisecond

// unlockScript удаляет ключ, только если он всё ещё принадлежит владельцу
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisLocker блокировка по ключу в Redis для нескольких реплик сервиса
type RedisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger Logger
}

// NewRedisLocker создает блокировку поверх Redis.
// ttl ограничивает время владения ключом, если процесс упал.
func NewRedisLocker(client *redis.Client, prefix string, ttl time.Duration, logger Logger) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Lock повторяет SET NX до успеха или отмены контекста
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// ответ потерян, но Redis мог успеть записать ключ с нашим токеном
				l.unlock(fullKey, token)
				return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, err)
			}
			return nil, fmt.Errorf("lock: redis SETNX %s: %w", fullKey, err)
		}
		if ok {
			return func() { l.unlock(fullKey, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlock(key, token string) {
	// контекст запроса мог быть уже отменён, ключ нужно снять в любом случае
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := unlockScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.logger.Warn("RedisLocker: failed to release %s: %v", key, err)
	}
}
