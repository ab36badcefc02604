package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cddiller/dashboard-api/internal/application/ports"
)

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

// LoginLimiter ventana fija: el primer intento abre la ventana y fija la expiración.
type LoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter construye el limitador. maxAttempts <= 0 desactiva el límite.
func NewLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func (l *LoginLimiter) Hit(ctx context.Context, key string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}
	k := loginKey(key)
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr %s: %w", k, err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis expire %s: %w", k, err)
		}
	}
	return count <= int64(l.maxAttempts), nil
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, loginKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del login: %w", err)
	}
	return nil
}
