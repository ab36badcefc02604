package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

var _ repository.SessionStorageFactory = (*SessionStorages)(nil)

// SessionStorages una clave por id de cliente; ttl <= 0 guarda sin expiración.
type SessionStorages struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSessionStorages construye la fábrica.
func NewSessionStorages(client redis.Cmdable, ttl time.Duration) *SessionStorages {
	return &SessionStorages{client: client, ttl: ttl}
}

func (f *SessionStorages) For(clientID string) repository.SessionStorage {
	return &sessionStorage{client: f.client, key: sessionKey(clientID), ttl: f.ttl}
}

type sessionStorage struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func (s *sessionStorage) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *sessionStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

func (s *sessionStorage) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}
