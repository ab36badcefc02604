package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cddiller/dashboard-api/internal/application/ports"
)

// LoginLimiter ventana deslizante de intentos por clave.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewLoginLimiter construye el limitador. maxAttempts <= 0 desactiva el límite.
func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts:    map[string][]time.Time{},
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

func (l *LoginLimiter) Hit(_ context.Context, key string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var recent []time.Time
	for _, t := range l.attempts[key] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}
	if len(recent) >= l.maxAttempts {
		l.attempts[key] = recent
		return false, nil
	}
	l.attempts[key] = append(recent, now)
	return true, nil
}

func (l *LoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
	return nil
}

// Cleanup elimina las claves sin intentos dentro de la ventana.
func (l *LoginLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, attempts := range l.attempts {
		alive := false
		for _, t := range attempts {
			if now.Sub(t) < l.window {
				alive = true
				break
			}
		}
		if !alive {
			delete(l.attempts, key)
		}
	}
}
