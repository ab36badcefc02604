package ports

import "context"

// LoginLimiter limita intentos de login por clave (email normalizado) dentro de una ventana.
type LoginLimiter interface {
	// Hit registra un intento y devuelve false si la clave superó el máximo de la ventana.
	Hit(ctx context.Context, key string) (bool, error)
	// Reset olvida los intentos de la clave (tras un login correcto).
	Reset(ctx context.Context, key string) error
}
