package repository

import (
	"context"

	"github.com/cddiller/dashboard-api/internal/domain/entity"
)

// IdentityRepository define el puerto de persistencia para Identity (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no existe el registro.
type IdentityRepository interface {
	// Create persiste una identidad nueva. Devuelve domain.ErrEmailTaken si el email ya existe.
	Create(ctx context.Context, identity *entity.Identity) error
	GetByID(ctx context.Context, id string) (*entity.Identity, error)
	// GetByEmail compara el email de forma exacta (sensible a mayúsculas).
	GetByEmail(ctx context.Context, email string) (*entity.Identity, error)
	// List devuelve las identidades; role vacío = todos los roles.
	List(ctx context.Context, role entity.Role) ([]*entity.Identity, error)
	Update(ctx context.Context, identity *entity.Identity) error
	Delete(ctx context.Context, id string) (bool, error)
}
