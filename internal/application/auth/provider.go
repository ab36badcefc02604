package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

// IdentityProvider puerto hacia el almacén de credenciales.
type IdentityProvider interface {
	// FindByCredentials devuelve la identidad cuyo email coincide exactamente y cuya contraseña
	// es correcta, sin mirar el estado. (nil, nil) si no hay coincidencia.
	FindByCredentials(ctx context.Context, email, password string) (*entity.Identity, error)
	Create(ctx context.Context, email, password, name string, role entity.Role) (*entity.Identity, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id string) (*entity.Identity, error)
}

// RepositoryProvider implementa IdentityProvider sobre IdentityRepository con hashes bcrypt.
type RepositoryProvider struct {
	repo repository.IdentityRepository
	cost int
}

// NewRepositoryProvider construye el provider. cost <= 0 usa bcrypt.DefaultCost.
func NewRepositoryProvider(repo repository.IdentityRepository, cost int) *RepositoryProvider {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &RepositoryProvider{repo: repo, cost: cost}
}

var _ IdentityProvider = (*RepositoryProvider)(nil)

func (p *RepositoryProvider) FindByCredentials(ctx context.Context, email, password string) (*entity.Identity, error) {
	id, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth: comparar hash: %w", err)
	}
	return id, nil
}

// Create crea la identidad en estado pending.
func (p *RepositoryProvider) Create(ctx context.Context, email, password, name string, role entity.Role) (*entity.Identity, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash de contraseña: %w", err)
	}
	now := time.Now().UTC()
	id := &entity.Identity{
		ID:           uuid.New().String(),
		Email:        entity.StrPtr(email),
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if name != "" {
		id.Name = entity.StrPtr(name)
	}
	if err := p.repo.Create(ctx, id); err != nil {
		return nil, err
	}
	return id, nil
}

func (p *RepositoryProvider) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	id, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return id != nil, nil
}

func (p *RepositoryProvider) FindByID(ctx context.Context, id string) (*entity.Identity, error) {
	return p.repo.GetByID(ctx, id)
}
