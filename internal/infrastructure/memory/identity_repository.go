// Package memory implementa los puertos de persistencia en memoria (desarrollo, demo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

// IdentityRepo implementa repository.IdentityRepository. Conserva el orden de alta.
type IdentityRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*entity.Identity
}

// NewIdentityRepo construye el repositorio vacío.
func NewIdentityRepo() *IdentityRepo {
	return &IdentityRepo{byID: map[string]*entity.Identity{}}
}

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

func clone(i *entity.Identity) *entity.Identity {
	cp := *i
	return &cp
}

func (r *IdentityRepo) Create(_ context.Context, identity *entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[identity.ID]; ok {
		return domain.ErrInvalidInput
	}
	if email := identity.EmailValue(); email != "" {
		for _, existing := range r.byID {
			if existing.EmailValue() == email {
				return domain.ErrEmailTaken
			}
		}
	}
	r.byID[identity.ID] = clone(identity)
	r.order = append(r.order, identity.ID)
	return nil
}

func (r *IdentityRepo) GetByID(_ context.Context, id string) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.byID[id]; ok {
		return clone(i), nil
	}
	return nil, nil
}

func (r *IdentityRepo) GetByEmail(_ context.Context, email string) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if i := r.byID[id]; i.EmailValue() == email {
			return clone(i), nil
		}
	}
	return nil, nil
}

func (r *IdentityRepo) List(_ context.Context, role entity.Role) ([]*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Identity, 0, len(r.order))
	for _, id := range r.order {
		i := r.byID[id]
		if role != "" && i.Role != role {
			continue
		}
		out = append(out, clone(i))
	}
	return out, nil
}

func (r *IdentityRepo) Update(_ context.Context, identity *entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[identity.ID]; !ok {
		return domain.ErrNotFound
	}
	if email := identity.EmailValue(); email != "" {
		for id, existing := range r.byID {
			if id != identity.ID && existing.EmailValue() == email {
				return domain.ErrEmailTaken
			}
		}
	}
	r.byID[identity.ID] = clone(identity)
	return nil
}

func (r *IdentityRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}
