package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

// FieldKind campo agregado a los registros de la papelera combinada.
const FieldKind = "kind"

// Catalog servicios de entidad por tipo.
type Catalog struct {
	services map[entity.Kind]EntityService
}

// NewCatalog construye un servicio por cada tipo de registro más los directorios users y agents.
func NewCatalog(records repository.RecordRepository, identities repository.IdentityRepository, bcryptCost int, audit ports.AuditPublisher, log *logger.Logger) (*Catalog, error) {
	c := &Catalog{services: map[entity.Kind]EntityService{}}
	for _, kind := range entity.RecordKinds() {
		svc, err := NewRecordUseCase(kind, records, audit, log)
		if err != nil {
			return nil, err
		}
		c.services[kind] = svc
	}
	c.services[entity.KindUsers] = NewUserUseCase(identities, bcryptCost, audit, log)
	c.services[entity.KindAgents] = NewAgentUseCase(identities, bcryptCost, audit, log)
	return c, nil
}

// NewCatalogFrom arma un catálogo con servicios ya construidos (tests, fakes).
func NewCatalogFrom(services ...EntityService) *Catalog {
	c := &Catalog{services: map[entity.Kind]EntityService{}}
	for _, s := range services {
		c.services[s.Kind()] = s
	}
	return c
}

// Service servicio del tipo.
func (c *Catalog) Service(kind entity.Kind) (EntityService, bool) {
	s, ok := c.services[kind]
	return s, ok
}

// Trash servicio de papelera del tipo, si lo tiene.
func (c *Catalog) Trash(kind entity.Kind) (TrashService, bool) {
	s, ok := c.services[kind]
	if !ok {
		return nil, false
	}
	spec, _ := entity.SpecFor(kind)
	if !spec.Trashable {
		return nil, false
	}
	t, ok := s.(TrashService)
	return t, ok
}

// TrashAcross papelera combinada de los tipos dados: cada registro lleva su tipo en "kind",
// ordenados del borrado más reciente al más antiguo.
func (c *Catalog) TrashAcross(ctx context.Context, kinds []entity.Kind) ([]entity.Record, error) {
	var out []entity.Record
	for _, kind := range kinds {
		t, ok := c.Trash(kind)
		if !ok {
			continue
		}
		recs, err := t.ListTrash(ctx)
		if err != nil {
			return nil, fmt.Errorf("papelera %s: %w", kind, err)
		}
		for _, rec := range recs {
			rec = rec.Clone()
			rec[FieldKind] = string(kind)
			out = append(out, rec)
		}
	}
	// RFC3339 en UTC ordena igual como texto que como instante
	slices.SortStableFunc(out, func(a, b entity.Record) int {
		return strings.Compare(b.String(entity.FieldDeletedAt), a.String(entity.FieldDeletedAt))
	})
	return out, nil
}
