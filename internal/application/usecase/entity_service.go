package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

// EntityService frontera CRUD de un tipo de entidad. Los fallos del backend llegan
// envueltos en domain.ErrDataService; GetByID devuelve (nil, nil) si no existe.
type EntityService interface {
	Kind() entity.Kind
	List(ctx context.Context) ([]entity.Record, error)
	GetByID(ctx context.Context, id string) (entity.Record, error)
	Create(ctx context.Context, rec entity.Record) (entity.Record, error)
	// Update aplica los campos de partial sobre el registro existente.
	Update(ctx context.Context, id string, partial entity.Record) (entity.Record, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) (entity.Record, error)
}

// TrashService lo implementan los servicios cuyo Delete mueve a la papelera.
type TrashService interface {
	ListTrash(ctx context.Context) ([]entity.Record, error)
	Restore(ctx context.Context, id string) (bool, error)
}

// dataErr envuelve un fallo del repositorio. Los errores de dominio pasan sin cambios.
func dataErr(kind entity.Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	for _, passthrough := range []error{
		domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrEmailTaken, domain.ErrRoleImmutable,
	} {
		if errors.Is(err, passthrough) {
			return err
		}
	}
	return fmt.Errorf("%w: %s %s: %w", domain.ErrDataService, kind, op, err)
}

// deps dependencias comunes a los servicios de entidades.
type deps struct {
	audit ports.AuditPublisher
	log   *logger.Logger
}

func newDeps(audit ports.AuditPublisher, log *logger.Logger) deps {
	if audit == nil {
		audit = ports.NopAudit{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return deps{audit: audit, log: log}
}

func (d deps) publish(ctx context.Context, ev ports.AuditEvent) {
	if actor := entity.ActorFromContext(ctx); actor != nil {
		ev.ActorID = actor.ID
		ev.ActorRole = string(actor.Role)
	}
	if err := d.audit.Publish(ctx, ev); err != nil {
		d.log.Warn().Err(err).Str("event", ev.Type).Msg("no se pudo publicar evento de auditoría")
	}
}

// stripReserved quita de partial los campos que administra el servicio.
func stripReserved(partial entity.Record) entity.Record {
	out := partial.Clone()
	for _, k := range []string{entity.FieldID, entity.FieldCreatedAt, entity.FieldUpdatedAt, entity.FieldDeletedAt, entity.FieldDeletedBy} {
		delete(out, k)
	}
	return out
}
