package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

// RecordUseCase servicio de entidad sobre registros genéricos (productos, pedidos, facturas...).
type RecordUseCase struct {
	spec entity.KindSpec
	repo repository.RecordRepository
	deps
	now func() time.Time
}

// NewRecordUseCase construye el servicio del tipo. audit y log pueden ser nil.
func NewRecordUseCase(kind entity.Kind, repo repository.RecordRepository, audit ports.AuditPublisher, log *logger.Logger) (*RecordUseCase, error) {
	spec, ok := entity.SpecFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, kind)
	}
	return &RecordUseCase{spec: spec, repo: repo, deps: newDeps(audit, log), now: time.Now}, nil
}

var (
	_ EntityService = (*RecordUseCase)(nil)
	_ TrashService  = (*RecordUseCase)(nil)
)

func (uc *RecordUseCase) Kind() entity.Kind { return uc.spec.Kind }

func (uc *RecordUseCase) List(ctx context.Context) ([]entity.Record, error) {
	recs, err := uc.repo.List(ctx, uc.spec.Kind)
	if err != nil {
		return nil, dataErr(uc.spec.Kind, "list", err)
	}
	return recs, nil
}

func (uc *RecordUseCase) GetByID(ctx context.Context, id string) (entity.Record, error) {
	rec, err := uc.repo.GetByID(ctx, uc.spec.Kind, id)
	if err != nil {
		return nil, dataErr(uc.spec.Kind, "get", err)
	}
	return rec, nil
}

// Create asigna id (si falta), timestamps y estado inicial del tipo.
func (uc *RecordUseCase) Create(ctx context.Context, rec entity.Record) (entity.Record, error) {
	out := stripReserved(rec)
	if id := rec.ID(); id != "" {
		out[entity.FieldID] = id
	} else {
		out[entity.FieldID] = uuid.New().String()
	}
	if err := uc.checkStatus(out); err != nil {
		return nil, err
	}
	if out.String(entity.FieldStatus) == "" && len(uc.spec.Statuses) > 0 {
		out[entity.FieldStatus] = uc.spec.Statuses[0]
	}
	now := uc.now().UTC().Format(time.RFC3339)
	out[entity.FieldCreatedAt] = now
	out[entity.FieldUpdatedAt] = now

	if err := uc.repo.Create(ctx, uc.spec.Kind, out); err != nil {
		return nil, dataErr(uc.spec.Kind, "create", err)
	}
	return out.Clone(), nil
}

// Update mezcla partial sobre el registro (los campos reservados se ignoran).
func (uc *RecordUseCase) Update(ctx context.Context, id string, partial entity.Record) (entity.Record, error) {
	existing, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	changes := stripReserved(partial)
	if err := uc.checkStatus(changes); err != nil {
		return nil, err
	}
	merged := existing.Merge(changes)
	merged[entity.FieldUpdatedAt] = uc.now().UTC().Format(time.RFC3339)

	if err := uc.repo.Update(ctx, uc.spec.Kind, merged); err != nil {
		return nil, dataErr(uc.spec.Kind, "update", err)
	}
	return merged, nil
}

// Delete mueve a la papelera (tipos con papelera) o borra definitivamente.
func (uc *RecordUseCase) Delete(ctx context.Context, id string) (bool, error) {
	if !uc.spec.Trashable {
		ok, err := uc.repo.Delete(ctx, uc.spec.Kind, id)
		if err != nil {
			return false, dataErr(uc.spec.Kind, "delete", err)
		}
		if ok {
			uc.publish(ctx, ports.AuditEvent{Type: ports.EventRecordDeleted, Kind: string(uc.spec.Kind), RecordID: id})
		}
		return ok, nil
	}

	deletedBy := ""
	if actor := entity.ActorFromContext(ctx); actor != nil {
		deletedBy = actor.DisplayName()
	}
	ok, err := uc.repo.SoftDelete(ctx, uc.spec.Kind, id, deletedBy, uc.now())
	if err != nil {
		return false, dataErr(uc.spec.Kind, "soft delete", err)
	}
	if ok {
		uc.publish(ctx, ports.AuditEvent{Type: ports.EventRecordTrashed, Kind: string(uc.spec.Kind), RecordID: id})
	}
	return ok, nil
}

func (uc *RecordUseCase) UpdateStatus(ctx context.Context, id, status string) (entity.Record, error) {
	if !uc.spec.AllowsStatus(status) {
		return nil, fmt.Errorf("%w: estado %q no válido para %s", domain.ErrInvalidInput, status, uc.spec.Kind)
	}
	rec, err := uc.Update(ctx, id, entity.Record{entity.FieldStatus: status})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.AuditEvent{Type: ports.EventStatusChanged, Kind: string(uc.spec.Kind), RecordID: id, Detail: status})
	return rec, nil
}

func (uc *RecordUseCase) ListTrash(ctx context.Context) ([]entity.Record, error) {
	recs, err := uc.repo.ListDeleted(ctx, uc.spec.Kind)
	if err != nil {
		return nil, dataErr(uc.spec.Kind, "list trash", err)
	}
	return recs, nil
}

func (uc *RecordUseCase) Restore(ctx context.Context, id string) (bool, error) {
	ok, err := uc.repo.Restore(ctx, uc.spec.Kind, id)
	if err != nil {
		return false, dataErr(uc.spec.Kind, "restore", err)
	}
	if ok {
		uc.publish(ctx, ports.AuditEvent{Type: ports.EventRecordRestored, Kind: string(uc.spec.Kind), RecordID: id})
	}
	return ok, nil
}

func (uc *RecordUseCase) checkStatus(rec entity.Record) error {
	v, ok := rec[entity.FieldStatus]
	if !ok || v == nil {
		return nil
	}
	status, isString := v.(string)
	if !isString || !uc.spec.AllowsStatus(status) {
		return fmt.Errorf("%w: estado %v no válido para %s", domain.ErrInvalidInput, v, uc.spec.Kind)
	}
	return nil
}
