package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cddiller/dashboard-api/internal/domain/entity"
)

// Summary agregado de un tipo de entidad para dashboard y reportes.
type Summary struct {
	Kind     entity.Kind
	Count    int
	Total    decimal.Decimal // suma del campo monetario (UZS); cero si el tipo no tiene
	ByStatus map[string]int
}

// RecordRepository puerto de persistencia de registros genéricos por tipo.
// List y GetByID excluyen los registros en papelera.
type RecordRepository interface {
	List(ctx context.Context, kind entity.Kind) ([]entity.Record, error)
	GetByID(ctx context.Context, kind entity.Kind, id string) (entity.Record, error)
	Create(ctx context.Context, kind entity.Kind, rec entity.Record) error
	// Update reemplaza el registro completo. Devuelve domain.ErrNotFound si no existe.
	Update(ctx context.Context, kind entity.Kind, rec entity.Record) error
	// Delete borra definitivamente (incluye registros en papelera).
	Delete(ctx context.Context, kind entity.Kind, id string) (bool, error)
	// SoftDelete mueve el registro a la papelera.
	SoftDelete(ctx context.Context, kind entity.Kind, id, deletedBy string, at time.Time) (bool, error)
	// ListDeleted devuelve los registros en papelera con deleted_at/deleted_by en el mapa.
	ListDeleted(ctx context.Context, kind entity.Kind) ([]entity.Record, error)
	Restore(ctx context.Context, kind entity.Kind, id string) (bool, error)
	Summarize(ctx context.Context, kind entity.Kind, amountField string) (*Summary, error)
}
