package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

type storedRecord struct {
	rec       entity.Record
	deletedAt *time.Time
	deletedBy string
}

// RecordRepo implementa repository.RecordRepository con slices por tipo (orden de alta).
type RecordRepo struct {
	mu    sync.RWMutex
	kinds map[entity.Kind][]*storedRecord
}

// NewRecordRepo construye el repositorio vacío.
func NewRecordRepo() *RecordRepo {
	return &RecordRepo{kinds: map[entity.Kind][]*storedRecord{}}
}

var _ repository.RecordRepository = (*RecordRepo)(nil)

func (r *RecordRepo) find(kind entity.Kind, id string) (int, *storedRecord) {
	for i, s := range r.kinds[kind] {
		if s.rec.ID() == id {
			return i, s
		}
	}
	return -1, nil
}

func (r *RecordRepo) List(_ context.Context, kind entity.Kind) ([]entity.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Record, 0, len(r.kinds[kind]))
	for _, s := range r.kinds[kind] {
		if s.deletedAt == nil {
			out = append(out, s.rec.Clone())
		}
	}
	return out, nil
}

func (r *RecordRepo) GetByID(_ context.Context, kind entity.Kind, id string) (entity.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, s := r.find(kind, id)
	if s == nil || s.deletedAt != nil {
		return nil, nil
	}
	return s.rec.Clone(), nil
}

func (r *RecordRepo) Create(_ context.Context, kind entity.Kind, rec entity.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, s := r.find(kind, rec.ID()); s != nil {
		return domain.ErrInvalidInput
	}
	r.kinds[kind] = append(r.kinds[kind], &storedRecord{rec: rec.Clone()})
	return nil
}

func (r *RecordRepo) Update(_ context.Context, kind entity.Kind, rec entity.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, s := r.find(kind, rec.ID())
	if s == nil || s.deletedAt != nil {
		return domain.ErrNotFound
	}
	s.rec = rec.Clone()
	return nil
}

func (r *RecordRepo) Delete(_ context.Context, kind entity.Kind, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, s := r.find(kind, id)
	if s == nil {
		return false, nil
	}
	list := r.kinds[kind]
	r.kinds[kind] = append(list[:i], list[i+1:]...)
	return true, nil
}

func (r *RecordRepo) SoftDelete(_ context.Context, kind entity.Kind, id, deletedBy string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, s := r.find(kind, id)
	if s == nil || s.deletedAt != nil {
		return false, nil
	}
	t := at.UTC()
	s.deletedAt = &t
	s.deletedBy = deletedBy
	return true, nil
}

func (r *RecordRepo) ListDeleted(_ context.Context, kind entity.Kind) ([]entity.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Record
	for _, s := range r.kinds[kind] {
		if s.deletedAt == nil {
			continue
		}
		rec := s.rec.Clone()
		rec[entity.FieldDeletedAt] = s.deletedAt.Format(time.RFC3339)
		rec[entity.FieldDeletedBy] = s.deletedBy
		out = append(out, rec)
	}
	return out, nil
}

func (r *RecordRepo) Restore(_ context.Context, kind entity.Kind, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, s := r.find(kind, id)
	if s == nil || s.deletedAt == nil {
		return false, nil
	}
	s.deletedAt = nil
	s.deletedBy = ""
	return true, nil
}

func (r *RecordRepo) Summarize(_ context.Context, kind entity.Kind, amountField string) (*repository.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum := &repository.Summary{Kind: kind, ByStatus: map[string]int{}}
	for _, s := range r.kinds[kind] {
		if s.deletedAt != nil {
			continue
		}
		sum.Count++
		if st := s.rec.String(entity.FieldStatus); st != "" {
			sum.ByStatus[st]++
		}
		if amountField == "" {
			continue
		}
		if f, ok := s.rec.Float(amountField); ok {
			sum.Total = sum.Total.Add(decimal.NewFromFloat(f))
		}
	}
	return sum, nil
}
