package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo registros genéricos en la tabla records (JSONB por registro, papelera con deleted_at).
type RecordRepo struct {
	q Querier
}

// NewRecordRepository construye el adaptador.
func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

func (r *RecordRepo) List(ctx context.Context, kind entity.Kind) ([]entity.Record, error) {
	rows, err := r.q.Query(ctx,
		`SELECT data FROM records WHERE kind = $1 AND deleted_at IS NULL ORDER BY seq`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var out []entity.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordRepo) GetByID(ctx context.Context, kind entity.Kind, id string) (entity.Record, error) {
	var raw []byte
	err := r.q.QueryRow(ctx,
		`SELECT data FROM records WHERE kind = $1 AND id = $2 AND deleted_at IS NULL`, string(kind), id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s/%s: %w", kind, id, err)
	}
	return decodeRecord(raw)
}

func (r *RecordRepo) Create(ctx context.Context, kind entity.Kind, rec entity.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	_, err = r.q.Exec(ctx, `INSERT INTO records (kind, id, data) VALUES ($1, $2, $3)`, string(kind), rec.ID(), raw)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s %q ya existe", domain.ErrInvalidInput, kind, rec.ID())
		}
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

func (r *RecordRepo) Update(ctx context.Context, kind entity.Kind, rec entity.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE records SET data = $3 WHERE kind = $1 AND id = $2 AND deleted_at IS NULL`, string(kind), rec.ID(), raw)
	if err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecordRepo) Delete(ctx context.Context, kind entity.Kind, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RecordRepo) SoftDelete(ctx context.Context, kind entity.Kind, id, deletedBy string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE records SET deleted_at = $3, deleted_by = $4
		WHERE kind = $1 AND id = $2 AND deleted_at IS NULL`,
		string(kind), id, at.UTC(), deletedBy)
	if err != nil {
		return false, fmt.Errorf("soft delete %s: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RecordRepo) ListDeleted(ctx context.Context, kind entity.Kind) ([]entity.Record, error) {
	rows, err := r.q.Query(ctx, `
		SELECT data, deleted_at, COALESCE(deleted_by, '')
		FROM records WHERE kind = $1 AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list trash %s: %w", kind, err)
	}
	defer rows.Close()

	var out []entity.Record
	for rows.Next() {
		var (
			raw       []byte
			deletedAt time.Time
			deletedBy string
		)
		if err := rows.Scan(&raw, &deletedAt, &deletedBy); err != nil {
			return nil, fmt.Errorf("scan trash %s: %w", kind, err)
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		rec[entity.FieldDeletedAt] = deletedAt.UTC().Format(time.RFC3339)
		rec[entity.FieldDeletedBy] = deletedBy
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordRepo) Restore(ctx context.Context, kind entity.Kind, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE records SET deleted_at = NULL, deleted_by = NULL
		WHERE kind = $1 AND id = $2 AND deleted_at IS NOT NULL`, string(kind), id)
	if err != nil {
		return false, fmt.Errorf("restore %s: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Summarize cuenta y suma en la base; solo los valores numéricos del campo participan en la suma.
func (r *RecordRepo) Summarize(ctx context.Context, kind entity.Kind, amountField string) (*repository.Summary, error) {
	sum := &repository.Summary{Kind: kind, ByStatus: map[string]int{}}

	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
		       COALESCE(SUM(CASE WHEN jsonb_typeof(data -> $2::text) = 'number' THEN (data ->> $2::text)::numeric END), 0)
		FROM records WHERE kind = $1 AND deleted_at IS NULL`, string(kind), amountField).Scan(&sum.Count, &total)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", kind, err)
	}
	sum.Total = total

	rows, err := r.q.Query(ctx, `
		SELECT data ->> 'status', count(*)
		FROM records WHERE kind = $1 AND deleted_at IS NULL AND data ? 'status'
		GROUP BY 1`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("summarize status %s: %w", kind, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status *string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status %s: %w", kind, err)
		}
		if status != nil && *status != "" {
			sum.ByStatus[*status] = n
		}
	}
	return sum, rows.Err()
}

func decodeRecord(raw []byte) (entity.Record, error) {
	var rec entity.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
