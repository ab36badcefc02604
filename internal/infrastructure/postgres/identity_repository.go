package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo implementación del puerto IdentityRepository sobre PostgreSQL.
type IdentityRepo struct {
	q Querier
}

// NewIdentityRepository construye el adaptador de persistencia para identidades.
func NewIdentityRepository(q Querier) *IdentityRepo {
	return &IdentityRepo{q: q}
}

const identityColumns = `id, name, email, password_hash, role, status, phone, address, created_at, updated_at`

func (r *IdentityRepo) Create(ctx context.Context, i *entity.Identity) error {
	query := `
		INSERT INTO identities (` + identityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.Name, i.Email, i.PasswordHash, string(i.Role), string(i.Status), i.Phone, i.Address,
		i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return r.uniqueErr(ctx, i)
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// uniqueErr distingue email repetido de id repetido.
func (r *IdentityRepo) uniqueErr(ctx context.Context, i *entity.Identity) error {
	if i.Email != nil {
		if other, err := r.GetByEmail(ctx, *i.Email); err == nil && other != nil && other.ID != i.ID {
			return domain.ErrEmailTaken
		}
	}
	return fmt.Errorf("%w: id %q duplicado", domain.ErrInvalidInput, i.ID)
}

func (r *IdentityRepo) GetByID(ctx context.Context, id string) (*entity.Identity, error) {
	row := r.q.QueryRow(ctx, `SELECT `+identityColumns+` FROM identities WHERE id = $1`, id)
	i, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by id: %w", err)
	}
	return i, nil
}

func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	row := r.q.QueryRow(ctx, `SELECT `+identityColumns+` FROM identities WHERE email = $1`, email)
	i, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by email: %w", err)
	}
	return i, nil
}

func (r *IdentityRepo) List(ctx context.Context, role entity.Role) ([]*entity.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE ($1::text = '' OR role = $1::text) ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var out []*entity.Identity
	for rows.Next() {
		i, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// Update no toca el rol: es inmutable después del alta.
func (r *IdentityRepo) Update(ctx context.Context, i *entity.Identity) error {
	query := `
		UPDATE identities
		SET name = $2, email = $3, password_hash = $4, status = $5, phone = $6, address = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		i.ID, i.Name, i.Email, i.PasswordHash, string(i.Status), i.Phone, i.Address, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IdentityRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM identities WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete identity: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanIdentity(s pgxScanner) (*entity.Identity, error) {
	var (
		i            entity.Identity
		role, status string
	)
	if err := s.Scan(&i.ID, &i.Name, &i.Email, &i.PasswordHash, &role, &status, &i.Phone, &i.Address, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	i.Role = entity.Role(role)
	i.Status = entity.Status(status)
	return &i, nil
}
