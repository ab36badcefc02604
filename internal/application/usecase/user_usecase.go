package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

// UserUseCase expone las identidades como registros (páginas users y agents).
// El hash de contraseña nunca sale y el rol no se modifica después del alta.
type UserUseCase struct {
	kind entity.Kind
	role entity.Role // "" = todos los roles
	repo repository.IdentityRepository
	cost int
	deps
	now func() time.Time
}

// NewUserUseCase directorio de todas las identidades (kind users).
func NewUserUseCase(repo repository.IdentityRepository, bcryptCost int, audit ports.AuditPublisher, log *logger.Logger) *UserUseCase {
	return newUserUseCase(entity.KindUsers, "", repo, bcryptCost, audit, log)
}

// NewAgentUseCase directorio restringido a identidades con rol agent (kind agents).
func NewAgentUseCase(repo repository.IdentityRepository, bcryptCost int, audit ports.AuditPublisher, log *logger.Logger) *UserUseCase {
	return newUserUseCase(entity.KindAgents, entity.RoleAgent, repo, bcryptCost, audit, log)
}

func newUserUseCase(kind entity.Kind, role entity.Role, repo repository.IdentityRepository, cost int, audit ports.AuditPublisher, log *logger.Logger) *UserUseCase {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserUseCase{kind: kind, role: role, repo: repo, cost: cost, deps: newDeps(audit, log), now: time.Now}
}

var _ EntityService = (*UserUseCase)(nil)

func (uc *UserUseCase) Kind() entity.Kind { return uc.kind }

func (uc *UserUseCase) List(ctx context.Context) ([]entity.Record, error) {
	ids, err := uc.repo.List(ctx, uc.role)
	if err != nil {
		return nil, dataErr(uc.kind, "list", err)
	}
	out := make([]entity.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, identityToRecord(id))
	}
	return out, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (entity.Record, error) {
	ident, err := uc.get(ctx, id)
	if err != nil || ident == nil {
		return nil, err
	}
	return identityToRecord(ident), nil
}

// get aplica el filtro de rol del directorio.
func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.Identity, error) {
	ident, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, dataErr(uc.kind, "get", err)
	}
	if ident == nil || (uc.role != "" && ident.Role != uc.role) {
		return nil, nil
	}
	return ident, nil
}

// Create requiere email y password; el rol lo fija el directorio o viene en el registro.
// Sin estado explícito la identidad queda pending.
func (uc *UserUseCase) Create(ctx context.Context, rec entity.Record) (entity.Record, error) {
	email := rec.String("email")
	password := rec.String("password")
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	role := uc.role
	if role == "" {
		role = entity.Role(rec.String("role"))
	} else if r := rec.String("role"); r != "" && entity.Role(r) != role {
		return nil, fmt.Errorf("%w: este directorio solo crea identidades %s", domain.ErrInvalidInput, role)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	status := entity.StatusPending
	if s := rec.String(entity.FieldStatus); s != "" {
		status = entity.Status(s)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, s)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("usecase: hash de contraseña: %w", err)
	}
	now := uc.now().UTC()
	ident := &entity.Identity{
		ID:           uuid.New().String(),
		Email:        entity.StrPtr(email),
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyProfile(ident, rec)
	if err := uc.repo.Create(ctx, ident); err != nil {
		return nil, dataErr(uc.kind, "create", err)
	}
	return identityToRecord(ident), nil
}

// Update modifica perfil, email, estado o contraseña. Cambiar el rol devuelve ErrRoleImmutable.
func (uc *UserUseCase) Update(ctx context.Context, id string, partial entity.Record) (entity.Record, error) {
	ident, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, domain.ErrNotFound
	}
	if r, ok := partial["role"]; ok && fmt.Sprint(r) != string(ident.Role) {
		return nil, domain.ErrRoleImmutable
	}
	if s := partial.String(entity.FieldStatus); s != "" {
		st := entity.Status(s)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, s)
		}
		ident.Status = st
	}
	if email := partial.String("email"); email != "" {
		ident.Email = entity.StrPtr(email)
	}
	if password := partial.String("password"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
		if err != nil {
			return nil, fmt.Errorf("usecase: hash de contraseña: %w", err)
		}
		ident.PasswordHash = string(hash)
	}
	applyProfile(ident, partial)
	ident.UpdatedAt = uc.now().UTC()

	if err := uc.repo.Update(ctx, ident); err != nil {
		return nil, dataErr(uc.kind, "update", err)
	}
	return identityToRecord(ident), nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id string) (bool, error) {
	ident, err := uc.get(ctx, id)
	if err != nil || ident == nil {
		return false, err
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return false, dataErr(uc.kind, "delete", err)
	}
	if ok {
		uc.publish(ctx, ports.AuditEvent{Type: ports.EventRecordDeleted, Kind: string(uc.kind), RecordID: id})
	}
	return ok, nil
}

// UpdateStatus activación/desactivación administrativa de una cuenta.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, id, status string) (entity.Record, error) {
	if !entity.Status(status).IsValid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	rec, err := uc.Update(ctx, id, entity.Record{entity.FieldStatus: status})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.AuditEvent{Type: ports.EventStatusChanged, Kind: string(uc.kind), RecordID: id, Detail: status})
	return rec, nil
}

func applyProfile(ident *entity.Identity, rec entity.Record) {
	if v, ok := rec["name"]; ok {
		ident.Name = optional(v)
	}
	if v, ok := rec["phone"]; ok {
		ident.Phone = optional(v)
	}
	if v, ok := rec["address"]; ok {
		ident.Address = optional(v)
	}
}

func optional(v any) *string {
	if v == nil {
		return nil
	}
	s := fmt.Sprint(v)
	if s == "" {
		return nil
	}
	return &s
}

func identityToRecord(i *entity.Identity) entity.Record {
	rec := entity.Record{
		entity.FieldID:        i.ID,
		"name":                nil,
		"email":               nil,
		"role":                string(i.Role),
		entity.FieldStatus:    string(i.Status),
		"phone":               nil,
		"address":             nil,
		entity.FieldCreatedAt: i.CreatedAt.UTC().Format(time.RFC3339),
		entity.FieldUpdatedAt: i.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if i.Name != nil {
		rec["name"] = *i.Name
	}
	if i.Email != nil {
		rec["email"] = *i.Email
	}
	if i.Phone != nil {
		rec["phone"] = *i.Phone
	}
	if i.Address != nil {
		rec["address"] = *i.Address
	}
	return rec
}
