package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cddiller/dashboard-api/internal/application/usecase"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/internal/infrastructure/fixtures"
	"github.com/cddiller/dashboard-api/internal/infrastructure/memory"
)

var errBackend = errors.New("connection refused")

// brokenRecords simula un backend caído.
type brokenRecords struct {
	repository.RecordRepository
}

func (brokenRecords) List(context.Context, entity.Kind) ([]entity.Record, error) {
	return nil, errBackend
}

func (brokenRecords) GetByID(context.Context, entity.Kind, string) (entity.Record, error) {
	return nil, errBackend
}

func seeded(t *testing.T) (*memory.RecordRepo, *memory.IdentityRepo, *memory.AuditRecorder) {
	t.Helper()
	records, identities := memory.NewRecordRepo(), memory.NewIdentityRepo()
	_, err := fixtures.Load(context.Background(), identities, records, bcrypt.MinCost, time.Now())
	require.NoError(t, err)
	return records, identities, &memory.AuditRecorder{}
}

func asAdmin(ctx context.Context) context.Context {
	return entity.ContextWithActor(ctx, &entity.Identity{ID: "admin1", Name: entity.StrPtr("Admin"), Role: entity.RoleAdmin})
}

func TestRecordUseCase_Create(t *testing.T) {
	records, _, audit := seeded(t)
	uc, err := usecase.NewRecordUseCase(entity.KindOrders, records, audit, nil)
	require.NoError(t, err)

	rec, err := uc.Create(context.Background(), entity.Record{"customer_name": "Ali", "total": 1000.0, "created_at": "ignored"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID())
	assert.Equal(t, "pending", rec[entity.FieldStatus])
	assert.NotEqual(t, "ignored", rec[entity.FieldCreatedAt])

	got, err := uc.GetByID(context.Background(), rec.ID())
	require.NoError(t, err)
	assert.Equal(t, "Ali", got["customer_name"])

	_, err = uc.Create(context.Background(), entity.Record{"status": "teleported"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordUseCase_Update(t *testing.T) {
	records, _, audit := seeded(t)
	uc, err := usecase.NewRecordUseCase(entity.KindProducts, records, audit, nil)
	require.NoError(t, err)
	ctx := context.Background()

	rec, err := uc.Update(ctx, "1", entity.Record{"price": 1.0, "id": "999"})
	require.NoError(t, err)
	assert.Equal(t, "1", rec.ID())
	assert.Equal(t, 1.0, rec["price"])
	assert.Equal(t, "Smartphone X Pro", rec["name"])

	_, err = uc.Update(ctx, "nope", entity.Record{"price": 1.0})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateStatus(ctx, "1", "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rec, err = uc.UpdateStatus(ctx, "1", "inactive")
	require.NoError(t, err)
	assert.Equal(t, "inactive", rec[entity.FieldStatus])
}

func TestRecordUseCase_PapeleraYRestauracion(t *testing.T) {
	records, _, audit := seeded(t)
	uc, err := usecase.NewRecordUseCase(entity.KindStores, records, audit, nil)
	require.NoError(t, err)
	ctx := asAdmin(context.Background())

	ok, err := uc.Delete(ctx, "2")
	require.NoError(t, err)
	require.True(t, ok)

	// borrar dos veces no es un error, solo no encuentra nada
	ok, err = uc.Delete(ctx, "2")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 5)

	trash, err := uc.ListTrash(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "Admin", trash[0][entity.FieldDeletedBy])

	ok, err = uc.Restore(ctx, "2")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)

	events := audit.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "admin1", events[0].ActorID)
}

func TestRecordUseCase_FalloDelBackend(t *testing.T) {
	uc, err := usecase.NewRecordUseCase(entity.KindOrders, brokenRecords{}, nil, nil)
	require.NoError(t, err)

	_, err = uc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataService)
	assert.ErrorIs(t, err, errBackend)

	_, err = uc.Update(context.Background(), "1", entity.Record{"total": 1.0})
	assert.ErrorIs(t, err, domain.ErrDataService)
}

func TestUserUseCase_NoExponeHash(t *testing.T) {
	_, identities, audit := seeded(t)
	uc := usecase.NewUserUseCase(identities, bcrypt.MinCost, audit, nil)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for _, rec := range list {
		assert.NotContains(t, rec, "password")
		assert.NotContains(t, rec, "password_hash")
	}
}

func TestUserUseCase_RolInmutable(t *testing.T) {
	_, identities, audit := seeded(t)
	uc := usecase.NewUserUseCase(identities, bcrypt.MinCost, audit, nil)
	ctx := context.Background()

	_, err := uc.Update(ctx, "dealer1", entity.Record{"role": "admin"})
	assert.ErrorIs(t, err, domain.ErrRoleImmutable)

	// repetir el mismo rol no es un cambio
	rec, err := uc.Update(ctx, "dealer1", entity.Record{"role": "dealer", "name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", rec["name"])
	assert.Equal(t, "dealer", rec["role"])
}

func TestUserUseCase_Activacion(t *testing.T) {
	_, identities, audit := seeded(t)
	uc := usecase.NewUserUseCase(identities, bcrypt.MinCost, audit, nil)
	ctx := context.Background()

	rec, err := uc.UpdateStatus(ctx, "store2", "active")
	require.NoError(t, err)
	assert.Equal(t, "active", rec[entity.FieldStatus])

	_, err = uc.UpdateStatus(ctx, "store2", "banned")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAgentUseCase_SoloAgentes(t *testing.T) {
	_, identities, audit := seeded(t)
	uc := usecase.NewAgentUseCase(identities, bcrypt.MinCost, audit, nil)
	ctx := context.Background()

	list, err := uc.List(ctx)
	require.NoError(t, err)
	for _, rec := range list {
		assert.Equal(t, "agent", rec["role"])
	}

	rec, err := uc.GetByID(ctx, "dealer1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	created, err := uc.Create(ctx, entity.Record{"email": "agent3@cddiller.com", "password": "agent12345", "name": "Agent 3"})
	require.NoError(t, err)
	assert.Equal(t, "agent", created["role"])
	assert.Equal(t, "pending", created[entity.FieldStatus])

	_, err = uc.Create(ctx, entity.Record{"email": "agent@cddiller.com", "password": "agent12345"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = uc.Create(ctx, entity.Record{"email": "x@cddiller.com", "password": "agent12345", "role": "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalog_TrashAcross(t *testing.T) {
	records, identities, audit := seeded(t)
	cat, err := usecase.NewCatalog(records, identities, bcrypt.MinCost, audit, nil)
	require.NoError(t, err)
	ctx := asAdmin(context.Background())

	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	_, err = records.SoftDelete(ctx, entity.KindProducts, "1", "Admin", base)
	require.NoError(t, err)
	_, err = records.SoftDelete(ctx, entity.KindOrders, "2", "Admin", base.Add(time.Hour))
	require.NoError(t, err)

	trash, err := cat.TrashAcross(ctx, []entity.Kind{entity.KindProducts, entity.KindOrders})
	require.NoError(t, err)
	require.Len(t, trash, 2)
	assert.Equal(t, "orders", trash[0][usecase.FieldKind])
	assert.Equal(t, "products", trash[1][usecase.FieldKind])

	_, ok := cat.Trash(entity.KindUsers)
	assert.False(t, ok)
}

func TestReportUseCase_Summaries(t *testing.T) {
	records, identities, _ := seeded(t)
	uc := usecase.NewReportUseCase(records, identities)

	sums, err := uc.Summaries(context.Background(), []entity.Kind{entity.KindOrders, entity.KindAgents, entity.KindDealers})
	require.NoError(t, err)
	require.Len(t, sums, 3)

	assert.Equal(t, entity.KindOrders, sums[0].Kind)
	assert.Equal(t, 4, sums[0].Count)
	assert.Equal(t, "450000", sums[0].Total.String())

	assert.Equal(t, 2, sums[1].Count)
	assert.Equal(t, map[string]int{"active": 1, "inactive": 1}, sums[1].ByStatus)

	assert.True(t, sums[2].Total.IsZero())
}

func TestReportUseCase_FalloDelBackend(t *testing.T) {
	uc := usecase.NewReportUseCase(brokenSummaries{}, memory.NewIdentityRepo())
	_, err := uc.Summaries(context.Background(), []entity.Kind{entity.KindOrders})
	assert.ErrorIs(t, err, domain.ErrDataService)
}

type brokenSummaries struct {
	repository.RecordRepository
}

func (brokenSummaries) Summarize(context.Context, entity.Kind, string) (*repository.Summary, error) {
	return nil, errBackend
}
