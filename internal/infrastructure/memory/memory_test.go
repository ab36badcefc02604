package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
)

func TestLoginLimiter_Ventana(t *testing.T) {
	ctx := context.Background()
	l := NewLoginLimiter(2, time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ok, _ := l.Hit(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Hit(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Hit(ctx, "a")
	assert.False(t, ok)

	// otra clave no se ve afectada
	ok, _ = l.Hit(ctx, "b")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = l.Hit(ctx, "a")
	assert.True(t, ok)

	require.NoError(t, l.Reset(ctx, "a"))
	now = now.Add(2 * time.Minute)
	l.Cleanup()
	assert.Empty(t, l.attempts)
}

func TestLoginLimiter_Desactivado(t *testing.T) {
	l := NewLoginLimiter(0, time.Minute)
	for i := 0; i < 10; i++ {
		ok, err := l.Hit(context.Background(), "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestIdentityRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	r := NewIdentityRepo()
	require.NoError(t, r.Create(ctx, &entity.Identity{ID: "1", Email: entity.StrPtr("a@x.com"), Role: entity.RoleAdmin}))
	err := r.Create(ctx, &entity.Identity{ID: "2", Email: entity.StrPtr("a@x.com"), Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	got, err := r.GetByEmail(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := r.List(ctx, entity.RoleDealer)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordRepo_PapeleraYResumen(t *testing.T) {
	ctx := context.Background()
	r := NewRecordRepo()
	require.NoError(t, r.Create(ctx, entity.KindOrders, entity.Record{"id": "1", "total": 100.0, "status": "pending"}))
	require.NoError(t, r.Create(ctx, entity.KindOrders, entity.Record{"id": "2", "total": 50.5, "status": "delivered"}))

	ok, err := r.SoftDelete(ctx, entity.KindOrders, "1", "admin1", time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	list, err := r.List(ctx, entity.KindOrders)
	require.NoError(t, err)
	require.Len(t, list, 1)

	rec, err := r.GetByID(ctx, entity.KindOrders, "1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	trash, err := r.ListDeleted(ctx, entity.KindOrders)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "admin1", trash[0][entity.FieldDeletedBy])

	sum, err := r.Summarize(ctx, entity.KindOrders, "total")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, "50.5", sum.Total.String())

	ok, err = r.Restore(ctx, entity.KindOrders, "1")
	require.NoError(t, err)
	assert.True(t, ok)

	sum, err = r.Summarize(ctx, entity.KindOrders, "total")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, map[string]int{"pending": 1, "delivered": 1}, sum.ByStatus)
}

func TestRecordRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	r := NewRecordRepo()
	require.NoError(t, r.Create(ctx, entity.KindProducts, entity.Record{"id": "1", "name": "a"}))

	rec, err := r.GetByID(ctx, entity.KindProducts, "1")
	require.NoError(t, err)
	rec["name"] = "mutated"

	again, err := r.GetByID(ctx, entity.KindProducts, "1")
	require.NoError(t, err)
	assert.Equal(t, "a", again["name"])
}
