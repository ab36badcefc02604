package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
)

func TestRegistry_Validate(t *testing.T) {
	require.NoError(t, navigation.NewRegistry().Validate())
}

func TestRegistry_CadaRolTieneRaizUnica(t *testing.T) {
	reg := navigation.NewRegistry()
	for _, role := range entity.Roles {
		entries, err := reg.EntriesFor(role)
		require.NoError(t, err)
		require.NotEmpty(t, entries, "rol %s", role)

		rootPath, err := reg.RootPathFor(role)
		require.NoError(t, err)
		assert.Equal(t, "/"+string(role), rootPath)

		defaults := 0
		for _, e := range entries {
			if e.IsDefault {
				defaults++
				assert.Equal(t, rootPath, e.Path)
			}
		}
		assert.Equal(t, 1, defaults, "rol %s", role)
	}
}

func TestRegistry_OrdenDelMenuDealer(t *testing.T) {
	entries, err := navigation.NewRegistry().EntriesFor(entity.RoleDealer)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{
		"/dealer", "/dealer/products", "/dealer/stores", "/dealer/agents", "/dealer/orders",
		"/dealer/returns", "/dealer/invoices", "/dealer/reports", "/dealer/settings",
	}, paths)
}

func TestRegistry_RolDesconocido(t *testing.T) {
	reg := navigation.NewRegistry()

	_, err := reg.EntriesFor(entity.Role("guest"))
	assert.ErrorIs(t, err, domain.ErrUnknownRole)

	_, err = reg.RootPathFor(entity.Role("guest"))
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestRegistry_EntriesForDevuelveCopia(t *testing.T) {
	reg := navigation.NewRegistry()
	entries, err := reg.EntriesFor(entity.RoleAgent)
	require.NoError(t, err)
	entries[0].Path = "/hacked"

	again, err := reg.EntriesFor(entity.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, "/agent", again[0].Path)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := navigation.NewRegistry()

	e, ok := reg.Lookup(entity.RoleAdmin, "/admin/products/")
	require.True(t, ok)
	assert.Equal(t, entity.KindProducts, e.Kind)

	e, ok = reg.Lookup(entity.RoleAdmin, "/admin?tab=1")
	require.True(t, ok)
	assert.True(t, e.IsDefault)

	_, ok = reg.Lookup(entity.RoleStore, "/admin/products")
	assert.False(t, ok)
}

func TestRegistry_RolesForKind(t *testing.T) {
	reg := navigation.NewRegistry()

	assert.ElementsMatch(t,
		[]entity.Role{entity.RoleAdmin, entity.RoleWarehouse, entity.RoleDealer, entity.RoleAgent, entity.RoleStore},
		reg.RolesForKind(entity.KindOrders))
	assert.Equal(t, []entity.Role{entity.RoleSuperadmin}, reg.RolesForKind(entity.KindPayments))
}

func TestRegistry_KindsFor(t *testing.T) {
	kinds := navigation.NewRegistry().KindsFor(entity.RoleWarehouse)
	assert.Equal(t, []entity.Kind{entity.KindProducts, entity.KindOrders, entity.KindReturns}, kinds)
}
