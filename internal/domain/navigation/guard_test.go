package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
)

func identityWithRole(role entity.Role) *entity.Identity {
	return &entity.Identity{ID: string(role) + "1", Role: role, Status: entity.StatusActive}
}

// Para todo R1 ≠ R2 y todo path de R2, una identidad R1 se redirige a su raíz.
func TestGuard_AislamientoDeRoles(t *testing.T) {
	reg := navigation.NewRegistry()
	guard := navigation.NewGuard(reg)

	for _, owner := range entity.Roles {
		entries, err := reg.EntriesFor(owner)
		require.NoError(t, err)
		for _, visitor := range entity.Roles {
			if visitor == owner {
				continue
			}
			visitorRoot, err := reg.RootPathFor(visitor)
			require.NoError(t, err)
			for _, e := range entries {
				d := guard.Authorize(e.Path, owner, identityWithRole(visitor))
				assert.Equal(t, navigation.RedirectToOwnRoot, d.Outcome, "%s en %s", visitor, e.Path)
				assert.Equal(t, visitorRoot, d.Location)
			}
		}
	}
}

func TestGuard_SinSesionRedirigeALogin(t *testing.T) {
	reg := navigation.NewRegistry()
	guard := navigation.NewGuard(reg)

	for _, role := range entity.Roles {
		entries, err := reg.EntriesFor(role)
		require.NoError(t, err)
		for _, e := range entries {
			d := guard.Authorize(e.Path, role, nil)
			assert.Equal(t, navigation.RedirectToLogin, d.Outcome)
			assert.Equal(t, e.Path, d.ReturnTo)
		}
	}
}

func TestGuard_LoginRecuerdaDestino(t *testing.T) {
	guard := navigation.NewGuard(navigation.NewRegistry())
	d := guard.Authorize("/dealer/orders", entity.RoleDealer, nil)
	assert.Equal(t, "/login?next=%2Fdealer%2Forders", d.Location)
}

func TestGuard_RolCorrectoRenderiza(t *testing.T) {
	reg := navigation.NewRegistry()
	guard := navigation.NewGuard(reg)
	dealer := identityWithRole(entity.RoleDealer)

	entries, err := reg.EntriesFor(entity.RoleDealer)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, navigation.Render, guard.Authorize(e.Path, entity.RoleDealer, dealer).Outcome, e.Path)
	}
}

func TestGuard_IdentidadInactivaSeTrataComoAusente(t *testing.T) {
	guard := navigation.NewGuard(navigation.NewRegistry())
	id := identityWithRole(entity.RoleAdmin)
	id.Status = entity.StatusInactive

	d := guard.Authorize("/admin", entity.RoleAdmin, id)
	assert.Equal(t, navigation.RedirectToLogin, d.Outcome)
}

func TestGuard_RolFueraDeEnumeracion(t *testing.T) {
	guard := navigation.NewGuard(navigation.NewRegistry())
	d := guard.Authorize("/admin", entity.RoleAdmin, identityWithRole(entity.Role("guest")))
	assert.Equal(t, navigation.RedirectToLogin, d.Outcome)
}
