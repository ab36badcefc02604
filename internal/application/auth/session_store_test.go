package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cddiller/dashboard-api/internal/application/auth"
	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/infrastructure/fixtures"
	"github.com/cddiller/dashboard-api/internal/infrastructure/memory"
)

type env struct {
	svc      *auth.Service
	storages *memory.SessionStorages
	repo     *memory.IdentityRepo
	audit    *memory.AuditRecorder
}

func newEnv(t *testing.T, opts ...auth.Option) *env {
	t.Helper()
	repo := memory.NewIdentityRepo()
	_, err := fixtures.Load(context.Background(), repo, memory.NewRecordRepo(), bcrypt.MinCost, time.Now())
	require.NoError(t, err)

	audit := &memory.AuditRecorder{}
	provider := auth.NewRepositoryProvider(repo, bcrypt.MinCost)
	opts = append([]auth.Option{auth.WithAudit(audit)}, opts...)
	svc := auth.NewService(provider, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}, opts...)
	return &env{svc: svc, storages: memory.NewSessionStorages(), repo: repo, audit: audit}
}

func (e *env) store(clientID string) *auth.SessionStore {
	return e.svc.ForClient(clientID, e.storages.For(clientID))
}

func TestLogin_ExitoPersisteLaSesion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id, err := e.store("c1").Login(ctx, "dealer@cddiller.com", "dealer123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDealer, id.Role)
	assert.Empty(t, id.PasswordHash)

	// una "recarga" con un store nuevo recupera la sesión desde el almacenamiento
	restored, ok := e.store("c1").Restore(ctx)
	require.True(t, ok)
	assert.Equal(t, "dealer1", restored.ID)

	assert.Contains(t, e.audit.Types(), ports.EventLoginSucceeded)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := e.store("c1")

	_, err := s.Login(ctx, "dealer@cddiller.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@cddiller.com", "dealer123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.Nil(t, s.Current())
	assert.Nil(t, e.storages.Raw("c1"))
}

func TestLogin_FalloNoTocaLaSesionExistente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := e.store("c1")

	_, err := s.Login(ctx, "admin@cddiller.com", "admin123")
	require.NoError(t, err)
	before := e.storages.Raw("c1")

	_, err = s.Login(ctx, "admin@cddiller.com", "bad")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, before, e.storages.Raw("c1"))
	require.NotNil(t, s.Identity())
	assert.Equal(t, entity.RoleAdmin, s.Identity().Role)
}

// Una identidad inactiva con credenciales correctas no obtiene sesión.
func TestLogin_CuentaInactiva(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store("c1").Login(ctx, "former.agent@cddiller.com", "agent123")
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)

	_, ok := e.store("c1").Restore(ctx)
	assert.False(t, ok)
}

func TestLogin_CuentaPendiente(t *testing.T) {
	e := newEnv(t)
	_, err := e.store("c1").Login(context.Background(), "new.store@cddiller.com", "store123")
	assert.ErrorIs(t, err, domain.ErrAccountPending)
}

func TestLogin_ReemplazaLaSesionAnterior(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := e.store("c1")

	_, err := s.Login(ctx, "dealer@cddiller.com", "dealer123")
	require.NoError(t, err)
	firstToken := s.Current().AccessToken

	_, err = s.Login(ctx, "store@cddiller.com", "store123")
	require.NoError(t, err)
	assert.NotEqual(t, firstToken, s.Current().AccessToken)

	restored, ok := e.store("c1").Restore(ctx)
	require.True(t, ok)
	assert.Equal(t, entity.RoleStore, restored.Role)
}

func TestLogin_LimiteDeIntentos(t *testing.T) {
	e := newEnv(t, auth.WithLimiter(memory.NewLoginLimiter(3, time.Minute)))
	ctx := context.Background()
	s := e.store("c1")

	for i := 0; i < 3; i++ {
		_, err := s.Login(ctx, "dealer@cddiller.com", "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	_, err := s.Login(ctx, "Dealer@cddiller.com", "dealer123")
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
	assert.Contains(t, e.audit.Types(), ports.EventLoginBlocked)
}

func TestSignup(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := e.store("c1")

	id, err := s.Signup(ctx, "new.dealer@cddiller.com", "secret123", "New Dealer", entity.RoleDealer)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, id.Status)
	assert.Equal(t, "New Dealer", id.DisplayName())

	// signup no crea sesión
	assert.Nil(t, s.Current())
	_, ok := e.store("c1").Restore(ctx)
	assert.False(t, ok)

	// la cuenta nueva requiere activación antes del primer login
	_, err = s.Login(ctx, "new.dealer@cddiller.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrAccountPending)
}

func TestSignup_EmailTomado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store("c1").Signup(ctx, "dealer@cddiller.com", "x12345678", "Dup", entity.RoleDealer)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// la comparación es exacta
	_, err = e.store("c1").Signup(ctx, "DEALER@cddiller.com", "x12345678", "Dup", entity.RoleDealer)
	assert.NoError(t, err)
}

func TestSignup_RolInvalido(t *testing.T) {
	e := newEnv(t)
	_, err := e.store("c1").Signup(context.Background(), "x@cddiller.com", "x12345678", "X", entity.Role("guest"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogout_Idempotente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s := e.store("c1")

	require.NoError(t, s.Logout(ctx))

	_, err := s.Login(ctx, "agent@cddiller.com", "agent123")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	assert.Nil(t, s.Current())
	_, ok := e.store("c1").Restore(ctx)
	assert.False(t, ok)
}

func TestRestore_EstadoCorruptoSeDescarta(t *testing.T) {
	e := newEnv(t)
	e.storages.Put("c1", []byte("{not json"))

	id, ok := e.store("c1").Restore(context.Background())
	assert.False(t, ok)
	assert.Nil(t, id)
	assert.Nil(t, e.storages.Raw("c1"))
	assert.Contains(t, e.audit.Types(), ports.EventSessionDiscarded)
}

func TestRestore_SesionDeOtroClienteSeDescarta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store("c1").Login(ctx, "dealer@cddiller.com", "dealer123")
	require.NoError(t, err)
	e.storages.Put("c2", e.storages.Raw("c1"))

	_, ok := e.store("c2").Restore(ctx)
	assert.False(t, ok)
	assert.Nil(t, e.storages.Raw("c2"))

	_, ok = e.store("c1").Restore(ctx)
	assert.True(t, ok)
}

func TestRestore_IdentidadDesactivadaDespuesDelLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store("c1").Login(ctx, "dealer@cddiller.com", "dealer123")
	require.NoError(t, err)

	id, err := e.repo.GetByID(ctx, "dealer1")
	require.NoError(t, err)
	id.Status = entity.StatusInactive
	require.NoError(t, e.repo.Update(ctx, id))

	_, ok := e.store("c1").Restore(ctx)
	assert.False(t, ok)
	assert.Nil(t, e.storages.Raw("c1"))
}

func TestRestore_IdentidadVueltaAPendiente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store("c1").Login(ctx, "dealer@cddiller.com", "dealer123")
	require.NoError(t, err)

	id, err := e.repo.GetByID(ctx, "dealer1")
	require.NoError(t, err)
	id.Status = entity.StatusPending
	require.NoError(t, e.repo.Update(ctx, id))

	_, ok := e.store("c1").Restore(ctx)
	assert.False(t, ok)
	assert.Nil(t, e.storages.Raw("c1"))
}

func TestRestore_SinNadaGuardado(t *testing.T) {
	e := newEnv(t)
	_, ok := e.store("c1").Restore(context.Background())
	assert.False(t, ok)
	assert.Empty(t, e.audit.Events())
}
