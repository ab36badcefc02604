package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	"github.com/cddiller/dashboard-api/internal/application/auth"
	"github.com/cddiller/dashboard-api/internal/application/page"
	"github.com/cddiller/dashboard-api/internal/application/usecase"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
	"github.com/cddiller/dashboard-api/internal/infrastructure/fixtures"
	"github.com/cddiller/dashboard-api/internal/infrastructure/memory"
	"github.com/cddiller/dashboard-api/internal/infrastructure/pdf"
	apphttp "github.com/cddiller/dashboard-api/internal/interfaces/http"
	"github.com/cddiller/dashboard-api/pkg/currency"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	app      *fiber.App
	sessions *memory.SessionStorages
	audit    *memory.AuditRecorder
}

// newHarness arma la aplicación completa sobre repositorios en memoria con los datos de demo.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	identities, records := memory.NewIdentityRepo(), memory.NewRecordRepo()
	_, err := fixtures.Load(ctx, identities, records, bcrypt.MinCost, time.Now())
	require.NoError(t, err)

	rec := &memory.AuditRecorder{}
	registry := navigation.NewRegistry()
	svc := auth.NewService(
		auth.NewRepositoryProvider(identities, bcrypt.MinCost),
		auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "cddiller-test"},
		auth.WithAudit(rec),
	)
	catalog, err := usecase.NewCatalog(records, identities, bcrypt.MinCost, rec, nil)
	require.NoError(t, err)
	loader := page.NewLoader(
		registry, catalog,
		usecase.NewReportUseCase(records, identities),
		currency.NewFormatter(language.English, nil),
		page.WithLocale(language.English),
		page.WithExporter(pdf.NewTableExporter("test")),
	)

	sessions := memory.NewSessionStorages()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Auth:     svc,
		Sessions: sessions,
		Registry: registry,
		Guard:    navigation.NewGuard(registry),
		Catalog:  catalog,
		Loader:   loader,
		AppName:  "cddiller-test",
	})
	return &harness{app: app, sessions: sessions, audit: rec}
}

// do lanza la petición como la instancia de cliente clientID ("" = cliente nuevo).
func (h *harness) do(t *testing.T, method, target, clientID string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clientID != "" {
		req.Header.Set(apphttp.ClientHeader, clientID)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// login inicia sesión en una instancia de cliente nueva y devuelve su id.
func (h *harness) login(t *testing.T, email, password string) string {
	t.Helper()
	client := uuid.NewString()
	resp := h.do(t, http.MethodPost, "/api/auth/login", client, map[string]string{"email": email, "password": password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return client
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// buildTestApp aplicación mínima con identidad fija en Locals y RequireRole.
func buildTestApp(current *entity.Identity, allowed ...entity.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		func(c *fiber.Ctx) error {
			if current != nil {
				c.Locals(apphttp.LocalIdentity, current)
			}
			return c.Next()
		},
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func doProtected(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil), -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(&entity.Identity{ID: "admin1", Role: entity.RoleAdmin}, entity.RoleAdmin)
	resp := doProtected(t, app)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp(&entity.Identity{ID: "w1", Role: entity.RoleWarehouse}, entity.RoleAdmin, entity.RoleWarehouse)
	resp := doProtected(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolDistintoRetorna403(t *testing.T) {
	app := buildTestApp(&entity.Identity{ID: "d1", Role: entity.RoleDealer}, entity.RoleAdmin)
	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_SinSesionRetorna401(t *testing.T) {
	app := buildTestApp(nil, entity.RoleAdmin)
	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestRequireRole_SinRolesBastaLaSesion(t *testing.T) {
	app := buildTestApp(&entity.Identity{ID: "s1", Role: entity.RoleStore})
	resp := doProtected(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_AsignaClienteNuevo(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/api/auth/me", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.ClientCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "se crea la cookie de cliente")
	_, err := uuid.Parse(cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, cookie.Value, resp.Header.Get(apphttp.ClientHeader))
}

func TestSessionMiddleware_IgnoraIDsQueNoSonUUID(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/api/auth/me", "../../etc/passwd", nil)
	defer resp.Body.Close()

	assigned := resp.Header.Get(apphttp.ClientHeader)
	_, err := uuid.Parse(assigned)
	assert.NoError(t, err)
}

func TestSessionMiddleware_EstadoCorruptoSeDescarta(t *testing.T) {
	h := newHarness(t)
	client := uuid.NewString()
	h.sessions.Put(client, []byte("{not json"))

	resp := h.do(t, http.MethodGet, "/api/auth/me", client, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, h.sessions.Raw(client), "el estado corrupto se borra")
}
