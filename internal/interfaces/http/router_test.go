package http_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cddiller/dashboard-api/internal/application/dto"
	"github.com/cddiller/dashboard-api/internal/application/ports"
)

func TestFlujo_LoginGuardianLogout(t *testing.T) {
	h := newHarness(t)
	client := uuid.NewString()

	// sin sesión: al login recordando el destino
	resp := h.do(t, http.MethodGet, "/dealer", client, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fdealer", resp.Header.Get("Location"))

	resp = h.do(t, http.MethodPost, "/api/auth/login", client, map[string]string{
		"email": "dealer@cddiller.com", "password": "dealer123", "next": "/dealer/orders",
	})
	var session dto.SessionResponse
	decode(t, resp, &session)
	require.NotNil(t, session.User)
	assert.Equal(t, "dealer", session.User.Role)
	assert.Equal(t, "/dealer/orders", session.Redirect)

	resp = h.do(t, http.MethodGet, "/dealer", client, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.PageDTO
	decode(t, resp, &p)
	assert.Equal(t, "/dealer", p.Path)
	assert.NotEmpty(t, p.Summaries)

	// subárbol de otro rol: a la raíz propia
	resp = h.do(t, http.MethodGet, "/admin/products", client, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dealer", resp.Header.Get("Location"))

	// otra instancia de cliente no comparte la sesión
	resp = h.do(t, http.MethodGet, "/dealer", uuid.NewString(), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/auth/logout", client, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/dealer", client, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fdealer", resp.Header.Get("Location"))

	types := h.audit.Types()
	assert.Contains(t, types, ports.EventLoginSucceeded)
	assert.Contains(t, types, ports.EventLogout)
}

func TestLogin_Errores(t *testing.T) {
	h := newHarness(t)
	cases := []struct {
		name, email, password string
		status                int
		code                  string
	}{
		{"password incorrecta", "dealer@cddiller.com", "nope", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"cuenta inactiva", "former.agent@cddiller.com", "agent123", http.StatusForbidden, "ACCOUNT_INACTIVE"},
		{"cuenta pendiente", "new.store@cddiller.com", "store123", http.StatusForbidden, "ACCOUNT_PENDING"},
		{"email inválido", "no-es-email", "x", http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := h.do(t, http.MethodPost, "/api/auth/login", uuid.NewString(), map[string]string{"email": tc.email, "password": tc.password})
			var e dto.ErrorResponse
			status := resp.StatusCode
			decode(t, resp, &e)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestLogin_NextFueraDelMenuVaALaRaiz(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/auth/login", uuid.NewString(), map[string]string{
		"email": "store@cddiller.com", "password": "store123", "next": "/admin/products",
	})
	var session dto.SessionResponse
	decode(t, resp, &session)
	assert.Equal(t, "/store", session.Redirect)
}

func TestSignup(t *testing.T) {
	h := newHarness(t)
	client := uuid.NewString()

	resp := h.do(t, http.MethodPost, "/api/auth/signup", client, map[string]string{
		"email": "new.dealer@cddiller.com", "password": "secret1", "name": "New Dealer", "role": "dealer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var id dto.IdentityResponse
	decode(t, resp, &id)
	assert.Equal(t, "pending", id.Status)

	// el registro no abre sesión
	resp = h.do(t, http.MethodGet, "/api/auth/me", client, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/auth/signup", client, map[string]string{
		"email": "dealer@cddiller.com", "password": "secret1", "role": "dealer",
	})
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "EMAIL_EXISTS", e.Code)

	resp = h.do(t, http.MethodPost, "/api/auth/signup", client, map[string]string{
		"email": "x@cddiller.com", "password": "secret1", "role": "owner",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecords_PermisosPorMenu(t *testing.T) {
	h := newHarness(t)
	dealer := h.login(t, "dealer@cddiller.com", "dealer123")

	resp := h.do(t, http.MethodGet, "/api/records/orders", dealer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.RecordListResponse
	decode(t, resp, &list)
	assert.Equal(t, "orders", list.Kind)
	assert.Equal(t, 4, list.Total)

	resp = h.do(t, http.MethodGet, "/api/records/users", dealer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/records/spaceships", dealer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/navigation", uuid.NewString(), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRecords_PapeleraYRestaurar(t *testing.T) {
	h := newHarness(t)
	admin := h.login(t, "admin@cddiller.com", "admin123")

	resp := h.do(t, http.MethodDelete, "/api/records/products/1", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var del dto.DeleteResponse
	decode(t, resp, &del)
	assert.True(t, del.Trashed)

	resp = h.do(t, http.MethodGet, "/api/records/products/1", admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/records/products/trash", admin, nil)
	var trash dto.RecordListResponse
	decode(t, resp, &trash)
	require.Equal(t, 1, trash.Total)
	assert.Equal(t, "Admin", trash.Items[0]["deleted_by"])

	resp = h.do(t, http.MethodPost, "/api/records/products/1/restore", admin, nil)
	var restored dto.DeleteResponse
	decode(t, resp, &restored)
	assert.True(t, restored.Restored)

	assert.Contains(t, h.audit.Types(), ports.EventRecordTrashed)
	assert.Contains(t, h.audit.Types(), ports.EventRecordRestored)
}

func TestRecords_CrearActualizarEstado(t *testing.T) {
	h := newHarness(t)
	admin := h.login(t, "admin@cddiller.com", "admin123")

	resp := h.do(t, http.MethodPost, "/api/records/orders", admin, map[string]any{
		"customer_name": "Nodira", "store_name": "Central", "items_count": 2, "total": 30000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "pending", created["status"])

	resp = h.do(t, http.MethodPatch, "/api/records/orders/"+id+"/status", admin, map[string]string{"status": "delivered"})
	var updated map[string]any
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &updated)
	assert.Equal(t, "delivered", updated["status"])

	resp = h.do(t, http.MethodPatch, "/api/records/orders/"+id+"/status", admin, map[string]string{"status": "teleported"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodPut, "/api/records/orders/"+id, admin, map[string]any{"customer_name": "Nodira K."})
	decode(t, resp, &updated)
	assert.Equal(t, "Nodira K.", updated["customer_name"])
	assert.Equal(t, "delivered", updated["status"])
}

func TestPagina_ParametrosDeTabla(t *testing.T) {
	h := newHarness(t)
	dealer := h.login(t, "dealer@cddiller.com", "dealer123")

	resp := h.do(t, http.MethodGet, "/dealer/orders?sort=total&dir=desc&currency=USD", dealer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.PageDTO
	decode(t, resp, &p)
	require.NotNil(t, p.Table)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "$11.81", p.Table.Rows[0]["total"])

	// action=sort sobre la columna activa invierte el sentido
	resp = h.do(t, http.MethodGet, "/dealer/orders?sort=total&dir=desc&action=sort&field=total", dealer, nil)
	decode(t, resp, &p)
	assert.Equal(t, "asc", string(p.Table.State.SortDirection))
	assert.Equal(t, "85,000 so'm", p.Table.Rows[0]["total"])

	resp = h.do(t, http.MethodGet, "/dealer/orders?q=zzz&size=20", dealer, nil)
	decode(t, resp, &p)
	assert.Equal(t, "no_results", p.Table.Empty)
	assert.Equal(t, 20, p.Table.State.PageSize)

	resp = h.do(t, http.MethodGet, "/dealer/orders?currency=XYZ", dealer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/dealer/payments", dealer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPagina_ExportarPDF(t *testing.T) {
	h := newHarness(t)
	dealer := h.login(t, "dealer@cddiller.com", "dealer123")

	resp := h.do(t, http.MethodGet, "/dealer/orders/export.pdf?q=john", dealer, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "dealer-orders.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRaizYLogin(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/", uuid.NewString(), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = h.do(t, http.MethodGet, "/login?next=//evil.example", uuid.NewString(), nil)
	var body map[string]string
	decode(t, resp, &body)
	assert.Empty(t, body["next"])

	agent := h.login(t, "agent@cddiller.com", "agent123")
	resp = h.do(t, http.MethodGet, "/", agent, nil)
	resp.Body.Close()
	assert.Equal(t, "/agent", resp.Header.Get("Location"))

	resp = h.do(t, http.MethodGet, "/health", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
