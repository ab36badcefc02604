package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cddiller/dashboard-api/internal/application/dto"
	"github.com/cddiller/dashboard-api/internal/application/page"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
	"github.com/cddiller/dashboard-api/internal/domain/table"
	"github.com/cddiller/dashboard-api/pkg/currency"
)

// PageHandler páginas de los subárboles de rol (/<rol>, /<rol>/<sección>).
// El guardián decide antes de cargar cualquier dato.
type PageHandler struct {
	registry *navigation.Registry
	guard    *navigation.Guard
	loader   *page.Loader
}

// NewPageHandler construye el handler.
func NewPageHandler(registry *navigation.Registry, guard *navigation.Guard, loader *page.Loader) *PageHandler {
	return &PageHandler{registry: registry, guard: guard, loader: loader}
}

// Show godoc
// @Summary      Página del panel
// @Description  Responde la página o redirige (302) a /login?next=... o a la raíz del rol de la sesión.
// @Tags         pages
// @Produce      json
// @Param        role      path   string  true   "Rol dueño del subárbol"
// @Param        section   path   string  false  "Sección"
// @Param        q         query  string  false  "Búsqueda"
// @Param        sort      query  string  false  "Campo de orden"
// @Param        dir       query  string  false  "asc | desc"
// @Param        size      query  int     false  "10, 20, 50, 100"
// @Param        page      query  int     false  "Página (base 1)"
// @Param        action    query  string  false  "sort = alternar el orden de field"
// @Param        field     query  string  false  "Columna para action=sort"
// @Param        currency  query  string  false  "UZS, USD, EUR, RUB"
// @Success      200  {object}  dto.PageDTO
// @Success      302
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.PageDTO
// @Router       /{role}/{section} [get]
func (h *PageHandler) Show(c *fiber.Ctx) error {
	req, done, err := h.authorize(c)
	if done || err != nil {
		return err
	}
	p, err := h.loader.Load(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	if p.Error != nil {
		return c.Status(fiber.StatusBadGateway).JSON(p)
	}
	return c.JSON(p)
}

// Export godoc
// @Summary      Exportar la tabla de la página a PDF (búsqueda y orden aplicados, sin paginar)
// @Tags         pages
// @Produce      application/pdf
// @Param        role     path  string  true  "Rol"
// @Param        section  path  string  true  "Sección"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /{role}/{section}/export.pdf [get]
func (h *PageHandler) Export(c *fiber.Ctx) error {
	req, done, err := h.authorize(c)
	if done || err != nil {
		return err
	}
	pdf, name, err := h.loader.Export(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}

// authorize arma el path pedido y consulta al guardián. done=true si ya se respondió.
func (h *PageHandler) authorize(c *fiber.Ctx) (page.Request, bool, error) {
	role := entity.Role(c.Params("role"))
	if !role.IsValid() {
		return page.Request{}, true, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "página no encontrada"})
	}
	path := "/" + string(role)
	if section := strings.Trim(c.Params("section"), "/"); section != "" {
		path += "/" + section
	}

	decision := h.guard.Authorize(path, role, GetIdentity(c))
	if decision.Outcome != navigation.Render {
		return page.Request{}, true, c.Redirect(decision.Location, fiber.StatusFound)
	}

	code := currency.Code("")
	if raw := c.Query("currency"); raw != "" {
		parsed, err := currency.Parse(raw)
		if err != nil {
			return page.Request{}, true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		code = parsed
	}

	var kind entity.Kind
	if entry, ok := h.registry.Lookup(role, path); ok {
		kind = entry.Kind
	}
	return page.Request{
		Identity: GetIdentity(c),
		Path:     path,
		State:    tableState(c, kind),
		Currency: code,
	}, false, nil
}

// tableState lee el estado de la tabla de la query. Los valores inválidos quedan en su valor por defecto.
func tableState(c *fiber.Ctx, kind entity.Kind) table.State {
	s := table.DefaultState().
		WithQuery(c.Query("q")).
		WithPageSize(c.QueryInt("size", table.DefaultPageSize))
	if field := c.Query("sort"); field != "" {
		s.SortField = field
		s.SortDirection = table.ParseDirection(c.Query("dir"))
	}
	if c.Query("action") == "sort" && kind != "" {
		s = page.ToggleSort(kind, s, c.Query("field"))
	}
	return s.WithPage(c.QueryInt("page", 1))
}

// Login godoc
// @Summary      Punto de entrada de login
// @Description  Con sesión redirige a la raíz del rol; sin sesión devuelve el next a recordar.
// @Tags         pages
// @Produce      json
// @Param        next  query  string  false  "Ruta a la que volver"
// @Success      200  {object}  map[string]string
// @Success      302
// @Router       /login [get]
func (h *PageHandler) Login(c *fiber.Ctx) error {
	if id := GetIdentity(c); id != nil {
		return h.redirectHome(c, id)
	}
	// aquí solo se exige una ruta local; el menú del rol se comprueba al iniciar sesión (AuthHandler.landing)
	next := c.Query("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = ""
	}
	return c.JSON(fiber.Map{"page": "login", "next": next})
}

// Home raíz del rol con sesión, login sin ella.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	if id := GetIdentity(c); id != nil {
		return h.redirectHome(c, id)
	}
	return c.Redirect(navigation.DefaultLoginPath, fiber.StatusFound)
}

func (h *PageHandler) redirectHome(c *fiber.Ctx, id *entity.Identity) error {
	root, err := h.registry.RootPathFor(id.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect(root, fiber.StatusFound)
}
