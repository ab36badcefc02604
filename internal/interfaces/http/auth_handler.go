package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cddiller/dashboard-api/internal/application/dto"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
)

// AuthHandler login, registro, logout y sesión actual de la instancia de cliente.
type AuthHandler struct {
	registry *navigation.Registry
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(registry *navigation.Registry) *AuthHandler {
	return &AuthHandler{registry: registry}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string  false  "Instancia de cliente"
// @Param        body  body  dto.LoginRequest  true  "email, password, next"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	id, err := GetSession(c).Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SessionResponse{User: dto.NewIdentityResponse(id), Redirect: h.landing(id, in.Next)})
}

// Signup godoc
// @Summary      Registrar cuenta (queda pendiente de aprobación)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.IdentityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	id, err := GetSession(c).Signup(c.UserContext(), in.Email, in.Password, in.Name, entity.Role(in.Role))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewIdentityResponse(id))
}

// Logout godoc
// @Summary      Cerrar sesión de esta instancia de cliente
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := GetSession(c).Logout(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id := GetIdentity(c)
	if id == nil {
		return writeError(c, domain.ErrUnauthorized)
	}
	return c.JSON(dto.SessionResponse{User: dto.NewIdentityResponse(id), Redirect: h.landing(id, "")})
}

// landing vuelve a next si pertenece al menú del rol; si no, a la raíz del rol.
func (h *AuthHandler) landing(id *entity.Identity, next string) string {
	if next != "" && !strings.HasPrefix(next, "//") {
		if _, ok := h.registry.Lookup(id.Role, next); ok {
			return next
		}
	}
	root, err := h.registry.RootPathFor(id.Role)
	if err != nil {
		return navigation.DefaultLoginPath
	}
	return root
}
