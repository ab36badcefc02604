package http

import (
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/cddiller/dashboard-api/internal/application/auth"
	"github.com/cddiller/dashboard-api/internal/application/dto"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

// Identificación de la instancia de cliente.
const (
	ClientCookie = "cddiller_client"
	ClientHeader = "X-Client-ID"
)

// Locals keys.
const (
	LocalSession  = "session"
	LocalIdentity = "identity"
)

// SessionMiddleware resuelve la instancia de cliente (cookie o header; si falta se crea una nueva),
// restaura su sesión persistida y deja el SessionStore y la identidad en c.Locals.
// La identidad también viaja en UserContext como actor de las operaciones.
func SessionMiddleware(svc *auth.Service, storages repository.SessionStorageFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := clientIDFrom(c)
		if clientID == "" {
			clientID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     ClientCookie,
				Value:    clientID,
				Path:     "/",
				Expires:  time.Now().AddDate(1, 0, 0),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Set(ClientHeader, clientID)

		store := svc.ForClient(clientID, storages.For(clientID))
		c.Locals(LocalSession, store)
		if id, ok := store.Restore(c.UserContext()); ok {
			c.Locals(LocalIdentity, id)
			c.SetUserContext(entity.ContextWithActor(c.UserContext(), id))
		}
		return c.Next()
	}
}

// clientIDFrom primero el header, luego la cookie; solo UUIDs.
func clientIDFrom(c *fiber.Ctx) string {
	for _, v := range []string{c.Get(ClientHeader), c.Cookies(ClientCookie)} {
		if v == "" {
			continue
		}
		if id, err := uuid.Parse(v); err == nil {
			return id.String()
		}
	}
	return ""
}

// RequireRole exige sesión (401) y uno de los roles dados (403). Sin roles, basta la sesión.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if len(roles) > 0 && !slices.Contains(roles, id.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
		}
		return c.Next()
	}
}

// GetSession devuelve el SessionStore de la petición (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) *auth.SessionStore {
	s, _ := c.Locals(LocalSession).(*auth.SessionStore)
	return s
}

// GetIdentity identidad con sesión válida, o nil.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}

// GetRole rol de la identidad actual, o "".
func GetRole(c *fiber.Ctx) entity.Role {
	if id := GetIdentity(c); id != nil {
		return id.Role
	}
	return ""
}
