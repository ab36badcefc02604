package navigation

import (
	"net/url"

	"github.com/cddiller/dashboard-api/internal/domain/entity"
)

// Outcome resultado de autorizar una navegación.
type Outcome string

const (
	Render            Outcome = "render"
	RedirectToLogin   Outcome = "redirect_to_login"
	RedirectToOwnRoot Outcome = "redirect_to_own_root"
)

// DefaultLoginPath punto de entrada de login.
const DefaultLoginPath = "/login"

// Decision salida del guardián. Location solo aplica a las redirecciones;
// ReturnTo guarda el path pedido para volver a él tras el login.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Location string  `json:"location,omitempty"`
	ReturnTo string  `json:"return_to,omitempty"`
}

// Guard decide si una navegación a un subárbol de rol se renderiza o se redirige.
// No guarda estado: cada navegación se evalúa de nuevo.
type Guard struct {
	registry  *Registry
	loginPath string
}

// NewGuard construye el guardián sobre la tabla de navegación.
func NewGuard(registry *Registry) *Guard {
	return &Guard{registry: registry, loginPath: DefaultLoginPath}
}

// Authorize evalúa requestedPath contra requiredRole y la identidad actual (nil = sin sesión).
// Una identidad inactiva se trata como ausente.
func (g *Guard) Authorize(requestedPath string, requiredRole entity.Role, current *entity.Identity) Decision {
	if current == nil || current.Status == entity.StatusInactive {
		return Decision{
			Outcome:  RedirectToLogin,
			Location: g.LoginLocation(requestedPath),
			ReturnTo: requestedPath,
		}
	}
	if current.Role != requiredRole {
		rootPath, err := g.registry.RootPathFor(current.Role)
		if err != nil {
			// rol fuera de la enumeración: la sesión no es utilizable
			return Decision{Outcome: RedirectToLogin, Location: g.LoginLocation(requestedPath), ReturnTo: requestedPath}
		}
		return Decision{Outcome: RedirectToOwnRoot, Location: rootPath}
	}
	return Decision{Outcome: Render}
}

// LoginLocation URL de login que recuerda el destino pedido.
func (g *Guard) LoginLocation(next string) string {
	if next == "" {
		return g.loginPath
	}
	return g.loginPath + "?next=" + url.QueryEscape(next)
}
