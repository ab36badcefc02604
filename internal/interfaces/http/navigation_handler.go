package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cddiller/dashboard-api/internal/application/page"
)

// NavigationHandler menú del rol de la sesión.
type NavigationHandler struct {
	loader *page.Loader
}

// NewNavigationHandler construye el handler.
func NewNavigationHandler(loader *page.Loader) *NavigationHandler {
	return &NavigationHandler{loader: loader}
}

// List godoc
// @Summary      Menú lateral del rol
// @Tags         navigation
// @Produce      json
// @Success      200  {array}   navigation.Entry
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/navigation [get]
func (h *NavigationHandler) List(c *fiber.Ctx) error {
	entries, err := h.loader.Navigation(GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}
