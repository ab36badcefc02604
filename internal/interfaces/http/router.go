package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cddiller/dashboard-api/internal/application/auth"
	"github.com/cddiller/dashboard-api/internal/application/page"
	"github.com/cddiller/dashboard-api/internal/application/usecase"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth     *auth.Service
	Sessions repository.SessionStorageFactory
	Registry *navigation.Registry
	Guard    *navigation.Guard
	Catalog  *usecase.Catalog
	Loader   *page.Loader
	AppName  string
}

// Router registra las rutas: API JSON bajo /api y páginas bajo /<rol>.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	app.Use(SessionMiddleware(deps.Auth, deps.Sessions))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Registry)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)

	// Rutas con sesión
	protected := api.Group("/", RequireRole())

	navHandler := NewNavigationHandler(deps.Loader)
	protected.Get("/navigation", navHandler.List)

	// Registros: el rol se comprueba por tipo contra el menú
	records := protected.Group("/records")
	recordHandler := NewRecordHandler(deps.Catalog, deps.Registry)
	records.Get("/:kind", recordHandler.List)
	records.Post("/:kind", recordHandler.Create)
	records.Get("/:kind/trash", recordHandler.ListTrash)
	records.Get("/:kind/:id", recordHandler.GetByID)
	records.Put("/:kind/:id", recordHandler.Update)
	records.Delete("/:kind/:id", recordHandler.Delete)
	records.Patch("/:kind/:id/status", recordHandler.UpdateStatus)
	records.Post("/:kind/:id/restore", recordHandler.Restore)

	// Páginas
	pageHandler := NewPageHandler(deps.Registry, deps.Guard, deps.Loader)
	app.Get("/", pageHandler.Home)
	app.Get("/login", pageHandler.Login)
	app.Get("/:role/:section/export.pdf", pageHandler.Export)
	app.Get("/:role/:section?", pageHandler.Show)
}
