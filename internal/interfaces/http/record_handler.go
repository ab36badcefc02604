package http

import (
	"fmt"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/cddiller/dashboard-api/internal/application/dto"
	"github.com/cddiller/dashboard-api/internal/application/usecase"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
)

// RecordHandler CRUD genérico por tipo. Cada tipo lo usan solo los roles cuyo menú lo lista.
type RecordHandler struct {
	catalog  *usecase.Catalog
	registry *navigation.Registry
}

// NewRecordHandler construye el handler.
func NewRecordHandler(catalog *usecase.Catalog, registry *navigation.Registry) *RecordHandler {
	return &RecordHandler{catalog: catalog, registry: registry}
}

// service resuelve el tipo de la ruta y comprueba que el rol lo vea en su menú.
func (h *RecordHandler) service(c *fiber.Ctx) (usecase.EntityService, error) {
	kind := entity.Kind(c.Params("kind"))
	svc, ok := h.catalog.Service(kind)
	if !ok {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrNotFound, kind)
	}
	if !slices.Contains(h.registry.RolesForKind(kind), GetRole(c)) {
		return nil, domain.ErrForbidden
	}
	return svc, nil
}

// List godoc
// @Summary      Listar registros de un tipo
// @Tags         records
// @Produce      json
// @Param        kind  path  string  true  "Tipo (products, orders, ...)"
// @Success      200   {object}  dto.RecordListResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/records/{kind} [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := svc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []entity.Record{}
	}
	return c.JSON(dto.RecordListResponse{Kind: string(svc.Kind()), Items: items, Total: len(items)})
}

// GetByID godoc
// @Summary      Obtener registro
// @Tags         records
// @Produce      json
// @Param        kind  path  string  true  "Tipo"
// @Param        id    path  string  true  "ID"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{kind}/{id} [get]
func (h *RecordHandler) GetByID(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	rec, err := svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	return c.JSON(rec)
}

// Create godoc
// @Summary      Crear registro
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Tipo"
// @Param        body  body  map[string]interface{}  true  "Campos"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/records/{kind} [post]
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	var in entity.Record
	if err := c.BodyParser(&in); err != nil || in == nil {
		return badBody(c)
	}
	out, err := svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar registro (parcial)
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Tipo"
// @Param        id    path  string  true  "ID"
// @Param        body  body  map[string]interface{}  true  "Campos a cambiar"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/records/{kind}/{id} [put]
func (h *RecordHandler) Update(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	var in entity.Record
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro (a la papelera si el tipo la tiene)
// @Tags         records
// @Produce      json
// @Param        kind  path  string  true  "Tipo"
// @Param        id    path  string  true  "ID"
// @Success      200   {object}  dto.DeleteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{kind}/{id} [delete]
func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	ok, err := svc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	}
	out := dto.DeleteResponse{ID: id}
	if _, trash := h.catalog.Trash(svc.Kind()); trash {
		out.Trashed = true
	} else {
		out.Deleted = true
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado (en users y agents: activar o desactivar la cuenta)
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Tipo"
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{kind}/{id}/status [patch]
func (h *RecordHandler) UpdateStatus(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return validationError(c, err)
	}
	out, err := svc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTrash godoc
// @Summary      Papelera de un tipo
// @Tags         records
// @Produce      json
// @Param        kind  path  string  true  "Tipo"
// @Success      200   {object}  dto.RecordListResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{kind}/trash [get]
func (h *RecordHandler) ListTrash(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	trash, ok := h.catalog.Trash(svc.Kind())
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el tipo no tiene papelera"})
	}
	items, err := trash.ListTrash(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []entity.Record{}
	}
	return c.JSON(dto.RecordListResponse{Kind: string(svc.Kind()), Items: items, Total: len(items)})
}

// Restore godoc
// @Summary      Restaurar desde la papelera
// @Tags         records
// @Produce      json
// @Param        kind  path  string  true  "Tipo"
// @Param        id    path  string  true  "ID"
// @Success      200   {object}  dto.DeleteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/records/{kind}/{id}/restore [post]
func (h *RecordHandler) Restore(c *fiber.Ctx) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	trash, ok := h.catalog.Trash(svc.Kind())
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el tipo no tiene papelera"})
	}
	id := c.Params("id")
	restored, err := trash.Restore(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !restored {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no está en la papelera"})
	}
	return c.JSON(dto.DeleteResponse{ID: id, Restored: true})
}
