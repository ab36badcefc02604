package dto

import "github.com/cddiller/dashboard-api/internal/domain/entity"

// RecordListResponse listado crudo de un tipo (API de registros, sin vista de tabla).
type RecordListResponse struct {
	Kind  string          `json:"kind"`
	Items []entity.Record `json:"items"`
	Total int             `json:"total"`
}

// UpdateStatusRequest cambio de estado de un registro o activación de una cuenta.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

// DeleteResponse resultado de un borrado o restauración.
type DeleteResponse struct {
	ID       string `json:"id"`
	Deleted  bool   `json:"deleted,omitempty"`
	Trashed  bool   `json:"trashed,omitempty"`
	Restored bool   `json:"restored,omitempty"`
}
