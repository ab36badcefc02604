package dto

import (
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
	"github.com/cddiller/dashboard-api/internal/domain/table"
)

// ColumnDTO cabecera de columna con el estado de orden aplicado.
type ColumnDTO struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Sortable bool   `json:"sortable"`
	Sorted   string `json:"sorted,omitempty"` // asc | desc si es la columna de orden
}

// TableDTO vista de tabla ya calculada: filas con texto de celda por clave de columna.
type TableDTO struct {
	Columns    []ColumnDTO         `json:"columns"`
	Rows       []map[string]string `json:"rows"`
	State      table.State         `json:"state"`
	Pagination PaginationDTO       `json:"pagination"`
	Empty      string              `json:"empty,omitempty"` // no_data | no_results
	PageSizes  []int               `json:"page_sizes"`
}

// PageDTO respuesta de una página del panel.
type PageDTO struct {
	Path       string             `json:"path"`
	Title      string             `json:"title"`
	Section    string             `json:"section"`
	Kind       string             `json:"kind,omitempty"`
	Currency   string             `json:"currency"`
	Navigation []navigation.Entry `json:"navigation"`
	Table      *TableDTO          `json:"table,omitempty"`
	Summaries  []SummaryDTO       `json:"summaries,omitempty"`
	Profile    *IdentityResponse  `json:"profile,omitempty"`
	// Error fallo del servicio de datos; distinto de una tabla vacía.
	Error *ErrorResponse `json:"error,omitempty"`
}
