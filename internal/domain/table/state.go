// Package table implementa el pipeline filtrar → ordenar → paginar de las vistas tabulares.
package table

import (
	"slices"
	"strings"
)

// Direction sentido de ordenamiento.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection interpreta "asc"/"desc"; cualquier otro valor es Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// DefaultPageSize tamaño de página inicial.
const DefaultPageSize = 10

// AllowedPageSizes tamaños de página seleccionables.
var AllowedPageSizes = []int{10, 20, 50, 100}

// IsAllowedPageSize informa si size está en AllowedPageSizes.
func IsAllowedPageSize(size int) bool {
	return slices.Contains(AllowedPageSizes, size)
}

// State cursor de búsqueda/orden/página de una instancia de tabla.
// Es un valor: las transiciones devuelven un State nuevo.
type State struct {
	Query         string    `json:"query"`
	SortField     string    `json:"sort_field,omitempty"` // "" = sin orden
	SortDirection Direction `json:"sort_direction"`
	PageSize      int       `json:"page_size"`
	PageIndex     int       `json:"page_index"` // base 1
}

// DefaultState estado de una tabla recién montada.
func DefaultState() State {
	return State{SortDirection: Asc, PageSize: DefaultPageSize, PageIndex: 1}
}

// WithQuery cambia la búsqueda y vuelve a la primera página.
func (s State) WithQuery(q string) State {
	s.Query = q
	s.PageIndex = 1
	return s
}

// WithPageSize cambia el tamaño de página y vuelve a la primera página.
// Un tamaño fuera de AllowedPageSizes se ignora.
func (s State) WithPageSize(size int) State {
	if !IsAllowedPageSize(size) {
		return s
	}
	s.PageSize = size
	s.PageIndex = 1
	return s
}

// WithPage mueve el cursor de página sin tocar búsqueda ni orden.
func (s State) WithPage(index int) State {
	if index < 1 {
		index = 1
	}
	s.PageIndex = index
	return s
}

// ToggleSort sobre el campo activo invierte el sentido; sobre otro campo ordena asc.
func (s State) ToggleSort(field string) State {
	if field == "" {
		return s
	}
	if s.SortField == field {
		if s.SortDirection == Asc {
			s.SortDirection = Desc
		} else {
			s.SortDirection = Asc
		}
		return s
	}
	s.SortField = field
	s.SortDirection = Asc
	return s
}

// normalized corrige valores fuera de rango (p. ej. estados decodificados de una query string).
func (s State) normalized() State {
	if !IsAllowedPageSize(s.PageSize) {
		s.PageSize = DefaultPageSize
	}
	if s.PageIndex < 1 {
		s.PageIndex = 1
	}
	if s.SortDirection != Desc {
		s.SortDirection = Asc
	}
	return s
}
