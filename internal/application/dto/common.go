package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo (logout, restore).
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationDTO resumen de paginación de una tabla ("x-y de z").
type PaginationDTO struct {
	PageIndex  int `json:"page_index"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	From       int `json:"from"` // 1-based; 0 si no hay filas
	To         int `json:"to"`
}

// NewPagination calcula el rango visible de la página.
func NewPagination(pageIndex, pageSize, total, totalPages int) PaginationDTO {
	p := PaginationDTO{PageIndex: pageIndex, PageSize: pageSize, Total: total, TotalPages: totalPages}
	if total > 0 {
		p.From = (pageIndex-1)*pageSize + 1
		p.To = min(pageIndex*pageSize, total)
	}
	return p
}
