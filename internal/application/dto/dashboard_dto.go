package dto

import "github.com/shopspring/decimal"

// SummaryDTO tarjeta de resumen de un tipo para dashboard y reportes.
// Total está en UZS; TotalFormatted ya convertido a la moneda elegida.
type SummaryDTO struct {
	Kind           string          `json:"kind"`
	Count          int             `json:"count"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted,omitempty"`
	ByStatus       map[string]int  `json:"by_status"`
}
