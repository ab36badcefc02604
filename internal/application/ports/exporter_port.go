package ports

import "context"

// TableDocument tabla ya renderizada (textos de celda) lista para exportar.
type TableDocument struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// TableExporter genera un documento binario (PDF) a partir de una tabla.
type TableExporter interface {
	ExportTable(ctx context.Context, doc TableDocument) ([]byte, error)
}
