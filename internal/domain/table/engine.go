package table

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Column descriptor de columna. Value alimenta el orden; Render (opcional) el texto mostrado.
type Column[R any] struct {
	Key      string
	Title    string
	Value    func(R) any
	Render   func(R) string
	Sortable bool
}

// EmptyState distingue "no hay datos" de "la búsqueda no encontró nada".
type EmptyState string

const (
	EmptyNone      EmptyState = ""
	EmptyNoData    EmptyState = "no_data"
	EmptyNoResults EmptyState = "no_results"
)

// Page resultado de aplicar un State a una colección.
type Page[R any] struct {
	Rows       []R
	Total      int // filas que pasaron el filtro
	TotalPages int // 0 si Total == 0
	State      State
	Empty      EmptyState
}

type options struct {
	lang language.Tag
}

// Option configura el Engine.
type Option func(*options)

// WithLocale idioma usado para la colación de textos y el plegado de mayúsculas.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

// Engine transforma (filas, estado) en una página visible. No tiene estado mutable
// y es seguro para uso concurrente.
type Engine[R any] struct {
	columns []Column[R]
	fields  func(R) []any
	lang    language.Tag
}

// NewEngine construye el motor. fields enumera SOLO los campos de datos de la fila
// (lo que la búsqueda recorre); las columnas calculadas para presentación no participan.
func NewEngine[R any](columns []Column[R], fields func(R) []any, opts ...Option) *Engine[R] {
	o := options{lang: language.Und}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[R]{columns: columns, fields: fields, lang: o.lang}
}

// Columns descriptores en orden de presentación.
func (e *Engine[R]) Columns() []Column[R] {
	return slices.Clone(e.columns)
}

// Column busca la columna por clave.
func (e *Engine[R]) Column(key string) (Column[R], bool) {
	for _, c := range e.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[R]{}, false
}

// ToggleSort aplica State.ToggleSort solo si la columna existe y es ordenable.
func (e *Engine[R]) ToggleSort(s State, key string) State {
	if c, ok := e.Column(key); !ok || !c.Sortable {
		return s
	}
	return s.ToggleSort(key)
}

// Compute filtra, ordena y pagina en ese orden. Nunca falla.
func (e *Engine[R]) Compute(rows []R, state State) Page[R] {
	state = state.normalized()
	sorted := e.FilterSort(rows, state)

	total := len(sorted)
	totalPages := (total + state.PageSize - 1) / state.PageSize

	if state.PageIndex > max(totalPages, 1) {
		state.PageIndex = max(totalPages, 1)
	}

	start := min((state.PageIndex-1)*state.PageSize, total)
	end := min(start+state.PageSize, total)

	p := Page[R]{
		Rows:       sorted[start:end],
		Total:      total,
		TotalPages: totalPages,
		State:      state,
	}
	if total == 0 {
		if state.Query != "" {
			p.Empty = EmptyNoResults
		} else {
			p.Empty = EmptyNoData
		}
	}
	return p
}

// FilterSort aplica filtro y orden sin paginar (exportaciones).
func (e *Engine[R]) FilterSort(rows []R, state State) []R {
	state = state.normalized()
	out := e.filter(rows, state.Query)

	col, ok := e.Column(state.SortField)
	if !ok || !col.Sortable || col.Value == nil {
		return out
	}

	// los collators no son seguros para uso concurrente: uno por llamada
	coll := collate.New(e.lang)
	sign := 1
	if state.SortDirection == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b R) int {
		return sign * compareValues(col.Value(a), col.Value(b), coll)
	})
	return out
}

func (e *Engine[R]) filter(rows []R, query string) []R {
	if query == "" {
		return slices.Clone(rows)
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]R, 0, len(rows))
	for _, row := range rows {
		for _, v := range e.fields(row) {
			if isNil(v) {
				continue
			}
			if strings.Contains(fold.String(Stringify(v)), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Display texto de la celda: Render si existe, si no la forma textual de Value.
func (c Column[R]) Display(row R) string {
	if c.Render != nil {
		return c.Render(row)
	}
	if c.Value == nil {
		return ""
	}
	return Stringify(c.Value(row))
}
