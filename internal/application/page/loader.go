// Package page compone las páginas del panel: menú del rol, tabla calculada, resúmenes y perfil.
package page

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/cddiller/dashboard-api/internal/application/dto"
	"github.com/cddiller/dashboard-api/internal/application/ports"
	"github.com/cddiller/dashboard-api/internal/application/usecase"
	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/navigation"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
	"github.com/cddiller/dashboard-api/internal/domain/table"
	"github.com/cddiller/dashboard-api/pkg/currency"
	"github.com/cddiller/dashboard-api/pkg/logger"
)

// Request página pedida por una identidad ya autorizada por el guardián.
type Request struct {
	Identity *entity.Identity
	Path     string
	State    table.State
	Currency currency.Code // "" = moneda por defecto
}

// Loader arma el contenido de cada página a partir del menú del rol.
type Loader struct {
	registry  *navigation.Registry
	catalog   *usecase.Catalog
	reports   *usecase.ReportUseCase
	formatter *currency.Formatter
	exporter  ports.TableExporter
	currency  currency.Code
	lang      language.Tag
	log       *logger.Logger
	now       func() time.Time
}

// Option ajusta el Loader.
type Option func(*Loader)

// WithLocale idioma de colación y búsqueda de las tablas.
func WithLocale(tag language.Tag) Option {
	return func(l *Loader) { l.lang = tag }
}

// WithDefaultCurrency moneda cuando la petición no elige una.
func WithDefaultCurrency(c currency.Code) Option {
	return func(l *Loader) { l.currency = c }
}

// WithExporter habilita Export.
func WithExporter(e ports.TableExporter) Option {
	return func(l *Loader) { l.exporter = e }
}

// WithLogger reemplaza el logger (por defecto Nop).
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader construye el Loader.
func NewLoader(registry *navigation.Registry, catalog *usecase.Catalog, reports *usecase.ReportUseCase, formatter *currency.Formatter, opts ...Option) *Loader {
	l := &Loader{
		registry:  registry,
		catalog:   catalog,
		reports:   reports,
		formatter: formatter,
		currency:  currency.UZS,
		lang:      language.Und,
		log:       logger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load devuelve la página de req.Path para la identidad. Un fallo del servicio de datos
// se informa en PageDTO.Error (la página existe, sus datos no). Si ctx termina mientras se
// cargan los datos el resultado se descarta y se devuelve ctx.Err().
func (l *Loader) Load(ctx context.Context, req Request) (*dto.PageDTO, error) {
	entry, nav, err := l.resolve(req)
	if err != nil {
		return nil, err
	}
	code := l.code(req.Currency)
	p := &dto.PageDTO{
		Path:       entry.Path,
		Title:      entry.Label,
		Section:    entry.Section,
		Kind:       string(entry.Kind),
		Currency:   string(code),
		Navigation: nav,
	}

	switch {
	case entry.Kind != "":
		rows, err := l.rows(ctx, req.Identity.Role, entry.Kind)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			if !errors.Is(err, domain.ErrDataService) {
				return nil, err
			}
			l.log.Error().Err(err).Str("path", entry.Path).Msg("no se pudieron cargar los datos de la página")
			p.Error = &dto.ErrorResponse{Code: "DATA_SERVICE", Message: "no se pudieron cargar los datos"}
			return p, nil
		}
		p.Table = l.buildTable(entry.Kind, rows, req.State, code)

	case entry.Section == navigation.SectionSettings:
		p.Profile = dto.NewIdentityResponse(req.Identity)

	default: // dashboard y reportes
		sums, err := l.reports.Summaries(ctx, l.registry.KindsFor(req.Identity.Role))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			if !errors.Is(err, domain.ErrDataService) {
				return nil, err
			}
			l.log.Error().Err(err).Str("path", entry.Path).Msg("no se pudieron cargar los resúmenes")
			p.Error = &dto.ErrorResponse{Code: "DATA_SERVICE", Message: "no se pudieron cargar los datos"}
			return p, nil
		}
		p.Summaries = l.summaries(sums, code)
	}
	return p, nil
}

// Export genera el PDF de la tabla de req.Path con búsqueda y orden aplicados, sin paginar.
func (l *Loader) Export(ctx context.Context, req Request) ([]byte, string, error) {
	if l.exporter == nil {
		return nil, "", fmt.Errorf("page: exportación no configurada")
	}
	entry, _, err := l.resolve(req)
	if err != nil {
		return nil, "", err
	}
	if entry.Kind == "" {
		return nil, "", fmt.Errorf("%w: %s no tiene tabla", domain.ErrInvalidInput, entry.Path)
	}
	rows, err := l.rows(ctx, req.Identity.Role, entry.Kind)
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	code := l.code(req.Currency)
	engine := table.NewEngine(columnsFor(entry.Kind, l.formatter, code), recordFields, table.WithLocale(l.lang))
	columns := engine.Columns()
	doc := ports.TableDocument{
		Title:    entry.Label,
		Subtitle: fmt.Sprintf("%s · %s", req.Identity.DisplayName(), l.now().Format("2006-01-02 15:04")),
	}
	for _, c := range columns {
		doc.Headers = append(doc.Headers, c.Title)
	}
	for _, r := range engine.FilterSort(rows, req.State) {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = c.Display(r)
		}
		doc.Rows = append(doc.Rows, cells)
	}

	pdf, err := l.exporter.ExportTable(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("page: exportar %s: %w", entry.Path, err)
	}
	name := strings.ReplaceAll(strings.TrimPrefix(entry.Path, "/"), "/", "-") + ".pdf"
	return pdf, name, nil
}

// ToggleSort aplica un clic en la cabecera field de la tabla del tipo.
// Las columnas inexistentes o no ordenables dejan el estado igual.
func ToggleSort(kind entity.Kind, s table.State, field string) table.State {
	engine := table.NewEngine(columnsFor(kind, nil, ""), recordFields)
	return engine.ToggleSort(s, field)
}

// Navigation menú del rol.
func (l *Loader) Navigation(role entity.Role) ([]navigation.Entry, error) {
	return l.registry.EntriesFor(role)
}

func (l *Loader) resolve(req Request) (navigation.Entry, []navigation.Entry, error) {
	if req.Identity == nil {
		return navigation.Entry{}, nil, domain.ErrUnauthorized
	}
	nav, err := l.registry.EntriesFor(req.Identity.Role)
	if err != nil {
		return navigation.Entry{}, nil, err
	}
	entry, ok := l.registry.Lookup(req.Identity.Role, req.Path)
	if !ok {
		return navigation.Entry{}, nil, fmt.Errorf("%w: página %s", domain.ErrNotFound, req.Path)
	}
	return entry, nav, nil
}

func (l *Loader) rows(ctx context.Context, role entity.Role, kind entity.Kind) ([]entity.Record, error) {
	if kind == entity.KindTrash {
		return l.catalog.TrashAcross(ctx, l.registry.KindsFor(role))
	}
	svc, ok := l.catalog.Service(kind)
	if !ok {
		return nil, fmt.Errorf("page: sin servicio para %q", kind)
	}
	return svc.List(ctx)
}

func (l *Loader) buildTable(kind entity.Kind, rows []entity.Record, state table.State, code currency.Code) *dto.TableDTO {
	engine := table.NewEngine(columnsFor(kind, l.formatter, code), recordFields, table.WithLocale(l.lang))
	computed := engine.Compute(rows, state)

	t := &dto.TableDTO{
		State:      computed.State,
		Pagination: dto.NewPagination(computed.State.PageIndex, computed.State.PageSize, computed.Total, computed.TotalPages),
		Empty:      string(computed.Empty),
		PageSizes:  table.AllowedPageSizes,
		Rows:       make([]map[string]string, 0, len(computed.Rows)),
	}
	columns := engine.Columns()
	for _, c := range columns {
		cd := dto.ColumnDTO{Key: c.Key, Title: c.Title, Sortable: c.Sortable}
		if c.Key == computed.State.SortField {
			cd.Sorted = string(computed.State.SortDirection)
		}
		t.Columns = append(t.Columns, cd)
	}
	for _, r := range computed.Rows {
		cells := make(map[string]string, len(columns)+1)
		cells[entity.FieldID] = r.ID()
		for _, c := range columns {
			cells[c.Key] = c.Display(r)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (l *Loader) summaries(sums []repository.Summary, code currency.Code) []dto.SummaryDTO {
	out := make([]dto.SummaryDTO, 0, len(sums))
	for _, s := range sums {
		d := dto.SummaryDTO{Kind: string(s.Kind), Count: s.Count, Total: s.Total, ByStatus: s.ByStatus}
		if spec, ok := entity.SpecFor(s.Kind); ok && spec.AmountField != "" {
			d.TotalFormatted = l.formatter.FormatFromUZS(s.Total.InexactFloat64(), code, true)
		}
		out = append(out, d)
	}
	return out
}

func (l *Loader) code(c currency.Code) currency.Code {
	if c == "" {
		return l.currency
	}
	return c
}
