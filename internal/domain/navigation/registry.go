// Package navigation contiene la tabla estática rol → menú y el guardián de rutas por rol.
package navigation

import (
	"fmt"
	"strings"

	"github.com/cddiller/dashboard-api/internal/domain"
	"github.com/cddiller/dashboard-api/internal/domain/entity"
)

// Entry ítem de menú de un rol.
type Entry struct {
	Label     string      `json:"label"`
	Path      string      `json:"path"`
	Icon      string      `json:"icon"`
	Section   string      `json:"section"` // último segmento del path; "" en la raíz
	Kind      entity.Kind `json:"kind,omitempty"`
	IsDefault bool        `json:"is_default"`
}

// Secciones sin tabla.
const (
	SectionDashboard = ""
	SectionReports   = "reports"
	SectionSettings  = "settings"
)

// Registry tabla de navegación por rol. Solo lectura después de construida.
type Registry struct {
	entries map[entity.Role][]Entry
}

func root(role entity.Role) Entry {
	p := "/" + string(role)
	return Entry{Label: "Dashboard", Path: p, Icon: "layout-dashboard", Section: SectionDashboard, IsDefault: true}
}

func section(role entity.Role, sec, label, icon string, kind entity.Kind) Entry {
	return Entry{Label: label, Path: "/" + string(role) + "/" + sec, Icon: icon, Section: sec, Kind: kind}
}

// NewRegistry construye la tabla de navegación de los seis roles.
func NewRegistry() *Registry {
	sa, ad, wh := entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleWarehouse
	de, ag, st := entity.RoleDealer, entity.RoleAgent, entity.RoleStore
	return &Registry{entries: map[entity.Role][]Entry{
		sa: {
			root(sa),
			section(sa, "subscription", "Subscription", "credit-card", entity.KindSubscriptions),
			section(sa, "payments", "Payments", "receipt-text", entity.KindPayments),
			section(sa, "users", "Users", "users", entity.KindUsers),
			section(sa, SectionReports, "Reports", "bar-chart-3", ""),
			section(sa, SectionSettings, "Settings", "settings", ""),
		},
		ad: {
			root(ad),
			section(ad, "products", "Products", "package", entity.KindProducts),
			section(ad, "dealers", "Dealers", "users", entity.KindDealers),
			section(ad, "stores", "Stores", "store", entity.KindStores),
			section(ad, "warehouse", "Warehouse", "database", entity.KindProducts),
			section(ad, "orders", "Orders", "shopping-cart", entity.KindOrders),
			section(ad, "invoices", "Invoices", "receipt-text", entity.KindInvoices),
			section(ad, "returns", "Returns", "rotate-ccw", entity.KindReturns),
			section(ad, "trash", "Trash", "trash-2", entity.KindTrash),
			section(ad, SectionReports, "Reports", "bar-chart-3", ""),
			section(ad, SectionSettings, "Settings", "settings", ""),
		},
		wh: {
			root(wh),
			section(wh, "inventory", "Inventory", "package", entity.KindProducts),
			section(wh, "deliveries", "Deliveries", "truck", entity.KindOrders),
			section(wh, "returns", "Returns", "rotate-ccw", entity.KindReturns),
			section(wh, "trash", "Trash", "trash-2", entity.KindTrash),
			section(wh, SectionReports, "Reports", "bar-chart-3", ""),
			section(wh, SectionSettings, "Settings", "settings", ""),
		},
		de: {
			root(de),
			section(de, "products", "Products", "package", entity.KindProducts),
			section(de, "stores", "Stores", "store", entity.KindStores),
			section(de, "agents", "Agents", "user-cog", entity.KindAgents),
			section(de, "orders", "Orders", "shopping-cart", entity.KindOrders),
			section(de, "returns", "Returns", "rotate-ccw", entity.KindReturns),
			section(de, "invoices", "Invoices", "receipt-text", entity.KindInvoices),
			section(de, SectionReports, "Reports", "bar-chart-3", ""),
			section(de, SectionSettings, "Settings", "settings", ""),
		},
		ag: {
			root(ag),
			section(ag, "deliveries", "Deliveries", "truck", entity.KindOrders),
			section(ag, SectionReports, "Reports", "bar-chart-3", ""),
			section(ag, SectionSettings, "Settings", "settings", ""),
		},
		st: {
			root(st),
			section(st, "orders", "Orders", "shopping-cart", entity.KindOrders),
			section(st, "returns", "Returns", "rotate-ccw", entity.KindReturns),
			section(st, SectionReports, "Reports", "bar-chart-3", ""),
			section(st, SectionSettings, "Settings", "settings", ""),
		},
	}}
}

// EntriesFor devuelve el menú ordenado del rol. La slice es una copia.
func (r *Registry) EntriesFor(role entity.Role) ([]Entry, error) {
	entries, ok := r.entries[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// RootPathFor devuelve la página de inicio del rol (p. ej. "/dealer").
func (r *Registry) RootPathFor(role entity.Role) (string, error) {
	entries, ok := r.entries[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
	for _, e := range entries {
		if e.IsDefault {
			return e.Path, nil
		}
	}
	return "", fmt.Errorf("navigation: rol %q sin página por defecto", role)
}

// Lookup busca la entrada del rol cuyo path coincide (se ignora la barra final).
func (r *Registry) Lookup(role entity.Role, path string) (Entry, bool) {
	path = normalizePath(path)
	for _, e := range r.entries[role] {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// RolesForKind roles con al menos una página que lista el tipo dado.
func (r *Registry) RolesForKind(kind entity.Kind) []entity.Role {
	var out []entity.Role
	for _, role := range entity.Roles {
		for _, e := range r.entries[role] {
			if e.Kind == kind {
				out = append(out, role)
				break
			}
		}
	}
	return out
}

// KindsFor tipos de entidad distintos que el rol ve en su menú, en orden de aparición.
// La papelera no cuenta como tipo propio.
func (r *Registry) KindsFor(role entity.Role) []entity.Kind {
	seen := map[entity.Kind]bool{}
	var out []entity.Kind
	for _, e := range r.entries[role] {
		if e.Kind == "" || e.Kind == entity.KindTrash || seen[e.Kind] {
			continue
		}
		seen[e.Kind] = true
		out = append(out, e.Kind)
	}
	return out
}

// Validate comprueba que cada rol tenga menú no vacío, paths únicos bajo su prefijo
// y exactamente una entrada por defecto en la raíz del rol.
func (r *Registry) Validate() error {
	for _, role := range entity.Roles {
		entries := r.entries[role]
		if len(entries) == 0 {
			return fmt.Errorf("navigation: rol %q sin entradas", role)
		}
		rootPath := "/" + string(role)
		seen := map[string]bool{}
		defaults := 0
		for _, e := range entries {
			if seen[e.Path] {
				return fmt.Errorf("navigation: path duplicado %q en rol %q", e.Path, role)
			}
			seen[e.Path] = true
			if e.Path != rootPath && !strings.HasPrefix(e.Path, rootPath+"/") {
				return fmt.Errorf("navigation: path %q fuera del prefijo de %q", e.Path, role)
			}
			if e.IsDefault {
				defaults++
				if e.Path != rootPath {
					return fmt.Errorf("navigation: la entrada por defecto de %q no es la raíz", role)
				}
			}
		}
		if defaults != 1 {
			return fmt.Errorf("navigation: rol %q tiene %d entradas por defecto", role, defaults)
		}
	}
	return nil
}

func normalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
