package page

import (
	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/table"
	"github.com/cddiller/dashboard-api/pkg/currency"
)

// columnSpec columna de una página. money = monto en UZS que se muestra en la moneda elegida.
type columnSpec struct {
	key      string
	title    string
	sortable bool
	money    bool
}

func col(key, title string) columnSpec   { return columnSpec{key: key, title: title, sortable: true} }
func money(key, title string) columnSpec { return columnSpec{key: key, title: title, sortable: true, money: true} }

var kindColumns = map[entity.Kind][]columnSpec{
	entity.KindProducts: {
		col("name", "Name"), col("category", "Category"), money("price", "Price"),
		col("stock", "Quantity"), col("status", "Status"), col("created_at", "Created"),
	},
	entity.KindOrders: {
		col("id", "Order"), col("customer_name", "Customer"), col("store_name", "Store"),
		col("items_count", "Items"), money("total", "Total"), col("status", "Status"), col("created_at", "Date"),
	},
	entity.KindDealers: {
		col("name", "Name"), col("email", "Email"), col("region", "Region"),
		col("phone", "Phone"), col("stores_count", "Stores"), col("status", "Status"),
	},
	entity.KindStores: {
		col("name", "Name"), col("address", "Address"), col("dealer_name", "Dealer"),
		col("orders_count", "Orders"), col("status", "Status"),
	},
	entity.KindReturns: {
		col("order_reference", "Order"), col("customer_name", "Customer"), col("reason", "Reason"),
		col("items_count", "Items"), col("status", "Status"), col("created_at", "Date"),
	},
	entity.KindInvoices: {
		col("order_reference", "Order"), col("customer_name", "Customer"), money("total", "Total"),
		col("due_date", "Due date"), col("status", "Status"),
	},
	entity.KindPayments: {
		col("invoice", "Invoice"), col("company", "Company"), col("subscription", "Subscription"),
		money("amount", "Amount"), col("date", "Date"), col("method", "Method"), col("status", "Status"),
	},
	entity.KindSubscriptions: {
		col("name", "Name"), money("price", "Price"), col("period", "Period"),
		col("dealers_limit", "Dealers limit"), col("stores_limit", "Stores limit"), col("status", "Status"),
	},
	entity.KindUsers: {
		col("name", "Name"), col("email", "Email"), col("role", "Role"),
		col("status", "Status"), col("created_at", "Created"),
	},
	entity.KindAgents: {
		col("name", "Name"), col("email", "Email"), col("phone", "Phone"),
		col("status", "Status"), col("created_at", "Created"),
	},
	entity.KindTrash: {
		col(fieldLabel, "Name"), col("kind", "Type"), col(entity.FieldDeletedAt, "Deleted at"),
		col(entity.FieldDeletedBy, "Deleted by"),
	},
}

// fieldLabel columna calculada de la papelera: el campo identificativo de cada tipo.
const fieldLabel = "label"

// columnsFor arma las columnas del tipo; los montos se convierten desde UZS a code.
func columnsFor(kind entity.Kind, f *currency.Formatter, code currency.Code) []table.Column[entity.Record] {
	specs := kindColumns[kind]
	out := make([]table.Column[entity.Record], 0, len(specs))
	for _, s := range specs {
		key := s.key
		c := table.Column[entity.Record]{
			Key:      key,
			Title:    s.title,
			Sortable: s.sortable,
			Value:    func(r entity.Record) any { return r[key] },
		}
		if key == fieldLabel {
			c.Value = trashLabel
		}
		if s.money {
			c.Render = func(r entity.Record) string {
				amount, ok := r.Float(key)
				if !ok {
					return table.Stringify(r[key])
				}
				return f.FormatFromUZS(amount, code, true)
			}
		}
		out = append(out, c)
	}
	return out
}

func trashLabel(r entity.Record) any {
	spec, ok := entity.SpecFor(entity.Kind(r.String("kind")))
	if !ok || spec.LabelField == "" {
		return r[entity.FieldID]
	}
	if v := r[spec.LabelField]; v != nil {
		return v
	}
	return r[entity.FieldID]
}

// recordFields campos de datos del registro; es lo único que recorre la búsqueda.
func recordFields(r entity.Record) []any {
	out := make([]any, 0, len(r))
	for _, v := range r {
		out = append(out, v)
	}
	return out
}
