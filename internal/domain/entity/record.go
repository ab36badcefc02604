package entity

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Record registro abierto de una entidad de negocio: campo → valor mostrable.
// Los campos id, created_at, updated_at viajan dentro del propio mapa.
type Record map[string]any

// Campos reservados que el servicio de datos administra.
const (
	FieldID        = "id"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldDeletedAt = "deleted_at"
	FieldDeletedBy = "deleted_by"
)

// ID devuelve el id del registro como texto.
func (r Record) ID() string {
	return r.String(FieldID)
}

// String devuelve el campo como texto ("" si no existe o es nil).
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Float devuelve el campo como número si es convertible.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case decimal.Decimal:
		return v.InexactFloat64(), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Clone copia superficial del registro.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge devuelve una copia con los campos de partial aplicados (last write wins por campo).
func (r Record) Merge(partial Record) Record {
	out := r.Clone()
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// Kind tipo de entidad listada por una página.
type Kind string

const (
	KindProducts      Kind = "products"
	KindOrders        Kind = "orders"
	KindDealers       Kind = "dealers"
	KindStores        Kind = "stores"
	KindReturns       Kind = "returns"
	KindInvoices      Kind = "invoices"
	KindPayments      Kind = "payments"
	KindSubscriptions Kind = "subscriptions"
	KindUsers         Kind = "users"
	KindAgents        Kind = "agents" // usuarios con rol agent
	KindTrash         Kind = "trash"  // registros eliminados de cualquier tipo
)

// KindSpec metadatos por tipo de entidad.
type KindSpec struct {
	Kind        Kind
	Statuses    []string // estados válidos; el primero es el inicial
	AmountField string   // campo monetario (UZS) para reportes, "" si no aplica
	LabelField  string   // campo que identifica el registro en la papelera
	Trashable   bool     // Delete mueve a papelera en lugar de borrar
}

// AllowsStatus informa si status es válido para el tipo.
func (s KindSpec) AllowsStatus(status string) bool {
	for _, v := range s.Statuses {
		if v == status {
			return true
		}
	}
	return false
}

var kindSpecs = map[Kind]KindSpec{
	KindProducts:      {Kind: KindProducts, Statuses: []string{"active", "inactive"}, AmountField: "price", LabelField: "name", Trashable: true},
	KindOrders:        {Kind: KindOrders, Statuses: []string{"pending", "processing", "shipped", "delivered", "cancelled"}, AmountField: "total", LabelField: "customer_name", Trashable: true},
	KindDealers:       {Kind: KindDealers, Statuses: []string{"pending", "active", "inactive"}, LabelField: "name", Trashable: true},
	KindStores:        {Kind: KindStores, Statuses: []string{"pending", "active", "inactive"}, LabelField: "name", Trashable: true},
	KindReturns:       {Kind: KindReturns, Statuses: []string{"pending", "approved", "rejected"}, LabelField: "reason", Trashable: true},
	KindInvoices:      {Kind: KindInvoices, Statuses: []string{"pending", "paid", "overdue"}, AmountField: "total", LabelField: "order_reference", Trashable: true},
	KindPayments:      {Kind: KindPayments, Statuses: []string{"pending", "succeeded", "failed"}, AmountField: "amount", LabelField: "invoice", Trashable: true},
	KindSubscriptions: {Kind: KindSubscriptions, Statuses: []string{"draft", "active", "archived"}, AmountField: "price", LabelField: "name", Trashable: true},
	KindUsers:         {Kind: KindUsers, Statuses: []string{"pending", "active", "inactive"}, LabelField: "name"},
	KindAgents:        {Kind: KindAgents, Statuses: []string{"pending", "active", "inactive"}, LabelField: "name"},
	KindTrash:         {Kind: KindTrash, LabelField: "name"},
}

// SpecFor devuelve los metadatos del tipo.
func SpecFor(k Kind) (KindSpec, bool) {
	s, ok := kindSpecs[k]
	return s, ok
}

// RecordKinds tipos persistidos como registros genéricos (excluye usuarios y papelera).
func RecordKinds() []Kind {
	return []Kind{KindProducts, KindOrders, KindDealers, KindStores, KindReturns, KindInvoices, KindPayments, KindSubscriptions}
}
