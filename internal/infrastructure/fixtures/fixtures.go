// Package fixtures datos de demostración: seis cuentas (una por rol) y registros de cada tipo.
// Load es idempotente: lo que ya existe (mismo email o mismo id) no se toca.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cddiller/dashboard-api/internal/domain/entity"
	"github.com/cddiller/dashboard-api/internal/domain/repository"
)

// DemoAccount credenciales de demo en texto plano (se hashean al cargar).
type DemoAccount struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     entity.Role
	Status   entity.Status
	Phone    string
}

// Accounts cuentas de demo. Además de una activa por rol hay una inactiva y una pendiente.
func Accounts() []DemoAccount {
	return []DemoAccount{
		{ID: "super1", Name: "Superadmin", Email: "superadmin@cddiller.com", Password: "superadmin123", Role: entity.RoleSuperadmin, Status: entity.StatusActive},
		{ID: "admin1", Name: "Admin", Email: "admin@cddiller.com", Password: "admin123", Role: entity.RoleAdmin, Status: entity.StatusActive},
		{ID: "warehouse1", Name: "Warehouse Manager", Email: "warehouse@cddiller.com", Password: "warehouse123", Role: entity.RoleWarehouse, Status: entity.StatusActive},
		{ID: "dealer1", Name: "Dealer", Email: "dealer@cddiller.com", Password: "dealer123", Role: entity.RoleDealer, Status: entity.StatusActive},
		{ID: "agent1", Name: "Agent", Email: "agent@cddiller.com", Password: "agent123", Role: entity.RoleAgent, Status: entity.StatusActive, Phone: "+998 90 111 2233"},
		{ID: "store1", Name: "Store Manager", Email: "store@cddiller.com", Password: "store123", Role: entity.RoleStore, Status: entity.StatusActive},
		{ID: "agent2", Name: "Former Agent", Email: "former.agent@cddiller.com", Password: "agent123", Role: entity.RoleAgent, Status: entity.StatusInactive},
		{ID: "store2", Name: "New Store", Email: "new.store@cddiller.com", Password: "store123", Role: entity.RoleStore, Status: entity.StatusPending},
	}
}

// Records registros de demo por tipo. Los números son float64 y las fechas RFC3339,
// igual que tras un viaje por JSON.
func Records(now time.Time) map[entity.Kind][]entity.Record {
	day := 24 * time.Hour
	ts := func(ago time.Duration) string { return now.Add(-ago).UTC().Format(time.RFC3339) }

	return map[entity.Kind][]entity.Record{
		entity.KindProducts: {
			{"id": "1", "name": "Smartphone X Pro", "description": "Latest flagship smartphone with advanced features", "price": 799000.0, "stock": 50.0, "category": "Electronics", "status": "active", "created_at": ts(0), "updated_at": ts(0)},
			{"id": "2", "name": "Laptop UltraBook", "description": "Lightweight laptop with powerful performance", "price": 1299000.0, "stock": 25.0, "category": "Electronics", "status": "active", "created_at": ts(0), "updated_at": ts(0)},
			{"id": "3", "name": "Wireless Headphones", "description": "Premium noise-cancelling headphones", "price": 299000.0, "stock": 100.0, "category": "Audio", "status": "active", "created_at": ts(0), "updated_at": ts(0)},
			{"id": "4", "name": "Smart Watch Series 5", "description": "Advanced smartwatch with health tracking features", "price": 399000.0, "stock": 75.0, "category": "Wearables", "status": "active", "created_at": ts(0), "updated_at": ts(0)},
			{"id": "5", "name": "Tablet Pro 12.9", "description": "Large display tablet for professionals", "price": 899000.0, "stock": 30.0, "category": "Electronics", "status": "active", "created_at": ts(0), "updated_at": ts(0)},
		},
		entity.KindOrders: {
			{"id": "1", "customer_id": "user123", "store_id": "1", "total": 150000.0, "status": "pending", "items_count": 3.0, "store_name": "Main Store", "customer_name": "John Doe", "created_at": ts(0), "updated_at": ts(0)},
			{"id": "2", "customer_id": "user456", "store_id": "2", "total": 85000.0, "status": "delivered", "items_count": 2.0, "store_name": "Branch Store", "customer_name": "Jane Smith", "created_at": ts(day), "updated_at": ts(day)},
			{"id": "3", "customer_id": "user789", "store_id": "1", "total": 120000.0, "status": "processing", "items_count": 4.0, "store_name": "Main Store", "customer_name": "David Johnson", "created_at": ts(2 * day), "updated_at": ts(2 * day)},
			{"id": "4", "customer_id": "user123", "store_id": "3", "total": 95000.0, "status": "shipped", "items_count": 2.0, "store_name": "Mall Store", "customer_name": "John Doe", "created_at": ts(3 * day), "updated_at": ts(3 * day)},
		},
		entity.KindDealers: {
			{"id": "dealer1", "name": "Tashkent Distributors", "email": "tashkent@distributor.com", "region": "Tashkent", "phone": "+998 90 123 4567", "status": "active", "stores_count": 3.0, "created_at": ts(0)},
			{"id": "dealer2", "name": "Samarkand Traders", "email": "samarkand@traders.com", "region": "Samarkand", "phone": "+998 90 234 5678", "status": "active", "stores_count": 2.0, "created_at": ts(0)},
			{"id": "dealer3", "name": "Bukhara Merchants", "email": "bukhara@merchants.com", "region": "Bukhara", "phone": "+998 90 345 6789", "status": "active", "stores_count": 1.0, "created_at": ts(0)},
		},
		entity.KindStores: {
			{"id": "1", "name": "Tashkent Central", "address": "123 Central St, Tashkent", "dealer_id": "dealer1", "dealer_name": "Tashkent Distributors", "status": "active", "orders_count": 24.0, "created_at": ts(0)},
			{"id": "2", "name": "Tashkent North", "address": "456 North Ave, Tashkent", "dealer_id": "dealer1", "dealer_name": "Tashkent Distributors", "status": "active", "orders_count": 15.0, "created_at": ts(0)},
			{"id": "3", "name": "Tashkent East", "address": "789 East Blvd, Tashkent", "dealer_id": "dealer1", "dealer_name": "Tashkent Distributors", "status": "active", "orders_count": 10.0, "created_at": ts(0)},
			{"id": "4", "name": "Samarkand Central", "address": "101 Main St, Samarkand", "dealer_id": "dealer2", "dealer_name": "Samarkand Traders", "status": "active", "orders_count": 18.0, "created_at": ts(0)},
			{"id": "5", "name": "Samarkand West", "address": "202 West Rd, Samarkand", "dealer_id": "dealer2", "dealer_name": "Samarkand Traders", "status": "active", "orders_count": 12.0, "created_at": ts(0)},
			{"id": "6", "name": "Bukhara Central", "address": "303 Historic St, Bukhara", "dealer_id": "dealer3", "dealer_name": "Bukhara Merchants", "status": "active", "orders_count": 9.0, "created_at": ts(0)},
		},
		entity.KindInvoices: {
			{"id": "1", "order_id": "1", "customer_id": "user123", "customer_name": "John Doe", "order_reference": "ORD-001", "total": 150000.0, "due_date": ts(-15 * day), "status": "pending", "created_at": ts(0), "updated_at": ts(0)},
			{"id": "2", "order_id": "2", "customer_id": "user456", "customer_name": "Jane Smith", "order_reference": "ORD-002", "total": 85000.0, "due_date": ts(-10 * day), "status": "paid", "created_at": ts(5 * day), "updated_at": ts(3 * day)},
			{"id": "3", "order_id": "3", "customer_id": "user789", "customer_name": "David Johnson", "order_reference": "ORD-003", "total": 120000.0, "due_date": ts(5 * day), "status": "overdue", "created_at": ts(20 * day), "updated_at": ts(20 * day)},
		},
		entity.KindReturns: {
			{"id": "1", "order_id": "1", "customer_id": "user123", "customer_name": "John Doe", "order_reference": "ORD-001", "reason": "Product arrived damaged", "items_count": 1.0, "status": "pending", "created_at": ts(0), "updated_at": ts(0)},
			{"id": "2", "order_id": "2", "customer_id": "user456", "customer_name": "Jane Smith", "order_reference": "ORD-002", "reason": "Wrong product received", "items_count": 2.0, "status": "approved", "created_at": ts(5 * day), "updated_at": ts(3 * day)},
			{"id": "3", "order_id": "3", "customer_id": "user789", "customer_name": "David Johnson", "order_reference": "ORD-003", "reason": "Not as described", "items_count": 1.0, "status": "rejected", "created_at": ts(10 * day), "updated_at": ts(9 * day)},
		},
		entity.KindPayments: {
			{"id": "1", "invoice": "INV-2025-001", "company": "SoftDrinks LLC", "subscription": "Pro", "amount": 500000.0, "date": "2025-04-01", "status": "succeeded", "method": "card"},
			{"id": "2", "invoice": "INV-2025-002", "company": "GoodFood Inc", "subscription": "Start", "amount": 200000.0, "date": "2025-04-03", "status": "succeeded", "method": "bank"},
			{"id": "3", "invoice": "INV-2025-003", "company": "TechDistribution", "subscription": "Enterprise", "amount": 2000000.0, "date": "2025-04-05", "status": "pending", "method": "bank"},
			{"id": "4", "invoice": "INV-2025-004", "company": "ClothesWholesale", "subscription": "Pro", "amount": 500000.0, "date": "2025-04-08", "status": "failed", "method": "card"},
			{"id": "5", "invoice": "INV-2025-005", "company": "Grocery Plus", "subscription": "Start", "amount": 200000.0, "date": "2025-04-10", "status": "succeeded", "method": "cash"},
			{"id": "6", "invoice": "INV-2025-006", "company": "Electronics Hub", "subscription": "Pro", "amount": 500000.0, "date": "2025-04-11", "status": "succeeded", "method": "card"},
		},
		entity.KindSubscriptions: {
			{"id": "1", "name": "Start", "price": 200000.0, "period": "monthly", "dealers_limit": 10.0, "stores_limit": 50.0, "products_limit": 1000.0, "warehouses_limit": 1.0, "status": "active", "created_at": "2025-01-15"},
			{"id": "2", "name": "Pro", "price": 500000.0, "period": "monthly", "dealers_limit": 25.0, "stores_limit": 100.0, "products_limit": 5000.0, "warehouses_limit": 3.0, "status": "active", "created_at": "2025-01-20"},
			{"id": "3", "name": "Enterprise", "price": 2000000.0, "period": "monthly", "dealers_limit": -1.0, "stores_limit": -1.0, "products_limit": -1.0, "warehouses_limit": -1.0, "status": "active", "created_at": "2025-02-01"},
			{"id": "4", "name": "Seasonal", "price": 350000.0, "period": "monthly", "dealers_limit": 15.0, "stores_limit": 75.0, "products_limit": 2000.0, "warehouses_limit": 2.0, "status": "draft", "created_at": "2025-03-10"},
		},
	}
}

// Result conteo de lo insertado por Load.
type Result struct {
	Identities int
	Records    int
}

// Load inserta las cuentas y registros que falten. cost <= 0 usa bcrypt.DefaultCost.
func Load(ctx context.Context, identities repository.IdentityRepository, records repository.RecordRepository, cost int, now time.Time) (Result, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	var res Result
	for _, acc := range Accounts() {
		existing, err := identities.GetByEmail(ctx, acc.Email)
		if err != nil {
			return res, fmt.Errorf("fixtures: buscar %s: %w", acc.Email, err)
		}
		if existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), cost)
		if err != nil {
			return res, fmt.Errorf("fixtures: hash %s: %w", acc.Email, err)
		}
		id := &entity.Identity{
			ID:           acc.ID,
			Name:         entity.StrPtr(acc.Name),
			Email:        entity.StrPtr(acc.Email),
			PasswordHash: string(hash),
			Role:         acc.Role,
			Status:       acc.Status,
			CreatedAt:    now.UTC(),
			UpdatedAt:    now.UTC(),
		}
		if acc.Phone != "" {
			id.Phone = entity.StrPtr(acc.Phone)
		}
		if err := identities.Create(ctx, id); err != nil {
			return res, fmt.Errorf("fixtures: crear %s: %w", acc.Email, err)
		}
		res.Identities++
	}

	all := Records(now)
	for _, kind := range entity.RecordKinds() {
		// los que están en papelera también cuentan como existentes
		trashed, err := records.ListDeleted(ctx, kind)
		if err != nil {
			return res, fmt.Errorf("fixtures: papelera %s: %w", kind, err)
		}
		inTrash := make(map[string]bool, len(trashed))
		for _, rec := range trashed {
			inTrash[rec.ID()] = true
		}
		for _, rec := range all[kind] {
			if inTrash[rec.ID()] {
				continue
			}
			existing, err := records.GetByID(ctx, kind, rec.ID())
			if err != nil {
				return res, fmt.Errorf("fixtures: buscar %s/%s: %w", kind, rec.ID(), err)
			}
			if existing != nil {
				continue
			}
			if err := records.Create(ctx, kind, rec); err != nil {
				return res, fmt.Errorf("fixtures: crear %s/%s: %w", kind, rec.ID(), err)
			}
			res.Records++
		}
	}
	return res, nil
}
