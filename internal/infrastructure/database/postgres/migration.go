// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/autoshop-backend/internal/domain/inventory"
	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/domain/purchaseorder"
	"github.com/your-org/autoshop-backend/internal/domain/supplier"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Dependency order: suppliers before parts, parts before everything that
	// references them.
	models := []interface{}{
		&supplier.Supplier{},
		&part.Part{},
		&inventory.InventoryTransaction{},
		&purchaseorder.PurchaseOrder{},
		&purchaseorder.PurchaseOrderItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes beyond what the model tags declare
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// Part lookups for the stock alert and reorder queries
		"CREATE INDEX IF NOT EXISTS idx_parts_category_active ON parts(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_parts_supplier_active ON parts(supplier_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_parts_stock_flags ON parts(out_of_stock, low_stock_alert) WHERE is_active = true",
		"CREATE INDEX IF NOT EXISTS idx_parts_reorder ON parts(quantity_on_hand, reorder_point) WHERE is_active = true AND is_discontinued = false",

		// Ledger history and summary queries
		"CREATE INDEX IF NOT EXISTS idx_inventory_transactions_type_date ON inventory_transactions(type, transaction_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_transactions_po ON inventory_transactions(purchase_order_id) WHERE purchase_order_id IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_inventory_transactions_performed_by ON inventory_transactions(performed_by)",

		// Purchase order listings
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_status_date ON purchase_orders(status, order_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_supplier_status ON purchase_orders(supplier_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_order_items_po_part ON purchase_order_items(purchase_order_id, part_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("Created %d indexes (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts development fixtures: a couple of suppliers and a
// small parts catalog so the API is usable out of the box.
func (m *Migration) SeedInitialData() error {
	log.Println("Seeding initial data...")

	if err := m.seedSuppliers(); err != nil {
		return fmt.Errorf("failed to seed suppliers: %w", err)
	}

	if err := m.seedParts(); err != nil {
		return fmt.Errorf("failed to seed parts: %w", err)
	}

	log.Println("Initial data seeded")
	return nil
}

func (m *Migration) seedSuppliers() error {
	suppliers := []supplier.Supplier{
		{
			CompanyName:   "Midwest Auto Parts Co",
			ContactPerson: "Dale Brickman",
			Email:         "orders@midwestautoparts.example.com",
			Phone:         "+1-555-0101",
			City:          "Columbus",
			State:         "OH",
			PaymentTerms:  "net_30",
			IsActive:      true,
		},
		{
			CompanyName:   "Precision Brake Supply",
			ContactPerson: "Rosa Jimenez",
			Email:         "sales@precisionbrake.example.com",
			Phone:         "+1-555-0102",
			City:          "Toledo",
			State:         "OH",
			PaymentTerms:  "net_15",
			IsActive:      true,
		},
	}

	for _, sup := range suppliers {
		var existing supplier.Supplier
		result := m.db.Where("company_name = ?", sup.CompanyName).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&sup).Error; err != nil {
				return err
			}
			log.Printf("Created supplier: %s", sup.CompanyName)
		}
	}

	return nil
}

func (m *Migration) seedParts() error {
	var count int64
	m.db.Model(&part.Part{}).Count(&count)
	if count > 0 {
		return nil
	}

	var sup supplier.Supplier
	if err := m.db.First(&sup).Error; err != nil {
		log.Println("No suppliers found, skipping part seeding")
		return nil
	}

	parts := []part.Part{
		{
			PartNumber:      "BRK-PAD-2041",
			Name:            "Ceramic Brake Pad Set, Front",
			Category:        part.CategoryBrakes,
			SupplierID:      &sup.ID,
			CostPrice:       3250,
			SellPrice:       6499,
			Currency:        "USD",
			QuantityOnHand:  24,
			ReorderPoint:    8,
			ReorderQuantity: 20,
			MaxStockLevel:   60,
			BinLocation:     "A3-12",
			IsActive:        true,
		},
		{
			PartNumber:      "FLT-OIL-0117",
			Name:            "Engine Oil Filter",
			Category:        part.CategoryFilters,
			SupplierID:      &sup.ID,
			CostPrice:       420,
			SellPrice:       1099,
			Currency:        "USD",
			QuantityOnHand:  80,
			ReorderPoint:    25,
			ReorderQuantity: 100,
			MaxStockLevel:   250,
			BinLocation:     "B1-04",
			IsActive:        true,
		},
		{
			PartNumber:      "ELC-BAT-0750",
			Name:            "12V AGM Battery, Group 35",
			Category:        part.CategoryElectrical,
			SupplierID:      &sup.ID,
			CostPrice:       11900,
			SellPrice:       18999,
			Currency:        "USD",
			QuantityOnHand:  6,
			ReorderPoint:    6,
			ReorderQuantity: 12,
			MaxStockLevel:   30,
			BinLocation:     "C2-01",
			IsActive:        true,
		},
	}

	for _, p := range parts {
		if err := m.db.Create(&p).Error; err != nil {
			log.Printf("Warning: failed to seed part %s: %v", p.PartNumber, err)
		} else {
			log.Printf("Created part: %s", p.PartNumber)
		}
	}

	return nil
}

// GetTableInfo logs row counts per table, a development aid
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		log.Printf("%-28s | %d records", table, count)
	}

	return nil
}
