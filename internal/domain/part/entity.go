// internal/domain/part/entity.go
package part

import (
	"time"

	"github.com/your-org/autoshop-backend/internal/domain/supplier"
	"gorm.io/gorm"
)

// Category classifies a part
type Category string

const (
	CategoryEngine       Category = "engine"
	CategoryTransmission Category = "transmission"
	CategoryBrakes       Category = "brakes"
	CategorySuspension   Category = "suspension"
	CategoryElectrical   Category = "electrical"
	CategoryBody         Category = "body"
	CategoryInterior     Category = "interior"
	CategoryTires        Category = "tires"
	CategoryFluids       Category = "fluids"
	CategoryFilters      Category = "filters"
	CategoryBeltsHoses   Category = "belts_hoses"
	CategoryOther        Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryEngine, CategoryTransmission, CategoryBrakes, CategorySuspension,
		CategoryElectrical, CategoryBody, CategoryInterior, CategoryTires,
		CategoryFluids, CategoryFilters, CategoryBeltsHoses, CategoryOther:
		return true
	}
	return false
}

// Part represents a stocked item. QuantityOnHand is the single source of truth
// for current stock; QuantityAvailable, OutOfStock and LowStockAlert are
// derived and recomputed on every save.
type Part struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	PartNumber  string   `gorm:"uniqueIndex;not null;size:50" json:"part_number"`
	Name        string   `gorm:"not null;size:200" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Category    Category `gorm:"not null;size:30;index" json:"category"`
	Subcategory string   `gorm:"size:50" json:"subcategory"`

	SupplierID         *uint             `gorm:"index" json:"supplier_id"`
	Supplier           supplier.Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	SupplierPartNumber string            `gorm:"size:50" json:"supplier_part_number"`

	// Pricing, in cents
	CostPrice int64  `gorm:"not null" json:"cost_price"`
	SellPrice int64  `gorm:"not null" json:"sell_price"`
	Currency  string `gorm:"size:3;default:'USD'" json:"currency"`

	// Inventory counters
	QuantityOnHand    int `gorm:"default:0" json:"quantity_on_hand"`
	QuantityReserved  int `gorm:"default:0" json:"quantity_reserved"`
	QuantityAvailable int `gorm:"default:0;index" json:"quantity_available"`
	ReorderPoint      int `gorm:"default:10" json:"reorder_point"`
	ReorderQuantity   int `gorm:"default:50" json:"reorder_quantity"`
	MaxStockLevel     int `gorm:"default:200" json:"max_stock_level"`

	// Location
	BinLocation       string `gorm:"size:50" json:"bin_location"`
	WarehouseLocation string `gorm:"size:100" json:"warehouse_location"`

	// Derived stock flags
	OutOfStock    bool `gorm:"default:false;index" json:"out_of_stock"`
	LowStockAlert bool `gorm:"default:false;index" json:"low_stock_alert"`

	// Status
	IsActive       bool `gorm:"default:true" json:"is_active"`
	IsDiscontinued bool `gorm:"default:false" json:"is_discontinued"`

	LastRestocked *time.Time     `json:"last_restocked,omitempty"`
	LastSold      *time.Time     `json:"last_sold,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Part) TableName() string { return "parts" }

// ApplyStockDerivations recomputes every derived stock field from
// QuantityOnHand, QuantityReserved and ReorderPoint. It is the only place
// these fields are written, so they cannot drift across write paths.
func (p *Part) ApplyStockDerivations() {
	p.QuantityAvailable = p.QuantityOnHand - p.QuantityReserved
	p.OutOfStock = p.QuantityOnHand == 0
	p.LowStockAlert = p.QuantityOnHand > 0 && p.QuantityOnHand <= p.ReorderPoint
}

// BeforeSave hook recomputes derived fields on every create and update.
func (p *Part) BeforeSave(tx *gorm.DB) error {
	p.ApplyStockDerivations()
	return nil
}

// StockStatus returns the stock state label used by the check-stock endpoint.
func (p *Part) StockStatus() string {
	switch {
	case p.OutOfStock:
		return "out_of_stock"
	case p.LowStockAlert:
		return "low_stock"
	default:
		return "in_stock"
	}
}

// CanReserve reports whether qty more units can be reserved without exceeding
// what is not already reserved.
func (p *Part) CanReserve(qty int) bool {
	return qty <= p.QuantityAvailable
}

// Snapshot is the part payload embedded in mutation responses.
type Snapshot struct {
	ID                uint   `json:"id"`
	PartNumber        string `json:"part_number"`
	Name              string `json:"name"`
	QuantityBefore    int    `json:"quantity_before"`
	QuantityAfter     int    `json:"quantity_after"`
	QuantityOnHand    int    `json:"quantity_on_hand"`
	QuantityReserved  int    `json:"quantity_reserved"`
	QuantityAvailable int    `json:"quantity_available"`
	OutOfStock        bool   `json:"out_of_stock"`
	LowStockAlert     bool   `json:"low_stock_alert"`
}

// SnapshotAfter builds a Snapshot of the part's post-mutation state given the
// on-hand count observed before the mutation.
func (p *Part) SnapshotAfter(quantityBefore int) Snapshot {
	return Snapshot{
		ID:                p.ID,
		PartNumber:        p.PartNumber,
		Name:              p.Name,
		QuantityBefore:    quantityBefore,
		QuantityAfter:     p.QuantityOnHand,
		QuantityOnHand:    p.QuantityOnHand,
		QuantityReserved:  p.QuantityReserved,
		QuantityAvailable: p.QuantityAvailable,
		OutOfStock:        p.OutOfStock,
		LowStockAlert:     p.LowStockAlert,
	}
}
