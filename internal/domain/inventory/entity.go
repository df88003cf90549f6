// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"github.com/your-org/autoshop-backend/internal/domain/part"
)

// TransactionType is the kind of quantity-affecting event. The kind, not the
// caller-supplied sign, determines the direction of the on-hand delta.
type TransactionType string

const (
	TypePurchase   TransactionType = "purchase"
	TypeSale       TransactionType = "sale"
	TypeAdjustment TransactionType = "adjustment"
	TypeReturn     TransactionType = "return"
	TypeTransfer   TransactionType = "transfer"
	TypeDamaged    TransactionType = "damaged"
	TypeFound      TransactionType = "found"
	TypeLost       TransactionType = "lost"
	TypeReserved   TransactionType = "reserved"
	TypeUnreserved TransactionType = "unreserved"
)

// AllTransactionTypes lists every valid kind, in the order reported to callers
// on validation failure.
var AllTransactionTypes = []TransactionType{
	TypePurchase, TypeSale, TypeAdjustment, TypeReturn, TypeTransfer,
	TypeDamaged, TypeFound, TypeLost, TypeReserved, TypeUnreserved,
}

// Valid reports whether t is one of the enumerated kinds.
func (t TransactionType) Valid() bool {
	for _, v := range AllTransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Reservation reports whether t mutates QuantityReserved instead of
// QuantityOnHand.
func (t TransactionType) Reservation() bool {
	return t == TypeReserved || t == TypeUnreserved
}

// NormalizeDelta applies the sign policy to a caller-supplied quantity change:
// sale, damaged and lost always reduce stock; purchase, return and found
// always increase it; adjustment and transfer pass the caller's sign through.
// Callers may therefore pass an unsigned magnitude for intent-carrying kinds
// without risking a sign error. Reservation kinds have no on-hand delta.
func (t TransactionType) NormalizeDelta(quantityChange int) int {
	abs := quantityChange
	if abs < 0 {
		abs = -abs
	}
	switch t {
	case TypeSale, TypeDamaged, TypeLost:
		return -abs
	case TypePurchase, TypeReturn, TypeFound:
		return abs
	default:
		return quantityChange
	}
}

// InventoryTransaction is one immutable ledger entry. Entries are created
// after the part mutation commits and are never updated or deleted.
// QuantityBefore/QuantityAfter snapshot the part's on-hand count around the
// mutation; for reservation kinds they are equal and QuantityChange records
// the signed reservation delta instead.
type InventoryTransaction struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	PartID uint            `gorm:"not null;index:idx_inventory_transactions_part_date" json:"part_id"`
	Part   part.Part       `gorm:"foreignKey:PartID" json:"part,omitempty"`
	Type   TransactionType `gorm:"not null;size:20;index" json:"type"`

	QuantityChange int `gorm:"not null" json:"quantity_change"`
	QuantityBefore int `gorm:"not null" json:"quantity_before"`
	QuantityAfter  int `gorm:"not null" json:"quantity_after"`

	// Cost and value, in cents
	UnitCost   int64 `json:"unit_cost"`
	TotalCost  int64 `json:"total_cost"`
	UnitPrice  int64 `json:"unit_price"`
	TotalPrice int64 `json:"total_price"`

	// Originating documents; service records and invoices live outside this
	// service, so only their identifiers are kept.
	PurchaseOrderID *uint `gorm:"index" json:"purchase_order_id,omitempty"`
	ServiceRecordID *uint `json:"service_record_id,omitempty"`
	InvoiceID       *uint `json:"invoice_id,omitempty"`

	FromLocation string `gorm:"size:100" json:"from_location,omitempty"`
	ToLocation   string `gorm:"size:100" json:"to_location,omitempty"`
	Reason       string `gorm:"size:255" json:"reason,omitempty"`
	Notes        string `gorm:"type:text" json:"notes,omitempty"`

	PerformedBy     uint      `gorm:"index" json:"performed_by"`
	TransactionDate time.Time `gorm:"not null;index:idx_inventory_transactions_part_date" json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName overrides the table name
func (InventoryTransaction) TableName() string { return "inventory_transactions" }
