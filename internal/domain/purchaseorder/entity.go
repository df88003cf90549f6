// internal/domain/purchaseorder/entity.go
package purchaseorder

import (
	"fmt"
	"time"

	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/domain/supplier"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Status represents the purchase order status
type Status string

const (
	StatusDraft             Status = "draft"
	StatusSent              Status = "sent"
	StatusConfirmed         Status = "confirmed"
	StatusPartiallyReceived Status = "partially_received"
	StatusReceived          Status = "received"
	StatusCancelled         Status = "cancelled"
)

// AllStatuses lists every valid status, reported to callers on validation
// failure.
var AllStatuses = []Status{
	StatusDraft, StatusSent, StatusConfirmed,
	StatusPartiallyReceived, StatusReceived, StatusCancelled,
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are permitted from s.
func (s Status) Terminal() bool {
	return s == StatusReceived || s == StatusCancelled
}

// CanReceive reports whether goods may be received against a PO in status s.
func (s Status) CanReceive() bool {
	return s == StatusSent || s == StatusConfirmed || s == StatusPartiallyReceived
}

// ValidateTransition checks a manual status change. Received and cancelled
// are terminal; everything else is allowed (ordering clerks fix mistakes by
// moving POs backwards, so the flow is not strictly monotonic below the
// terminal states).
func (s Status) ValidateTransition(next Status) error {
	if !next.Valid() {
		return apperror.InvalidArgument("invalid status: %s", next)
	}
	if s.Terminal() && next != s {
		return apperror.InvalidState("cannot change status of a %s purchase order", s)
	}
	return nil
}

// PurchaseOrder is a supplier order document. Line items track their own
// receipt progress; a receiving operation propagates deltas to the parts.
type PurchaseOrder struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	PONumber   string            `gorm:"uniqueIndex;not null;size:20" json:"po_number"`
	SupplierID uint              `gorm:"not null;index" json:"supplier_id"`
	Supplier   supplier.Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Status     Status            `gorm:"not null;size:20;default:'draft';index" json:"status"`

	OrderDate            time.Time  `gorm:"not null" json:"order_date"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date,omitempty"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	// Totals, in cents; tax rate in basis points
	Subtotal     int64  `gorm:"default:0" json:"subtotal"`
	TaxRate      int    `gorm:"default:0" json:"tax_rate"`
	TaxAmount    int64  `gorm:"default:0" json:"tax_amount"`
	ShippingCost int64  `gorm:"default:0" json:"shipping_cost"`
	Total        int64  `gorm:"default:0" json:"total"`
	Currency     string `gorm:"size:3;default:'USD'" json:"currency"`

	Notes         string `gorm:"type:text" json:"notes"`
	InternalNotes string `gorm:"type:text" json:"internal_notes"`

	CreatedBy uint           `gorm:"index" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PurchaseOrderItem is one ordered line
type PurchaseOrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint      `gorm:"not null;index" json:"purchase_order_id"`
	PartID          uint      `gorm:"not null;index" json:"part_id"`
	Part            part.Part `gorm:"foreignKey:PartID" json:"part,omitempty"`
	PartNumber      string    `gorm:"size:50" json:"part_number"`
	Description     string    `gorm:"size:255" json:"description"`

	QuantityOrdered     int `gorm:"not null" json:"quantity_ordered"`
	QuantityReceived    int `gorm:"default:0" json:"quantity_received"`
	QuantityOutstanding int `gorm:"default:0" json:"quantity_outstanding"`

	UnitCost int64 `gorm:"not null" json:"unit_cost"`
	Total    int64 `gorm:"not null" json:"total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (PurchaseOrder) TableName() string     { return "purchase_orders" }
func (PurchaseOrderItem) TableName() string { return "purchase_order_items" }

// Receivable returns how many more units can be received on this line.
func (i *PurchaseOrderItem) Receivable() int {
	return i.QuantityOrdered - i.QuantityReceived
}

// ApplyReceipt validates and applies a receipt of qty units to the line.
func (i *PurchaseOrderItem) ApplyReceipt(qty int) error {
	if qty <= 0 {
		return apperror.InvalidArgument("received quantity must be positive")
	}
	if i.QuantityReceived+qty > i.QuantityOrdered {
		return apperror.OverReceipt(
			"cannot receive %d units of %s: maximum receivable %d",
			qty, i.PartNumber, i.Receivable())
	}
	i.QuantityReceived += qty
	i.QuantityOutstanding = i.QuantityOrdered - i.QuantityReceived
	return nil
}

// GeneratePONumber builds the document number, format PO-YYYY-NNNN.
func GeneratePONumber(year int, sequence int64) string {
	return fmt.Sprintf("PO-%d-%04d", year, sequence)
}

// CalculateTotals recomputes line totals and the document totals.
func (po *PurchaseOrder) CalculateTotals() {
	var subtotal int64
	for idx := range po.Items {
		item := &po.Items[idx]
		item.Total = item.UnitCost * int64(item.QuantityOrdered)
		subtotal += item.Total
	}
	po.Subtotal = subtotal
	po.TaxAmount = subtotal * int64(po.TaxRate) / 10000
	po.Total = subtotal + po.TaxAmount + po.ShippingCost
}

// AllItemsReceived reports whether every line is fully received.
func (po *PurchaseOrder) AllItemsReceived() bool {
	for idx := range po.Items {
		if po.Items[idx].QuantityReceived < po.Items[idx].QuantityOrdered {
			return false
		}
	}
	return len(po.Items) > 0
}

// AnyItemsReceived reports whether any line has received units.
func (po *PurchaseOrder) AnyItemsReceived() bool {
	for idx := range po.Items {
		if po.Items[idx].QuantityReceived > 0 {
			return true
		}
	}
	return false
}

// DeriveReceivingStatus returns the status after a receiving pass: received
// when every line is complete, partially_received when anything has arrived,
// otherwise the current status.
func (po *PurchaseOrder) DeriveReceivingStatus() Status {
	if po.AllItemsReceived() {
		return StatusReceived
	}
	if po.AnyItemsReceived() {
		return StatusPartiallyReceived
	}
	return po.Status
}

// AppendInternalNote adds a timestamped line to the internal notes trail.
func (po *PurchaseOrder) AppendInternalNote(note string, at time.Time) {
	stamped := fmt.Sprintf("[%s] %s", at.UTC().Format(time.RFC3339), note)
	if po.InternalNotes == "" {
		po.InternalNotes = stamped
	} else {
		po.InternalNotes = po.InternalNotes + "\n\n" + stamped
	}
}
