// internal/domain/purchaseorder/service.go
package purchaseorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/domain/inventory"
	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/domain/supplier"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
	"github.com/your-org/autoshop-backend/internal/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles purchase order lifecycle and receiving. Receiving mutates
// part stock and appends ledger entries, all inside a single database
// transaction so a bad line invalidates the whole delivery.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new purchase order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreatePurchaseOrderRequest represents a new purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID           uint                             `json:"supplier_id" binding:"required"`
	ExpectedDeliveryDate *time.Time                       `json:"expected_delivery_date"`
	TaxRate              int                              `json:"tax_rate"`
	ShippingCost         int64                            `json:"shipping_cost"`
	Notes                string                           `json:"notes"`
	Items                []CreatePurchaseOrderItemRequest `json:"items" binding:"required,min=1"`
}

// CreatePurchaseOrderItemRequest is one ordered line in a create request
type CreatePurchaseOrderItemRequest struct {
	PartID          uint   `json:"part_id" binding:"required"`
	QuantityOrdered int    `json:"quantity_ordered" binding:"required"`
	UnitCost        *int64 `json:"unit_cost"`
}

// CreatePurchaseOrder validates the supplier and every ordered part, assigns
// the next PO number for the current year and persists the order as a draft.
func (s *Service) CreatePurchaseOrder(req *CreatePurchaseOrderRequest, actorID uint) (*PurchaseOrder, error) {
	if req.TaxRate < 0 || req.ShippingCost < 0 {
		return nil, apperror.InvalidArgument("tax rate and shipping cost cannot be negative")
	}
	// One line per part: receiving resolves lines by part, so a duplicate
	// would make one of the two unaddressable.
	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if item.QuantityOrdered <= 0 {
			return nil, apperror.InvalidArgument("ordered quantity must be positive")
		}
		if seen[item.PartID] {
			return nil, apperror.InvalidArgument(
				"part %d appears on more than one line, combine the quantities", item.PartID)
		}
		seen[item.PartID] = true
	}

	var created *PurchaseOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sup supplier.Supplier
		if err := tx.First(&sup, req.SupplierID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("supplier not found")
			}
			return fmt.Errorf("failed to load supplier: %w", err)
		}
		if !sup.IsActive {
			return apperror.InvalidState("supplier %s is inactive", sup.CompanyName)
		}

		now := time.Now()
		po := &PurchaseOrder{
			SupplierID:           sup.ID,
			Status:               StatusDraft,
			OrderDate:            now,
			ExpectedDeliveryDate: req.ExpectedDeliveryDate,
			TaxRate:              req.TaxRate,
			ShippingCost:         req.ShippingCost,
			Currency:             s.config.Inventory.DefaultCurrency,
			Notes:                req.Notes,
			CreatedBy:            actorID,
		}

		for _, item := range req.Items {
			var p part.Part
			if err := tx.First(&p, item.PartID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperror.NotFound("part %d not found", item.PartID)
				}
				return fmt.Errorf("failed to load part %d: %w", item.PartID, err)
			}
			unitCost := p.CostPrice
			if item.UnitCost != nil {
				unitCost = *item.UnitCost
			}
			if unitCost < 0 {
				return apperror.InvalidArgument("unit cost cannot be negative")
			}
			po.Items = append(po.Items, PurchaseOrderItem{
				PartID:              p.ID,
				PartNumber:          p.PartNumber,
				Description:         p.Name,
				QuantityOrdered:     item.QuantityOrdered,
				QuantityOutstanding: item.QuantityOrdered,
				UnitCost:            unitCost,
			})
		}

		number, err := nextPONumber(tx, now.Year())
		if err != nil {
			return err
		}
		po.PONumber = number
		po.CalculateTotals()

		if err := tx.Create(po).Error; err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}
		created = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// nextPONumber allocates the next document number within the current year by
// counting existing orders. Runs inside the caller's transaction; the unique
// index on po_number backstops a rare collision.
func nextPONumber(tx *gorm.DB, year int) (string, error) {
	var count int64
	prefix := fmt.Sprintf("PO-%d-%%", year)
	if err := tx.Model(&PurchaseOrder{}).Unscoped().
		Where("po_number LIKE ?", prefix).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to allocate PO number: %w", err)
	}
	return GeneratePONumber(year, count+1), nil
}

// GetPurchaseOrder retrieves a purchase order with supplier and line items
func (s *Service) GetPurchaseOrder(id uint) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := s.db.Preload("Supplier").Preload("Items").Preload("Items.Part").
		First(&po, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("purchase order not found")
		}
		return nil, fmt.Errorf("failed to retrieve purchase order: %w", err)
	}
	return &po, nil
}

// GetPurchaseOrders lists purchase orders, newest first, optionally filtered
// by status and supplier.
func (s *Service) GetPurchaseOrders(status Status, supplierID *uint, limit, offset int) ([]PurchaseOrder, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Preload("Supplier").Preload("Items")
	if status != "" {
		if !status.Valid() {
			return nil, apperror.InvalidArgument("invalid status: %s", status)
		}
		query = query.Where("status = ?", status)
	}
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}

	var orders []PurchaseOrder
	err := query.Order("order_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return orders, nil
}

// UpdateStatusRequest represents a manual status change
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateStatus applies a manual status change. Terminal states reject further
// changes; every change appends a timestamped line to the internal notes
// trail naming the actor and the transition.
func (s *Service) UpdateStatus(id uint, req *UpdateStatusRequest, actorID uint) (*PurchaseOrder, error) {
	if !req.Status.Valid() {
		names := make([]string, len(AllStatuses))
		for i, st := range AllStatuses {
			names[i] = string(st)
		}
		return nil, apperror.InvalidArgument(
			"invalid status '%s', must be one of: %s",
			req.Status, strings.Join(names, ", "))
	}

	var updated *PurchaseOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var po PurchaseOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&po, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("purchase order not found")
			}
			return fmt.Errorf("failed to load purchase order: %w", err)
		}

		if err := po.Status.ValidateTransition(req.Status); err != nil {
			return err
		}
		if req.Status == po.Status {
			updated = &po
			return nil
		}

		now := time.Now()
		note := fmt.Sprintf("status changed from %s to %s by user %d", po.Status, req.Status, actorID)
		if req.Note != "" {
			note += ": " + req.Note
		}
		po.AppendInternalNote(note, now)
		po.Status = req.Status
		if req.Status == StatusReceived && po.ActualDeliveryDate == nil {
			po.ActualDeliveryDate = &now
		}

		if err := tx.Save(&po).Error; err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}
		updated = &po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReceiveRequest represents a delivery against a purchase order. The
// delivery date is optional; it backdates the ledger entries and the order's
// delivery stamp when the paperwork arrives after the truck did.
type ReceiveRequest struct {
	Items              []ReceiveItemRequest `json:"items" binding:"required,min=1"`
	ActualDeliveryDate *time.Time           `json:"actual_delivery_date"`
	Notes              string               `json:"notes"`
}

// ReceiveItemRequest is one received line; PartID identifies the PO line
type ReceiveItemRequest struct {
	PartID           uint `json:"part_id" binding:"required"`
	QuantityReceived int  `json:"quantity_received" binding:"required"`
}

// ReceiveResult is the payload returned after a receiving pass
type ReceiveResult struct {
	PurchaseOrder *PurchaseOrder `json:"purchase_order"`
	ReceivedLines []ReceivedLine `json:"received_lines"`
}

// ReceivedLine reports the stock effect of one received line
type ReceivedLine struct {
	PartID           uint   `json:"part_id"`
	PartNumber       string `json:"part_number"`
	QuantityReceived int    `json:"quantity_received"`
	QuantityBefore   int    `json:"quantity_before"`
	QuantityAfter    int    `json:"quantity_after"`
}

// Receive books a delivery against the order: every received line increments
// its PO line, locks and increments the part's on-hand count and appends a
// purchase-type ledger entry referencing the order. The pass is all or
// nothing; one unknown part or over-receipt rolls back every line. Afterwards
// the order's status is derived from its lines and the actual delivery date
// is stamped on completion.
func (s *Service) Receive(id uint, req *ReceiveRequest, actorID uint) (*ReceiveResult, error) {
	for _, item := range req.Items {
		if item.QuantityReceived <= 0 {
			return nil, apperror.InvalidArgument("received quantity must be positive")
		}
	}

	var result *ReceiveResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var po PurchaseOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&po, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("purchase order not found")
			}
			return fmt.Errorf("failed to load purchase order: %w", err)
		}

		if !po.Status.CanReceive() {
			return apperror.InvalidState(
				"cannot receive against a %s purchase order", po.Status)
		}

		lines := make(map[uint]*PurchaseOrderItem, len(po.Items))
		for idx := range po.Items {
			lines[po.Items[idx].PartID] = &po.Items[idx]
		}

		now := time.Now()
		deliveredAt := now
		if req.ActualDeliveryDate != nil {
			deliveredAt = *req.ActualDeliveryDate
		}
		received := make([]ReceivedLine, 0, len(req.Items))

		for _, item := range req.Items {
			line, ok := lines[item.PartID]
			if !ok {
				return apperror.NotFound(
					"part %d is not on purchase order %s", item.PartID, po.PONumber)
			}
			if err := line.ApplyReceipt(item.QuantityReceived); err != nil {
				metrics.StockGuardRejections.WithLabelValues("over_receipt").Inc()
				return err
			}
			// Saving the parent below does not write mutated line columns
			// (gorm upserts has-many associations on the FK only), so each
			// line's receipt progress is persisted here.
			if err := tx.Save(line).Error; err != nil {
				return fmt.Errorf("failed to update purchase order line %d: %w", line.ID, err)
			}

			var p part.Part
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&p, item.PartID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperror.NotFound("part %d not found", item.PartID)
				}
				return fmt.Errorf("failed to load part %d: %w", item.PartID, err)
			}

			quantityBefore := p.QuantityOnHand
			p.QuantityOnHand += item.QuantityReceived
			p.LastRestocked = &deliveredAt
			if err := tx.Save(&p).Error; err != nil {
				return fmt.Errorf("failed to update part %s: %w", p.PartNumber, err)
			}

			txn := &inventory.InventoryTransaction{
				PartID:          p.ID,
				Type:            inventory.TypePurchase,
				QuantityChange:  item.QuantityReceived,
				QuantityBefore:  quantityBefore,
				QuantityAfter:   p.QuantityOnHand,
				UnitCost:        line.UnitCost,
				TotalCost:       line.UnitCost * int64(item.QuantityReceived),
				PurchaseOrderID: &po.ID,
				Reason:          fmt.Sprintf("received against %s", po.PONumber),
				Notes:           req.Notes,
				PerformedBy:     actorID,
				TransactionDate: deliveredAt,
			}
			if err := tx.Create(txn).Error; err != nil {
				return fmt.Errorf("failed to record receipt transaction: %w", err)
			}

			received = append(received, ReceivedLine{
				PartID:           p.ID,
				PartNumber:       p.PartNumber,
				QuantityReceived: item.QuantityReceived,
				QuantityBefore:   quantityBefore,
				QuantityAfter:    p.QuantityOnHand,
			})
		}

		previous := po.Status
		po.Status = po.DeriveReceivingStatus()
		if po.Status == StatusReceived && po.ActualDeliveryDate == nil {
			po.ActualDeliveryDate = &deliveredAt
		}
		po.AppendInternalNote(
			fmt.Sprintf("received %d line(s) by user %d", len(received), actorID), now)

		if err := tx.Save(&po).Error; err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"po_number":      po.PONumber,
			"lines_received": len(received),
			"status_before":  previous,
			"status_after":   po.Status,
		}).Info("purchase order receipt booked")

		result = &ReceiveResult{PurchaseOrder: &po, ReceivedLines: received}
		return nil
	})
	if err != nil {
		metrics.PurchaseOrderReceipts.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.PurchaseOrderReceipts.WithLabelValues(string(result.PurchaseOrder.Status)).Inc()
	metrics.InventoryTransactions.WithLabelValues(string(inventory.TypePurchase)).
		Add(float64(len(result.ReceivedLines)))
	return result, nil
}
