// internal/domain/inventory/service.go
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
	"github.com/your-org/autoshop-backend/internal/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles the inventory ledger: transaction recording and manual
// stock adjustments. Every mutation locks the part row for the duration of
// the check-and-mutate, so concurrent callers serialize at the database and
// ledger order matches commit order.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// RecordTransactionRequest represents a ledger entry to record
type RecordTransactionRequest struct {
	PartID          uint            `json:"part_id" binding:"required"`
	Type            TransactionType `json:"type" binding:"required"`
	QuantityChange  int             `json:"quantity_change" binding:"required"`
	UnitCost        *int64          `json:"unit_cost,omitempty"`
	UnitPrice       *int64          `json:"unit_price,omitempty"`
	PurchaseOrderID *uint           `json:"purchase_order_id,omitempty"`
	ServiceRecordID *uint           `json:"service_record_id,omitempty"`
	InvoiceID       *uint           `json:"invoice_id,omitempty"`
	FromLocation    string          `json:"from_location,omitempty"`
	ToLocation      string          `json:"to_location,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// TransactionResult is the payload returned after a recorded transaction
type TransactionResult struct {
	Transaction *InventoryTransaction `json:"transaction"`
	Part        part.Snapshot         `json:"part"`
}

// applyTransaction validates the quantity guards for the given kind and
// mutates the part counters in memory. It returns the signed quantity change
// to record on the ledger. The caller persists the part afterwards so the
// derived flags are recomputed before the ledger snapshot is taken.
func applyTransaction(p *part.Part, t TransactionType, quantityChange int, now time.Time) (int, error) {
	if t == TypeReserved {
		if quantityChange <= 0 {
			return 0, apperror.InvalidArgument("reservation quantity must be positive")
		}
		if !p.CanReserve(quantityChange) {
			metrics.StockGuardRejections.WithLabelValues("insufficient_availability").Inc()
			return 0, apperror.InsufficientAvailability(
				"cannot reserve %d units of %s: only %d available",
				quantityChange, p.PartNumber, p.QuantityAvailable)
		}
		p.QuantityReserved += quantityChange
		return quantityChange, nil
	}

	if t == TypeUnreserved {
		if quantityChange <= 0 {
			return 0, apperror.InvalidArgument("unreserve quantity must be positive")
		}
		if quantityChange > p.QuantityReserved {
			metrics.StockGuardRejections.WithLabelValues("insufficient_reservation").Inc()
			return 0, apperror.InsufficientReservation(
				"cannot unreserve %d units of %s: only %d reserved",
				quantityChange, p.PartNumber, p.QuantityReserved)
		}
		p.QuantityReserved -= quantityChange
		return -quantityChange, nil
	}

	delta := t.NormalizeDelta(quantityChange)
	if delta < 0 && -delta > p.QuantityOnHand {
		metrics.StockGuardRejections.WithLabelValues("insufficient_stock").Inc()
		return 0, apperror.InsufficientStock(
			"insufficient stock for %s: available %d, required %d",
			p.PartNumber, p.QuantityOnHand, -delta)
	}

	p.QuantityOnHand += delta
	if delta > 0 {
		p.LastRestocked = &now
	} else if delta < 0 && t == TypeSale {
		p.LastSold = &now
	}
	return delta, nil
}

// RecordTransaction translates a caller-supplied (part, type, quantityChange)
// into a validated, signed delta, applies it to the part and appends a ledger
// entry with before/after snapshots. The whole operation runs in one database
// transaction with the part row locked, so a failed guard leaves nothing
// behind and two concurrent sales cannot both pass validation on a stale read.
func (s *Service) RecordTransaction(req *RecordTransactionRequest, actorID uint) (*TransactionResult, error) {
	if !req.Type.Valid() {
		names := make([]string, len(AllTransactionTypes))
		for i, t := range AllTransactionTypes {
			names[i] = string(t)
		}
		return nil, apperror.InvalidArgument(
			"invalid transaction type '%s', must be one of: %s",
			req.Type, strings.Join(names, ", "))
	}
	if req.QuantityChange == 0 {
		return nil, apperror.InvalidArgument("quantity change is required and cannot be zero")
	}

	var result *TransactionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p part.Part
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, req.PartID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("part not found")
			}
			return fmt.Errorf("failed to load part: %w", err)
		}

		now := time.Now()
		quantityBefore := p.QuantityOnHand

		effectiveChange, err := applyTransaction(&p, req.Type, req.QuantityChange, now)
		if err != nil {
			return err
		}

		warnIfOverReserved(&p, req.Type)

		// Part first: the ledger snapshot must reflect the post-mutation,
		// post-derivation state.
		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update part: %w", err)
		}

		unitCost := p.CostPrice
		if req.UnitCost != nil {
			unitCost = *req.UnitCost
		}
		unitPrice := p.SellPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		// Reservations move no money: the cost/price totals track on-hand
		// movement only.
		magnitude := int64(0)
		if !req.Type.Reservation() {
			magnitude = int64(effectiveChange)
			if magnitude < 0 {
				magnitude = -magnitude
			}
		}

		txn := &InventoryTransaction{
			PartID:          p.ID,
			Type:            req.Type,
			QuantityChange:  effectiveChange,
			QuantityBefore:  quantityBefore,
			QuantityAfter:   p.QuantityOnHand,
			UnitCost:        unitCost,
			TotalCost:       unitCost * magnitude,
			UnitPrice:       unitPrice,
			TotalPrice:      unitPrice * magnitude,
			PurchaseOrderID: req.PurchaseOrderID,
			ServiceRecordID: req.ServiceRecordID,
			InvoiceID:       req.InvoiceID,
			FromLocation:    req.FromLocation,
			ToLocation:      req.ToLocation,
			Reason:          req.Reason,
			Notes:           req.Notes,
			PerformedBy:     actorID,
			TransactionDate: now,
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		result = &TransactionResult{
			Transaction: txn,
			Part:        p.SnapshotAfter(quantityBefore),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InventoryTransactions.WithLabelValues(string(req.Type)).Inc()
	return result, nil
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Adjustment int             `json:"adjustment" binding:"required"`
	Type       TransactionType `json:"type,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Location   string          `json:"location,omitempty"`
	UnitCost   *int64          `json:"unit_cost,omitempty"`
}

// AdjustResult is the payload returned after a stock adjustment
type AdjustResult struct {
	Part        part.Snapshot         `json:"part"`
	Adjustment  int                   `json:"adjustment"`
	Transaction *InventoryTransaction `json:"transaction"`
}

// AdjustStock applies a signed correction directly to a part's on-hand count,
// independent of the transaction-type dispatch: inventory counts, shrinkage,
// found stock. The location lands on fromLocation for removals and toLocation
// for additions.
func (s *Service) AdjustStock(partID uint, req *AdjustStockRequest, actorID uint) (*AdjustResult, error) {
	if req.Adjustment == 0 {
		return nil, apperror.InvalidArgument("adjustment quantity is required and cannot be zero")
	}
	txnType := req.Type
	if txnType == "" {
		txnType = TypeAdjustment
	}
	if !txnType.Valid() || txnType.Reservation() {
		return nil, apperror.InvalidArgument("invalid adjustment type: %s", txnType)
	}

	var result *AdjustResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p part.Part
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, partID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("part not found")
			}
			return fmt.Errorf("failed to load part: %w", err)
		}

		quantityBefore := p.QuantityOnHand
		quantityAfter := quantityBefore + req.Adjustment
		if quantityAfter < 0 {
			metrics.StockGuardRejections.WithLabelValues("insufficient_stock").Inc()
			return apperror.InsufficientStock(
				"cannot adjust stock of %s: current quantity %d, adjustment %d",
				p.PartNumber, quantityBefore, req.Adjustment)
		}

		now := time.Now()
		p.QuantityOnHand = quantityAfter
		if req.Adjustment > 0 {
			p.LastRestocked = &now
		}

		warnIfOverReserved(&p, txnType)

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update part: %w", err)
		}

		unitCost := p.CostPrice
		if req.UnitCost != nil {
			unitCost = *req.UnitCost
		}
		magnitude := int64(req.Adjustment)
		if magnitude < 0 {
			magnitude = -magnitude
		}

		txn := &InventoryTransaction{
			PartID:          p.ID,
			Type:            txnType,
			QuantityChange:  req.Adjustment,
			QuantityBefore:  quantityBefore,
			QuantityAfter:   quantityAfter,
			UnitCost:        unitCost,
			TotalCost:       unitCost * magnitude,
			Reason:          req.Reason,
			Notes:           req.Notes,
			PerformedBy:     actorID,
			TransactionDate: now,
		}
		if req.Adjustment < 0 {
			txn.FromLocation = req.Location
		} else {
			txn.ToLocation = req.Location
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to record adjustment: %w", err)
		}

		result = &AdjustResult{
			Part:        p.SnapshotAfter(quantityBefore),
			Adjustment:  req.Adjustment,
			Transaction: txn,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InventoryTransactions.WithLabelValues(string(txnType)).Inc()
	return result, nil
}

// warnIfOverReserved flags the advisory invariant quantityReserved <=
// quantityOnHand. On-hand-reducing paths do not guard it (a physical count
// can legitimately drop below what a job has reserved), so it is surfaced in
// the logs instead of rejected.
func warnIfOverReserved(p *part.Part, t TransactionType) {
	if p.QuantityReserved > p.QuantityOnHand {
		logrus.WithFields(logrus.Fields{
			"part_number":       p.PartNumber,
			"quantity_on_hand":  p.QuantityOnHand,
			"quantity_reserved": p.QuantityReserved,
			"transaction_type":  t,
		}).Warn("part reserved quantity exceeds on-hand quantity")
	}
}

// ListTransactions returns ledger entries, newest first, optionally filtered
// by part and type.
func (s *Service) ListTransactions(partID *uint, txnType TransactionType, limit, offset int) ([]InventoryTransaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Preload("Part")
	if partID != nil {
		query = query.Where("part_id = ?", *partID)
	}
	if txnType != "" {
		if !txnType.Valid() {
			return nil, apperror.InvalidArgument("invalid transaction type: %s", txnType)
		}
		query = query.Where("type = ?", txnType)
	}

	var transactions []InventoryTransaction
	err := query.Order("transaction_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// TypeSummary aggregates ledger activity for one transaction type
type TypeSummary struct {
	Type       TransactionType `json:"type"`
	Count      int64           `json:"count"`
	TotalIn    int64           `json:"total_in"`
	TotalOut   int64           `json:"total_out"`
	TotalCost  int64           `json:"total_cost"`
	TotalPrice int64           `json:"total_price"`
}

// Summarize aggregates the ledger by transaction type since the given time.
func (s *Service) Summarize(since time.Time) ([]TypeSummary, error) {
	var summaries []TypeSummary
	err := s.db.Model(&InventoryTransaction{}).
		Select(`type,
			COUNT(*) AS count,
			COALESCE(SUM(CASE WHEN quantity_change > 0 THEN quantity_change ELSE 0 END), 0) AS total_in,
			COALESCE(SUM(CASE WHEN quantity_change < 0 THEN -quantity_change ELSE 0 END), 0) AS total_out,
			COALESCE(SUM(total_cost), 0) AS total_cost,
			COALESCE(SUM(total_price), 0) AS total_price`).
		Where("transaction_date >= ?", since).
		Group("type").
		Order("type").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return summaries, nil
}
