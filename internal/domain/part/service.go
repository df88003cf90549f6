// internal/domain/part/service.go
package part

import (
	"fmt"
	"strings"

	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles part registration and stock queries. Quantity mutations go
// through the inventory and purchaseorder services, never through here.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new part service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreatePartRequest represents part registration data
type CreatePartRequest struct {
	PartNumber         string   `json:"part_number" binding:"required"`
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Category           Category `json:"category" binding:"required"`
	Subcategory        string   `json:"subcategory"`
	SupplierID         *uint    `json:"supplier_id"`
	SupplierPartNumber string   `json:"supplier_part_number"`
	CostPrice          int64    `json:"cost_price" binding:"required"`
	SellPrice          int64    `json:"sell_price" binding:"required"`
	InitialQuantity    int      `json:"initial_quantity"`
	ReorderPoint       *int     `json:"reorder_point"`
	ReorderQuantity    *int     `json:"reorder_quantity"`
	MaxStockLevel      *int     `json:"max_stock_level"`
	BinLocation        string   `json:"bin_location"`
	WarehouseLocation  string   `json:"warehouse_location"`
}

// CreatePart registers a new part with config defaults for reorder thresholds
func (s *Service) CreatePart(req *CreatePartRequest) (*Part, error) {
	if !req.Category.Valid() {
		return nil, apperror.InvalidArgument("invalid category: %s", req.Category)
	}
	if req.CostPrice < 0 || req.SellPrice < 0 {
		return nil, apperror.InvalidArgument("prices cannot be negative")
	}
	if req.InitialQuantity < 0 {
		return nil, apperror.InvalidArgument("initial quantity cannot be negative")
	}

	partNumber := strings.ToUpper(strings.TrimSpace(req.PartNumber))

	var existing Part
	if err := s.db.Where("part_number = ?", partNumber).First(&existing).Error; err == nil {
		return nil, apperror.InvalidArgument("part with number '%s' already exists", partNumber)
	}

	p := &Part{
		PartNumber:         partNumber,
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		Subcategory:        req.Subcategory,
		SupplierID:         req.SupplierID,
		SupplierPartNumber: req.SupplierPartNumber,
		CostPrice:          req.CostPrice,
		SellPrice:          req.SellPrice,
		Currency:           s.config.Inventory.DefaultCurrency,
		QuantityOnHand:     req.InitialQuantity,
		ReorderPoint:       s.config.Inventory.DefaultReorderPoint,
		ReorderQuantity:    s.config.Inventory.DefaultReorderQuantity,
		MaxStockLevel:      s.config.Inventory.DefaultMaxStockLevel,
		BinLocation:        req.BinLocation,
		WarehouseLocation:  req.WarehouseLocation,
		IsActive:           true,
	}
	if req.ReorderPoint != nil {
		p.ReorderPoint = *req.ReorderPoint
	}
	if req.ReorderQuantity != nil {
		p.ReorderQuantity = *req.ReorderQuantity
	}
	if req.MaxStockLevel != nil {
		p.MaxStockLevel = *req.MaxStockLevel
	}

	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}

	return p, nil
}

// GetPart retrieves a part by ID
func (s *Service) GetPart(id uint) (*Part, error) {
	var p Part
	if err := s.db.Preload("Supplier").First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("part not found")
		}
		return nil, fmt.Errorf("failed to retrieve part: %w", err)
	}
	return &p, nil
}

// GetPartByNumber retrieves a part by its part number
func (s *Service) GetPartByNumber(partNumber string) (*Part, error) {
	var p Part
	number := strings.ToUpper(strings.TrimSpace(partNumber))
	if err := s.db.Preload("Supplier").Where("part_number = ?", number).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("part not found")
		}
		return nil, fmt.Errorf("failed to retrieve part: %w", err)
	}
	return &p, nil
}

// GetParts retrieves active parts, optionally filtered by category
func (s *Service) GetParts(category Category) ([]Part, error) {
	query := s.db.Preload("Supplier").Where("is_active = ?", true)
	if category != "" {
		if !category.Valid() {
			return nil, apperror.InvalidArgument("invalid category: %s", category)
		}
		query = query.Where("category = ?", category)
	}

	var parts []Part
	if err := query.Order("part_number").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve parts: %w", err)
	}
	return parts, nil
}

// StockAlertSummary groups parts needing attention for the check-stock
// endpoint when no specific part is requested.
type StockAlertSummary struct {
	TotalAlerts int        `json:"total_alerts"`
	OutOfStock  AlertGroup `json:"out_of_stock"`
	LowStock    AlertGroup `json:"low_stock"`
}

// AlertGroup is one bucket of the stock alert summary
type AlertGroup struct {
	Count int    `json:"count"`
	Parts []Part `json:"parts"`
}

// CheckStockAlerts returns all parts that are out of stock or at/below their
// reorder point. A custom threshold overrides the per-part reorder point.
func (s *Service) CheckStockAlerts(threshold *int) (*StockAlertSummary, error) {
	query := s.db.Preload("Supplier").Where("is_active = ?", true)
	if threshold != nil {
		query = query.Where("out_of_stock = ? OR quantity_on_hand <= ?", true, *threshold)
	} else {
		query = query.Where("out_of_stock = ? OR low_stock_alert = ?", true, true)
	}

	var parts []Part
	if err := query.Order("quantity_on_hand").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("failed to check stock levels: %w", err)
	}

	summary := &StockAlertSummary{TotalAlerts: len(parts)}
	summary.OutOfStock.Parts = []Part{}
	summary.LowStock.Parts = []Part{}
	for _, p := range parts {
		if p.OutOfStock {
			summary.OutOfStock.Parts = append(summary.OutOfStock.Parts, p)
		} else {
			summary.LowStock.Parts = append(summary.LowStock.Parts, p)
		}
	}
	summary.OutOfStock.Count = len(summary.OutOfStock.Parts)
	summary.LowStock.Count = len(summary.LowStock.Parts)

	return summary, nil
}

// ReorderSuggestion is one line of the reorder report
type ReorderSuggestion struct {
	Part              Part `json:"part"`
	SuggestedQuantity int  `json:"suggested_quantity"`
}

// GetReorderSuggestions lists parts at or below their reorder point with the
// quantity needed to restore the configured reorder quantity above current
// stock, capped at max stock level.
func (s *Service) GetReorderSuggestions() ([]ReorderSuggestion, error) {
	var parts []Part
	err := s.db.Preload("Supplier").
		Where("is_active = ? AND is_discontinued = ? AND quantity_on_hand <= reorder_point", true, false).
		Order("supplier_id, part_number").
		Find(&parts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build reorder report: %w", err)
	}

	suggestions := make([]ReorderSuggestion, 0, len(parts))
	for _, p := range parts {
		qty := p.ReorderQuantity
		if p.MaxStockLevel > 0 && p.QuantityOnHand+qty > p.MaxStockLevel {
			qty = p.MaxStockLevel - p.QuantityOnHand
		}
		if qty <= 0 {
			continue
		}
		suggestions = append(suggestions, ReorderSuggestion{Part: p, SuggestedQuantity: qty})
	}
	return suggestions, nil
}
