// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/domain/inventory"
	"github.com/your-org/autoshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/autoshop-backend/internal/pkg/response"
	"gorm.io/gorm"
)

// InventoryHandler handles inventory ledger endpoints
type InventoryHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(db *gorm.DB, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventory.NewService(db, cfg),
		config:           cfg,
	}
}

// RecordTransaction handles POST /inventory/transactions
func (h *InventoryHandler) RecordTransaction(c *gin.Context) {
	actorID, _ := middleware.GetActorIDFromContext(c)

	var req inventory.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	result, err := h.inventoryService.RecordTransaction(&req, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result, "Inventory transaction recorded successfully")
}

// ListTransactions handles GET /inventory/transactions
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var partID *uint
	if raw := c.Query("part_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid part ID")
			return
		}
		parsed := uint(id)
		partID = &parsed
	}

	txnType := inventory.TransactionType(c.Query("type"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transactions, err := h.inventoryService.ListTransactions(partID, txnType, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	}, "Transactions retrieved successfully")
}

// SummarizeTransactions handles GET /inventory/transactions/summary
func (h *InventoryHandler) SummarizeTransactions(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		response.BadRequest(c, "Invalid days parameter")
		return
	}

	since := time.Now().AddDate(0, 0, -days)
	summaries, err := h.inventoryService.Summarize(since)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"since":   since,
		"summary": summaries,
	}, "Transaction summary retrieved successfully")
}

// AdjustStock handles POST /parts/:id/adjust-stock
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	actorID, _ := middleware.GetActorIDFromContext(c)

	partID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid part ID")
		return
	}

	var req inventory.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	result, err := h.inventoryService.AdjustStock(uint(partID), &req, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result, "Stock adjusted successfully")
}
