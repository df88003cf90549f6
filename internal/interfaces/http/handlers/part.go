// internal/interfaces/http/handlers/part.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/pkg/response"
	"gorm.io/gorm"
)

// PartHandler handles part catalog and stock query endpoints
type PartHandler struct {
	partService *part.Service
	config      *config.Config
}

// NewPartHandler creates a new part handler
func NewPartHandler(db *gorm.DB, cfg *config.Config) *PartHandler {
	return &PartHandler{
		partService: part.NewService(db, cfg),
		config:      cfg,
	}
}

// CreatePart handles POST /parts
func (h *PartHandler) CreatePart(c *gin.Context) {
	var req part.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	p, err := h.partService.CreatePart(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, p, "Part created successfully")
}

// GetPart handles GET /parts/:id
func (h *PartHandler) GetPart(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid part ID")
		return
	}

	p, err := h.partService.GetPart(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, p, "Part retrieved successfully")
}

// GetParts handles GET /parts
func (h *PartHandler) GetParts(c *gin.Context) {
	category := part.Category(c.Query("category"))

	parts, err := h.partService.GetParts(category)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"parts": parts,
		"count": len(parts),
	}, "Parts retrieved successfully")
}

// CheckStock handles GET /parts/check-stock. With part_number or part_id it
// reports one part's stock state; without either it returns the alert summary
// of every part that is out of stock or at its reorder point. A threshold
// query overrides the per-part reorder points for the summary.
func (h *PartHandler) CheckStock(c *gin.Context) {
	if partNumber := c.Query("part_number"); partNumber != "" {
		p, err := h.partService.GetPartByNumber(partNumber)
		if err != nil {
			response.Error(c, err)
			return
		}
		h.respondPartStock(c, p)
		return
	}

	if raw := c.Query("part_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid part ID")
			return
		}
		p, err := h.partService.GetPart(uint(id))
		if err != nil {
			response.Error(c, err)
			return
		}
		h.respondPartStock(c, p)
		return
	}

	var threshold *int
	if raw := c.Query("threshold"); raw != "" {
		t, err := strconv.Atoi(raw)
		if err != nil || t < 0 {
			response.BadRequest(c, "Invalid threshold")
			return
		}
		threshold = &t
	}

	summary, err := h.partService.CheckStockAlerts(threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, summary, "Stock alerts retrieved successfully")
}

func (h *PartHandler) respondPartStock(c *gin.Context, p *part.Part) {
	response.OK(c, gin.H{
		"part":               p,
		"stock_status":       p.StockStatus(),
		"quantity_on_hand":   p.QuantityOnHand,
		"quantity_reserved":  p.QuantityReserved,
		"quantity_available": p.QuantityAvailable,
		"reorder_point":      p.ReorderPoint,
	}, "Stock level retrieved successfully")
}

// GetReorderSuggestions handles GET /parts/reorder-suggestions
func (h *PartHandler) GetReorderSuggestions(c *gin.Context) {
	suggestions, err := h.partService.GetReorderSuggestions()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	}, "Reorder suggestions retrieved successfully")
}
