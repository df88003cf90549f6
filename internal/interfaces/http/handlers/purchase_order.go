// internal/interfaces/http/handlers/purchase_order.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/domain/purchaseorder"
	"github.com/your-org/autoshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/autoshop-backend/internal/pkg/response"
	"gorm.io/gorm"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	purchaseOrderService *purchaseorder.Service
	config               *config.Config
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(db *gorm.DB, cfg *config.Config) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		purchaseOrderService: purchaseorder.NewService(db, cfg),
		config:               cfg,
	}
}

// CreatePurchaseOrder handles POST /purchase-orders
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *gin.Context) {
	actorID, _ := middleware.GetActorIDFromContext(c)

	var req purchaseorder.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	po, err := h.purchaseOrderService.CreatePurchaseOrder(&req, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, po, "Purchase order created successfully")
}

// GetPurchaseOrder handles GET /purchase-orders/:id
func (h *PurchaseOrderHandler) GetPurchaseOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.purchaseOrderService.GetPurchaseOrder(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, po, "Purchase order retrieved successfully")
}

// GetPurchaseOrders handles GET /purchase-orders
func (h *PurchaseOrderHandler) GetPurchaseOrders(c *gin.Context) {
	status := purchaseorder.Status(c.Query("status"))

	var supplierID *uint
	if raw := c.Query("supplier_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid supplier ID")
			return
		}
		parsed := uint(id)
		supplierID = &parsed
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.purchaseOrderService.GetPurchaseOrders(status, supplierID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"purchase_orders": orders,
		"count":           len(orders),
	}, "Purchase orders retrieved successfully")
}

// UpdateStatus handles POST /purchase-orders/:id/status
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	actorID, _ := middleware.GetActorIDFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req purchaseorder.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	po, err := h.purchaseOrderService.UpdateStatus(uint(id), &req, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, po, "Purchase order status updated successfully")
}

// Receive handles POST /purchase-orders/:id/receive
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	actorID, _ := middleware.GetActorIDFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req purchaseorder.ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	result, err := h.purchaseOrderService.Receive(uint(id), &req, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result, "Purchase order items received successfully")
}
