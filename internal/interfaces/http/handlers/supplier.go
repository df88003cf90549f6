// internal/interfaces/http/handlers/supplier.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/domain/supplier"
	"github.com/your-org/autoshop-backend/internal/pkg/response"
	"gorm.io/gorm"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	supplierService *supplier.Service
	config          *config.Config
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(db *gorm.DB, cfg *config.Config) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplier.NewService(db, cfg),
		config:          cfg,
	}
}

// CreateSupplier handles POST /suppliers
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req supplier.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	sup, err := h.supplierService.CreateSupplier(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, sup, "Supplier created successfully")
}

// GetSupplier handles GET /suppliers/:id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	sup, err := h.supplierService.GetSupplier(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, sup, "Supplier retrieved successfully")
}

// GetSuppliers handles GET /suppliers
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.supplierService.GetSuppliers()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"suppliers": suppliers,
		"count":     len(suppliers),
	}, "Suppliers retrieved successfully")
}
