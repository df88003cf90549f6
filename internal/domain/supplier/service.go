// internal/domain/supplier/service.go
package supplier

import (
	"fmt"

	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles supplier business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new supplier service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateSupplierRequest represents supplier creation data
type CreateSupplierRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	PaymentTerms  string `json:"payment_terms"`
	TaxID         string `json:"tax_id"`
	Notes         string `json:"notes"`
}

// CreateSupplier registers a new supplier
func (s *Service) CreateSupplier(req *CreateSupplierRequest) (*Supplier, error) {
	var existing Supplier
	if err := s.db.Where("company_name = ?", req.CompanyName).First(&existing).Error; err == nil {
		return nil, apperror.InvalidArgument("supplier '%s' already exists", req.CompanyName)
	}

	sup := &Supplier{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Website:       req.Website,
		Street:        req.Street,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		PaymentTerms:  req.PaymentTerms,
		TaxID:         req.TaxID,
		Notes:         req.Notes,
		IsActive:      true,
	}
	if sup.PaymentTerms == "" {
		sup.PaymentTerms = "net_30"
	}

	if err := s.db.Create(sup).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return sup, nil
}

// GetSupplier retrieves a supplier by ID
func (s *Service) GetSupplier(id uint) (*Supplier, error) {
	var sup Supplier
	if err := s.db.First(&sup, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound("supplier not found")
		}
		return nil, fmt.Errorf("failed to retrieve supplier: %w", err)
	}
	return &sup, nil
}

// GetSuppliers retrieves all active suppliers
func (s *Service) GetSuppliers() ([]Supplier, error) {
	var suppliers []Supplier
	if err := s.db.Where("is_active = ?", true).Order("company_name").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve suppliers: %w", err)
	}
	return suppliers, nil
}
