// internal/domain/supplier/entity.go
package supplier

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a parts vendor. Parts and purchase orders reference it.
type Supplier struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CompanyName   string         `gorm:"not null;size:200;index" json:"company_name"`
	ContactPerson string         `gorm:"size:100" json:"contact_person"`
	Email         string         `gorm:"size:100" json:"email"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Website       string         `gorm:"size:200" json:"website"`
	Street        string         `gorm:"size:255" json:"street"`
	City          string         `gorm:"size:100" json:"city"`
	State         string         `gorm:"size:100" json:"state"`
	PostalCode    string         `gorm:"size:20" json:"postal_code"`
	Country       string         `gorm:"size:50" json:"country"`
	PaymentTerms  string         `gorm:"size:50;default:'net_30'" json:"payment_terms"`
	TaxID         string         `gorm:"size:50" json:"tax_id"`
	Notes         string         `gorm:"type:text" json:"notes"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Supplier) TableName() string { return "suppliers" }
