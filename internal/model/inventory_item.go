package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem represents a stocked item.
// CurrentQuantity is a stored field maintained by callers; it is never
// recomputed from the stock transaction ledger.
type InventoryItem struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Name            string           `json:"name" gorm:"type:varchar(255);not null"`
	SKU             string           `json:"sku" gorm:"type:varchar(100)"`
	Unit            string           `json:"unit" gorm:"type:varchar(30)"` // kg, liter, piece
	CurrentQuantity decimal.Decimal  `json:"current_quantity" gorm:"type:decimal(20,4);not null;default:0"`
	ParLevel        *decimal.Decimal `json:"par_level,omitempty" gorm:"type:decimal(20,4)"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty" gorm:"type:decimal(20,4)"`
	CategoryID      *uint            `json:"category_id,omitempty" gorm:"index"`
	SupplierID      *uint            `json:"supplier_id,omitempty" gorm:"index"`
	TenantID        uint             `json:"tenant_id" gorm:"index;not null"`
	ImageURL        string           `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
