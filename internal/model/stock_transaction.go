package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock transaction types
const (
	TransactionTypeIn       = "IN"
	TransactionTypeOutUse   = "OUT_USE"
	TransactionTypeOutWaste = "OUT_WASTE"
	TransactionTypeAudit    = "AUDIT"
)

// ValidTransactionType reports whether t is one of the known transaction types
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOutUse, TransactionTypeOutWaste, TransactionTypeAudit:
		return true
	}
	return false
}

// StockTransaction is an append-only record of a quantity change for an
// inventory item. Rows are never updated or deleted after creation; the
// Timestamp column is write-once.
type StockTransaction struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	ItemID            uint             `json:"item_id" gorm:"index;not null"`
	UserID            uint             `json:"user_id" gorm:"index;not null"`
	Type              string           `json:"type" gorm:"type:varchar(20);not null"`
	QuantityChange    decimal.Decimal  `json:"quantity_change" gorm:"type:decimal(20,4);not null"`
	CostAtTransaction *decimal.Decimal `json:"cost_at_transaction,omitempty" gorm:"type:decimal(20,4)"`
	Timestamp         time.Time        `json:"timestamp" gorm:"column:timestamp;not null;autoCreateTime;<-:create"`
	TenantID          uint             `json:"tenant_id" gorm:"index;not null"`
}
