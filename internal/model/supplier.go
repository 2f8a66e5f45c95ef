package model

import "time"

// Supplier represents a goods supplier, scoped to exactly one tenant
type Supplier struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	ContactInfo string    `json:"contact_info" gorm:"type:text"`
	TenantID    uint      `json:"tenant_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
