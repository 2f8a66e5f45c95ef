package model

import "time"

// Tenant status values
const (
	TenantStatusActive    = "ACTIVE"
	TenantStatusSuspended = "SUSPENDED"
)

// Tenant represents an isolated customer organization.
// Every business entity except platform-level users is scoped to one tenant.
type Tenant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	PlanType  string    `json:"plan_type" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at" gorm:"<-:create"`
}
