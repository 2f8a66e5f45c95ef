package model

// User role values
const (
	RoleOrgOwner      = "ORG_OWNER"
	RoleOrgEmployee   = "ORG_EMPLOYEE"
	RolePlatformAdmin = "PLATFORM_ADMIN"
)

// User status values
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

// User represents a user account.
// TenantID is nil for platform-level users (e.g. platform admins).
// The PIN is a 5-digit credential for the lightweight employee login path,
// distinct from the external-identity login flow.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(100);not null"`
	Email    string `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	Role     string `json:"role" gorm:"type:varchar(30);not null;default:'ORG_EMPLOYEE'"`
	PIN      string `json:"pin,omitempty" gorm:"column:pin;type:varchar(5)"`
	Status   string `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	TenantID *uint  `json:"tenant_id,omitempty" gorm:"index"`
}
