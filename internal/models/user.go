package models

import "time"

// Role labels understood by the API. Stored roles are not restricted to these.
const (
	RoleTenant  = "Tenant"
	RoleManager = "Manager"
	RoleAdmin   = "Admin"
)

// DefaultRoles is assigned when a user is created without a usable roles list.
func DefaultRoles() []string {
	return []string{RoleTenant}
}

// User represents a tenant account of the building.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Email      string    `json:"email" gorm:"type:varchar(255);not null"`
	EmailKey   string    `json:"-" gorm:"uniqueIndex;type:varchar(255);not null"` // EmailKey(Email), kept by the repositories
	Phone      string    `json:"phone" gorm:"type:varchar(50);not null"`
	Password   string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Building   float64   `json:"building" gorm:"not null"`
	Appartment float64   `json:"appartment" gorm:"not null"`
	Debt       float64   `json:"debt" gorm:"not null"`
	Roles      []string  `json:"roles" gorm:"serializer:json;not null"`
	Active     bool      `json:"active" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
