package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCashier UserRole = "cashier"
)

// ParseRole validates a role coming from a request body. Roles are a closed
// set; anything else is rejected at the boundary.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleAdmin, RoleCashier:
		return UserRole(s), true
	}
	return "", false
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
