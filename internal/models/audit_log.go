package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name" gorm:"size:100"` // denormalized for display

	// e.g. "product", "category"
	EntityType string `json:"entity_type" gorm:"size:50;index"`
	EntityID   uint   `json:"entity_id" gorm:"index"`

	Action      AuditAction `json:"action" gorm:"size:20"`
	Description string      `json:"description" gorm:"size:255"`

	// Entity state before and after the change (JSON)
	BeforeData string `json:"before_data" gorm:"type:jsonb"`
	AfterData  string `json:"after_data" gorm:"type:jsonb"`
}
