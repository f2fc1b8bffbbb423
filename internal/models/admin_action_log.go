package models

import "time"

// AdminActionLog is the append-only audit trail of admin-performed mutations.
// Entries are never updated or deleted.
type AdminActionLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AdminUserID *uint `gorm:"index" json:"admin_user_id"`
	AdminUser   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"admin_user,omitempty"`

	ActionType   string `gorm:"size:50;not null" json:"action_type"`
	ResourceType string `gorm:"size:50;not null;index:idx_audit_resource" json:"resource_type"`
	ResourceID   uint   `gorm:"index:idx_audit_resource" json:"resource_id"`

	Description string `gorm:"type:text" json:"description"`

	// JSON document with before/after snapshots of the mutated fields.
	Changes string `gorm:"type:text" json:"changes"`

	IPAddress string `gorm:"size:45" json:"ip_address"`
	RequestID string `gorm:"size:36" json:"request_id"`

	CreatedAt time.Time `json:"created_at"`
}
