package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/models"
)

type ActionType string

const (
	ActionCreate     ActionType = "CREATE"
	ActionUpdate     ActionType = "UPDATE"
	ActionDelete     ActionType = "DELETE"
	ActionActivate   ActionType = "ACTIVATE"
	ActionDeactivate ActionType = "DEACTIVATE"
	ActionRespond    ActionType = "RESPOND"
	ActionResolve    ActionType = "RESOLVE"
)

type ResourceType string

const (
	ResourceUser      ResourceType = "USER"
	ResourceService   ResourceType = "SERVICE"
	ResourceBooking   ResourceType = "BOOKING"
	ResourceCategory  ResourceType = "CATEGORY"
	ResourceComplaint ResourceType = "COMPLAINT"
	ResourceReview    ResourceType = "REVIEW"
)

// Changes holds before/after snapshots of the mutated fields.
type Changes struct {
	Before map[string]any `json:"before,omitempty"`
	After  map[string]any `json:"after,omitempty"`
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	adminUserID *uint,
	action ActionType,
	resource ResourceType,
	resourceID uint,
	description string,
	changes *Changes,
	ipAddress string,
	requestID string,
) error {

	var changesJSON string
	if changes != nil {
		if b, err := json.Marshal(changes); err == nil {
			changesJSON = string(b)
		}
	}

	entry := models.AdminActionLog{
		AdminUserID:  adminUserID,
		ActionType:   string(action),
		ResourceType: string(resource),
		ResourceID:   resourceID,
		Description:  description,
		Changes:      changesJSON,
		IPAddress:    ipAddress,
		RequestID:    requestID,
	}

	return l.db.Create(&entry).Error
}
