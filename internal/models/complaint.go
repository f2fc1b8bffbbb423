package models

import "time"

type Complaint struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BookingID *uint    `json:"booking_id"`
	Booking   *Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ComplaintType string `gorm:"size:50;not null" json:"complaint_type"`
	Description   string `gorm:"type:text;not null" json:"description"`

	Status        string `gorm:"size:50;default:'PENDING'" json:"status"`
	AdminResponse string `gorm:"type:text" json:"admin_response"`

	// Set exactly when the complaint enters RESOLVED, cleared when it leaves.
	ResolvedAt *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
