package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_booking_slot" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	SeekerID uint `gorm:"not null;uniqueIndex:idx_booking_slot" json:"seeker_id"`
	Seeker   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seeker"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	// idx_booking_slot: a seeker cannot book the same service twice for the
	// identical slot.
	BookingDate time.Time `gorm:"not null;uniqueIndex:idx_booking_slot" json:"booking_date"`

	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
