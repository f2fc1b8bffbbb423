package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_one_review_per_seeker" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SeekerID uint `gorm:"not null;uniqueIndex:idx_one_review_per_seeker" json:"seeker_id"`
	Seeker   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seeker"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
