package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint `gorm:"index;not null" json:"provider_id"`
	Provider   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"provider"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:numeric(10,2);check:price >= 0" json:"price"`

	// Computed from reviews on read, never stored.
	AverageRating *float64 `gorm:"-" json:"average_rating"`
	ReviewCount   int      `gorm:"-" json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
