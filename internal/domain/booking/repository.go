package booking

import (
	"context"

	"github.com/skillbridge/marketplace/internal/models"
)

type Repository interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)

	Create(ctx context.Context, b *models.Booking) error

	// GetByID preloads Service.Provider and Seeker.
	GetByID(ctx context.Context, id uint) (*models.Booking, error)

	Update(ctx context.Context, b *models.Booking) error

	Delete(ctx context.Context, id uint) error

	ListForSeeker(ctx context.Context, seekerID uint, limit, offset int) ([]models.Booking, int64, error)
	ListForProvider(ctx context.Context, providerID uint, limit, offset int) ([]models.Booking, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Booking, int64, error)
}
