package complaint

import (
	"context"

	"github.com/skillbridge/marketplace/internal/models"
)

type ListFilter struct {
	// Zero values mean "no filter".
	UserID    uint
	ServiceID uint
	Type      string
}

type Repository interface {
	Create(ctx context.Context, cp *models.Complaint) error

	// Referenced rows are checked up front so a dangling reference surfaces
	// as a field error instead of a constraint failure.
	ServiceExists(ctx context.Context, id uint) (bool, error)
	BookingExists(ctx context.Context, id uint) (bool, error)

	// GetByID preloads the filer.
	GetByID(ctx context.Context, id uint) (*models.Complaint, error)

	Update(ctx context.Context, cp *models.Complaint) error

	List(ctx context.Context, f ListFilter, limit, offset int) ([]models.Complaint, int64, error)
}
