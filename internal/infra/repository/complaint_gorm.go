package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/skillbridge/marketplace/internal/domain/complaint"
	"github.com/skillbridge/marketplace/internal/models"
)

type ComplaintGormRepository struct {
	db *gorm.DB
}

func NewComplaintGormRepository(db *gorm.DB) *ComplaintGormRepository {
	return &ComplaintGormRepository{db: db}
}

func (r *ComplaintGormRepository) Create(ctx context.Context, cp *models.Complaint) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *ComplaintGormRepository) ServiceExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ComplaintGormRepository) BookingExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ComplaintGormRepository) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var cp models.Complaint
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&cp, id).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *ComplaintGormRepository) Update(ctx context.Context, cp *models.Complaint) error {
	return r.db.WithContext(ctx).Save(cp).Error
}

func (r *ComplaintGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
	limit, offset int,
) ([]models.Complaint, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Complaint{})

	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ServiceID != 0 {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.Type != "" {
		q = q.Where("complaint_type = ?", f.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var complaints []models.Complaint
	if err := q.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&complaints).Error; err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

// Compile-time check
var _ domain.Repository = (*ComplaintGormRepository)(nil)
