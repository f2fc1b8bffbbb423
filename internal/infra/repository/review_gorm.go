package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
	usecase "github.com/skillbridge/marketplace/internal/usecase/review"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Provider").
		First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv *models.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if IsUniqueViolation(err) {
			return httperr.ErrField("service", "already_reviewed")
		}
		return err
	}
	return nil
}

// Compile-time check
var _ usecase.Repository = (*ReviewGormRepository)(nil)
