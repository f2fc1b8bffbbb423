package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/skillbridge/marketplace/internal/domain/booking"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Provider").
		First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) Create(ctx context.Context, b *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if IsUniqueViolation(err) {
			return httperr.ErrField("booking_date", "duplicate_booking")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Provider").
		Preload("Seeker").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) Update(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func (r *BookingGormRepository) ListForSeeker(
	ctx context.Context,
	seekerID uint,
	limit, offset int,
) ([]models.Booking, int64, error) {
	return r.list(ctx, r.db.Where("seeker_id = ?", seekerID), limit, offset)
}

func (r *BookingGormRepository) ListForProvider(
	ctx context.Context,
	providerID uint,
	limit, offset int,
) ([]models.Booking, int64, error) {
	q := r.db.
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.provider_id = ?", providerID)
	return r.list(ctx, q, limit, offset)
}

func (r *BookingGormRepository) ListAll(
	ctx context.Context,
	limit, offset int,
) ([]models.Booking, int64, error) {
	return r.list(ctx, r.db, limit, offset)
}

func (r *BookingGormRepository) list(
	ctx context.Context,
	q *gorm.DB,
	limit, offset int,
) ([]models.Booking, int64, error) {

	q = q.WithContext(ctx).Model(&models.Booking{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := q.
		Preload("Service").
		Preload("Service.Provider").
		Preload("Seeker").
		Order("booking_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
