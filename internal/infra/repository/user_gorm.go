package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/identity"
	"github.com/skillbridge/marketplace/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByIdentityUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("identity_uid = ?", uid).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserGormRepository) Save(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Compile-time check
var _ identity.UserStore = (*UserGormRepository)(nil)
