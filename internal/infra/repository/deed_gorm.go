package repository

import (
	"context"

	"nakhlestan/internal/domain/model"

	"gorm.io/gorm"
)

type DeedGormRepository struct {
	db *gorm.DB
}

func NewDeedGormRepository(db *gorm.DB) *DeedGormRepository {
	return &DeedGormRepository{db: db}
}

// سندها بعد از ثبت هرگز update نمی‌شوند
func (r *DeedGormRepository) CreateBulk(ctx context.Context, deeds []model.Deed) error {
	if len(deeds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&deeds).Error
}

func (r *DeedGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.Deed, error) {
	var deeds []model.Deed
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&deeds).Error
	if err != nil {
		return []model.Deed{}, err
	}
	return deeds, nil
}

func (r *DeedGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Deed, error) {
	var deeds []model.Deed
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&deeds).Error
	if err != nil {
		return []model.Deed{}, err
	}
	return deeds, nil
}
