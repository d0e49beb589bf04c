package repository

import (
	"context"
	"errors"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"

	"gorm.io/gorm"
)

type addressGormRepository struct {
	db *gorm.DB
}

// DI
func NewAddressGormRepository(db *gorm.DB) repo.AddressRepository {
	return &addressGormRepository{db: db}
}

func (r *addressGormRepository) Create(ctx context.Context, address model.Address) (model.Address, error) {
	if err := r.db.WithContext(ctx).Create(&address).Error; err != nil {
		return model.Address{}, err
	}
	return address, nil
}

func (r *addressGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	var list []model.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *addressGormRepository) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).First(&a, addressID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

func (r *addressGormRepository) Update(ctx context.Context, address model.Address) error {
	result := r.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("id = ?", address.ID).
		Select(
			"name",
			"phone",
			"province",
			"city",
			"neighborhood",
			"street",
			"postal_code",
			"unit",
		).
		Updates(address)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *addressGormRepository) Delete(ctx context.Context, addressID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", addressID).
		Delete(&model.Address{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *addressGormRepository) IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count == 1, nil
}

// تغییر آدرس پیش‌فرض؛ اول همه false بعد یکی true
func (r *addressGormRepository) SetDefault(ctx context.Context, userID, addressID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repo.ErrNotFound
		}

		if err := tx.Model(&model.Address{}).
			Where("user_id = ? AND is_default = TRUE", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
