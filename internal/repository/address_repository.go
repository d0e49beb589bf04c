package repository

import (
	"context"

	"nakhlestan/internal/domain/model"
)

// دفترچه آدرس کاربر
type AddressRepository interface {
	//ایجاد آدرس؛ نسخه کامل (با ID) را برمی‌گرداند
	Create(ctx context.Context, address model.Address) (model.Address, error)

	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	FindByID(ctx context.Context, addressID int64) (model.Address, error)
	Update(ctx context.Context, address model.Address) error
	Delete(ctx context.Context, addressID int64) error

	//مالکیت آدرس
	IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error)

	//تغییر آدرس پیش‌فرض
	SetDefault(ctx context.Context, userID, addressID int64) error
}
