package repository

import (
	"context"
	"errors"

	"nakhlestan/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// جستجوی فهرست محصولات
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

// فقط ذخیره و بازیابی محصول
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	//کم کردن موجودی اگر کافی باشد (false یعنی موجودی نیست)
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
