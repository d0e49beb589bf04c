package repository

import (
	"context"
	"time"

	"nakhlestan/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//تغییر وضعیت؛ ثبت در تاریخچه جدا انجام می‌شود
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//ثبت کد پیگیری پرداخت
	SetPaymentAuthority(ctx context.Context, orderID int64, authority string) error
	SetPaymentRef(ctx context.Context, orderID int64, refID string) error

	//جستجو با کلید idempotency (کلید یکسان = نتیجه یکسان)
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)

	//افزودن ردیف به تاریخچه وضعیت (append-only)
	AppendStatusHistory(ctx context.Context, h model.OrderStatusHistory) error
	ListStatusHistory(ctx context.Context, orderID int64) ([]model.OrderStatusHistory, error)

	//فهرست سفارش‌ها برای مدیر
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type DeedRepository interface {
	CreateBulk(ctx context.Context, deeds []model.Deed) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Deed, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Deed, error)
}
