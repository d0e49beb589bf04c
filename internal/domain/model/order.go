package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"

	//لغو؛ وضعیت پایانی است و فقط از مراحل اولیه قابل رسیدن است
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// گذارهای مجاز ماشین وضعیت سفارش.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusCompleted},
}

// CanTransition می‌گوید گذار from→to مجاز است یا نه.
// سفارش COMPLETED یا CANCELLED دیگر تغییر وضعیت نمی‌دهد.
func CanTransition(from OrderStatus, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//برای سفارش تمام‌دیجیتال صفر می‌ماند
	AddressID int64 `gorm:"not null;default:0" json:"address_id"`

	DeliveryType DeliveryType `gorm:"type:varchar(20);not null" json:"delivery_type"`
	Status       OrderStatus  `gorm:"type:varchar(20);not null;index" json:"status"`

	//جمع اقلام + هزینه ارسال (تومان)
	TotalPrice   int64 `gorm:"not null" json:"total_price"`
	ShippingCost int64 `gorm:"not null;default:0" json:"shipping_cost"`

	//کد پیگیری درگاه پرداخت
	PaymentAuthority string `gorm:"type:varchar(100)" json:"-"`
	PaymentRefID     string `gorm:"type:varchar(100)" json:"payment_ref_id"`

	IdempotencyKey string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// تاریخچه وضعیت سفارش؛ فقط append می‌شود، هیچ ردیفی ویرایش یا حذف نمی‌شود.
type OrderStatusHistory struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	FromStatus OrderStatus `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus   OrderStatus `gorm:"type:varchar(20);not null" json:"to_status"`

	//کاربری که وضعیت را تغییر داد (صفر یعنی سیستم)
	ChangedBy int64 `gorm:"not null;default:0" json:"changed_by"`

	Note      string    `gorm:"type:varchar(255)" json:"note"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
