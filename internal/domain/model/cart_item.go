package model

import "time"

// قلم سبد خرید
// قیمت، امتیاز، دسته و وزن در لحظه اضافه شدن snapshot می‌شوند.
type CartItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64 `gorm:"not null;index" json:"cart_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`

	UnitPriceSnapshot int64        `gorm:"not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	PointsSnapshot    int64        `gorm:"not null;default:0" json:"points_snapshot"`
	CategorySnapshot  ItemCategory `gorm:"type:varchar(20);not null" json:"category_snapshot"`
	WeightSnapshot    int64        `gorm:"not null;default:0" json:"weight_snapshot"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
