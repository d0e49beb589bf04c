package model

import "time"

type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	ProductNameSnapshot string       `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   int64        `gorm:"not null" json:"unit_price_snapshot"`
	PointsSnapshot      int64        `gorm:"not null;default:0" json:"points_snapshot"`
	CategorySnapshot    ItemCategory `gorm:"type:varchar(20);not null" json:"category_snapshot"`
	UnlocksFeatureID    string       `gorm:"type:varchar(100)" json:"unlocks_feature_id"`

	//شرح درخواست پروژه وب (اگر این قلم سفارش پروژه باشد)
	ProjectPayload string `gorm:"type:text" json:"project_payload"`

	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
