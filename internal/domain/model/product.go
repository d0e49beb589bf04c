package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Category    ItemCategory `gorm:"type:varchar(20);not null;index" json:"category"`

	//قیمت به تومان
	Price int64 `gorm:"not null" json:"price"`

	//امتیاز برکت هر واحد
	Points int64 `gorm:"not null;default:0" json:"points"`

	//وزن تقریبی برای محاسبه هزینه ارسال (گرم)
	WeightGrams int64 `gorm:"not null;default:0" json:"weight_grams"`

	//اگر خرید این محصول ابزاری را باز می‌کند، شناسه آن ابزار
	UnlocksFeatureID string `gorm:"type:varchar(100)" json:"unlocks_feature_id"`

	Stock     int64          `gorm:"not null" json:"stock"`
	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
