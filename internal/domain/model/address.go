package model

import "time"

// آدرس پستی گیرنده
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//نام گیرنده
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//موبایل (09xxxxxxxxx)
	Phone string `gorm:"type:varchar(30);not null" json:"phone"`

	//استان
	Province string `gorm:"type:varchar(100);not null" json:"province"`

	//شهر
	City string `gorm:"type:varchar(255);not null" json:"city"`

	//محله (اختیاری)
	Neighborhood string `gorm:"type:varchar(255)" json:"neighborhood"`

	//نشانی کامل
	Street string `gorm:"type:text;not null" json:"street"`

	//کد پستی ده رقمی
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`

	//پلاک و واحد (اختیاری)
	Unit string `gorm:"type:varchar(100)" json:"unit"`

	//آدرس پیش‌فرض کاربر
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// مقصد ارسال گواهی دیجیتال. جایی ذخیره نمی‌شود،
// فقط برای مسیریابی ارسال در لحظه checkout استفاده می‌شود.
type DigitalAddress struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	MessengerID string `json:"messenger_id"`
}
