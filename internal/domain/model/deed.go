package model

import "time"

// سند نخل؛ به ازای هر قلم میراث یک سند صادر می‌شود.
// بعد از صدور تغییرناپذیر است.
type Deed struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     int64  `gorm:"not null;index" json:"order_id"`
	OrderItemID int64  `gorm:"not null;index" json:"order_item_id"`
	UserID      int64  `gorm:"not null;index" json:"user_id"`

	//نیت کاشت
	Intention string `gorm:"type:varchar(255);not null" json:"intention"`

	//به نام چه کسی
	RecipientName string `gorm:"type:varchar(255)" json:"recipient_name"`

	//پیام همراه سند
	Message string `gorm:"type:text" json:"message"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
