package model

import "time"

// اعلان کاربر؛ مثل خط زمان، جدیدترین اول.
type Notification struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID int64  `gorm:"not null;index" json:"user_id"`

	Type    string `gorm:"type:varchar(50);not null" json:"type"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	ReadAt    *time.Time `gorm:"index" json:"read_at"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
}
