package model

import "time"

type TimelineEventType string

const (
	//کاشت نخل (صدور سند)
	TimelineEventPalmPlanted TimelineEventType = "palm_planted"

	//ثبت درخواست پروژه وب
	TimelineEventProjectRequested TimelineEventType = "project_requested"

	//باز شدن یک ابزار
	TimelineEventToolUnlocked TimelineEventType = "tool_unlocked"
)

// رویداد خط زمان کاربر؛ جدیدترین رویداد اول نمایش داده می‌شود.
type TimelineEvent struct {
	ID     string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID int64             `gorm:"not null;index" json:"user_id"`
	Type   TimelineEventType `gorm:"type:varchar(50);not null;index" json:"type"`

	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	//ارجاع به سند (برای palm_planted)
	DeedID string `gorm:"type:uuid" json:"deed_id"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
