package model

import "time"

// نوع امتیاز
type PointsType string

const (
	//امتیاز برکت (فعالیت و خرید)
	PointsTypeBarkat PointsType = "barkat"

	//امتیاز معنا (آگاهی و مشارکت)
	PointsTypeMana PointsType = "mana"
)

// ردیف دفتر امتیاز؛ فقط append می‌شود.
// موجودی نمایش داده شده همیشه باید جمع همین ردیف‌ها باشد؛
// هیچ تغییری در موجودی بدون ردیف متناظر مجاز نیست.
type PointsEntry struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//شرح عمل (مثلا «خرید سفارش ۱۲»)
	Action string `gorm:"type:varchar(255);not null" json:"action"`

	//دلتای علامت‌دار
	Points int64 `gorm:"not null" json:"points"`

	Type      PointsType `gorm:"type:varchar(20);not null;index" json:"type"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
}
