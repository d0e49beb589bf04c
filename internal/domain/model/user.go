package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Name         string `gorm:"type:varchar(255)" json:"name"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	TokenVersion int    `gorm:"not null;default:0" json:"-"`

	//موجودی امتیازها؛ همیشه برابر جمع ردیف‌های PointsEntry
	BarkatPoints int64 `gorm:"not null;default:0" json:"barkat_points"`
	ManaPoints   int64 `gorm:"not null;default:0" json:"mana_points"`

	//تعداد استفاده باقی‌مانده از باغبان هوشمند
	AIGardenerUses int64 `gorm:"not null;default:0" json:"ai_gardener_uses"`

	//پایان پنجره دسترسی کلید طلایی
	GoldenKeyExpiresAt *time.Time `json:"golden_key_expires_at"`

	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
