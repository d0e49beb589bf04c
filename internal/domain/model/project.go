package model

import "time"

type ProjectStatus string

const (
	ProjectStatusRequested  ProjectStatus = "REQUESTED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusDelivered  ProjectStatus = "DELIVERED"
)

// درخواست پروژه وب که همراه خرید ثبت می‌شود
type Project struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID int64  `gorm:"not null;index" json:"user_id"`

	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Details string `gorm:"type:text" json:"details"`

	Status    ProjectStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
