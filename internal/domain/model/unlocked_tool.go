package model

import "time"

// ابزار باز شده برای کاربر.
// (user_id, tool_id) یکتا است تا اضافه شدن تکراری idempotent بماند.
type UnlockedTool struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_user_tool" json:"user_id"`
	ToolID    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_tool" json:"tool_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
