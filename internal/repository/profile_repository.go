package repository

import (
	"context"

	"nakhlestan/internal/domain/model"
)

// دفتر امتیاز
type LedgerRepository interface {
	//ثبت ردیف و به‌روزرسانی موجودی در یک تراکنش.
	//موجودی جدا از تاریخچه تغییر نمی‌کند.
	AddPoints(ctx context.Context, entry model.PointsEntry) error

	ListByUserID(ctx context.Context, userID int64, limit int) ([]model.PointsEntry, error)
}

// خط زمان کاربر
type TimelineRepository interface {
	CreateBulk(ctx context.Context, events []model.TimelineEvent) error

	//جدیدترین اول
	ListByUserID(ctx context.Context, userID int64, limit int) ([]model.TimelineEvent, error)
}

type NotificationRepository interface {
	CreateBulk(ctx context.Context, notifications []model.Notification) error

	//جدیدترین اول
	ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Notification, error)

	MarkRead(ctx context.Context, userID int64, notificationID string) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p model.Project) error
	ListByUserID(ctx context.Context, userID int64) ([]model.Project, error)
}
