package repository

import (
	"context"
	"errors"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerGormRepository struct {
	db *gorm.DB
}

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

// ردیف دفتر و موجودی در یک تراکنش نوشته می‌شوند؛
// موجودی نمایشی همیشه جمع ردیف‌ها می‌ماند.
func (r *LedgerGormRepository) AddPoints(ctx context.Context, entry model.PointsEntry) error {
	var column string
	switch entry.Type {
	case model.PointsTypeBarkat:
		column = "barkat_points"
	case model.PointsTypeMana:
		column = "mana_points"
	default:
		return errors.New("unknown points type")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		res := tx.Model(&model.User{}).
			Where("id = ?", entry.UserID).
			UpdateColumn(column, gorm.Expr(column+" + ?", entry.Points))

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrUserNotFound
		}
		return nil
	})
}

func (r *LedgerGormRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.PointsEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var entries []model.PointsEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return []model.PointsEntry{}, err
	}
	return entries, nil
}

type TimelineGormRepository struct {
	db *gorm.DB
}

func NewTimelineGormRepository(db *gorm.DB) *TimelineGormRepository {
	return &TimelineGormRepository{db: db}
}

func (r *TimelineGormRepository) CreateBulk(ctx context.Context, events []model.TimelineEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

// جدیدترین اول
func (r *TimelineGormRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.TimelineEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var events []model.TimelineEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return []model.TimelineEvent{}, err
	}
	return events, nil
}

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateBulk(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}

// جدیدترین اول
func (r *NotificationGormRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var items []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Notification{}, err
	}
	return items, nil
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, userID int64, notificationID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", gorm.Expr("now()"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type ProjectGormRepository struct {
	db *gorm.DB
}

func NewProjectGormRepository(db *gorm.DB) *ProjectGormRepository {
	return &ProjectGormRepository{db: db}
}

func (r *ProjectGormRepository) Create(ctx context.Context, p model.Project) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error
}

func (r *ProjectGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Project, error) {
	var items []model.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Project{}, err
	}
	return items, nil
}
