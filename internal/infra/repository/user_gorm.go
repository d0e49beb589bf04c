package repository

import (
	"context"
	"errors"
	"time"

	"nakhlestan/internal/domain/model"
	domainrepo "nakhlestan/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *userGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// token_version را +1 می‌کند (ابطال همه نشست‌ها)
func (r *userGormRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// فلگ‌های باز شدن؛ پنجره کلید طلایی فقط جلو می‌رود، عقب نه.
func (r *userGormRepository) ApplyUnlockFlags(ctx context.Context, userID int64, addGardenerUses int64, goldenKeyExpires *time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", userID).
			First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainrepo.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if addGardenerUses > 0 {
			updates["ai_gardener_uses"] = u.AIGardenerUses + addGardenerUses
		}
		if goldenKeyExpires != nil {
			if u.GoldenKeyExpiresAt == nil || goldenKeyExpires.After(*u.GoldenKeyExpiresAt) {
				updates["golden_key_expires_at"] = *goldenKeyExpires
			}
		}
		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
	})
}

// union؛ ردیف تکراری نادیده گرفته می‌شود
func (r *userGormRepository) GrantTool(ctx context.Context, userID int64, toolID string) error {
	row := model.UnlockedTool{
		UserID:    userID,
		ToolID:    toolID,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *userGormRepository) ListTools(ctx context.Context, userID int64) ([]string, error) {
	var rows []model.UnlockedTool
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	tools := make([]string, 0, len(rows))
	for _, t := range rows {
		tools = append(tools, t.ToolID)
	}
	return tools, nil
}
