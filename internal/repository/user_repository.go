package repository

import (
	"context"
	"errors"
	"time"

	"nakhlestan/internal/domain/model"
)

// خطای یکسان برای «کاربر پیدا نشد»
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	//ایجاد کاربر جدید
	Create(ctx context.Context, user *model.User) error

	//یافتن کاربر با شناسه
	FindByID(ctx context.Context, userID int64) (*model.User, error)

	//یافتن کاربر با ایمیل
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	//به‌روزرسانی پروفایل (آخرین ورود، نام و ...)
	Update(ctx context.Context, user *model.User) error

	//افزایش نسخه توکن (خروج اجباری از همه نشست‌ها)
	IncrementTokenVersion(ctx context.Context, userID int64) error

	//اعمال فلگ‌های باز شدن ابزارها روی کاربر.
	//uses روی مقدار فعلی اضافه می‌شود؛ expires فقط وقتی جلوتر باشد جایگزین می‌شود.
	ApplyUnlockFlags(ctx context.Context, userID int64, addGardenerUses int64, goldenKeyExpires *time.Time) error

	//ثبت ابزار باز شده؛ اگر قبلا ثبت شده بود بی‌اثر است (union)
	GrantTool(ctx context.Context, userID int64, toolID string) error

	//ابزارهای باز شده کاربر
	ListTools(ctx context.Context, userID int64) ([]string, error)
}
