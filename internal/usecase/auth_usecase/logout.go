package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"nakhlestan/internal/repository"
)

type LogoutInput struct {
	UserID            int64
	PlainRefreshToken string

	//true یعنی خروج از همه دستگاه‌ها
	Everywhere bool
}

type LogoutUsecase struct {
	userRepo repository.UserRepository
	rtRepo   repository.RefreshTokenRepository
	clock    Clock
}

func NewLogoutUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	clock Clock,
) *LogoutUsecase {
	return &LogoutUsecase{
		userRepo: userRepo,
		rtRepo:   rtRepo,
		clock:    clock,
	}
}

// Execute نشست فعلی (یا همه نشست‌ها) را می‌بندد. همیشه idempotent است.
func (u *LogoutUsecase) Execute(ctx context.Context, in LogoutInput) error {
	now := u.clock.Now()

	if in.PlainRefreshToken != "" {
		hash := sha256.Sum256([]byte(in.PlainRefreshToken))
		stored, err := u.rtRepo.FindByTokenHash(ctx, hex.EncodeToString(hash[:]))
		if err == nil && stored.UserID == in.UserID {
			if err := u.rtRepo.Revoke(ctx, stored.ID, now); err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return err
		}
	}

	if in.Everywhere {
		if err := u.rtRepo.DeleteAllByUserID(ctx, in.UserID); err != nil {
			return err
		}
		//نسخه توکن بالا می‌رود تا access tokenهای قبلی هم بی‌اعتبار شوند
		return u.userRepo.IncrementTokenVersion(ctx, in.UserID)
	}
	return nil
}
