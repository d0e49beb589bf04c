package repository

import (
	"context"
	"errors"
	"time"

	"nakhlestan/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// ذخیره و ابطال refresh token
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error
	Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error
	DeleteAllByUserID(ctx context.Context, userID int64) error
}
