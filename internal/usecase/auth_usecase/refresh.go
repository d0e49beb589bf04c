package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/repository"
)

// توکن منقضی، مصرف شده یا باطل شده
var ErrRefreshTokenInvalid = errors.New("refresh token invalid")

type RefreshInput struct {
	PlainRefreshToken string
	UserAgent         string
}

type RefreshOutput struct {
	Token JwtAccessToken `json:"token"`
}

type RefreshSideEffect struct {
	PlainRefreshToken string
}

type RefreshUsecase struct {
	userRepo   repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewRefreshUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *RefreshUsecase {
	return &RefreshUsecase{
		userRepo:   userRepo,
		rtRepo:     rtRepo,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

// Execute با چرخش توکن: قبلی مصرف و یکی نو صادر می‌شود.
func (u *RefreshUsecase) Execute(ctx context.Context, in RefreshInput) (RefreshOutput, RefreshSideEffect, error) {
	var out RefreshOutput
	var side RefreshSideEffect

	if in.PlainRefreshToken == "" {
		return out, side, ErrRefreshTokenInvalid
	}

	hash := sha256.Sum256([]byte(in.PlainRefreshToken))
	tokenHash := hex.EncodeToString(hash[:])

	stored, err := u.rtRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return out, side, ErrRefreshTokenInvalid
		}
		return out, side, err
	}

	now := u.clock.Now()

	//استفاده دوباره از توکن مصرف شده نشانه سرقت است؛ همه نشست‌ها بسته می‌شوند
	if stored.UsedAt != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, stored.UserID)
		_ = u.userRepo.IncrementTokenVersion(ctx, stored.UserID)
		return out, side, ErrRefreshTokenInvalid
	}
	if stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return out, side, ErrRefreshTokenInvalid
	}

	user, err := u.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, side, ErrRefreshTokenInvalid
		}
		return out, side, err
	}
	if !user.IsActive {
		return out, side, ErrUserInactive
	}

	if err := u.rtRepo.MarkUsed(ctx, stored.ID, now); err != nil {
		return out, side, err
	}

	accessToken, accessExp, err := u.issuer.Issue(user.ID, user.Role, user.TokenVersion, now)
	if err != nil {
		return out, side, err
	}

	plainRefresh, err := generateSecureToken(32)
	if err != nil {
		return out, side, err
	}
	newHash := sha256.Sum256([]byte(plainRefresh))

	next := &model.RefreshToken{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(newHash[:]),
		UserAgent: in.UserAgent,
		ExpiresAt: now.Add(u.refreshTTL),
		CreatedAt: now,
	}
	if err := u.rtRepo.Create(ctx, next); err != nil {
		return out, side, err
	}

	out.Token = JwtAccessToken{
		AccessToken:  accessToken,
		ExpiresIn:    int(accessExp.Sub(now).Seconds()),
		TokenVersion: user.TokenVersion,
	}
	side.PlainRefreshToken = plainRefresh
	return out, side, nil
}
