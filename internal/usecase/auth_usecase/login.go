package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/repository"
)

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
}

type JwtAccessToken struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

type LoginOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
}

// مقداری که handler در Cookie می‌گذارد
type LoginSideEffect struct {
	PlainRefreshToken string
}

// ایمیل یا رمز اشتباه
var ErrInvalidCredentials = errors.New("invalid credentials")

// کاربر غیرفعال شده
var ErrUserInactive = errors.New("user is inactive")

// صدور JWT
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (token string, expiresAt time.Time, err error)
}

// مقایسه رمز ورودی با hash ذخیره شده
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	userRepo   repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	verifier   PasswordVerifier
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:   userRepo,
		rtRepo:     rtRepo,
		verifier:   verifier,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, LoginSideEffect, error) {
	var out LoginOutput
	var side LoginSideEffect

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, side, ErrInvalidCredentials
		}
		return out, side, err
	}

	if !user.IsActive {
		return out, side, ErrUserInactive
	}

	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, side, ErrInvalidCredentials
	}

	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(user.ID, user.Role, user.TokenVersion, now)
	if err != nil {
		return out, side, err
	}

	//refresh token خام فقط یک بار برمی‌گردد؛ در DB فقط hash آن می‌ماند
	plainRefresh, err := generateSecureToken(32)
	if err != nil {
		return out, side, err
	}
	hash := sha256.Sum256([]byte(plainRefresh))
	refreshHash := hex.EncodeToString(hash[:])

	refresh := &model.RefreshToken{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		TokenHash: refreshHash,
		UserAgent: in.UserAgent,
		ExpiresAt: now.Add(u.refreshTTL),
		UsedAt:    nil,
		RevokedAt: nil,
		CreatedAt: now,
	}

	if err := u.rtRepo.Create(ctx, refresh); err != nil {
		return out, side, err
	}

	user.LastLoginAt = &now
	if err := u.userRepo.Update(ctx, user); err != nil {
		return out, side, err
	}

	safeUser := *user
	safeUser.PasswordHash = ""

	out.User = safeUser
	out.Token = JwtAccessToken{
		AccessToken:  accessToken,
		ExpiresIn:    int(accessExp.Sub(now).Seconds()),
		TokenVersion: user.TokenVersion,
	}

	side.PlainRefreshToken = plainRefresh
	return out, side, nil
}

func generateSecureToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", fmt.Errorf("bytesLen must be positive")
	}

	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
