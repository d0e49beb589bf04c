package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
}

type RegisterUserOutput struct {
	User model.User
}

var (
	//ورودی نامعتبر
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")

	//تعارض
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// از رمز عبور خام hash می‌سازد.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// تولید شناسه (UUID)
type IDGenerator interface {
	NewID() string
}

// زمان فعلی
type Clock interface {
	Now() time.Time
}

type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
	}
}

func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	if !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	//حداقل ۱۲ نویسه
	if len(in.Password) < 12 {
		return out, ErrPasswordTooShort
	}

	if isWeakPassword(in.Password) {
		return out, ErrWeakPassword
	}

	existing, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()

	user := &model.User{
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		PasswordHash: hashed,
		Name:         strings.TrimSpace(in.Name),
		Role:         model.RoleUser,
		TokenVersion: 0,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	//رمز در پاسخ برنمی‌گردد
	safeUser := *user
	safeUser.PasswordHash = ""

	out.User = safeUser
	return out, nil
}

func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// رمزهای رایج و ضعیف رد می‌شوند
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":     {},
		"password123":  {},
		"123456789012": {},
		"1234567890":   {},
		"12345678":     {},
		"qwerty":       {},
		"qwertyuiop":   {},
		"letmein":      {},
		"admin":        {},
		"admin123":     {},
	}

	_, ok := weak[normalized]
	return ok
}

// hash با bcrypt
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// مقایسه hash و رمز خام
type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
