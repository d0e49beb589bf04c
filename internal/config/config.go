package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// تنظیمات کل برنامه
type Config struct {
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int

	//secret امضای JWT
	JWTSecret string

	//طول عمر refresh token
	RefreshTTL time.Duration

	//درگاه پرداخت
	PaymentMerchantID  string
	PaymentCallbackURL string
	PaymentMockMode    bool

	//اندازه صف ذخیره پس‌زمینه
	PersistQueueSize int

	GoEnv     string // dev/prod
	APIDomain string
	FEURL     string // مبدا فرانت برای CORS
}

// Load از متغیرهای محیطی می‌خواند؛ مقدار لازم که نباشد خطا می‌دهد.
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		RefreshTTL: 30 * 24 * time.Hour,

		PaymentMerchantID:  os.Getenv("PAYMENT_MERCHANT_ID"),
		PaymentCallbackURL: os.Getenv("PAYMENT_CALLBACK_URL"),
		PaymentMockMode:    os.Getenv("PAYMENT_MOCK_MODE") == "true",

		PersistQueueSize: 256,

		GoEnv:     os.Getenv("GO_ENV"),
		APIDomain: os.Getenv("API_DOMAIN"),
		FEURL:     os.Getenv("FE_URL"),
	}

	if v := os.Getenv("REFRESH_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("REFRESH_TTL_HOURS must be a positive number")
		}
		cfg.RefreshTTL = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("PERSIST_QUEUE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("PERSIST_QUEUE_SIZE must be a positive number")
		}
		cfg.PersistQueueSize = size
	}

	//موارد اجباری
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PaymentMerchantID == "" && !cfg.PaymentMockMode {
		return Config{}, fmt.Errorf("PAYMENT_MERCHANT_ID is required (or set PAYMENT_MOCK_MODE=true)")
	}
	if cfg.PaymentCallbackURL == "" && !cfg.PaymentMockMode {
		return Config{}, fmt.Errorf("PAYMENT_CALLBACK_URL is required (or set PAYMENT_MOCK_MODE=true)")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.APIDomain == "" {
		return Config{}, fmt.Errorf("API_DOMAIN is required")
	}
	if cfg.FEURL == "" {
		return Config{}, fmt.Errorf("FE_URL is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
