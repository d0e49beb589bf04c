package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nakhlestan/internal/config"
	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/handler"
	"nakhlestan/internal/infra/db"
	infraRepo "nakhlestan/internal/infra/repository"
	"nakhlestan/internal/payment"
	"nakhlestan/internal/persist"
	"nakhlestan/internal/server"
	"nakhlestan/internal/usecase"
	auth "nakhlestan/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"tv":   tokenVersion,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//در dev متغیرها از .env می‌آیند؛ در prod از محیط
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusHistory{},
		&model.Deed{},
		&model.TimelineEvent{},
		&model.Notification{},
		&model.PointsEntry{},
		&model.Project{},
		&model.UnlockedTool{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	//repositoryها (پیاده‌سازی GORM)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	ledgerRepo := infraRepo.NewLedgerGormRepository(gormDB)
	timelineRepo := infraRepo.NewTimelineGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	projectRepo := infraRepo.NewProjectGormRepository(gormDB)
	deedRepo := infraRepo.NewDeedGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	idGen := &uuidGenerator{}
	clock := &realClock{}

	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//درگاه پرداخت
	gatewayOpts := []payment.Option{}
	if cfg.PaymentMockMode {
		gatewayOpts = append(gatewayOpts, payment.WithMockMode())
	}
	gateway := payment.NewZarinpalClient(cfg.PaymentMerchantID, cfg.PaymentCallbackURL, gatewayOpts...)

	//صف ذخیره پس‌زمینه
	queue := persist.NewQueue(cfg.PersistQueueSize, 10*time.Second, logger)
	defer queue.Close()
	persister := persist.NewFulfillmentPersister(queue, txManager, logger, clock.Now)

	//usecaseها
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, rtRepo, verifier, issuer, idGen, clock, cfg.RefreshTTL)
	refreshUC := auth.NewRefreshUsecase(userRepo, rtRepo, issuer, idGen, clock, cfg.RefreshTTL)
	logoutUC := auth.NewLogoutUsecase(userRepo, rtRepo, clock)

	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase()
	shippingUC := usecase.NewShippingUsecase()
	fulfillmentUC := usecase.NewFulfillmentUsecase(clock, idGen, persister, nil)
	orderUC := usecase.NewOrderUsecase(txManager, addressRepo, userRepo, checkoutUC, fulfillmentUC, gateway, clock, idGen)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	profileUC := usecase.NewProfileUsecase(userRepo, ledgerRepo, timelineRepo, notificationRepo, projectRepo, deedRepo, clock)

	//handlerها
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC, refreshUC, logoutUC, cfg.RefreshTTL),
		Product:    handler.NewProductHandler(productUC),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC, shippingUC, cartRepo, cartItemRepo),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(orderUC),
		Address:    handler.NewAddressHandler(addressUC),
		Profile:    handler.NewProfileHandler(profileUC),
	}

	srv := server.New(cfg, logger, userRepo, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			logger.Warn("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
