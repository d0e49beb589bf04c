package server

import (
	"context"
	"net/http"
	"time"

	"nakhlestan/internal/config"
	"nakhlestan/internal/handler"
	"nakhlestan/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handlers همه‌ی handlerهایی که route ثبت می‌کنند
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	Address    *handler.AddressHandler
	Profile    *handler.ProfileHandler
}

type Server struct {
	echo   *echo.Echo
	cfg    config.Config
	logger *zap.Logger
}

func New(cfg config.Config, logger *zap.Logger, userRepo repository.UserRepository, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	//log ساخت‌یافته برای هر request
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Checkout.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.Address.RegisterRoutes(e, cfg, userRepo)
	h.Profile.RegisterRoutes(e, cfg, userRepo)

	return &Server{echo: e, cfg: cfg, logger: logger}
}

func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("port", s.cfg.Port))
	return s.echo.Start(":" + s.cfg.Port)
}

// Shutdown تا ده ثانیه به requestهای در جریان فرصت می‌دهد.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
