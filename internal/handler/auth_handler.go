package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"os"
	"time"

	"nakhlestan/internal/config"
	"nakhlestan/internal/middleware"
	"nakhlestan/internal/repository"
	auth "nakhlestan/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC   *auth.RegisterUserUsecase
	loginUC      *auth.LoginUsecase
	refreshUC    *auth.RefreshUsecase
	logoutUC     *auth.LogoutUsecase
	refreshTTL   time.Duration
	cookieSecure bool
}

// DI
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	refreshUC *auth.RefreshUsecase,
	logoutUC *auth.LogoutUsecase,
	refreshTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		refreshUC:    refreshUC,
		logoutUC:     logoutUC,
		refreshTTL:   refreshTTL,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Everywhere bool `json:"everywhere"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/refresh", h.refresh)

	g := e.Group("/auth")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("/logout", h.logout)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidEmailFormat, auth.ErrPasswordTooShort, auth.ErrWeakPassword:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
		case auth.ErrEmailAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "CONFLICT"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	//refresh token به User-Agent گره می‌خورد
	userAgent := c.Request().Header.Get("User-Agent")

	out, side, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: userAgent,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
		case auth.ErrUserInactive:
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "FORBIDDEN"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
		}
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)

	csrfToken, genErr := randomToken(32)
	if genErr != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
	}
	h.setCsrfCookie(c, csrfToken)

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	out, side, err := h.refreshUC.Execute(c.Request().Context(), auth.RefreshInput{
		PlainRefreshToken: cookie.Value,
		UserAgent:         c.Request().Header.Get("User-Agent"),
	})
	if err != nil {
		switch err {
		case auth.ErrRefreshTokenInvalid, auth.ErrUserInactive:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
		}
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	var req logoutRequest
	//بدنه اختیاری است
	_ = c.Bind(&req)

	plainRefresh := ""
	if cookie, err := c.Cookie("refresh"); err == nil {
		plainRefresh = cookie.Value
	}

	err := h.logoutUC.Execute(c.Request().Context(), auth.LogoutInput{
		UserID:            userID,
		PlainRefreshToken: plainRefresh,
		Everywhere:        req.Everywhere,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
	}

	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plainRefresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

// csrf برای فرانت خواندنی است (HttpOnly ندارد)
func (h *AuthHandler) setCsrfCookie(c echo.Context, csrfToken string) {
	c.SetCookie(&http.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func randomToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		bytesLen = 32
	}

	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
