package handler

import (
	"net/http"
	"strconv"

	"nakhlestan/internal/config"
	"nakhlestan/internal/middleware"
	"nakhlestan/internal/repository"
	"nakhlestan/internal/usecase"

	"github.com/labstack/echo/v4"
)

// پروفایل: حساب، خط زمان، امتیازها، اعلان‌ها، سندها و پروژه‌ها
type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

// DI
func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/me")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.GET("", h.profile)
	g.GET("/timeline", h.timeline)
	g.GET("/points", h.points)
	g.GET("/notifications", h.notifications)
	g.POST("/notifications/:id/read", h.markNotificationRead)
	g.GET("/deeds", h.deeds)
	g.GET("/projects", h.projects)
}

func (h *ProfileHandler) profile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) timeline(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	limit := parseLimit(c, 50)

	out, err := h.uc.ListTimeline(c.Request().Context(), userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"events": out})
}

func (h *ProfileHandler) points(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	limit := parseLimit(c, 50)

	out, err := h.uc.ListPointsHistory(c.Request().Context(), userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"entries": out})
}

func (h *ProfileHandler) notifications(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	limit := parseLimit(c, 50)

	out, err := h.uc.ListNotifications(c.Request().Context(), userID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"notifications": out})
}

func (h *ProfileHandler) markNotificationRead(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.MarkNotificationRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProfileHandler) deeds(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyDeeds(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"deeds": out})
}

func (h *ProfileHandler) projects(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyProjects(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"projects": out})
}

func parseLimit(c echo.Context, def int) int {
	v := c.QueryParam("limit")
	if v == "" {
		return def
	}
	l, err := strconv.Atoi(v)
	if err != nil || l < 1 {
		return def
	}
	return l
}
