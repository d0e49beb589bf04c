package handler

import (
	"net/http"
	"strconv"

	"nakhlestan/internal/config"
	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/middleware"
	"nakhlestan/internal/repository"
	"nakhlestan/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HTTP سفارش‌ها: ثبت، پرداخت، فهرست و لغو
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type PlaceOrderRequest struct {
	AddressID      int64                  `json:"address_id"`
	DigitalAddress *DigitalAddressRequest `json:"digital_address"`
	IdempotencyKey string                 `json:"idempotency_key"`
	Deeds          []DeedRequestBody      `json:"deeds"`
	ProjectDetails string                 `json:"project_details"`
}

type DeedRequestBody struct {
	ProductID     int64  `json:"product_id"`
	Intention     string `json:"intention"`
	RecipientName string `json:"recipient_name"`
	Message       string `json:"message"`
}

type VerifyPaymentRequest struct {
	Authority string `json:"authority"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("", h.placeOrder)
	g.GET("", h.listOrders)
	g.GET("/:id", h.orderDetail)
	g.POST("/:id/pay", h.startPayment)
	g.POST("/:id/verify", h.verifyPayment)
	g.POST("/:id/cancel", h.cancelOrder)
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//کلید از هدر هم پذیرفته می‌شود
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.Request().Header.Get("Idempotency-Key")
	}

	var digital *model.DigitalAddress
	if req.DigitalAddress != nil {
		digital = &model.DigitalAddress{
			Email:       req.DigitalAddress.Email,
			Phone:       req.DigitalAddress.Phone,
			MessengerID: req.DigitalAddress.MessengerID,
		}
	}

	deeds := make([]usecase.DeedRequest, 0, len(req.Deeds))
	for _, d := range req.Deeds {
		deeds = append(deeds, usecase.DeedRequest{
			ProductID:     d.ProductID,
			Intention:     d.Intention,
			RecipientName: d.RecipientName,
			Message:       d.Message,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		AddressID:      req.AddressID,
		Digital:        digital,
		IdempotencyKey: req.IdempotencyKey,
		DeedRequests:   deeds,
		ProjectDetails: req.ProjectDetails,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"orders": out})
}

func (h *OrderHandler) orderDetail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) startPayment(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.StartPayment(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) verifyPayment(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.VerifyPayment(c.Request().Context(), userID, orderID, req.Authority)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancelOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.CancelMyOrder(c.Request().Context(), userID, orderID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
