package handler

import (
	"net/http"

	"nakhlestan/internal/config"
	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/middleware"
	"nakhlestan/internal/repository"
	"nakhlestan/internal/usecase"

	"github.com/labstack/echo/v4"
)

// اعتبارسنجی checkout و برآورد هزینه ارسال
type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	shippingUC *usecase.ShippingUsecase
	cartRepo   repository.CartRepository
	itemRepo   repository.CartItemRepository
}

// DI
func NewCheckoutHandler(
	checkoutUC *usecase.CheckoutUsecase,
	shippingUC *usecase.ShippingUsecase,
	cartRepo repository.CartRepository,
	itemRepo repository.CartItemRepository,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: checkoutUC,
		shippingUC: shippingUC,
		cartRepo:   cartRepo,
		itemRepo:   itemRepo,
	}
}

type AddressRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	PostalCode   string `json:"postal_code"`
	Unit         string `json:"unit"`
}

type DigitalAddressRequest struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	MessengerID string `json:"messenger_id"`
}

type ValidateCheckoutRequest struct {
	Address        *AddressRequest        `json:"address"`
	DigitalAddress *DigitalAddressRequest `json:"digital_address"`
}

type ShippingRatesRequest struct {
	Province string `json:"province"`
	City     string `json:"city"`

	//صفر یعنی وزن سبد فعلی مبنا قرار بگیرد
	WeightGrams int64 `json:"weight_grams"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("/validate", h.validate)
	g.POST("/shipping-rates", h.shippingRates)
}

func (h *CheckoutHandler) validate(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ValidateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items, err := h.loadCartItems(c, userID)
	if err != nil {
		return writeError(c, err)
	}

	var physical *model.Address
	if req.Address != nil {
		physical = &model.Address{
			Name:         req.Address.Name,
			Phone:        req.Address.Phone,
			Province:     req.Address.Province,
			City:         req.Address.City,
			Neighborhood: req.Address.Neighborhood,
			Street:       req.Address.Street,
			PostalCode:   req.Address.PostalCode,
			Unit:         req.Address.Unit,
		}
	}

	var digital *model.DigitalAddress
	if req.DigitalAddress != nil {
		digital = &model.DigitalAddress{
			Email:       req.DigitalAddress.Email,
			Phone:       req.DigitalAddress.Phone,
			MessengerID: req.DigitalAddress.MessengerID,
		}
	}

	out := h.checkoutUC.Classify(items, physical, digital)
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) shippingRates(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ShippingRatesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	weight := req.WeightGrams
	if weight <= 0 {
		items, err := h.loadCartItems(c, userID)
		if err != nil {
			return writeError(c, err)
		}
		for _, it := range items {
			weight += it.WeightSnapshot * it.Quantity
		}
	}

	rates, err := h.shippingUC.EstimateRates(c.Request().Context(), model.Address{
		Province: req.Province,
		City:     req.City,
	}, weight)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"rates": rates})
}

func (h *CheckoutHandler) loadCartItems(c echo.Context, userID int64) ([]model.CartItem, error) {
	ctx := c.Request().Context()

	cart, err := h.cartRepo.FindActiveByUserID(ctx, userID)
	if err == repository.ErrNotFound {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := h.itemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
