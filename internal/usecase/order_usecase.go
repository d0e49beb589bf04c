package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"
)

// درگاه پرداخت دو مرحله‌ای (درخواست → هدایت کاربر → تایید)
type PaymentGateway interface {
	Request(ctx context.Context, amount int64, description string, email string, mobile string) (authority string, redirectURL string, err error)
	Verify(ctx context.Context, amount int64, authority string) (refID string, err error)
}

type OrderUsecase struct {
	tx          repo.TransactionManager
	addresses   repo.AddressRepository
	users       repo.UserRepository
	checkout    *CheckoutUsecase
	fulfillment *FulfillmentUsecase
	gateway     PaymentGateway
	clock       Clock
	idGen       IDGenerator
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	addresses repo.AddressRepository,
	users repo.UserRepository,
	checkout *CheckoutUsecase,
	fulfillment *FulfillmentUsecase,
	gateway PaymentGateway,
	clock Clock,
	idGen IDGenerator,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		addresses:   addresses,
		users:       users,
		checkout:    checkout,
		fulfillment: fulfillment,
		gateway:     gateway,
		clock:       clock,
		idGen:       idGen,
	}
}

// نیت و پیام سند برای یک محصول میراث
type DeedRequest struct {
	ProductID     int64  `json:"product_id"`
	Intention     string `json:"intention"`
	RecipientName string `json:"recipient_name"`
	Message       string `json:"message"`
}

type PlaceOrderInput struct {
	//صفر یعنی سفارش بدون قلم فیزیکی
	AddressID int64

	Digital        *model.DigitalAddress
	IdempotencyKey string

	DeedRequests []DeedRequest

	//شرح درخواست پروژه وب (برای قلم خدمات)
	ProjectDetails string
}

type OrderItemOutput struct {
	ProductID int64              `json:"product_id"`
	Name      string             `json:"name"`
	Category  model.ItemCategory `json:"category"`
	Price     int64              `json:"price"`
	Quantity  int64              `json:"quantity"`
}

type OrderOutput struct {
	ID           int64                      `json:"id"`
	UserID       int64                      `json:"user_id"`
	Status       string                     `json:"status"`
	DeliveryType model.DeliveryType         `json:"delivery_type"`
	TotalPrice   int64                      `json:"total_price"`
	ShippingCost int64                      `json:"shipping_cost"`
	CreatedAt    time.Time                  `json:"created_at"`
	Items        []OrderItemOutput          `json:"items"`
	Deeds        []model.Deed               `json:"deeds"`
	History      []model.OrderStatusHistory `json:"history,omitempty"`
}

// PlaceOrder سبد فعال را به سفارش PENDING تبدیل می‌کند.
// کل مسیر داخل یک تراکنش است و کلید idempotency از ثبت دوباره جلوگیری می‌کند.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	//آدرس پستی (اگر داده شده) باید مال همین کاربر باشد
	var physical *model.Address
	if in.AddressID > 0 {
		addr, err := u.addresses.FindByID(ctx, in.AddressID)
		if err == repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if addr.UserID != userID {
			return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
		}
		physical = &addr
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//کلید تکراری همان سفارش قبلی را برمی‌گرداند
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			deeds, err := r.Deeds().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items, deeds)
			return nil
		}

		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//دسته‌بندی و اعتبارسنجی؛ خطاها یک‌جا به کاربر برمی‌گردند
		cv := u.checkout.Classify(cartItems, physical, in.Digital)
		if !cv.IsValid {
			return NewHTTPError(http.StatusBadRequest, strings.Join(cv.Errors, "؛ "))
		}

		now := u.clock.Now()

		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var itemsTotal int64 = 0
		projectAttached := false

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound || (err == nil && !p.IsActive) {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//موجودی در لحظه ثبت دوباره چک و کم می‌شود
			ok, err := r.Products().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "out of stock")
			}

			item := model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   ci.UnitPriceSnapshot,
				PointsSnapshot:      ci.PointsSnapshot,
				CategorySnapshot:    ci.CategorySnapshot,
				UnlocksFeatureID:    p.UnlocksFeatureID,
				Quantity:            ci.Quantity,
				CreatedAt:           now,
			}

			//شرح پروژه به اولین قلم خدمات می‌چسبد
			if !projectAttached && in.ProjectDetails != "" && ci.CategorySnapshot == model.CategoryService {
				item.ProjectPayload = in.ProjectDetails
				projectAttached = true
			}

			orderItems = append(orderItems, item)
			itemsTotal += ci.UnitPriceSnapshot * ci.Quantity
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:         userID,
			AddressID:      in.AddressID,
			DeliveryType:   cv.DeliveryType,
			Status:         model.OrderStatusPending,
			TotalPrice:     itemsTotal + cv.ShippingCost,
			ShippingCost:   cv.ShippingCost,
			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			//برخورد همزمان روی کلید؛ همان نتیجه قبلی برگردد
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				deeds2, err4 := r.Deeds().ListByOrderID(ctx, ex2.ID)
				if err4 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toOrderOutput(ex2, items2, deeds2)
				return nil
			}
			return NewHTTPError(http.StatusBadRequest, "idempotency conflict")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//به ازای هر نهال میراث یک سند (هر واحد یک نخل)
		deeds := u.buildDeeds(orderID, userID, orderItems, in.DeedRequests, now)
		if err := r.Deeds().CreateBulk(ctx, deeds); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().AppendStatusHistory(ctx, model.OrderStatusHistory{
			OrderID:   orderID,
			ToStatus:  model.OrderStatusPending,
			Note:      "ثبت سفارش",
			CreatedAt: now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:           orderID,
			UserID:       userID,
			AddressID:    in.AddressID,
			DeliveryType: cv.DeliveryType,
			Status:       model.OrderStatusPending,
			TotalPrice:   itemsTotal + cv.ShippingCost,
			ShippingCost: cv.ShippingCost,
			CreatedAt:    now,
		}
		out = toOrderOutput(created, orderItems, deeds)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ساخت سندها؛ نیت از درخواست کاربر می‌آید، وگرنه نیت پیش‌فرض
func (u *OrderUsecase) buildDeeds(orderID int64, userID int64, items []model.OrderItem, reqs []DeedRequest, now time.Time) []model.Deed {
	byProduct := map[int64]DeedRequest{}
	for _, dr := range reqs {
		byProduct[dr.ProductID] = dr
	}

	deeds := []model.Deed{}
	for _, it := range items {
		if it.CategorySnapshot != model.CategoryHeritage {
			continue
		}

		dr := byProduct[it.ProductID]
		intention := strings.TrimSpace(dr.Intention)
		if intention == "" {
			intention = "آبادانی نخلستان"
		}

		for q := int64(0); q < it.Quantity; q++ {
			deeds = append(deeds, model.Deed{
				ID:            u.idGen.NewID(),
				OrderID:       orderID,
				OrderItemID:   it.ID,
				UserID:        userID,
				Intention:     intention,
				RecipientName: strings.TrimSpace(dr.RecipientName),
				Message:       strings.TrimSpace(dr.Message),
				CreatedAt:     now,
			})
		}
	}
	return deeds
}

type StartPaymentOutput struct {
	Authority   string `json:"authority"`
	RedirectURL string `json:"redirect_url"`
}

// StartPayment مبلغ سفارش را به درگاه می‌فرستد و آدرس هدایت را برمی‌گرداند.
func (u *OrderUsecase) StartPayment(ctx context.Context, userID int64, orderID int64) (StartPaymentOutput, error) {
	if userID <= 0 {
		return StartPaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out StartPaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "order not payable")
		}

		user, err := u.users.FindByID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		desc := fmt.Sprintf("سفارش %d نخلستان معنا", o.ID)
		authority, redirectURL, err := u.gateway.Request(ctx, o.TotalPrice, desc, user.Email, "")
		if err != nil {
			return NewHTTPError(http.StatusBadGateway, "payment gateway error")
		}

		if err := r.Orders().SetPaymentAuthority(ctx, o.ID, authority); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = StartPaymentOutput{Authority: authority, RedirectURL: redirectURL}
		return nil
	})

	if err != nil {
		return StartPaymentOutput{}, err
	}
	return out, nil
}

type VerifyPaymentOutput struct {
	Order        OrderOutput `json:"order"`
	RefID        string      `json:"ref_id"`
	PointsEarned int64       `json:"points_earned"`
}

// VerifyPayment نتیجه درگاه را تایید، سفارش را PAID و حسابداری را اجرا می‌کند.
func (u *OrderUsecase) VerifyPayment(ctx context.Context, userID int64, orderID int64, authority string) (VerifyPaymentOutput, error) {
	if userID <= 0 {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(authority) == "" {
		return VerifyPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid authority")
	}

	var out VerifyPaymentOutput
	var paidOrder model.Order
	var items []model.OrderItem
	var deeds []model.Deed

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "order not payable")
		}
		if o.PaymentAuthority == "" || o.PaymentAuthority != authority {
			return NewHTTPError(http.StatusBadRequest, "authority mismatch")
		}

		refID, err := u.gateway.Verify(ctx, o.TotalPrice, authority)
		if err != nil {
			return NewHTTPError(http.StatusBadGateway, "payment not verified")
		}

		now := u.clock.Now()

		if err := r.Orders().SetPaymentRef(ctx, o.ID, refID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusPaid); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().AppendStatusHistory(ctx, model.OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: model.OrderStatusPending,
			ToStatus:   model.OrderStatusPaid,
			Note:       "پرداخت موفق " + refID,
			CreatedAt:  now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err = r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		deeds, err = r.Deeds().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusPaid
		o.PaymentRefID = refID
		paidOrder = o
		out.RefID = refID
		return nil
	})

	if err != nil {
		return VerifyPaymentOutput{}, err
	}

	//snapshot کاربر برای حسابدار
	snap, err := u.loadUserSnapshot(ctx, userID)
	if err != nil {
		return VerifyPaymentOutput{}, err
	}

	res := u.fulfillment.Fulfill(snap, FulfillmentInput{
		Order: paidOrder,
		Items: items,
		Deeds: deeds,
	})

	out.Order = toOrderOutput(paidOrder, items, deeds)
	out.PointsEarned = res.PointsEarned
	return out, nil
}

func (u *OrderUsecase) loadUserSnapshot(ctx context.Context, userID int64) (*UserSnapshot, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		//کاربر مهمان: سفارش هست ولی حسابی نیست
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	tools, err := u.users.ListTools(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &UserSnapshot{
		User:          *user,
		UnlockedTools: tools,
	}, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			deeds, err := r.Deeds().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items, deeds))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//سفارش دیگران «وجود ندارد»
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		deeds, err := r.Deeds().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		history, err := r.Orders().ListStatusHistory(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, deeds)
		out.History = history
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// لغو توسط خود کاربر؛ فقط از مراحل اولیه
func (u *OrderUsecase) CancelMyOrder(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if !model.CanTransition(o.Status, model.OrderStatusCancelled) {
			return NewHTTPError(http.StatusBadRequest, "invalid transition")
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return r.Orders().AppendStatusHistory(ctx, model.OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: o.Status,
			ToStatus:   model.OrderStatusCancelled,
			ChangedBy:  userID,
			Note:       "لغو توسط کاربر",
			CreatedAt:  u.clock.Now(),
		})
	})
}

// تغییر وضعیت توسط مدیر؛ گذار نامعتبر رد می‌شود
func (u *OrderUsecase) AdminUpdateOrderStatus(ctx context.Context, adminID int64, orderID int64, to model.OrderStatus, note string) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	switch to {
	case model.OrderStatusPaid, model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusCompleted, model.OrderStatusCancelled:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !model.CanTransition(o.Status, to) {
			return NewHTTPError(http.StatusBadRequest, "invalid transition")
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, to); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return r.Orders().AppendStatusHistory(ctx, model.OrderStatusHistory{
			OrderID:    o.ID,
			FromStatus: o.Status,
			ToStatus:   to,
			ChangedBy:  adminID,
			Note:       strings.TrimSpace(note),
			CreatedAt:  u.clock.Now(),
		})
	})
}

type AdminOrderListInput struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
}

func (u *OrderUsecase) AdminListOrders(ctx context.Context, adminID int64, in AdminOrderListInput) ([]OrderOutput, int64, error) {
	if adminID <= 0 {
		return nil, 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 50
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, t, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			Page:   in.Page,
			Limit:  in.Limit,
			Status: in.Status,
			UserID: in.UserID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		total = t

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items, nil))
		}
		return nil
	})

	if err != nil {
		return nil, 0, err
	}
	return outs, total, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem, deeds []model.Deed) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Category:  it.CategorySnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	if deeds == nil {
		deeds = []model.Deed{}
	}

	return OrderOutput{
		ID:           o.ID,
		UserID:       o.UserID,
		Status:       string(o.Status),
		DeliveryType: o.DeliveryType,
		TotalPrice:   o.TotalPrice,
		ShippingCost: o.ShippingCost,
		CreatedAt:    o.CreatedAt,
		Items:        outItems,
		Deeds:        deeds,
	}
}
