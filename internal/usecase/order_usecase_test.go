package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"
	"nakhlestan/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// پیاده‌سازی درون‌حافظه‌ای repositoryها برای تست سناریوهای سفارش.
// همه داده‌ها در یک struct مشترک‌اند و WithinTx همان store را می‌دهد.
type memStore struct {
	orderSeq   int64
	orders     map[int64]model.Order
	orderItems map[int64][]model.OrderItem
	deeds      map[int64][]model.Deed
	histories  map[int64][]model.OrderStatusHistory

	cartSeq     int64
	cartItemSeq int64
	carts       map[int64]model.Cart
	cartItems   map[int64][]model.CartItem

	products  map[int64]model.Product
	users     map[int64]model.User
	tools     map[int64][]string
	addresses map[int64]model.Address

	ledger   []model.PointsEntry
	timeline []model.TimelineEvent
	notifs   []model.Notification
	projects []model.Project
}

func newMemStore() *memStore {
	return &memStore{
		orders:     map[int64]model.Order{},
		orderItems: map[int64][]model.OrderItem{},
		deeds:      map[int64][]model.Deed{},
		histories:  map[int64][]model.OrderStatusHistory{},
		carts:      map[int64]model.Cart{},
		cartItems:  map[int64][]model.CartItem{},
		products:   map[int64]model.Product{},
		users:      map[int64]model.User{},
		tools:      map[int64][]string{},
		addresses:  map[int64]model.Address{},
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s)
}

func (s *memStore) Orders() repo.OrderRepository             { return memOrders{s} }
func (s *memStore) OrderItems() repo.OrderItemRepository     { return memOrderItems{s} }
func (s *memStore) Deeds() repo.DeedRepository               { return memDeeds{s} }
func (s *memStore) Carts() repo.CartRepository               { return memCarts{s} }
func (s *memStore) CartItems() repo.CartItemRepository       { return memCartItems{s} }
func (s *memStore) Products() repo.ProductRepository         { return memProducts{s} }
func (s *memStore) Users() repo.UserRepository               { return memUsers{s} }
func (s *memStore) Ledger() repo.LedgerRepository            { return memLedger{s} }
func (s *memStore) Timeline() repo.TimelineRepository        { return memTimeline{s} }
func (s *memStore) Notifications() repo.NotificationRepository { return memNotifications{s} }
func (s *memStore) Projects() repo.ProjectRepository         { return memProjects{s} }

type memOrders struct{ s *memStore }

func (m memOrders) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := m.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (m memOrders) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	out := []model.Order{}
	for _, o := range m.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (m memOrders) Create(ctx context.Context, order model.Order) (int64, error) {
	for _, o := range m.s.orders {
		if o.UserID == order.UserID && o.IdempotencyKey == order.IdempotencyKey {
			return 0, fmt.Errorf("duplicate idempotency key")
		}
	}
	m.s.orderSeq++
	order.ID = m.s.orderSeq
	m.s.orders[order.ID] = order
	return order.ID, nil
}

func (m memOrders) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := m.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	m.s.orders[orderID] = o
	return nil
}

func (m memOrders) SetPaymentAuthority(ctx context.Context, orderID int64, authority string) error {
	o := m.s.orders[orderID]
	o.PaymentAuthority = authority
	m.s.orders[orderID] = o
	return nil
}

func (m memOrders) SetPaymentRef(ctx context.Context, orderID int64, refID string) error {
	o := m.s.orders[orderID]
	o.PaymentRefID = refID
	m.s.orders[orderID] = o
	return nil
}

func (m memOrders) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	for _, o := range m.s.orders {
		if o.UserID == userID && o.IdempotencyKey == key {
			return o, true, nil
		}
	}
	return model.Order{}, false, nil
}

func (m memOrders) AppendStatusHistory(ctx context.Context, h model.OrderStatusHistory) error {
	m.s.histories[h.OrderID] = append(m.s.histories[h.OrderID], h)
	return nil
}

func (m memOrders) ListStatusHistory(ctx context.Context, orderID int64) ([]model.OrderStatusHistory, error) {
	return m.s.histories[orderID], nil
}

func (m memOrders) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	out := []model.Order{}
	for _, o := range m.s.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

type memOrderItems struct{ s *memStore }

func (m memOrderItems) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		it.OrderID = orderID
		m.s.orderItems[orderID] = append(m.s.orderItems[orderID], it)
	}
	return nil
}

func (m memOrderItems) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return m.s.orderItems[orderID], nil
}

type memDeeds struct{ s *memStore }

func (m memDeeds) CreateBulk(ctx context.Context, deeds []model.Deed) error {
	for _, d := range deeds {
		m.s.deeds[d.OrderID] = append(m.s.deeds[d.OrderID], d)
	}
	return nil
}

func (m memDeeds) ListByOrderID(ctx context.Context, orderID int64) ([]model.Deed, error) {
	return m.s.deeds[orderID], nil
}

func (m memDeeds) ListByUserID(ctx context.Context, userID int64) ([]model.Deed, error) {
	out := []model.Deed{}
	for _, ds := range m.s.deeds {
		for _, d := range ds {
			if d.UserID == userID {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

type memCarts struct{ s *memStore }

func (m memCarts) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	c, err := m.FindActiveByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	m.s.cartSeq++
	c = model.Cart{ID: m.s.cartSeq, UserID: userID, Status: model.CartStatusActive}
	m.s.carts[c.ID] = c
	return c, nil
}

func (m memCarts) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	for _, c := range m.s.carts {
		if c.UserID == userID && c.Status == model.CartStatusActive {
			return c, nil
		}
	}
	return model.Cart{}, repo.ErrNotFound
}

func (m memCarts) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	c, ok := m.s.carts[cartID]
	if !ok {
		return repo.ErrNotFound
	}
	c.Status = status
	m.s.carts[cartID] = c
	return nil
}

func (m memCarts) Clear(ctx context.Context, cartID int64) error {
	delete(m.s.cartItems, cartID)
	return nil
}

type memCartItems struct{ s *memStore }

func (m memCartItems) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	return m.s.cartItems[cartID], nil
}

func (m memCartItems) UpsertByCartAndProduct(ctx context.Context, cartID int64, p model.Product, addQty int64) error {
	items := m.s.cartItems[cartID]
	for i, it := range items {
		if it.ProductID == p.ID {
			items[i].Quantity += addQty
			return nil
		}
	}
	m.s.cartItemSeq++
	m.s.cartItems[cartID] = append(items, model.CartItem{
		ID:                m.s.cartItemSeq,
		CartID:            cartID,
		ProductID:         p.ID,
		Quantity:          addQty,
		UnitPriceSnapshot: p.Price,
		PointsSnapshot:    p.Points,
		CategorySnapshot:  p.Category,
		WeightSnapshot:    p.WeightGrams,
	})
	return nil
}

func (m memCartItems) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	for cartID, items := range m.s.cartItems {
		for i, it := range items {
			if it.ID == cartItemID {
				m.s.cartItems[cartID][i].Quantity = qty
				return nil
			}
		}
	}
	return repo.ErrNotFound
}

func (m memCartItems) DeleteByID(ctx context.Context, cartItemID int64) error {
	for cartID, items := range m.s.cartItems {
		for i, it := range items {
			if it.ID == cartItemID {
				m.s.cartItems[cartID] = append(items[:i:i], items[i+1:]...)
				return nil
			}
		}
	}
	return repo.ErrNotFound
}

func (m memCartItems) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	for _, items := range m.s.cartItems {
		for _, it := range items {
			if it.ID == cartItemID {
				return it, nil
			}
		}
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (m memCartItems) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	it, err := m.FindByID(ctx, cartItemID)
	if err != nil {
		return false, nil
	}
	c, ok := m.s.carts[it.CartID]
	return ok && c.UserID == userID, nil
}

type memProducts struct{ s *memStore }

func (m memProducts) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	out := []model.Product{}
	for _, p := range m.s.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (m memProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := m.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m memProducts) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	p, ok := m.s.products[productID]
	if !ok {
		return false, repo.ErrNotFound
	}
	if p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	m.s.products[productID] = p
	return true, nil
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(ctx context.Context, user *model.User) error {
	m.s.users[user.ID] = *user
	return nil
}

func (m memUsers) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	u, ok := m.s.users[userID]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (m memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (m memUsers) Update(ctx context.Context, user *model.User) error {
	m.s.users[user.ID] = *user
	return nil
}

func (m memUsers) IncrementTokenVersion(ctx context.Context, userID int64) error {
	u := m.s.users[userID]
	u.TokenVersion++
	m.s.users[userID] = u
	return nil
}

func (m memUsers) ApplyUnlockFlags(ctx context.Context, userID int64, addGardenerUses int64, goldenKeyExpires *time.Time) error {
	u := m.s.users[userID]
	u.AIGardenerUses += addGardenerUses
	if goldenKeyExpires != nil {
		u.GoldenKeyExpiresAt = goldenKeyExpires
	}
	m.s.users[userID] = u
	return nil
}

func (m memUsers) GrantTool(ctx context.Context, userID int64, toolID string) error {
	for _, t := range m.s.tools[userID] {
		if t == toolID {
			return nil
		}
	}
	m.s.tools[userID] = append(m.s.tools[userID], toolID)
	return nil
}

func (m memUsers) ListTools(ctx context.Context, userID int64) ([]string, error) {
	return m.s.tools[userID], nil
}

type memLedger struct{ s *memStore }

func (m memLedger) AddPoints(ctx context.Context, entry model.PointsEntry) error {
	m.s.ledger = append(m.s.ledger, entry)
	return nil
}

func (m memLedger) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.PointsEntry, error) {
	out := []model.PointsEntry{}
	for _, e := range m.s.ledger {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memTimeline struct{ s *memStore }

func (m memTimeline) CreateBulk(ctx context.Context, events []model.TimelineEvent) error {
	m.s.timeline = append(m.s.timeline, events...)
	return nil
}

func (m memTimeline) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.TimelineEvent, error) {
	out := []model.TimelineEvent{}
	for _, e := range m.s.timeline {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memNotifications struct{ s *memStore }

func (m memNotifications) CreateBulk(ctx context.Context, notifications []model.Notification) error {
	m.s.notifs = append(m.s.notifs, notifications...)
	return nil
}

func (m memNotifications) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	out := []model.Notification{}
	for _, n := range m.s.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m memNotifications) MarkRead(ctx context.Context, userID int64, notificationID string) error {
	return nil
}

type memProjects struct{ s *memStore }

func (m memProjects) Create(ctx context.Context, p model.Project) error {
	m.s.projects = append(m.s.projects, p)
	return nil
}

func (m memProjects) ListByUserID(ctx context.Context, userID int64) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range m.s.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memAddresses struct{ s *memStore }

func (m memAddresses) Create(ctx context.Context, address model.Address) (model.Address, error) {
	m.s.addresses[address.ID] = address
	return address, nil
}

func (m memAddresses) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	out := []model.Address{}
	for _, a := range m.s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m memAddresses) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	a, ok := m.s.addresses[addressID]
	if !ok {
		return model.Address{}, repo.ErrNotFound
	}
	return a, nil
}

func (m memAddresses) Update(ctx context.Context, address model.Address) error {
	m.s.addresses[address.ID] = address
	return nil
}

func (m memAddresses) Delete(ctx context.Context, addressID int64) error {
	delete(m.s.addresses, addressID)
	return nil
}

func (m memAddresses) IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error) {
	a, ok := m.s.addresses[addressID]
	return ok && a.UserID == userID, nil
}

func (m memAddresses) SetDefault(ctx context.Context, userID, addressID int64) error { return nil }

type fakeGateway struct {
	authority  string
	refID      string
	requests   int
	verifies   int
	failVerify bool
}

func (g *fakeGateway) Request(ctx context.Context, amount int64, description string, email string, mobile string) (string, string, error) {
	g.requests++
	return g.authority, "https://payment.zarinpal.com/pg/StartPay/" + g.authority, nil
}

func (g *fakeGateway) Verify(ctx context.Context, amount int64, authority string) (string, error) {
	g.verifies++
	if g.failVerify {
		return "", fmt.Errorf("verify failed")
	}
	return g.refID, nil
}

type orderFixture struct {
	store *memStore
	gw    *fakeGateway
	pers  *recordingPersister
	uc    *usecase.OrderUsecase
	now   time.Time
}

func newOrderFixture() *orderFixture {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	s := newMemStore()
	gw := &fakeGateway{authority: "A-100", refID: "REF-555"}
	pers := &recordingPersister{}
	clk := &fixedClock{t: now}
	ids := &seqIDGen{}

	uc := usecase.NewOrderUsecase(
		s,
		memAddresses{s},
		memUsers{s},
		usecase.NewCheckoutUsecase(),
		usecase.NewFulfillmentUsecase(clk, ids, pers, nil),
		gw,
		clk,
		ids,
	)

	return &orderFixture{store: s, gw: gw, pers: pers, uc: uc, now: now}
}

func (f *orderFixture) seedUser(id int64, email string) {
	f.store.users[id] = model.User{ID: id, Email: email}
}

func (f *orderFixture) seedAddress(id, userID int64) {
	a := *validTehranAddress()
	a.ID = id
	a.UserID = userID
	f.store.addresses[id] = a
}

func (f *orderFixture) seedProduct(p model.Product) {
	f.store.products[p.ID] = p
}

func (f *orderFixture) seedActiveCart(userID int64, items ...model.CartItem) int64 {
	f.store.cartSeq++
	cartID := f.store.cartSeq
	f.store.carts[cartID] = model.Cart{ID: cartID, UserID: userID, Status: model.CartStatusActive}
	for i := range items {
		items[i].CartID = cartID
	}
	f.store.cartItems[cartID] = items
	return cartID
}

func TestPlaceOrder_HybridWithDeeds(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.seedAddress(3, 7)
	f.seedProduct(model.Product{ID: 11, Name: "خرمای مضافتی", Category: model.CategoryOrganic, Price: 120_000, WeightGrams: 400, Stock: 5, IsActive: true})
	f.seedProduct(model.Product{ID: 12, Name: "نهال میراث", Category: model.CategoryHeritage, Price: 300_000, Points: 500, Stock: 10, IsActive: true})
	cartID := f.seedActiveCart(7,
		model.CartItem{ProductID: 11, Quantity: 1, UnitPriceSnapshot: 120_000, CategorySnapshot: model.CategoryOrganic, WeightSnapshot: 400},
		model.CartItem{ProductID: 12, Quantity: 2, UnitPriceSnapshot: 300_000, PointsSnapshot: 500, CategorySnapshot: model.CategoryHeritage},
	)

	out, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		AddressID:      3,
		Digital:        &model.DigitalAddress{Email: "ali@example.com"},
		IdempotencyKey: "key-1",
		DeedRequests: []usecase.DeedRequest{
			{ProductID: 12, Intention: "سلامتی مادر", RecipientName: "مادر"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.OrderStatusPending), out.Status)
	assert.Equal(t, model.DeliveryTypeHybrid, out.DeliveryType)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(45_000), out.ShippingCost)
	assert.Equal(t, int64(120_000+2*300_000+45_000), out.TotalPrice)

	//هر واحد نهال میراث یک سند جدا
	require.Len(t, out.Deeds, 2)
	for _, d := range out.Deeds {
		assert.Equal(t, "سلامتی مادر", d.Intention)
		assert.Equal(t, "مادر", d.RecipientName)
	}

	//موجودی کم شده، سبد بسته و خالی شده
	assert.Equal(t, int64(4), f.store.products[11].Stock)
	assert.Equal(t, int64(8), f.store.products[12].Stock)
	assert.Equal(t, model.CartStatusCheckedOut, f.store.carts[cartID].Status)
	assert.Empty(t, f.store.cartItems[cartID])

	//تاریخچه با ثبت سفارش شروع می‌شود
	hist := f.store.histories[out.ID]
	require.Len(t, hist, 1)
	assert.Equal(t, model.OrderStatusPending, hist[0].ToStatus)
	assert.Equal(t, "ثبت سفارش", hist[0].Note)
}

func TestPlaceOrder_DeedDefaultIntention(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.seedProduct(model.Product{ID: 12, Name: "نهال میراث", Category: model.CategoryHeritage, Price: 300_000, Stock: 10, IsActive: true})
	f.seedActiveCart(7,
		model.CartItem{ProductID: 12, Quantity: 1, UnitPriceSnapshot: 300_000, CategorySnapshot: model.CategoryHeritage},
	)

	out, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		Digital:        &model.DigitalAddress{Email: "ali@example.com"},
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)

	require.Len(t, out.Deeds, 1)
	assert.Equal(t, "آبادانی نخلستان", out.Deeds[0].Intention)
	assert.Equal(t, model.DeliveryTypeDigital, out.DeliveryType)
	assert.Equal(t, int64(0), out.ShippingCost)
}

func TestPlaceOrder_InvalidAddress(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.seedProduct(model.Product{ID: 11, Category: model.CategoryOrganic, Price: 120_000, Stock: 5, IsActive: true})
	f.seedActiveCart(7,
		model.CartItem{ProductID: 11, Quantity: 1, UnitPriceSnapshot: 120_000, CategorySnapshot: model.CategoryOrganic},
	)

	a := *validTehranAddress()
	a.ID = 4
	a.UserID = 7
	a.Province = ""
	a.PostalCode = "123"
	f.store.addresses[4] = a

	_, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		AddressID:      4,
		IdempotencyKey: "key-1",
	})
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Contains(t, he.Message, "استان را انتخاب کنید")
	assert.Contains(t, he.Message, "کد پستی باید دقیقا ۱۰ رقم باشد")
	assert.Contains(t, he.Message, "؛")

	//خطای اعتبارسنجی نباید موجودی را دست بزند
	assert.Equal(t, int64(5), f.store.products[11].Stock)
}

func TestPlaceOrder_ForeignAddressRejected(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.seedAddress(9, 42)

	_, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		AddressID:      9,
		IdempotencyKey: "key-1",
	})
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
}

func TestPlaceOrder_MissingIdempotencyKey(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")

	_, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{})
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		IdempotencyKey: strings.Repeat("x", 256),
	})
	require.Error(t, err)
}

func TestPlaceOrder_IdempotentRetryReturnsSameOrder(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.seedProduct(model.Product{ID: 12, Category: model.CategoryHeritage, Price: 300_000, Stock: 10, IsActive: true})
	f.seedActiveCart(7,
		model.CartItem{ProductID: 12, Quantity: 1, UnitPriceSnapshot: 300_000, CategorySnapshot: model.CategoryHeritage},
	)

	in := usecase.PlaceOrderInput{
		Digital:        &model.DigitalAddress{Email: "ali@example.com"},
		IdempotencyKey: "key-once",
	}

	first, err := f.uc.PlaceOrder(context.Background(), 7, in)
	require.NoError(t, err)

	second, err := f.uc.PlaceOrder(context.Background(), 7, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.store.orders, 1)

	//موجودی فقط یک بار کم شده
	assert.Equal(t, int64(9), f.store.products[12].Stock)
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.seedProduct(model.Product{ID: 12, Category: model.CategoryHeritage, Price: 300_000, Stock: 1, IsActive: true})
	f.seedActiveCart(7,
		model.CartItem{ProductID: 12, Quantity: 2, UnitPriceSnapshot: 300_000, CategorySnapshot: model.CategoryHeritage},
	)

	_, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		Digital:        &model.DigitalAddress{Email: "ali@example.com"},
		IdempotencyKey: "key-1",
	})
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "out of stock", he.Message)
	assert.Empty(t, f.store.orders)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")

	_, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		IdempotencyKey: "key-1",
	})
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "cart empty", he.Message)
}

func TestPlaceOrder_ProjectDetailsAttachToServiceItem(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.seedProduct(model.Product{ID: 20, Category: model.CategoryService, Price: 5_000_000, Stock: 3, IsActive: true})
	f.seedActiveCart(7,
		model.CartItem{ProductID: 20, Quantity: 1, UnitPriceSnapshot: 5_000_000, CategorySnapshot: model.CategoryService},
	)

	out, err := f.uc.PlaceOrder(context.Background(), 7, usecase.PlaceOrderInput{
		Digital:        &model.DigitalAddress{Email: "ali@example.com"},
		IdempotencyKey: "key-1",
		ProjectDetails: "فروشگاه صنایع دستی با درگاه پرداخت",
	})
	require.NoError(t, err)

	items := f.store.orderItems[out.ID]
	require.Len(t, items, 1)
	assert.Equal(t, "فروشگاه صنایع دستی با درگاه پرداخت", items[0].ProjectPayload)
}

func TestStartPayment(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.store.orders[1] = model.Order{ID: 1, UserID: 7, Status: model.OrderStatusPending, TotalPrice: 645_000, IdempotencyKey: "k"}

	out, err := f.uc.StartPayment(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, "A-100", out.Authority)
	assert.Equal(t, "https://payment.zarinpal.com/pg/StartPay/A-100", out.RedirectURL)
	assert.Equal(t, "A-100", f.store.orders[1].PaymentAuthority)
	assert.Equal(t, 1, f.gw.requests)
}

func TestStartPayment_NotPending(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.store.orders[1] = model.Order{ID: 1, UserID: 7, Status: model.OrderStatusPaid, IdempotencyKey: "k"}

	_, err := f.uc.StartPayment(context.Background(), 7, 1)
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, 0, f.gw.requests)
}

func TestStartPayment_ForeignOrderHidden(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.store.orders[1] = model.Order{ID: 1, UserID: 42, Status: model.OrderStatusPending, IdempotencyKey: "k"}

	_, err := f.uc.StartPayment(context.Background(), 7, 1)
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestVerifyPayment(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.store.orders[1] = model.Order{
		ID: 1, UserID: 7, Status: model.OrderStatusPending,
		TotalPrice: 645_000, PaymentAuthority: "A-100", IdempotencyKey: "k",
	}
	f.store.orderItems[1] = []model.OrderItem{
		{OrderID: 1, ProductID: 12, PointsSnapshot: 500, CategorySnapshot: model.CategoryHeritage, Quantity: 1},
	}

	out, err := f.uc.VerifyPayment(context.Background(), 7, 1, "A-100")
	require.NoError(t, err)

	assert.Equal(t, "REF-555", out.RefID)
	assert.Equal(t, string(model.OrderStatusPaid), out.Order.Status)
	assert.Equal(t, int64(500), out.PointsEarned)
	assert.Equal(t, "REF-555", f.store.orders[1].PaymentRefID)
	assert.Equal(t, model.OrderStatusPaid, f.store.orders[1].Status)

	hist := f.store.histories[1]
	require.Len(t, hist, 1)
	assert.Equal(t, model.OrderStatusPaid, hist[0].ToStatus)
	assert.Contains(t, hist[0].Note, "REF-555")

	//حسابدار صدا زده شده و ذخیره به صف رفته
	require.Len(t, f.pers.savedOrders, 1)
	assert.Equal(t, int64(1), f.pers.savedOrders[0].ID)
	require.Len(t, f.pers.savedUsers, 1)
	assert.Equal(t, int64(7), f.pers.savedUsers[0])
}

func TestVerifyPayment_AuthorityMismatch(t *testing.T) {
	f := newOrderFixture()
	f.seedUser(7, "ali@example.com")
	f.store.orders[1] = model.Order{
		ID: 1, UserID: 7, Status: model.OrderStatusPending,
		PaymentAuthority: "A-100", IdempotencyKey: "k",
	}

	_, err := f.uc.VerifyPayment(context.Background(), 7, 1, "A-999")
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, 0, f.gw.verifies)
	assert.Equal(t, model.OrderStatusPending, f.store.orders[1].Status)
}

func TestVerifyPayment_GatewayRejects(t *testing.T) {
	f := newOrderFixture()
	f.gw.failVerify = true
	f.seedUser(7, "ali@example.com")
	f.store.orders[1] = model.Order{
		ID: 1, UserID: 7, Status: model.OrderStatusPending,
		PaymentAuthority: "A-100", IdempotencyKey: "k",
	}

	_, err := f.uc.VerifyPayment(context.Background(), 7, 1, "A-100")
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, he.Status)
	assert.Empty(t, f.pers.savedOrders)
}

func TestCancelMyOrder(t *testing.T) {
	f := newOrderFixture()
	f.store.orders[1] = model.Order{ID: 1, UserID: 7, Status: model.OrderStatusPending, IdempotencyKey: "k"}

	err := f.uc.CancelMyOrder(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusCancelled, f.store.orders[1].Status)
	hist := f.store.histories[1]
	require.Len(t, hist, 1)
	assert.Equal(t, model.OrderStatusCancelled, hist[0].ToStatus)
	assert.Equal(t, "لغو توسط کاربر", hist[0].Note)
}

func TestCancelMyOrder_ShippedRejected(t *testing.T) {
	f := newOrderFixture()
	f.store.orders[1] = model.Order{ID: 1, UserID: 7, Status: model.OrderStatusShipped, IdempotencyKey: "k"}

	err := f.uc.CancelMyOrder(context.Background(), 7, 1)
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, model.OrderStatusShipped, f.store.orders[1].Status)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture()
	f.store.orders[1] = model.Order{ID: 1, UserID: 7, Status: model.OrderStatusPaid, IdempotencyKey: "k"}

	err := f.uc.AdminUpdateOrderStatus(context.Background(), 99, 1, model.OrderStatusProcessing, "بسته‌بندی شد")
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusProcessing, f.store.orders[1].Status)
	hist := f.store.histories[1]
	require.Len(t, hist, 1)
	assert.Equal(t, int64(99), hist[0].ChangedBy)
	assert.Equal(t, "بسته‌بندی شد", hist[0].Note)
}

func TestAdminUpdateOrderStatus_InvalidTransition(t *testing.T) {
	f := newOrderFixture()
	f.store.orders[1] = model.Order{ID: 1, UserID: 7, Status: model.OrderStatusPending, IdempotencyKey: "k"}

	err := f.uc.AdminUpdateOrderStatus(context.Background(), 99, 1, model.OrderStatusShipped, "")
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, model.OrderStatusPending, f.store.orders[1].Status)
}

func TestAdminUpdateOrderStatus_UnknownStatus(t *testing.T) {
	f := newOrderFixture()

	err := f.uc.AdminUpdateOrderStatus(context.Background(), 99, 1, model.OrderStatus("REFUNDED"), "")
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestGetMyOrderDetail_ForeignOrderHidden(t *testing.T) {
	f := newOrderFixture()
	f.store.orders[1] = model.Order{ID: 1, UserID: 42, Status: model.OrderStatusPending, IdempotencyKey: "k"}

	_, err := f.uc.GetMyOrderDetail(context.Background(), 7, 1)
	require.Error(t, err)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
