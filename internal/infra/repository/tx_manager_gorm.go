package repository

import (
	"context"

	repo "nakhlestan/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	deeds         repo.DeedRepository
	carts         repo.CartRepository
	cartItems     repo.CartItemRepository
	products      repo.ProductRepository
	users         repo.UserRepository
	ledger        repo.LedgerRepository
	timeline      repo.TimelineRepository
	notifications repo.NotificationRepository
	projects      repo.ProjectRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *txReposGorm) Deeds() repo.DeedRepository                 { return r.deeds }
func (r *txReposGorm) Carts() repo.CartRepository                 { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository         { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }
func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) Ledger() repo.LedgerRepository              { return r.ledger }
func (r *txReposGorm) Timeline() repo.TimelineRepository          { return r.timeline }
func (r *txReposGorm) Notifications() repo.NotificationRepository { return r.notifications }
func (r *txReposGorm) Projects() repo.ProjectRepository           { return r.projects }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoها با DB تراکنشی از نو ساخته می‌شوند
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			orderItems:    NewOrderItemGormRepository(tx),
			deeds:         NewDeedGormRepository(tx),
			carts:         NewCartGormRepository(tx),
			cartItems:     NewCartItemGormRepository(tx),
			products:      NewProductGormRepository(tx),
			users:         NewUserGormRepository(tx),
			ledger:        NewLedgerGormRepository(tx),
			timeline:      NewTimelineGormRepository(tx),
			notifications: NewNotificationGormRepository(tx),
			projects:      NewProjectGormRepository(tx),
		}
		return fn(r)
	})
}
