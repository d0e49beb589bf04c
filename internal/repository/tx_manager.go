package repository

import "context"

// مجموعه repositoryهایی که داخل یک تراکنش در دسترس‌اند
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Deeds() DeedRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Products() ProductRepository
	Users() UserRepository
	Ledger() LedgerRepository
	Timeline() TimelineRepository
	Notifications() NotificationRepository
	Projects() ProjectRepository
}

// شروع/commit/rollback تراکنش را از usecase پنهان می‌کند.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
