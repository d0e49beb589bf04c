package persist

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"
	"nakhlestan/internal/usecase"
)

// FulfillmentPersister نتیجه حسابدار را در پس‌زمینه ذخیره می‌کند.
// caller منتظر ذخیره نمی‌ماند؛ خطا فقط log می‌شود.
type FulfillmentPersister struct {
	queue  *Queue
	tx     repo.TransactionManager
	logger *zap.Logger
	now    func() time.Time
}

func NewFulfillmentPersister(queue *Queue, tx repo.TransactionManager, logger *zap.Logger, now func() time.Time) *FulfillmentPersister {
	if now == nil {
		now = time.Now
	}
	return &FulfillmentPersister{queue: queue, tx: tx, logger: logger, now: now}
}

// SaveOrder سفارش پرداخت شده را به مرحله بعد می‌برد:
// تمام‌دیجیتال مستقیم COMPLETED، وگرنه PROCESSING برای آماده‌سازی.
func (p *FulfillmentPersister) SaveOrder(order model.Order) {
	p.queue.Enqueue(Task{
		Name: fmt.Sprintf("save-order-%d", order.ID),
		Do: func(ctx context.Context) error {
			next := model.OrderStatusProcessing
			if order.DeliveryType == model.DeliveryTypeDigital {
				next = model.OrderStatusCompleted
			}

			if !model.CanTransition(order.Status, next) {
				p.logger.Warn("order transition skipped",
					zap.Int64("order_id", order.ID),
					zap.String("from", string(order.Status)),
					zap.String("to", string(next)))
				return nil
			}

			return p.tx.WithinTx(ctx, func(r repo.TxRepos) error {
				if err := r.Orders().UpdateStatus(ctx, order.ID, next); err != nil {
					return err
				}
				return r.Orders().AppendStatusHistory(ctx, model.OrderStatusHistory{
					OrderID:    order.ID,
					FromStatus: order.Status,
					ToStatus:   next,
					Note:       "پردازش خودکار پس از پرداخت",
					CreatedAt:  p.now(),
				})
			})
		},
	})
}

// SaveUser تغییرات حساب کاربر را ذخیره می‌کند: دفتر امتیاز، خط زمان،
// اعلان‌ها، ابزارهای باز شده و پروژه‌های درخواستی.
func (p *FulfillmentPersister) SaveUser(userID int64, res usecase.FulfillmentResult) {
	p.queue.Enqueue(Task{
		Name: fmt.Sprintf("save-user-%d", userID),
		Do: func(ctx context.Context) error {
			return p.tx.WithinTx(ctx, func(r repo.TxRepos) error {
				if res.Entry != nil {
					if err := r.Ledger().AddPoints(ctx, *res.Entry); err != nil {
						return err
					}
				}

				if len(res.Events) > 0 {
					if err := r.Timeline().CreateBulk(ctx, res.Events); err != nil {
						return err
					}
				}
				if len(res.Notifications) > 0 {
					if err := r.Notifications().CreateBulk(ctx, res.Notifications); err != nil {
						return err
					}
				}

				if res.GardenerUses > 0 || res.GoldenKeyExpiresAt != nil {
					if err := r.Users().ApplyUnlockFlags(ctx, userID, res.GardenerUses, res.GoldenKeyExpiresAt); err != nil {
						return err
					}
				}
				for _, tool := range res.GrantedTools {
					if err := r.Users().GrantTool(ctx, userID, tool); err != nil {
						return err
					}
				}

				for _, project := range res.Projects {
					if err := r.Projects().Create(ctx, project); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
}
