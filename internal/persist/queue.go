package persist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// کار ذخیره‌سازی که در پس‌زمینه اجرا می‌شود
type Task struct {
	Name string
	Do   func(ctx context.Context) error
}

// صف fire-and-forget: ارسال هرگز caller را block نمی‌کند.
// وقتی صف پر باشد کار دور انداخته و log می‌شود.
type Queue struct {
	tasks   chan Task
	logger  *zap.Logger
	timeout time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

func NewQueue(size int, timeout time.Duration, logger *zap.Logger) *Queue {
	if size < 1 {
		size = 64
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	q := &Queue{
		tasks:   make(chan Task, size),
		logger:  logger,
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go q.worker()
	return q
}

// Enqueue کار را در صف می‌گذارد و بلافاصله برمی‌گردد.
func (q *Queue) Enqueue(t Task) {
	select {
	case q.tasks <- t:
	default:
		q.logger.Warn("persist queue full, task dropped",
			zap.String("task", t.Name))
	}
}

// Close صف را می‌بندد و تا تمام شدن کارهای مانده صبر می‌کند.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.tasks)
		<-q.done
	})
}

func (q *Queue) worker() {
	defer close(q.done)

	for t := range q.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := t.Do(ctx); err != nil {
			q.logger.Warn("background persist failed",
				zap.String("task", t.Name),
				zap.Error(err))
		}
		cancel()
	}
}
