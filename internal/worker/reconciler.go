package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/artisanscorner/storefront/internal/adapter/razorpay"
	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the reconciler.
type PaymentFacade interface {
	UnpaidOrders(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error)
	OrderPayments(ctx context.Context, gatewayOrderID string) ([]razorpay.Payment, error)
	SettlePayment(ctx context.Context, orderID string, result model.PaymentResult) (*model.Order, bool, error)
}

// Reconciler closes the gap between a captured gateway payment and a missed
// client callback: it periodically polls stale unpaid orders that already
// have a gateway order and asks the gateway whether money actually moved.
type Reconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	gracePeriod  time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade PaymentFacade, pollInterval, gracePeriod time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		gracePeriod:  gracePeriod,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	olderThan := time.Now().Add(-r.gracePeriod)
	orders, err := r.facade.UnpaidOrders(ctx, olderThan, r.batchSize)
	if err != nil {
		r.logger.Error("fetch unpaid orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, order)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context, order model.Order) {
	payments, err := r.facade.OrderPayments(ctx, order.GatewayOrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotConfigured) {
			// No gateway credentials, nothing to reconcile against.
			return
		}
		r.logger.Error("gateway payments fetch failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, payment := range payments {
		if payment.Status != razorpay.PaymentStatusCaptured {
			continue
		}
		result := model.PaymentResult{
			PaymentID:  payment.ID,
			Status:     payment.Status,
			Email:      payment.Email,
			UpdateTime: time.Now(),
		}
		_, changed, err := r.facade.SettlePayment(ctx, order.ID, result)
		if err != nil {
			r.logger.Error("settle payment failed",
				slog.String("order_id", order.ID),
				slog.String("payment_id", payment.ID),
				slog.String("error", err.Error()),
			)
			return
		}
		if changed {
			r.logger.Info("order reconciled as paid",
				slog.String("order_id", order.ID),
				slog.String("payment_id", payment.ID),
			)
		}
		return
	}
}
