package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
	"github.com/bistroboss/ordering-system/internal/pkg/metrics"
)

const (
	defaultWorkers     = 4
	defaultMaxAttempts = 8
	channelBuffer      = 256
)

// CartCleaner removes cart items owned by email.
type CartCleaner interface {
	DeleteOwned(ctx context.Context, email string, ids []string) (int64, error)
}

// Options tunes the retry policy.
type Options struct {
	Workers      int
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// Reconciler retries cart cleanups that failed after a payment was recorded.
// Tasks are sharded by payment id so one payment is never handled by two
// workers at once.
type Reconciler struct {
	workers []chan domain.CleanupTask
	carts   CartCleaner
	journal ports.CleanupJournal
	opts    Options
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewReconciler creates a Reconciler. Zero options fall back to defaults.
func NewReconciler(carts CartCleaner, journal ports.CleanupJournal, opts Options, log zerolog.Logger) *Reconciler {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}

	r := &Reconciler{
		workers: make([]chan domain.CleanupTask, opts.Workers),
		carts:   carts,
		journal: journal,
		opts:    opts,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.CleanupTask, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	for i, ch := range r.workers {
		r.wg.Add(1)
		go r.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// Schedule hands a task to the worker responsible for its payment. It never
// blocks: a full queue drops the task, which stays in the journal.
func (r *Reconciler) Schedule(task domain.CleanupTask) bool {
	idx := r.shardIndex(task.PaymentID)
	select {
	case r.workers[idx] <- task:
		metrics.CleanupTasksTotal.WithLabelValues("scheduled").Inc()
		metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return true
	default:
		metrics.CleanupTasksTotal.WithLabelValues("dropped").Inc()
		r.log.Warn().Str("payment_id", task.PaymentID).Int("worker_id", idx).Msg("cleanup queue full")
		return false
	}
}

// Resume schedules every journaled task and returns how many were accepted.
func (r *Reconciler) Resume(ctx context.Context) (int, error) {
	tasks, err := r.journal.Pending(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range tasks {
		if r.Schedule(t) {
			n++
		}
	}
	if n > 0 {
		r.log.Info().Int("tasks", n).Msg("resumed pending cart cleanups")
	}
	return n, nil
}

// ReconcileOnce drains the journal synchronously with a single attempt per
// task. It returns how many tasks were completed and how many remain.
func (r *Reconciler) ReconcileOnce(ctx context.Context) (done, remaining int, err error) {
	tasks, err := r.journal.Pending(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, t := range tasks {
		if ctx.Err() != nil {
			return done, len(tasks) - done, ctx.Err()
		}
		if r.attempt(ctx, &t) == nil {
			r.complete(ctx, t)
			done++
			continue
		}
		r.persist(ctx, t)
	}
	return done, len(tasks) - done, nil
}

// shardIndex maps a payment id deterministically to a worker index.
func (r *Reconciler) shardIndex(paymentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(paymentID))
	return int(h.Sum32() % uint32(len(r.workers)))
}

func (r *Reconciler) runWorker(ctx context.Context, id int, ch <-chan domain.CleanupTask) {
	defer r.wg.Done()
	depth := metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			r.process(ctx, id, task)
		}
	}
}

func (r *Reconciler) process(ctx context.Context, workerID int, task domain.CleanupTask) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.opts.InitialDelay
	policy.MaxInterval = r.opts.MaxDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, r.attempt(ctx, &task)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(r.opts.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			metrics.CleanupTasksTotal.WithLabelValues("retried").Inc()
			r.log.Debug().Err(err).Str("payment_id", task.PaymentID).Dur("next", next).Msg("cart cleanup retry")
		}),
	)
	if err == nil {
		r.complete(ctx, task)
		return
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		// journal still holds the task; the next start resumes it
		r.persist(context.WithoutCancel(ctx), task)
		return
	}

	metrics.CleanupTasksTotal.WithLabelValues("exhausted").Inc()
	r.persist(ctx, task)
	r.log.Error().Err(err).
		Str("payment_id", task.PaymentID).
		Int("attempts", task.Attempts).
		Int("worker_id", workerID).
		Msg("cart cleanup gave up, left for reconcile")
}

func (r *Reconciler) attempt(ctx context.Context, task *domain.CleanupTask) error {
	task.Attempts++
	n, err := r.carts.DeleteOwned(ctx, task.Email, task.CartItemIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return backoff.Permanent(err)
		}
		return err
	}
	metrics.CartItemsClearedTotal.Add(float64(n))
	return nil
}

func (r *Reconciler) complete(ctx context.Context, task domain.CleanupTask) {
	metrics.CleanupTasksTotal.WithLabelValues("succeeded").Inc()
	if err := r.journal.Delete(ctx, task.PaymentID); err != nil {
		r.log.Warn().Err(err).Str("payment_id", task.PaymentID).Msg("failed to clear journal entry")
	}
	r.log.Info().Str("payment_id", task.PaymentID).Int("attempts", task.Attempts).Msg("cart cleanup completed")
}

func (r *Reconciler) persist(ctx context.Context, task domain.CleanupTask) {
	if err := r.journal.Save(ctx, task); err != nil {
		r.log.Error().Err(err).Str("payment_id", task.PaymentID).Msg("failed to update journal entry")
	}
}
