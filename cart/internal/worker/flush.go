package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/cart"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
)

type SnapshotSaver interface {
	Save(c context.Context, sessionID string, snapshot cart.Snapshot) error
}

// FlushWorker writes cart snapshots to the session store on a tick, or as
// soon as batchSize sessions are pending. Each session keeps only its latest
// snapshot, so a store never sees an older snapshot after a newer one.
type FlushWorker struct {
	store     SnapshotSaver
	batchSize int
	interval  time.Duration
	wake      chan struct{}

	mu      sync.Mutex
	pending map[string]cart.Snapshot
}

func NewFlushWorker(store SnapshotSaver, batchSize int, interval time.Duration) *FlushWorker {
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	return &FlushWorker{
		store:     store,
		batchSize: batchSize,
		interval:  interval,
		wake:      make(chan struct{}, 1),
		pending:   map[string]cart.Snapshot{},
	}
}

// Enqueue never blocks. The snapshot replaces any pending one of the same
// session.
func (wrk *FlushWorker) Enqueue(sessionID string, snapshot cart.Snapshot) {
	wrk.mu.Lock()
	wrk.pending[sessionID] = snapshot
	full := len(wrk.pending) >= wrk.batchSize
	wrk.mu.Unlock()

	if full {
		select {
		case wrk.wake <- struct{}{}:
		default:
		}
	}
}

func (wrk *FlushWorker) take() map[string]cart.Snapshot {
	wrk.mu.Lock()
	defer wrk.mu.Unlock()
	if len(wrk.pending) == 0 {
		return nil
	}
	taken := wrk.pending
	wrk.pending = map[string]cart.Snapshot{}
	return taken
}

// requeue puts failed snapshots back unless a newer one arrived meanwhile.
func (wrk *FlushWorker) requeue(failed map[string]cart.Snapshot) {
	wrk.mu.Lock()
	defer wrk.mu.Unlock()
	for sessionID, snapshot := range failed {
		if _, ok := wrk.pending[sessionID]; ok {
			continue
		}
		wrk.pending[sessionID] = snapshot
	}
}

// StartWorker runs until c is cancelled, then flushes whatever is still
// pending before returning.
func (wrk *FlushWorker) StartWorker(c context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "FlushWorker StartWorker").
		Str(constants.KEY_PROCESS, "flushing cart snapshots").
		Str(constants.KEY_APP_NAME, constants.APP_CART_WORKER).
		Logger()

	ticker := time.NewTicker(wrk.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done():
			logger.Info().Msg("flushing pending snapshots")
			pending := wrk.take()
			failed := wrk.flush(logger.WithContext(context.WithoutCancel(c)), pending)
			logger.Info().
				Int(constants.KEY_CART_ITEMS_COUNT, len(pending)).
				Int("failed", len(failed)).
				Msg("stopped flush worker")
			return
		case <-ticker.C:
		case <-wrk.wake:
		}

		pending := wrk.take()
		if len(pending) == 0 {
			continue
		}
		requestID := uuid.NewString()
		lg := logger.With().Str(constants.KEY_REQUEST_ID, requestID).Logger()
		fc := log.AttachRequestIDToContext(lg.WithContext(c), requestID)
		if failed := wrk.flush(fc, pending); len(failed) > 0 {
			wrk.requeue(failed)
		}
	}
}

// flush saves every snapshot and returns the ones that failed.
func (wrk *FlushWorker) flush(c context.Context, pending map[string]cart.Snapshot) map[string]cart.Snapshot {
	c, span := otel.Tracer.Start(c, "FlushWorker flush")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "FlushWorker flush").Logger()

	failed := map[string]cart.Snapshot{}
	for sessionID, snapshot := range pending {
		lg := logger.With().Str(constants.KEY_CART_SESSION_ID, sessionID).Logger()
		if err := wrk.store.Save(c, sessionID, snapshot); err != nil {
			err = fmt.Errorf("failed flushing cart snapshot with error=%w", err)
			otel.FlushTotal.WithLabelValues("failure").Inc()
			lg.Error().Err(err).Msg(err.Error())
			failed[sessionID] = snapshot
			continue
		}
		otel.FlushTotal.WithLabelValues("success").Inc()
		lg.Trace().Msg("flushed cart snapshot")
	}
	return failed
}
