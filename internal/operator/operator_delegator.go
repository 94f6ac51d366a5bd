package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/carson-networks/budget-ledger/internal/metrics"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

var ErrStopped = errors.New("operator: stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	storage    storage.Engine
	metrics    *metrics.Metrics
	queue      chan ActionItem
	numWorkers int
	wg         sync.WaitGroup
	startOnce  sync.Once
	stopOnce   sync.Once

	// mu guards stopped so Process never sends on a closed queue.
	mu      sync.RWMutex
	stopped bool
}

func NewOperatorDelegator(s storage.Engine, numWorkers int, m *metrics.Metrics) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		storage:    s,
		metrics:    m,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.numWorkers; i++ {
			d.wg.Add(1)
			op := NewOperator(d.storage, d.queue, d.metrics)
			go func() {
				defer d.wg.Done()
				op.Run()
			}()
		}
	})
}

// Stop drains the queue and waits for the workers to exit.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

// Process enqueues action and waits for it to be performed in its own storage
// write transaction. Results are left on the action itself. ctx bounds the wait
// for a queue slot; a queued action that sees ctx end before commit is rolled
// back and reports ctx's error.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.mu.RLock()
	if d.stopped {
		d.mu.RUnlock()
		return ErrStopped
	}
	select {
	case d.queue <- item:
	case <-ctx.Done():
		d.mu.RUnlock()
		return ctx.Err()
	}
	d.metrics.SetQueueDepth(len(d.queue))
	d.mu.RUnlock()

	// Once queued the worker always answers, and its answer is the only one
	// that says whether the write committed.
	resp := <-respCh
	return resp.err
}
