package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/metrics"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage storage.Engine
	queue   chan ActionItem
	metrics *metrics.Metrics
}

func NewOperator(s storage.Engine, queue chan ActionItem, m *metrics.Metrics) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		metrics: m,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.metrics.SetQueueDepth(len(o.queue))
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	start := time.Now()
	err := o.perform(item)
	o.metrics.ObserveAction(item.action.Name(), outcome(err), time.Since(start))

	if err != nil && !isDomainError(err) {
		logrus.WithError(err).WithField("action", item.action.Name()).Error("Operator.processItem")
	}
	item.response <- ActionItemResponse{err: err}
}

func (o *Operator) perform(item ActionItem) error {
	// The caller may have given up while the item sat in the queue.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.NewWriter(item.ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = writer.Rollback(context.WithoutCancel(item.ctx))
	}()

	if err := item.action.Perform(item.ctx, writer); err != nil {
		return err
	}
	// The caller gave up; roll back rather than commit behind its back.
	if err := item.ctx.Err(); err != nil {
		return err
	}
	return writer.Commit(item.ctx)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := ledger.KindOf(err); kind != ledger.KindUnknown {
		return kind.String()
	}
	return "error"
}

func isDomainError(err error) bool {
	kind := ledger.KindOf(err)
	return kind.IsValidation() || kind == ledger.KindNotFound ||
		kind == ledger.KindLocked || kind == ledger.KindInsufficientFunds
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
