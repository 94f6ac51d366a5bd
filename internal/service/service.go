package service

import (
	"context"
	"time"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/query"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// Options tune behaviour shared by every service.
type Options struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// LockWindow locks transactions older than the window. Zero disables it.
	LockWindow time.Duration
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Dashboard   *DashboardService
	Category    *CategoryService
}

// NewService creates a new Service over the given storage. Mutations go
// through op so they are serialized and atomic.
func NewService(store storage.Engine, op *operator.OperatorDelegator, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	b := &base{storage: store, operator: op, opts: opts}
	return &Service{
		Transaction: &TransactionService{base: b},
		Account:     &AccountService{base: b},
		Dashboard:   &DashboardService{base: b},
		Category:    &CategoryService{},
	}
}

type base struct {
	storage  storage.Engine
	operator *operator.OperatorDelegator
	opts     Options
}

func (b *base) now() time.Time {
	return b.opts.Now()
}

func (b *base) withReader(ctx context.Context, fn func(r *storage.Reader) error) error {
	r, err := b.storage.NewReader(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close(ctx) }()
	return fn(r)
}

// matching loads the transactions selected by spec, most recent first, with
// their effective editability at now.
func (b *base) matching(ctx context.Context, spec ledger.FilterSpec, now time.Time) ([]ledger.Transaction, error) {
	w := query.Resolve(spec, now)
	if w.Empty {
		return []ledger.Transaction{}, nil
	}

	var loaded []ledger.Transaction
	err := b.withReader(ctx, func(r *storage.Reader) error {
		var err error
		loaded, err = r.Transactions.List(ctx, storageFilter(spec, w))
		return err
	})
	if err != nil {
		return nil, err
	}

	selected := query.Select(loaded, spec, now)
	for i := range selected {
		selected[i] = b.effective(selected[i], now)
	}
	return selected, nil
}

func (b *base) effective(tx ledger.Transaction, now time.Time) ledger.Transaction {
	tx.IsEditable = tx.EditableAt(now, b.opts.LockWindow)
	return tx
}
