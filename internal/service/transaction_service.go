package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/query"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	*base
}

// CreateTransaction validates and records a transaction, applying its effect
// on account balances.
func (s *TransactionService) CreateTransaction(ctx context.Context, payload ledger.Payload) (*ledger.Transaction, error) {
	now := s.now()
	action := &actions.CreateTransaction{Payload: payload, Now: now}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	tx := s.effective(*action.Result, now)
	return &tx, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, payload ledger.Payload) (*ledger.Transaction, error) {
	now := s.now()
	action := &actions.UpdateTransaction{ID: id, Payload: payload, Now: now, LockWindow: s.opts.LockWindow}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	tx := s.effective(*action.Result, now)
	return &tx, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	action := &actions.DeleteTransaction{ID: id, Now: s.now(), LockWindow: s.opts.LockWindow}
	return s.operator.Process(ctx, action)
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var found *ledger.Transaction
	err := s.withReader(ctx, func(r *storage.Reader) error {
		var err error
		found, err = r.Transactions.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	tx := s.effective(*found, s.now())
	return &tx, nil
}

// ListTransactions returns one page of the transactions matching spec.
func (s *TransactionService) ListTransactions(ctx context.Context, spec ledger.FilterSpec) (ledger.Page, error) {
	selected, err := s.matching(ctx, spec, s.now())
	if err != nil {
		return ledger.Page{}, err
	}
	return query.Paginate(selected, spec.Page, spec.Limit), nil
}
