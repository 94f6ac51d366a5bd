// Package backend is the collaborator contract the client session talks to,
// with an in-process implementation and an HTTP client.
package backend

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// Backend performs ledger reads and mutations. Errors are *ledger.Error
// where the kind is known; transport failures are KindTransientIO.
type Backend interface {
	ListTransactions(ctx context.Context, spec ledger.FilterSpec) (ledger.Page, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	CreateTransaction(ctx context.Context, payload ledger.Payload) (*ledger.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, payload ledger.Payload) (*ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	GetSummary(ctx context.Context, spec ledger.FilterSpec) (ledger.SummaryResult, error)
	GetChartData(ctx context.Context, spec ledger.FilterSpec) ([]ledger.ChartPoint, error)
	GetCategorySummary(ctx context.Context, spec ledger.FilterSpec) ([]ledger.CategorySummaryEntry, error)
	GetRecentTransactions(ctx context.Context, spec ledger.FilterSpec, limit int) ([]ledger.Transaction, error)
}

// Local serves the contract from an in-process Service.
type Local struct {
	svc *service.Service
}

var _ Backend = (*Local)(nil)

func NewLocal(svc *service.Service) *Local {
	return &Local{svc: svc}
}

func (l *Local) ListTransactions(ctx context.Context, spec ledger.FilterSpec) (ledger.Page, error) {
	return l.svc.Transaction.ListTransactions(ctx, spec)
}

func (l *Local) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return l.svc.Transaction.GetTransaction(ctx, id)
}

func (l *Local) CreateTransaction(ctx context.Context, payload ledger.Payload) (*ledger.Transaction, error) {
	return l.svc.Transaction.CreateTransaction(ctx, payload)
}

func (l *Local) UpdateTransaction(ctx context.Context, id uuid.UUID, payload ledger.Payload) (*ledger.Transaction, error) {
	return l.svc.Transaction.UpdateTransaction(ctx, id, payload)
}

func (l *Local) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return l.svc.Transaction.DeleteTransaction(ctx, id)
}

func (l *Local) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	list, err := l.svc.Account.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return list.Accounts, nil
}

func (l *Local) GetSummary(ctx context.Context, spec ledger.FilterSpec) (ledger.SummaryResult, error) {
	return l.svc.Dashboard.Summary(ctx, spec)
}

func (l *Local) GetChartData(ctx context.Context, spec ledger.FilterSpec) ([]ledger.ChartPoint, error) {
	return l.svc.Dashboard.Chart(ctx, spec)
}

func (l *Local) GetCategorySummary(ctx context.Context, spec ledger.FilterSpec) ([]ledger.CategorySummaryEntry, error) {
	return l.svc.Dashboard.CategorySummary(ctx, spec)
}

func (l *Local) GetRecentTransactions(ctx context.Context, spec ledger.FilterSpec, limit int) ([]ledger.Transaction, error) {
	return l.svc.Dashboard.Recent(ctx, spec, limit)
}
