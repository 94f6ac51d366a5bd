package storage

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

var (
	ErrAccountExists     = errors.New("storage: account already exists")
	ErrTransactionExists = errors.New("storage: transaction already exists")
)

// Engine hands out consistent readers and transactional writers. Writers are
// exclusive per touched account: a second writer blocks until the first commits
// or rolls back.
type Engine interface {
	NewReader(ctx context.Context) (*Reader, error)
	NewWriter(ctx context.Context) (*Writer, error)
	Close() error
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	Name            string
	Type            ledger.AccountType
	StartingBalance decimal.Decimal
}

// TransactionFilter narrows a transaction listing. Storage may use it to
// pre-filter, callers still apply the full query.
type TransactionFilter struct {
	Start    *time.Time
	End      *time.Time
	Division ledger.Division
	Category string
	Type     ledger.TransactionType
}

// IAccountReader defines read access to accounts.
//
//go:generate mockery --name IAccountReader --output mock_IAccountReader.go
type IAccountReader interface {
	FindByName(ctx context.Context, name string) (*ledger.Account, error)
	List(ctx context.Context) ([]ledger.Account, error)
}

// IAccountWriter defines account mutations inside a write transaction.
type IAccountWriter interface {
	IAccountReader
	AccountForUpdate(ctx context.Context, name string) (*ledger.Account, error)
	UpdateBalance(ctx context.Context, name string, balance decimal.Decimal) error
	Create(ctx context.Context, create *AccountCreate) (*ledger.Account, error)
}

// ITransactionReader defines read access to transactions.
//
//go:generate mockery --name ITransactionReader --output mock_ITransactionReader.go
type ITransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]ledger.Transaction, error)
}

// ITransactionWriter defines transaction mutations inside a write transaction.
// Insert assigns the creation sequence number on tx.
type ITransactionWriter interface {
	ITransactionReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	Insert(ctx context.Context, tx *ledger.Transaction) error
	Update(ctx context.Context, tx *ledger.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ledger.Book = (IAccountWriter)(nil)
