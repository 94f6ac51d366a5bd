// Package memory is an in-process storage engine. Committed state is
// immutable: readers share a snapshot pointer and a writer works on a private
// copy that replaces the snapshot on commit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

type snapshot struct {
	accounts     map[string]ledger.Account
	transactions map[uuid.UUID]ledger.Transaction
	seq          int64
}

func (s *snapshot) clone() *snapshot {
	out := &snapshot{
		accounts:     make(map[string]ledger.Account, len(s.accounts)),
		transactions: make(map[uuid.UUID]ledger.Transaction, len(s.transactions)),
		seq:          s.seq,
	}
	for k, v := range s.accounts {
		out.accounts[k] = v
	}
	for k, v := range s.transactions {
		out.transactions[k] = v
	}
	return out
}

// Store admits one writer at a time.
type Store struct {
	clock func() time.Time

	writeSlot chan struct{}

	mu      sync.RWMutex
	current *snapshot
}

var _ storage.Engine = (*Store)(nil)

func New() *Store {
	return NewWithClock(time.Now)
}

func NewWithClock(clock func() time.Time) *Store {
	return &Store{
		clock:     clock,
		writeSlot: make(chan struct{}, 1),
		current: &snapshot{
			accounts:     make(map[string]ledger.Account),
			transactions: make(map[uuid.UUID]ledger.Transaction),
		},
	}
}

func (s *Store) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) NewReader(_ context.Context) (*storage.Reader, error) {
	view := &tables{state: s.snapshot()}
	return storage.NewReader(&accountTable{view}, &transactionTable{view}, nil), nil
}

// NewWriter waits for the write slot or for ctx to end.
func (s *Store) NewWriter(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.writeSlot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	draft := &tables{state: s.snapshot().clone(), clock: s.clock}
	return storage.NewWriter(&memTx{store: s, draft: draft}, &accountTable{draft}, &transactionTable{draft}), nil
}

func (s *Store) Close() error {
	return nil
}

type memTx struct {
	store *Store
	draft *tables
}

func (t *memTx) Commit(_ context.Context) error {
	t.store.mu.Lock()
	t.store.current = t.draft.state
	t.store.mu.Unlock()
	<-t.store.writeSlot
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	<-t.store.writeSlot
	return nil
}

// tables is one snapshot shared by the account and transaction tables. A
// reader's snapshot is never modified; a writer's is its private draft.
type tables struct {
	state *snapshot
	clock func() time.Time
}

type accountTable struct {
	*tables
}

type transactionTable struct {
	*tables
}

var (
	_ storage.IAccountWriter     = (*accountTable)(nil)
	_ storage.ITransactionWriter = (*transactionTable)(nil)
)

func (t *accountTable) FindByName(_ context.Context, name string) (*ledger.Account, error) {
	a, ok := t.state.accounts[name]
	if !ok {
		return nil, ledger.NotFoundError("account", name)
	}
	return &a, nil
}

func (t *accountTable) AccountForUpdate(ctx context.Context, name string) (*ledger.Account, error) {
	return t.FindByName(ctx, name)
}

func (t *accountTable) UpdateBalance(_ context.Context, name string, balance decimal.Decimal) error {
	a, ok := t.state.accounts[name]
	if !ok {
		return ledger.NotFoundError("account", name)
	}
	a.Balance = balance
	t.state.accounts[name] = a
	return nil
}

func (t *accountTable) Create(_ context.Context, create *storage.AccountCreate) (*ledger.Account, error) {
	if _, ok := t.state.accounts[create.Name]; ok {
		return nil, storage.ErrAccountExists
	}
	a := ledger.Account{
		Name:            create.Name,
		Type:            create.Type,
		Balance:         create.StartingBalance,
		StartingBalance: create.StartingBalance,
		CreatedAt:       t.clock(),
	}
	t.state.accounts[a.Name] = a
	return &a, nil
}

// List returns accounts ordered by name.
func (t *accountTable) List(_ context.Context) ([]ledger.Account, error) {
	out := make([]ledger.Account, 0, len(t.state.accounts))
	for _, a := range t.state.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (t *transactionTable) FindByID(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	tx, ok := t.state.transactions[id]
	if !ok {
		return nil, ledger.NotFoundError("transaction", id.String())
	}
	return &tx, nil
}

func (t *transactionTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return t.FindByID(ctx, id)
}

func (t *transactionTable) Insert(_ context.Context, tx *ledger.Transaction) error {
	if _, ok := t.state.transactions[tx.ID]; ok {
		return storage.ErrTransactionExists
	}
	t.state.seq++
	tx.Seq = t.state.seq
	t.state.transactions[tx.ID] = *tx
	return nil
}

func (t *transactionTable) Update(_ context.Context, tx *ledger.Transaction) error {
	if _, ok := t.state.transactions[tx.ID]; !ok {
		return ledger.NotFoundError("transaction", tx.ID.String())
	}
	t.state.transactions[tx.ID] = *tx
	return nil
}

func (t *transactionTable) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := t.state.transactions[id]; !ok {
		return ledger.NotFoundError("transaction", id.String())
	}
	delete(t.state.transactions, id)
	return nil
}

// List returns the matching transactions in creation order. Nil filter returns all.
func (t *transactionTable) List(_ context.Context, filter *storage.TransactionFilter) ([]ledger.Transaction, error) {
	out := make([]ledger.Transaction, 0, len(t.state.transactions))
	for _, tx := range t.state.transactions {
		if filter != nil && !matches(tx, filter) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func matches(tx ledger.Transaction, f *storage.TransactionFilter) bool {
	if f.Division != ledger.DivisionNone && tx.Division != f.Division {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Type != 0 && tx.Type != f.Type {
		return false
	}
	if f.Start != nil && tx.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && tx.Date.After(*f.End) {
		return false
	}
	return true
}
