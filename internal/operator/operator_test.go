package operator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/metrics"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

// pausedAction parks inside Perform until released, then runs next.
type pausedAction struct {
	next    actions.IAction
	entered chan struct{}
	release chan struct{}
}

func newPausedAction(next actions.IAction) *pausedAction {
	return &pausedAction{next: next, entered: make(chan struct{}), release: make(chan struct{})}
}

func (p *pausedAction) Name() string {
	return "paused-" + p.next.Name()
}

func (p *pausedAction) Perform(ctx context.Context, writer *storage.Writer) error {
	close(p.entered)
	<-p.release
	return p.next.Perform(ctx, writer)
}

var now = time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)

func startDelegator(t *testing.T, balances map[string]string) (*OperatorDelegator, *memory.Store) {
	t.Helper()
	store := memory.NewWithClock(func() time.Time { return now })
	d := NewOperatorDelegator(store, 1, metrics.New())
	d.Start()
	t.Cleanup(d.Stop)

	for name, balance := range balances {
		err := d.Process(context.Background(), &actions.CreateAccount{
			Name:            name,
			Type:            ledger.AccountTypeForName(name),
			StartingBalance: decimal.RequireFromString(balance),
		})
		require.NoError(t, err)
	}
	return d, store
}

func balance(t *testing.T, store storage.Engine, name string) string {
	t.Helper()
	ctx := context.Background()
	r, err := store.NewReader(ctx)
	require.NoError(t, err)
	defer r.Close(ctx)

	a, err := r.Accounts.FindByName(ctx, name)
	require.NoError(t, err)
	return a.Balance.String()
}

func transactionCount(t *testing.T, store storage.Engine) int {
	t.Helper()
	ctx := context.Background()
	r, err := store.NewReader(ctx)
	require.NoError(t, err)
	defer r.Close(ctx)

	all, err := r.Transactions.List(ctx, nil)
	require.NoError(t, err)
	return len(all)
}

func payload(txType, amount, category, account, toAccount string) ledger.Payload {
	return ledger.Payload{
		Type:        txType,
		Amount:      amount,
		Description: "test " + txType,
		Category:    category,
		Account:     account,
		ToAccount:   toAccount,
	}
}

func TestCreateTransaction_Income(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"cash": "0"})

	action := &actions.CreateTransaction{Payload: payload("income", "200", "Salary", "cash", ""), Now: now}
	require.NoError(t, d.Process(context.Background(), action))

	require.NotNil(t, action.Result)
	assert.False(t, action.Result.ID.IsNil())
	assert.Equal(t, int64(1), action.Result.Seq)
	assert.Equal(t, now, action.Result.CreatedAt)
	assert.Equal(t, "200", balance(t, store, "cash"))
}

func TestCreateTransaction_InsufficientFundsRollsBack(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"bank": "100"})

	action := &actions.CreateTransaction{Payload: payload("expense", "150", "Food", "bank", ""), Now: now}
	err := d.Process(context.Background(), action)

	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds))
	assert.Nil(t, action.Result)
	assert.Equal(t, "100", balance(t, store, "bank"))
	assert.Zero(t, transactionCount(t, store))
}

func TestCreateTransaction_ValidationBeforeMutation(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"cash": "10"})

	err := d.Process(context.Background(), &actions.CreateTransaction{Payload: payload("expense", "0", "Food", "cash", ""), Now: now})

	assert.Equal(t, ledger.KindInvalidAmount, ledger.KindOf(err))
	assert.Equal(t, "10", balance(t, store, "cash"))
}

func TestCreateTransaction_Transfer(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"bank": "120", "wallet": "10"})

	action := &actions.CreateTransaction{Payload: payload("transfer", "50", "", "bank", "wallet"), Now: now}
	require.NoError(t, d.Process(context.Background(), action))

	assert.Equal(t, "70", balance(t, store, "bank"))
	assert.Equal(t, "60", balance(t, store, "wallet"))
	assert.Equal(t, ledger.TransferCategory, action.Result.Category)
}

func TestUpdateTransaction_RetractsThenApplies(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"bank": "100"})
	ctx := context.Background()

	create := &actions.CreateTransaction{Payload: payload("expense", "70", "Food", "bank", ""), Now: now}
	require.NoError(t, d.Process(ctx, create))

	update := &actions.UpdateTransaction{ID: create.Result.ID, Payload: payload("expense", "100", "Food", "bank", ""), Now: now.Add(time.Hour)}
	require.NoError(t, d.Process(ctx, update))

	assert.Equal(t, "0", balance(t, store, "bank"))
	assert.Equal(t, create.Result.Seq, update.Result.Seq)
	assert.Equal(t, now, update.Result.CreatedAt)
	assert.Equal(t, now.Add(time.Hour), update.Result.UpdatedAt)

	tooMuch := &actions.UpdateTransaction{ID: create.Result.ID, Payload: payload("expense", "100.01", "Food", "bank", ""), Now: now}
	assert.Equal(t, ledger.KindInsufficientFunds, ledger.KindOf(d.Process(ctx, tooMuch)))
	assert.Equal(t, "0", balance(t, store, "bank"))
}

func TestUpdateTransaction_LockWindow(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"cash": "0"})
	ctx := context.Background()

	create := &actions.CreateTransaction{Payload: payload("income", "5", "Salary", "cash", ""), Now: now}
	require.NoError(t, d.Process(ctx, create))

	update := &actions.UpdateTransaction{
		ID:         create.Result.ID,
		Payload:    payload("income", "9", "Salary", "cash", ""),
		Now:        now.Add(48 * time.Hour),
		LockWindow: 24 * time.Hour,
	}
	assert.True(t, errors.Is(d.Process(ctx, update), ledger.ErrLocked))

	del := &actions.DeleteTransaction{ID: create.Result.ID, Now: now.Add(48 * time.Hour), LockWindow: 24 * time.Hour}
	assert.True(t, errors.Is(d.Process(ctx, del), ledger.ErrLocked))
	assert.Equal(t, "5", balance(t, store, "cash"))
}

func TestDeleteTransaction(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"bank": "120", "wallet": "10"})
	ctx := context.Background()

	create := &actions.CreateTransaction{Payload: payload("transfer", "50", "", "bank", "wallet"), Now: now}
	require.NoError(t, d.Process(ctx, create))

	del := &actions.DeleteTransaction{ID: create.Result.ID, Now: now}
	require.NoError(t, d.Process(ctx, del))

	assert.Equal(t, "120", balance(t, store, "bank"))
	assert.Equal(t, "10", balance(t, store, "wallet"))
	assert.Zero(t, transactionCount(t, store))

	again := &actions.DeleteTransaction{ID: create.Result.ID, Now: now}
	assert.True(t, errors.Is(d.Process(ctx, again), ledger.ErrNotFound))
}

func TestDeleteTransaction_WouldOverdraw(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"cash": "0"})
	ctx := context.Background()

	income := &actions.CreateTransaction{Payload: payload("income", "100", "Salary", "cash", ""), Now: now}
	require.NoError(t, d.Process(ctx, income))
	spend := &actions.CreateTransaction{Payload: payload("expense", "80", "Food", "cash", ""), Now: now}
	require.NoError(t, d.Process(ctx, spend))

	err := d.Process(ctx, &actions.DeleteTransaction{ID: income.Result.ID, Now: now})
	assert.Equal(t, ledger.KindInsufficientFunds, ledger.KindOf(err))
	assert.Equal(t, "20", balance(t, store, "cash"))
}

func TestCreateAccount_Duplicate(t *testing.T) {
	d, _ := startDelegator(t, map[string]string{"cash": "0"})

	err := d.Process(context.Background(), &actions.CreateAccount{Name: "cash"})
	assert.True(t, errors.Is(err, storage.ErrAccountExists))
}

func TestProcess_ConcurrentTransfersConserveMoney(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"bank": "100", "wallet": "100"})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		from, to := "bank", "wallet"
		if i%2 == 1 {
			from, to = to, from
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Process(ctx, &actions.CreateTransaction{Payload: payload("transfer", "30", "", from, to), Now: now})
		}()
	}
	wg.Wait()

	bank := decimal.RequireFromString(balance(t, store, "bank"))
	wallet := decimal.RequireFromString(balance(t, store, "wallet"))
	assert.Equal(t, "200", bank.Add(wallet).String())
	assert.False(t, bank.IsNegative())
	assert.False(t, wallet.IsNegative())
}

func TestProcess_AfterStop(t *testing.T) {
	d, _ := startDelegator(t, nil)
	d.Stop()

	err := d.Process(context.Background(), &actions.CreateAccount{Name: "cash"})
	assert.True(t, errors.Is(err, ErrStopped))
}

func TestProcess_CancelledContext(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"cash": "0"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &actions.CreateTransaction{Payload: payload("income", "1", "Salary", "cash", ""), Now: now})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "0", balance(t, store, "cash"))
}

func TestProcess_CancelDuringPerformRollsBack(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"cash": "10"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	action := newPausedAction(&actions.CreateTransaction{Payload: payload("expense", "4", "Food", "cash", ""), Now: now})
	errCh := make(chan error, 1)
	go func() { errCh <- d.Process(ctx, action) }()

	<-action.entered
	cancel()
	close(action.release)

	err := <-errCh
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "10", balance(t, store, "cash"))
	assert.Zero(t, transactionCount(t, store))
}

func TestProcess_WaitsForWorkerAfterCancel(t *testing.T) {
	d, store := startDelegator(t, map[string]string{"cash": "10"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	action := newPausedAction(&actions.CreateTransaction{Payload: payload("income", "5", "Salary", "cash", ""), Now: now})
	errCh := make(chan error, 1)
	go func() { errCh <- d.Process(ctx, action) }()

	<-action.entered
	cancel()
	select {
	case err := <-errCh:
		t.Fatalf("Process returned %v before the worker finished", err)
	case <-time.After(20 * time.Millisecond):
	}
	close(action.release)

	require.Error(t, <-errCh)
	assert.Equal(t, "10", balance(t, store, "cash"))

	// The worker is free again for the next caller.
	require.NoError(t, d.Process(context.Background(), &actions.CreateTransaction{Payload: payload("income", "5", "Salary", "cash", ""), Now: now}))
	assert.Equal(t, "15", balance(t, store, "cash"))
}
