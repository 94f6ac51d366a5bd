package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/metrics"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

// testClock is a settable clock shared by the store and the services.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestService(t *testing.T, lockWindow time.Duration, balances map[string]string) (*Service, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)}
	store := memory.NewWithClock(clock.Now)
	op := operator.NewOperatorDelegator(store, 1, metrics.New())
	op.Start()
	t.Cleanup(op.Stop)

	svc := NewService(store, op, Options{Now: clock.Now, LockWindow: lockWindow})
	for name, balance := range balances {
		_, err := svc.Account.CreateAccount(context.Background(), Account{
			Name:            name,
			Type:            ledger.AccountTypeForName(name),
			StartingBalance: decimal.RequireFromString(balance),
		})
		require.NoError(t, err)
	}
	return svc, clock
}

func accountBalance(t *testing.T, svc *Service, name string) string {
	t.Helper()
	a, err := svc.Account.GetAccount(context.Background(), name)
	require.NoError(t, err)
	return a.Balance.String()
}

func expense(amount, category, account string) ledger.Payload {
	return ledger.Payload{Type: "expense", Amount: amount, Description: "spend", Category: category, Account: account}
}

func income(amount, category, account string) ledger.Payload {
	return ledger.Payload{Type: "income", Amount: amount, Description: "earn", Category: category, Account: account}
}

func transfer(amount, from, to string) ledger.Payload {
	return ledger.Payload{Type: "transfer", Amount: amount, Description: "move", Account: from, ToAccount: to}
}

func at(p ledger.Payload, date time.Time) ledger.Payload {
	p.Date = &date
	return p
}
