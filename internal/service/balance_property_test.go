package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/query"
)

var (
	propertyAccounts = []string{"cash", "bank", "wallet"}
	propertyAmounts  = []string{"0.01", "1.50", "12", "25.25", "80", "130", "0", "-5", "abc"}
)

// randomPayload mixes valid payloads with ones the validator or the balance
// check must reject.
func randomPayload(r *rand.Rand) ledger.Payload {
	pick := func(xs []string) string { return xs[r.Intn(len(xs))] }
	account := pick(propertyAccounts)
	if r.Intn(20) == 0 {
		account = "vault"
	}
	amount := pick(propertyAmounts)

	switch r.Intn(3) {
	case 0:
		return income(amount, pick(ledger.Categories(ledger.TypeIncome)), account)
	case 1:
		category := pick(ledger.Categories(ledger.TypeExpense))
		if r.Intn(15) == 0 {
			category = "Salary"
		}
		return expense(amount, category, account)
	default:
		return transfer(amount, account, pick(propertyAccounts))
	}
}

func allTransactions(t *testing.T, svc *Service) []ledger.Transaction {
	t.Helper()
	var out []ledger.Transaction
	for page := 1; ; page++ {
		p, err := svc.Transaction.ListTransactions(context.Background(), ledger.FilterSpec{Page: page, Limit: query.MaxLimit})
		require.NoError(t, err)
		out = append(out, p.Transactions...)
		if page >= p.Pages {
			return out
		}
	}
}

func assertBalancesFollowEffects(t *testing.T, svc *Service, starting map[string]decimal.Decimal, step int) {
	t.Helper()
	expected := make(map[string]decimal.Decimal, len(starting))
	for name, balance := range starting {
		expected[name] = balance
	}
	for _, tx := range allTransactions(t, svc) {
		for _, effect := range ledger.Effects(tx) {
			expected[effect.Account] = expected[effect.Account].Add(effect.Delta)
		}
	}

	list, err := svc.Account.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Accounts, len(starting))
	for _, a := range list.Accounts {
		assert.True(t, expected[a.Name].Equal(a.Balance), "step %d: %s is %s, effects give %s", step, a.Name, a.Balance, expected[a.Name])
		assert.False(t, a.Balance.IsNegative(), "step %d: %s overdrawn", step, a.Name)
	}
}

func TestBalances_FollowEffectsOverRandomMutations(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 2025} {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			balances := map[string]string{"cash": "50", "bank": "200", "wallet": "0"}
			svc, _ := newTestService(t, 0, balances)
			starting := make(map[string]decimal.Decimal, len(balances))
			for name, b := range balances {
				starting[name] = decimal.RequireFromString(b)
			}

			r := rand.New(rand.NewSource(seed))
			ctx := context.Background()
			var ids []uuid.UUID
			pickID := func() uuid.UUID {
				if len(ids) == 0 || r.Intn(10) == 0 {
					return uuid.Must(uuid.NewV4())
				}
				return ids[r.Intn(len(ids))]
			}

			rejected := 0
			for step := 0; step < 150; step++ {
				var err error
				switch op := r.Intn(10); {
				case op < 5:
					var tx *ledger.Transaction
					tx, err = svc.Transaction.CreateTransaction(ctx, randomPayload(r))
					if err == nil {
						ids = append(ids, tx.ID)
					}
				case op < 8:
					_, err = svc.Transaction.UpdateTransaction(ctx, pickID(), randomPayload(r))
				default:
					id := pickID()
					if err = svc.Transaction.DeleteTransaction(ctx, id); err == nil {
						for i := range ids {
							if ids[i] == id {
								ids = append(ids[:i], ids[i+1:]...)
								break
							}
						}
					}
				}
				if err != nil {
					rejected++
					assert.NotEqual(t, ledger.KindUnknown, ledger.KindOf(err), "step %d: %v", step, err)
				}
				assertBalancesFollowEffects(t, svc, starting, step)
			}
			assert.NotZero(t, rejected, "the sequence should include rejected mutations")
			assert.Len(t, allTransactions(t, svc), len(ids))
		})
	}
}
