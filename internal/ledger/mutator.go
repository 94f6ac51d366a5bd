package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Effect is the signed balance change a transaction applies to one account.
type Effect struct {
	Account string
	Delta   decimal.Decimal
}

// Effects lists the per-account balance changes of t.
func Effects(t Transaction) []Effect {
	switch t.Type {
	case TypeIncome:
		return []Effect{{Account: t.Account, Delta: t.Amount}}
	case TypeExpense:
		return []Effect{{Account: t.Account, Delta: t.Amount.Neg()}}
	case TypeTransfer:
		return []Effect{
			{Account: t.Account, Delta: t.Amount.Neg()},
			{Account: t.ToAccount, Delta: t.Amount},
		}
	}
	return nil
}

// Book is the transactional view of account balances the mutator works on.
// AccountForUpdate must lock the account until the surrounding transaction
// ends and return a NotFound *Error when it does not exist.
type Book interface {
	AccountForUpdate(ctx context.Context, name string) (*Account, error)
	UpdateBalance(ctx context.Context, name string, balance decimal.Decimal) error
}

// Mutate retracts before's effect (if any) and applies after's effect (if
// any) as one step. Every new balance is computed and checked before the
// first write, so a rejected mutation never writes. Accounts are locked in
// name order. The returned map holds the new balance of every touched account.
func Mutate(ctx context.Context, book Book, before, after *Transaction) (map[string]decimal.Decimal, error) {
	names := touchedAccounts(before, after)

	current := make(map[string]decimal.Decimal, len(names))
	for _, name := range names {
		account, err := book.AccountForUpdate(ctx, name)
		if err != nil {
			return nil, err
		}
		current[name] = account.Balance
	}

	working := make(map[string]decimal.Decimal, len(current))
	for name, balance := range current {
		working[name] = balance
	}

	if before != nil {
		for _, e := range Effects(*before) {
			working[e.Account] = working[e.Account].Sub(e.Delta)
		}
	}

	if after != nil {
		for _, e := range Effects(*after) {
			if e.Delta.IsNegative() {
				required := e.Delta.Neg()
				if working[e.Account].LessThan(required) {
					return nil, &Error{
						Kind:  KindInsufficientFunds,
						Field: e.Account,
						Message: fmt.Sprintf("insufficient funds: available %s, required %s",
							working[e.Account].String(), required.String()),
					}
				}
			}
			working[e.Account] = working[e.Account].Add(e.Delta)
		}
	}

	for _, name := range names {
		if working[name].Equal(current[name]) {
			continue
		}
		if err := book.UpdateBalance(ctx, name, working[name]); err != nil {
			return nil, err
		}
	}

	return working, nil
}

func touchedAccounts(before, after *Transaction) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range []*Transaction{before, after} {
		if t == nil {
			continue
		}
		for _, name := range t.Accounts() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
