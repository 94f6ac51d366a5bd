package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/aggregate"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// AccountService handles account business logic.
type AccountService struct {
	*base
}

// CreateAccount creates an account whose balance starts at its starting balance.
func (s *AccountService) CreateAccount(ctx context.Context, account Account) (*ledger.Account, error) {
	name := strings.TrimSpace(account.Name)
	if name == "" {
		return nil, ledger.NewError(ledger.KindMissingAccount, "name", "account name is required")
	}

	action := &actions.CreateAccount{
		Name:            name,
		Type:            account.Type,
		StartingBalance: account.StartingBalance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

// SeedAccounts creates any of names that do not exist yet with a zero balance.
func (s *AccountService) SeedAccounts(ctx context.Context, names []string) error {
	for _, name := range names {
		_, err := s.CreateAccount(ctx, Account{
			Name:            name,
			Type:            ledger.AccountTypeForName(name),
			StartingBalance: decimal.Zero,
		})
		if errors.Is(err, storage.ErrAccountExists) {
			continue
		}
		if err != nil {
			return err
		}
		logrus.WithField("account", name).Info("AccountService.SeedAccounts.created")
	}
	return nil
}

func (s *AccountService) GetAccount(ctx context.Context, name string) (*ledger.Account, error) {
	var found *ledger.Account
	err := s.withReader(ctx, func(r *storage.Reader) error {
		var err error
		found, err = r.Accounts.FindByName(ctx, name)
		return err
	})
	return found, err
}

func (s *AccountService) ListAccounts(ctx context.Context) (AccountList, error) {
	var accounts []ledger.Account
	err := s.withReader(ctx, func(r *storage.Reader) error {
		var err error
		accounts, err = r.Accounts.List(ctx)
		return err
	})
	if err != nil {
		return AccountList{}, err
	}
	return AccountList{Accounts: accounts, TotalBalance: aggregate.TotalBalance(accounts)}, nil
}
