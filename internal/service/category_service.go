package service

import (
	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// CategoryService lists the categories a transaction type accepts.
type CategoryService struct{}

// Categories returns the allowed categories per type. A zero txType returns
// every type.
func (s *CategoryService) Categories(txType ledger.TransactionType) map[ledger.TransactionType][]string {
	out := make(map[ledger.TransactionType][]string)
	for _, t := range ledger.TransactionTypes {
		if txType != 0 && t != txType {
			continue
		}
		out[t] = ledger.Categories(t)
	}
	return out
}
