package service

import (
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/query"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// storageFilter pushes the equality predicates and the resolved window down to
// storage. The query engine still re-applies all of them.
func storageFilter(spec ledger.FilterSpec, w query.Window) *storage.TransactionFilter {
	return &storage.TransactionFilter{
		Start:    w.Start,
		End:      w.End,
		Division: spec.Division,
		Category: spec.Category,
		Type:     spec.Type,
	}
}
