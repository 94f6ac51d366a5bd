package session

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// State is a published snapshot of a session. Slices are replaced on every
// publish and never modified afterwards, so a State may be shared freely.
type State struct {
	// Filter is the most recently requested filter. The views below were
	// computed for ViewFilter, which lags Filter while a refresh is in flight.
	Filter     ledger.FilterSpec
	ViewFilter ledger.FilterSpec

	Page            ledger.Page
	Accounts        []ledger.Account
	TotalBalance    decimal.Decimal
	Summary         ledger.SummaryResult
	Chart           []ledger.ChartPoint
	CategorySummary []ledger.CategorySummaryEntry
	Recent          []ledger.Transaction

	Loading   bool
	LastError error

	// Generation identifies the refresh that produced the views. Zero until
	// the first successful refresh.
	Generation uint64
}

// Transactions is the current page of the transaction list.
func (s State) Transactions() []ledger.Transaction {
	return s.Page.Transactions
}

// ErrorMessage is LastError rendered for display, or "".
func (s State) ErrorMessage() string {
	if s.LastError == nil {
		return ""
	}
	var e *ledger.Error
	if errors.As(s.LastError, &e) && e.Message != "" {
		return e.Message
	}
	return s.LastError.Error()
}

type views struct {
	page       ledger.Page
	accounts   []ledger.Account
	summary    ledger.SummaryResult
	chart      []ledger.ChartPoint
	categories []ledger.CategorySummaryEntry
	recent     []ledger.Transaction
}
