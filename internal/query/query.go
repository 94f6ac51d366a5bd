// Package query selects, orders and paginates transactions for a FilterSpec.
package query

import (
	"sort"
	"time"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Window is the inclusive date range a FilterSpec resolves to. A nil bound is
// open. Empty is set when the bounds exclude every date.
type Window struct {
	Start *time.Time
	End   *time.Time
	Empty bool
}

// Resolve turns the filter's explicit dates or period into a Window anchored on now.
// Explicit dates take precedence over the period.
func Resolve(spec ledger.FilterSpec, now time.Time) Window {
	if spec.StartDate != nil || spec.EndDate != nil {
		w := Window{Start: spec.StartDate, End: spec.EndDate}
		if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
			w.Empty = true
		}
		return w
	}

	if spec.Period == ledger.PeriodNone {
		return Window{}
	}

	start := spec.Period.BucketStart(now)
	end := now
	return Window{Start: &start, End: &end}
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	if w.Empty {
		return false
	}
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Matches reports whether tx satisfies every predicate present in spec.
func Matches(tx ledger.Transaction, spec ledger.FilterSpec, w Window) bool {
	if spec.Division != ledger.DivisionNone && tx.Division != spec.Division {
		return false
	}
	if spec.Category != "" && tx.Category != spec.Category {
		return false
	}
	if spec.Type != 0 && tx.Type != spec.Type {
		return false
	}
	return w.Contains(tx.Date)
}

// Select returns the matching transactions, most recent first.
func Select(txns []ledger.Transaction, spec ledger.FilterSpec, now time.Time) []ledger.Transaction {
	w := Resolve(spec, now)
	out := make([]ledger.Transaction, 0, len(txns))
	if w.Empty {
		return out
	}
	for _, tx := range txns {
		if Matches(tx, spec, w) {
			out = append(out, tx)
		}
	}
	Sort(out)
	return out
}

// Sort orders by date descending, then by creation sequence descending.
func Sort(txns []ledger.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].Seq > txns[j].Seq
	})
}

// Bounds clamps a requested page and limit to usable values.
func Bounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Paginate cuts one 1-indexed page out of an already ordered set. A page past
// the end is empty but still reports the real total and page count.
func Paginate(ordered []ledger.Transaction, page, limit int) ledger.Page {
	page, limit = Bounds(page, limit)
	total := len(ordered)

	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	result := ledger.Page{
		Transactions: []ledger.Transaction{},
		Total:        total,
		Pages:        pages,
		Page:         page,
		Limit:        limit,
	}

	if page > pages || total == 0 {
		return result
	}
	offset := (page - 1) * limit
	end := offset + limit
	if end > total {
		end = total
	}
	result.Transactions = append(result.Transactions, ordered[offset:end]...)
	return result
}

// Run selects, orders and paginates in one step.
func Run(txns []ledger.Transaction, spec ledger.FilterSpec, now time.Time) ledger.Page {
	return Paginate(Select(txns, spec, now), spec.Page, spec.Limit)
}
