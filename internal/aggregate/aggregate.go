// Package aggregate derives summaries, category totals and chart series from
// a set of transactions that already matched a FilterSpec.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/query"
)

const (
	DefaultRecentLimit = 10

	// MaxChartPoints bounds the series length for very wide windows.
	MaxChartPoints = 1000
)

// Summary totals income and expense. Transfers move money between accounts
// and are not counted.
func Summary(txns []ledger.Transaction) ledger.SummaryResult {
	result := ledger.SummaryResult{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, tx := range txns {
		switch tx.Type {
		case ledger.TypeIncome:
			result.TotalIncome = result.TotalIncome.Add(tx.Amount)
		case ledger.TypeExpense:
			result.TotalExpense = result.TotalExpense.Add(tx.Amount)
		}
	}
	result.Balance = result.TotalIncome.Sub(result.TotalExpense)
	return result
}

type groupKey struct {
	category string
	txType   ledger.TransactionType
}

// ByCategory returns one entry per (category, type) pair over income and
// expense transactions. Income groups come first, then expense groups, each
// ordered by category name.
func ByCategory(txns []ledger.Transaction) []ledger.CategorySummaryEntry {
	groups := make(map[groupKey]*ledger.CategorySummaryEntry)
	for _, tx := range txns {
		if tx.Type != ledger.TypeIncome && tx.Type != ledger.TypeExpense {
			continue
		}
		key := groupKey{category: tx.Category, txType: tx.Type}
		entry, ok := groups[key]
		if !ok {
			entry = &ledger.CategorySummaryEntry{Category: tx.Category, Type: tx.Type, Total: decimal.Zero}
			groups[key] = entry
		}
		entry.Total = entry.Total.Add(tx.Amount)
		entry.Count++
	}

	out := make([]ledger.CategorySummaryEntry, 0, len(groups))
	for _, entry := range groups {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Chart buckets income and expense by the filter's period granularity and
// returns an ascending, zero-filled series. Buckets are laid out in now's
// location whatever zone each transaction date carries. The series spans the
// resolved window when it is bounded, otherwise the dates present in txns.
// Past MaxChartPoints buckets the oldest ones are dropped.
func Chart(txns []ledger.Transaction, spec ledger.FilterSpec, now time.Time) []ledger.ChartPoint {
	w := query.Resolve(spec, now)
	if w.Empty {
		return []ledger.ChartPoint{}
	}
	granularity := spec.Period.Granularity()
	loc := now.Location()

	sums := make(map[int64]*ledger.ChartPoint)
	var first, last time.Time
	for _, tx := range txns {
		if tx.Type != ledger.TypeIncome && tx.Type != ledger.TypeExpense {
			continue
		}
		date := tx.Date.In(loc)
		if first.IsZero() || date.Before(first) {
			first = date
		}
		if last.IsZero() || date.After(last) {
			last = date
		}

		bucket := granularity.BucketStart(date)
		point, ok := sums[bucket.Unix()]
		if !ok {
			point = &ledger.ChartPoint{Bucket: bucket, Income: decimal.Zero, Expense: decimal.Zero}
			sums[bucket.Unix()] = point
		}
		if tx.Type == ledger.TypeIncome {
			point.Income = point.Income.Add(tx.Amount)
		} else {
			point.Expense = point.Expense.Add(tx.Amount)
		}
	}

	if w.Start != nil {
		first = w.Start.In(loc)
	}
	if w.End != nil {
		last = w.End.In(loc)
	}
	if first.IsZero() || last.IsZero() || first.After(last) {
		return []ledger.ChartPoint{}
	}

	// Walk back from the newest bucket so the cap trims the oldest.
	start := granularity.BucketStart(first)
	out := make([]ledger.ChartPoint, 0)
	for bucket := granularity.BucketStart(last); !bucket.Before(start) && len(out) < MaxChartPoints; bucket = granularity.PrevBucket(bucket) {
		if point, ok := sums[bucket.Unix()]; ok {
			out = append(out, *point)
			continue
		}
		out = append(out, ledger.ChartPoint{Bucket: bucket, Income: decimal.Zero, Expense: decimal.Zero})
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Recent returns the first limit transactions of an ordered set.
func Recent(ordered []ledger.Transaction, limit int) []ledger.Transaction {
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}
	if limit > len(ordered) {
		limit = len(ordered)
	}
	return append([]ledger.Transaction{}, ordered[:limit]...)
}

// TotalBalance sums the current balance of every account.
func TotalBalance(accounts []ledger.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}
