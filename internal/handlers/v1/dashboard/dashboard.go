package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Summary is the API model for income and expense totals.
type Summary struct {
	TotalIncome  string `json:"totalIncome" doc:"Sum of income amounts"`
	TotalExpense string `json:"totalExpense" doc:"Sum of expense amounts"`
	Balance      string `json:"balance" doc:"Income minus expense"`
}

// CategoryTotal is one (category, type) group of the category summary.
type CategoryTotal struct {
	Category string `json:"category"`
	Type     string `json:"type" doc:"income or expense"`
	Total    string `json:"total" doc:"Sum of amounts in the group"`
	Count    int    `json:"count" doc:"Number of transactions in the group"`
}

// ChartPoint is one bucket of the income and expense series.
type ChartPoint struct {
	Bucket  string `json:"bucket" doc:"RFC3339 start of the bucket"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

func SummaryFromLedger(s ledger.SummaryResult) Summary {
	return Summary{
		TotalIncome:  s.TotalIncome.String(),
		TotalExpense: s.TotalExpense.String(),
		Balance:      s.Balance.String(),
	}
}

func (s Summary) Ledger() (ledger.SummaryResult, error) {
	var (
		out ledger.SummaryResult
		err error
	)
	if out.TotalIncome, err = decimal.NewFromString(s.TotalIncome); err != nil {
		return out, err
	}
	if out.TotalExpense, err = decimal.NewFromString(s.TotalExpense); err != nil {
		return out, err
	}
	if out.Balance, err = decimal.NewFromString(s.Balance); err != nil {
		return out, err
	}
	return out, nil
}

func CategoriesFromLedger(entries []ledger.CategorySummaryEntry) []CategoryTotal {
	out := make([]CategoryTotal, len(entries))
	for i, e := range entries {
		out[i] = CategoryTotal{
			Category: e.Category,
			Type:     e.Type.String(),
			Total:    e.Total.String(),
			Count:    e.Count,
		}
	}
	return out
}

func (c CategoryTotal) Ledger() (ledger.CategorySummaryEntry, error) {
	out := ledger.CategorySummaryEntry{Category: c.Category, Count: c.Count}
	var err error
	if out.Type, err = ledger.ParseTransactionType(c.Type); err != nil {
		return out, err
	}
	if out.Total, err = decimal.NewFromString(c.Total); err != nil {
		return out, err
	}
	return out, nil
}

func ChartFromLedger(points []ledger.ChartPoint) []ChartPoint {
	out := make([]ChartPoint, len(points))
	for i, p := range points {
		out[i] = ChartPoint{
			Bucket:  p.Bucket.Format(time.RFC3339),
			Income:  p.Income.String(),
			Expense: p.Expense.String(),
		}
	}
	return out
}

func (p ChartPoint) Ledger() (ledger.ChartPoint, error) {
	var (
		out ledger.ChartPoint
		err error
	)
	if out.Bucket, err = time.Parse(time.RFC3339, p.Bucket); err != nil {
		return out, err
	}
	if out.Income, err = decimal.NewFromString(p.Income); err != nil {
		return out, err
	}
	if out.Expense, err = decimal.NewFromString(p.Expense); err != nil {
		return out, err
	}
	return out, nil
}
