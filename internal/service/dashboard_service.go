package service

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/aggregate"
	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// DashboardService derives summaries and series from the matching transactions.
type DashboardService struct {
	*base
}

func (s *DashboardService) Summary(ctx context.Context, spec ledger.FilterSpec) (ledger.SummaryResult, error) {
	selected, err := s.matching(ctx, spec, s.now())
	if err != nil {
		return ledger.SummaryResult{}, err
	}
	return aggregate.Summary(selected), nil
}

func (s *DashboardService) CategorySummary(ctx context.Context, spec ledger.FilterSpec) ([]ledger.CategorySummaryEntry, error) {
	selected, err := s.matching(ctx, spec, s.now())
	if err != nil {
		return nil, err
	}
	return aggregate.ByCategory(selected), nil
}

func (s *DashboardService) Chart(ctx context.Context, spec ledger.FilterSpec) ([]ledger.ChartPoint, error) {
	now := s.now()
	selected, err := s.matching(ctx, spec, now)
	if err != nil {
		return nil, err
	}
	return aggregate.Chart(selected, spec, now), nil
}

// Recent returns up to limit of the most recent matching transactions.
func (s *DashboardService) Recent(ctx context.Context, spec ledger.FilterSpec, limit int) ([]ledger.Transaction, error) {
	selected, err := s.matching(ctx, spec, s.now())
	if err != nil {
		return nil, err
	}
	return aggregate.Recent(selected, limit), nil
}
