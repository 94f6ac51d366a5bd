package dashboard

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

type FilterInput struct {
	common.FilterQuery
}

type SummaryOutput struct {
	Body struct {
		Data Summary `json:"data"`
	}
}

type CategorySummaryOutput struct {
	Body struct {
		Data []CategoryTotal `json:"data"`
	}
}

type ChartOutput struct {
	Body struct {
		Data []ChartPoint `json:"data"`
	}
}

type RecentOutput struct {
	Body struct {
		Data []transaction.Transaction `json:"data"`
	}
}

type dashboardService interface {
	Summary(ctx context.Context, spec ledger.FilterSpec) (ledger.SummaryResult, error)
	CategorySummary(ctx context.Context, spec ledger.FilterSpec) ([]ledger.CategorySummaryEntry, error)
	Chart(ctx context.Context, spec ledger.FilterSpec) ([]ledger.ChartPoint, error)
	Recent(ctx context.Context, spec ledger.FilterSpec, limit int) ([]ledger.Transaction, error)
}

// Handler serves the read-only dashboard aggregates under /v1/dashboard.
type Handler struct {
	DashboardService dashboardService
}

func NewHandler(svc dashboardService) *Handler {
	return &Handler{DashboardService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/summary",
		Summary:     "Income and expense totals",
		Description: "Totals income and expense over the matching transactions. Transfers are excluded.",
		Tags:        []string{"Dashboard"},
	}, h.summary)

	huma.Register(api, huma.Operation{
		OperationID: "get-category-summary",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/category-summary",
		Summary:     "Totals per category",
		Tags:        []string{"Dashboard"},
	}, h.categorySummary)

	huma.Register(api, huma.Operation{
		OperationID: "get-chart",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/chart",
		Summary:     "Income and expense series",
		Description: "Buckets income and expense by the filter's period granularity, monthly when no period is set.",
		Tags:        []string{"Dashboard"},
	}, h.chart)

	huma.Register(api, huma.Operation{
		OperationID: "get-recent",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/recent",
		Summary:     "Most recent transactions",
		Description: "Returns up to limit matching transactions, most recent first. limit defaults to 10.",
		Tags:        []string{"Dashboard"},
	}, h.recent)
}

func timed(ctx context.Context, name string) func() {
	if logData := logging.GetLogData(ctx); logData != nil {
		return logData.AddTiming(name)
	}
	return func() {}
}

func (h *Handler) summary(ctx context.Context, input *FilterInput) (*SummaryOutput, error) {
	spec, err := input.Spec()
	if err != nil {
		return nil, err
	}

	stop := timed(ctx, "summaryMs")
	result, err := h.DashboardService.Summary(ctx, spec)
	stop()
	if err != nil {
		return nil, common.Error(err, "failed to compute summary")
	}

	out := &SummaryOutput{}
	out.Body.Data = SummaryFromLedger(result)
	return out, nil
}

func (h *Handler) categorySummary(ctx context.Context, input *FilterInput) (*CategorySummaryOutput, error) {
	spec, err := input.Spec()
	if err != nil {
		return nil, err
	}

	stop := timed(ctx, "categorySummaryMs")
	entries, err := h.DashboardService.CategorySummary(ctx, spec)
	stop()
	if err != nil {
		return nil, common.Error(err, "failed to compute category summary")
	}

	out := &CategorySummaryOutput{}
	out.Body.Data = CategoriesFromLedger(entries)
	return out, nil
}

func (h *Handler) chart(ctx context.Context, input *FilterInput) (*ChartOutput, error) {
	spec, err := input.Spec()
	if err != nil {
		return nil, err
	}

	stop := timed(ctx, "chartMs")
	points, err := h.DashboardService.Chart(ctx, spec)
	stop()
	if err != nil {
		return nil, common.Error(err, "failed to compute chart")
	}

	out := &ChartOutput{}
	out.Body.Data = ChartFromLedger(points)
	return out, nil
}

func (h *Handler) recent(ctx context.Context, input *FilterInput) (*RecentOutput, error) {
	spec, err := input.Spec()
	if err != nil {
		return nil, err
	}
	limit := spec.Limit
	spec.Limit = 0

	stop := timed(ctx, "recentMs")
	txs, err := h.DashboardService.Recent(ctx, spec, limit)
	stop()
	if err != nil {
		return nil, common.Error(err, "failed to list recent transactions")
	}

	out := &RecentOutput{}
	out.Body.Data = transaction.FromLedgerList(txs)
	return out, nil
}
