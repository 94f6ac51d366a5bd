package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

type ListTransactionsInput struct {
	common.FilterQuery
}

// ListTransactionsResponse is one page of transactions, most recent first.
type ListTransactionsResponse struct {
	Data  []Transaction `json:"data" doc:"Page of transactions"`
	Total int           `json:"total" doc:"Number of matching transactions"`
	Pages int           `json:"pages" doc:"Number of pages"`
	Page  int           `json:"page" doc:"Current page, 1-indexed"`
	Limit int           `json:"limit" doc:"Page size"`
}

type ListTransactionsOutput struct {
	Body ListTransactionsResponse
}

type transactionLister interface {
	ListTransactions(ctx context.Context, spec ledger.FilterSpec) (ledger.Page, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns a page of the transactions matching the filter, most recent first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	spec, err := input.Spec()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	page, err := h.TransactionService.ListTransactions(ctx, spec)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.Error(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(page.Transactions))
		logData.AddData("total", page.Total)
	}

	return &ListTransactionsOutput{Body: ListTransactionsResponse{
		Data:  FromLedgerList(page.Transactions),
		Total: page.Total,
		Pages: page.Pages,
		Page:  page.Page,
		Limit: page.Limit,
	}}, nil
}
