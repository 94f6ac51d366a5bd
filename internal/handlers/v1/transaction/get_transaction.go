package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
)

type GetTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

type GetTransactionOutput struct {
	Body TransactionResponse
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	tx, err := h.TransactionService.GetTransaction(ctx, id)
	if err != nil {
		return nil, common.Error(err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: TransactionResponse{Data: FromLedger(*tx)}}, nil
}
