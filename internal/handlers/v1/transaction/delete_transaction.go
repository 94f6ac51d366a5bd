package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

// DeleteTransactionOutput has no body; success is 204.
type DeleteTransactionOutput struct{}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /v1/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transactions/{id}",
		Summary:       "Delete transaction",
		Description:   "Removes a transaction and retracts its balance effect.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", id.String())
	}

	if err := h.TransactionService.DeleteTransaction(ctx, id); err != nil {
		return nil, common.Error(err, "failed to delete transaction")
	}
	return &DeleteTransactionOutput{}, nil
}
