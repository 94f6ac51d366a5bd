package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

// UpdateTransactionInput is the Huma input for replacing a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body TransactionBody
}

type UpdateTransactionOutput struct {
	Body TransactionResponse
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, payload ledger.Payload) (*ledger.Transaction, error)
}

// UpdateTransactionHandler handles PUT /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction, retracting its old balance effect and applying the new one atomically.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	payload, err := input.Body.Payload()
	if err != nil {
		return nil, err
	}
	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	tx, err := h.TransactionService.UpdateTransaction(ctx, id, payload)
	if err != nil {
		return nil, common.Error(err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{Body: TransactionResponse{Data: FromLedger(*tx)}}, nil
}
