package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
)

type GetAccountInput struct {
	Name string `path:"name" doc:"Account name"`
}

type GetAccountOutput struct {
	Body AccountResponse
}

type accountGetter interface {
	GetAccount(ctx context.Context, name string) (*ledger.Account, error)
}

// GetAccountHandler handles GET /v1/accounts/{name}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{name}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	acc, err := h.AccountService.GetAccount(ctx, input.Name)
	if err != nil {
		return nil, common.Error(err, "failed to get account")
	}
	return &GetAccountOutput{Body: AccountResponse{Data: FromLedger(*acc)}}, nil
}
