package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name            string `json:"name" minLength:"1" doc:"Account name"`
	Type            string `json:"type,omitempty" enum:"cash,bank,wallet,other" doc:"Account type, defaults from the name"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   AccountResponse
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, account service.Account) (*ledger.Account, error)
}

// CreateAccountHandler handles POST /v1/accounts.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/accounts",
		Summary:       "Create an account",
		Description:   "Creates a new account whose balance starts at the starting balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.Account, error) {
	startingBalanceStr := input.Body.StartingBalance
	if startingBalanceStr == "" {
		startingBalanceStr = "0"
	}
	startingBalance, err := decimal.NewFromString(startingBalanceStr)
	if err != nil {
		return service.Account{}, common.BadRequest("startingBalance", err)
	}
	if startingBalance.IsNegative() {
		return service.Account{}, common.Error(
			ledger.NewError(ledger.KindInvalidAmount, "startingBalance", "starting balance must not be negative"),
			"invalid startingBalance")
	}

	accountType := ledger.AccountTypeForName(input.Body.Name)
	if input.Body.Type != "" {
		accountType = ledger.AccountTypeForName(input.Body.Type)
	}

	return service.Account{
		Name:            input.Body.Name,
		Type:            accountType,
		StartingBalance: startingBalance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	account, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	created, err := h.AccountService.CreateAccount(ctx, account)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, common.Error(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("account", created.Name)
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   AccountResponse{Data: FromLedger(*created)},
	}, nil
}
