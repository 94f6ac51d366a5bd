package category

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/ledger"
)

type ListCategoriesInput struct {
	Type string `query:"type" doc:"income, expense or transfer; empty for every type"`
}

// ListCategoriesOutput returns the accepted categories. With a type the list
// is that type's categories, otherwise every type's in display order.
type ListCategoriesOutput struct {
	Body struct {
		Data []string `json:"data"`
	}
}

type categoryLister interface {
	Categories(txType ledger.TransactionType) map[ledger.TransactionType][]string
}

// Handler handles GET /v1/categories.
type Handler struct {
	CategoryService categoryLister
}

func NewHandler(svc categoryLister) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *Handler) handle(_ context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	var txType ledger.TransactionType
	if strings.TrimSpace(input.Type) != "" {
		var err error
		if txType, err = ledger.ParseTransactionType(input.Type); err != nil {
			return nil, common.Error(err, "invalid type")
		}
	}

	byType := h.CategoryService.Categories(txType)
	out := &ListCategoriesOutput{}
	out.Body.Data = []string{}
	for _, t := range ledger.TransactionTypes {
		out.Body.Data = append(out.Body.Data, byType[t]...)
	}
	return out, nil
}
