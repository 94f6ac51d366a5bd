package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/sony/gobreaker"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/dashboard"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/metrics"
)

// Client talks to a remote ledger API. GETs are retried; every call goes
// through one circuit breaker.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	retry      RetryConfig
	metrics    *metrics.Metrics
}

var _ Backend = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cb:         newCircuitBreaker("ledger-api"),
		retry:      DefaultRetry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, r request) error {
	call := func() error { return c.roundTrip(ctx, r) }

	_, err := c.cb.Execute(func() (any, error) {
		if r.method == http.MethodGet {
			return nil, retryWithBackoff(ctx, c.retry, call)
		}
		return nil, call()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = ledger.TransientError("backend."+r.op, err)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if kind := ledger.KindOf(err); kind != ledger.KindUnknown {
			outcome = kind.String()
		}
	}
	c.metrics.IncrBackendRequest(r.op, outcome)
	return err
}

func (c *Client) roundTrip(ctx context.Context, r request) error {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		encoded, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("backend.%s: encode: %w", r.op, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("backend.%s: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ledger.TransientError("backend."+r.op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(r.op, resp)
	}
	if r.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		return ledger.TransientError("backend."+r.op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// decodeError rebuilds a typed ledger error from the problem body when it
// names a kind.
func decodeError(op string, resp *http.Response) error {
	var model huma.ErrorModel
	_ = json.NewDecoder(resp.Body).Decode(&model)

	if len(model.Errors) > 0 {
		if name, ok := model.Errors[0].Value.(string); ok {
			if kind := ledger.ParseKind(name); kind != ledger.KindUnknown {
				return &ledger.Error{Kind: kind, Field: model.Errors[0].Location, Message: model.Detail}
			}
		}
	}

	cause := fmt.Errorf("status %d: %s", resp.StatusCode, model.Detail)
	if resp.StatusCode >= http.StatusInternalServerError {
		return ledger.TransientError("backend."+op, cause)
	}
	return fmt.Errorf("backend.%s: %w", op, cause)
}

func filterQuery(spec ledger.FilterSpec) url.Values {
	q := url.Values{}
	for k, v := range common.FormatQuery(spec) {
		q.Set(k, v)
	}
	if spec.Page > 0 {
		q.Set("page", strconv.Itoa(spec.Page))
	}
	if spec.Limit > 0 {
		q.Set("limit", strconv.Itoa(spec.Limit))
	}
	return q
}

func transactionPath(id uuid.UUID) string {
	return "/v1/transactions/" + id.String()
}

func (c *Client) ListTransactions(ctx context.Context, spec ledger.FilterSpec) (ledger.Page, error) {
	var out transaction.ListTransactionsResponse
	err := c.do(ctx, request{op: "ListTransactions", method: http.MethodGet, path: "/v1/transactions", query: filterQuery(spec), out: &out})
	if err != nil {
		return ledger.Page{}, err
	}

	txs, err := toLedgerTransactions("ListTransactions", out.Data)
	if err != nil {
		return ledger.Page{}, err
	}
	return ledger.Page{Transactions: txs, Total: out.Total, Pages: out.Pages, Page: out.Page, Limit: out.Limit}, nil
}

func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var out transaction.TransactionResponse
	if err := c.do(ctx, request{op: "GetTransaction", method: http.MethodGet, path: transactionPath(id), out: &out}); err != nil {
		return nil, err
	}
	return toLedgerTransaction("GetTransaction", out.Data)
}

func (c *Client) CreateTransaction(ctx context.Context, payload ledger.Payload) (*ledger.Transaction, error) {
	var out transaction.TransactionResponse
	err := c.do(ctx, request{op: "CreateTransaction", method: http.MethodPost, path: "/v1/transactions", body: transaction.NewBody(payload), out: &out})
	if err != nil {
		return nil, err
	}
	return toLedgerTransaction("CreateTransaction", out.Data)
}

func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, payload ledger.Payload) (*ledger.Transaction, error) {
	var out transaction.TransactionResponse
	err := c.do(ctx, request{op: "UpdateTransaction", method: http.MethodPut, path: transactionPath(id), body: transaction.NewBody(payload), out: &out})
	if err != nil {
		return nil, err
	}
	return toLedgerTransaction("UpdateTransaction", out.Data)
}

func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{op: "DeleteTransaction", method: http.MethodDelete, path: transactionPath(id)})
}

func (c *Client) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	var out account.ListAccountsResponseBody
	if err := c.do(ctx, request{op: "ListAccounts", method: http.MethodGet, path: "/v1/accounts", out: &out}); err != nil {
		return nil, err
	}

	accounts := make([]ledger.Account, len(out.Data))
	for i, a := range out.Data {
		var err error
		if accounts[i], err = a.Ledger(); err != nil {
			return nil, ledger.TransientError("backend.ListAccounts", err)
		}
	}
	return accounts, nil
}

func (c *Client) GetSummary(ctx context.Context, spec ledger.FilterSpec) (ledger.SummaryResult, error) {
	var out struct {
		Data dashboard.Summary `json:"data"`
	}
	err := c.do(ctx, request{op: "GetSummary", method: http.MethodGet, path: "/v1/dashboard/summary", query: filterQuery(spec), out: &out})
	if err != nil {
		return ledger.SummaryResult{}, err
	}

	summary, err := out.Data.Ledger()
	if err != nil {
		return ledger.SummaryResult{}, ledger.TransientError("backend.GetSummary", err)
	}
	return summary, nil
}

func (c *Client) GetChartData(ctx context.Context, spec ledger.FilterSpec) ([]ledger.ChartPoint, error) {
	var out struct {
		Data []dashboard.ChartPoint `json:"data"`
	}
	err := c.do(ctx, request{op: "GetChartData", method: http.MethodGet, path: "/v1/dashboard/chart", query: filterQuery(spec), out: &out})
	if err != nil {
		return nil, err
	}

	points := make([]ledger.ChartPoint, len(out.Data))
	for i, p := range out.Data {
		if points[i], err = p.Ledger(); err != nil {
			return nil, ledger.TransientError("backend.GetChartData", err)
		}
	}
	return points, nil
}

func (c *Client) GetCategorySummary(ctx context.Context, spec ledger.FilterSpec) ([]ledger.CategorySummaryEntry, error) {
	var out struct {
		Data []dashboard.CategoryTotal `json:"data"`
	}
	err := c.do(ctx, request{op: "GetCategorySummary", method: http.MethodGet, path: "/v1/dashboard/category-summary", query: filterQuery(spec), out: &out})
	if err != nil {
		return nil, err
	}

	entries := make([]ledger.CategorySummaryEntry, len(out.Data))
	for i, e := range out.Data {
		if entries[i], err = e.Ledger(); err != nil {
			return nil, ledger.TransientError("backend.GetCategorySummary", err)
		}
	}
	return entries, nil
}

func (c *Client) GetRecentTransactions(ctx context.Context, spec ledger.FilterSpec, limit int) ([]ledger.Transaction, error) {
	spec.Page, spec.Limit = 0, limit
	var out struct {
		Data []transaction.Transaction `json:"data"`
	}
	err := c.do(ctx, request{op: "GetRecentTransactions", method: http.MethodGet, path: "/v1/dashboard/recent", query: filterQuery(spec), out: &out})
	if err != nil {
		return nil, err
	}
	return toLedgerTransactions("GetRecentTransactions", out.Data)
}

func toLedgerTransaction(op string, t transaction.Transaction) (*ledger.Transaction, error) {
	tx, err := t.Ledger()
	if err != nil {
		return nil, ledger.TransientError("backend."+op, err)
	}
	return &tx, nil
}

func toLedgerTransactions(op string, in []transaction.Transaction) ([]ledger.Transaction, error) {
	out := make([]ledger.Transaction, len(in))
	for i, t := range in {
		tx, err := t.Ledger()
		if err != nil {
			return nil, ledger.TransientError("backend."+op, err)
		}
		out[i] = tx
	}
	return out, nil
}
