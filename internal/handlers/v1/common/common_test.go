package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se))
	return se.GetStatus()
}

func TestError_Statuses(t *testing.T) {
	tests := map[error]int{
		ledger.NewError(ledger.KindMissingCategory, "category", "required"): http.StatusBadRequest,
		ledger.NotFoundError("transaction", "x"):                            http.StatusNotFound,
		ledger.NewError(ledger.KindInsufficientFunds, "account", "cash"):    http.StatusConflict,
		ledger.NewError(ledger.KindLocked, "id", "locked"):                  http.StatusLocked,
		ledger.TransientError("storage.NewReader", errors.New("down")):      http.StatusInternalServerError,
		fmt.Errorf("wrapped: %w", storage.ErrAccountExists):                 http.StatusConflict,
		context.Canceled:         http.StatusServiceUnavailable,
		errors.New("unexpected"): http.StatusInternalServerError,
	}
	for err, want := range tests {
		assert.Equal(t, want, statusOf(t, Error(err, "failed")), err.Error())
	}
}

func TestError_CarriesKind(t *testing.T) {
	err := Error(ledger.NewError(ledger.KindSameAccount, "toAccount", "must differ"), "failed")

	var model *huma.ErrorModel
	require.True(t, errors.As(err, &model))
	require.Len(t, model.Errors, 1)
	assert.Equal(t, "SameAccount", model.Errors[0].Value)
	assert.Equal(t, "toAccount", model.Errors[0].Location)
	assert.Equal(t, "must differ", model.Detail)
}

func TestFilterQuery_Spec(t *testing.T) {
	spec, err := FilterQuery{
		Period:    "Weekly",
		Division:  "personal",
		Category:  " Food ",
		Type:      "expense",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30T12:00:00Z",
		Page:      3,
	}.Spec()
	require.NoError(t, err)

	assert.Equal(t, ledger.PeriodWeekly, spec.Period)
	assert.Equal(t, ledger.DivisionPersonal, spec.Division)
	assert.Equal(t, "Food", spec.Category)
	assert.Equal(t, ledger.TypeExpense, spec.Type)
	assert.True(t, spec.StartDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, spec.EndDate.Equal(time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, spec.Page)
}

func TestParseDate(t *testing.T) {
	end, err := ParseDate("2025-06-30", true)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.UTC)))

	none, err := ParseDate("  ", false)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = ParseDate("30/06/2025", false)
	assert.Error(t, err)
}

func TestFormatQuery(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	q := FormatQuery(ledger.FilterSpec{Period: ledger.PeriodYearly, Type: ledger.TypeIncome, StartDate: &start})

	assert.Equal(t, map[string]string{
		"period":    "yearly",
		"type":      "income",
		"startDate": "2025-06-01T00:00:00Z",
	}, q)

	back, err := FilterQuery{Period: q["period"], Type: q["type"], StartDate: q["startDate"]}.Spec()
	require.NoError(t, err)
	assert.True(t, back.StartDate.Equal(start))
}
