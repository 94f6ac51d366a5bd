package common

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// StatusFor maps a ledger error kind to its HTTP status.
func StatusFor(kind ledger.Kind) int {
	switch {
	case kind.IsValidation():
		return http.StatusBadRequest
	case kind == ledger.KindNotFound:
		return http.StatusNotFound
	case kind == ledger.KindInsufficientFunds:
		return http.StatusConflict
	case kind == ledger.KindLocked:
		return http.StatusLocked
	}
	return http.StatusInternalServerError
}

// Error converts a service error into a huma problem response. Ledger errors
// carry their kind in errors[0].value so clients can rebuild them.
func Error(err error, fallback string) error {
	var ledgerErr *ledger.Error
	if errors.As(err, &ledgerErr) {
		msg := ledgerErr.Message
		if msg == "" {
			msg = ledgerErr.Kind.String()
		}
		return huma.NewError(StatusFor(ledgerErr.Kind), msg, &huma.ErrorDetail{
			Message:  ledgerErr.Error(),
			Location: ledgerErr.Field,
			Value:    ledgerErr.Kind.String(),
		})
	}
	if errors.Is(err, storage.ErrAccountExists) {
		return huma.NewError(http.StatusConflict, "account already exists", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return huma.NewError(http.StatusServiceUnavailable, fallback, err)
	}
	return huma.NewError(http.StatusInternalServerError, fallback, err)
}

// BadRequest reports a malformed parameter that has no ledger kind.
func BadRequest(field string, err error) error {
	return huma.NewError(http.StatusBadRequest, "invalid "+field, &huma.ErrorDetail{
		Message:  err.Error(),
		Location: field,
	})
}
