package status

import (
	"context"
	"errors"
	"net/http"

	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

type readerOpener interface {
	NewReader(ctx context.Context) (*storage.Reader, error)
}

// Handler reports healthy when a storage snapshot can be opened.
type Handler struct {
	Storage readerOpener
}

func NewHandler(store readerOpener) Handler {
	return Handler{Storage: store}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	stopTimer := logData.AddTiming("storageCheckMs")
	r, err := h.Storage.NewReader(req.Context())
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return err
	}
	_ = r.Close(req.Context())

	w.WriteHeader(http.StatusOK)
	return nil
}
