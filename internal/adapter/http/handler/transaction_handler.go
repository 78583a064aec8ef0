package handler

import (
	"context"
	"net/http"

	"github.com/sproutfi/stash/internal/adapter/http/dto"
	"github.com/sproutfi/stash/internal/domain"
)

// TransactionReader defines the behavior needed by TransactionHandler.
type TransactionReader interface {
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction history HTTP requests.
type TransactionHandler struct {
	transactions TransactionReader
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions TransactionReader) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// List lists the user's transactions, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}
	offset := parseIntQuery(r, "offset", 0)

	txs, err := h.transactions.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}

// GetByReference looks up a transaction by its reference. Ownership is
// enforced so references cannot be used to read other users' history.
func (h *TransactionHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	reference := r.URL.Query().Get("reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing reference", "")
		return
	}

	tx, err := h.transactions.GetByReference(r.Context(), reference)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	if tx.UserID != userID {
		writeError(w, http.StatusNotFound, "failed to get transaction", domain.ErrTransactionNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}
