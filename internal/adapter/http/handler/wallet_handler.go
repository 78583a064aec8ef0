package handler

import (
	"context"
	"net/http"

	"github.com/sproutfi/stash/internal/adapter/http/dto"
	"github.com/sproutfi/stash/internal/domain"
)

// WalletReader defines the behavior needed by WalletHandler.
type WalletReader interface {
	FindByUser(ctx context.Context, userID string) (*domain.Wallet, error)
}

// WalletHandler handles wallet HTTP requests.
type WalletHandler struct {
	wallets WalletReader
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets WalletReader) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// Get returns the user's wallet.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	wallet, err := h.wallets.FindByUser(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}
