package accounts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/handlers/respond"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/mapping"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Ledger *ledger.Service
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(service *ledger.Service) *AccountsHandler {
	return &AccountsHandler{Ledger: service}
}

// CreateUser opens an account with the configured starting balance.
func (h *AccountsHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var newAccount api.CreateUserJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		respond.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(newAccount.UserId) == "" || strings.TrimSpace(newAccount.Username) == "" {
		respond.Message(w, http.StatusBadRequest, "userId and username are required")
		return
	}

	account, err := h.Ledger.CreateAccount(r.Context(), newAccount.UserId, newAccount.Username)
	if err != nil {
		respond.Error(w, err, "create account")
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiAccount(account))
}

// GetUser returns an account with its current balance.
func (h *AccountsHandler) GetUser(w http.ResponseWriter, r *http.Request, userId api.UserId) {
	account, err := h.Ledger.GetAccount(r.Context(), userId)
	if err != nil {
		respond.Error(w, err, "retrieve account")
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiAccount(account))
}
