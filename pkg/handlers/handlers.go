package handlers

import (
	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/handlers/accounts"
	"github.com/chris/coin-ledger/pkg/handlers/coins"
	"github.com/chris/coin-ledger/pkg/handlers/content"
	"github.com/chris/coin-ledger/pkg/handlers/rewards"
	"github.com/chris/coin-ledger/pkg/ledger"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*accounts.AccountsHandler
	*coins.CoinsHandler
	*rewards.RewardsHandler
	*content.ContentHandler
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(service *ledger.Service, catalog content.Catalog, maxEarnAmount int64) *ApiHandler {
	return &ApiHandler{
		AccountsHandler: accounts.NewAccountsHandler(service),
		CoinsHandler:    coins.NewCoinsHandler(service, maxEarnAmount),
		RewardsHandler:  rewards.NewRewardsHandler(service),
		ContentHandler:  content.NewContentHandler(catalog, service),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
