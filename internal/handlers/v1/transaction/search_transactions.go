package transaction

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// SearchTransactionsBody is the request body for a custom search. Every
// field is optional; blank fields are not applied, applied fields combine
// conjunctively.
type SearchTransactionsBody struct {
	StartDate   string `json:"startDate,omitempty" doc:"Range start, YYYY-MM-DD, inclusive"`
	EndDate     string `json:"endDate,omitempty" doc:"Range end, YYYY-MM-DD, inclusive"`
	Description string `json:"description,omitempty" doc:"Case-insensitive description substring"`
	Vendor      string `json:"vendor,omitempty" doc:"Case-insensitive vendor substring"`
	Amount      string `json:"amount,omitempty" doc:"Exact decimal amount"`
}

// SearchTransactionsInput is the Huma input for a custom search.
type SearchTransactionsInput struct {
	Credentials
	Body SearchTransactionsBody
}

// SearchTransactionsOutput is the Huma output for a custom search.
type SearchTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// searcher is the interface for the custom multi-predicate search.
type searcher interface {
	CustomSearch(session *service.Session, filter service.Filter) []ledger.Transaction
}

// SearchTransactionsHandler handles POST /v1/transactions/search.
type SearchTransactionsHandler struct {
	Ledger searcher
	Users  authenticator
}

// NewSearchTransactionsHandler creates a new SearchTransactionsHandler.
func NewSearchTransactionsHandler(ledgerSvc searcher, users authenticator) *SearchTransactionsHandler {
	return &SearchTransactionsHandler{Ledger: ledgerSvc, Users: users}
}

// Register registers the search endpoint with the Huma API.
func (h *SearchTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "search-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transactions/search",
		Summary:     "Custom search",
		Description: "Searches visible transactions with optional conjunctive filters.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseSearchFilter builds the service filter from the request body. Bad
// dates and amounts are rejected here rather than silently dropped: an API
// caller, unlike a console user, should know the parameter was malformed.
func parseSearchFilter(body SearchTransactionsBody) (service.Filter, error) {
	var filter service.Filter

	if s := strings.TrimSpace(body.StartDate); s != "" {
		start, err := time.Parse(ledger.DateLayout, s)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "startDate must be YYYY-MM-DD", err)
		}
		filter.StartDate = &start
	}
	if s := strings.TrimSpace(body.EndDate); s != "" {
		end, err := time.Parse(ledger.DateLayout, s)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "endDate must be YYYY-MM-DD", err)
		}
		filter.EndDate = &end
	}
	if s := strings.TrimSpace(body.Amount); s != "" {
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		filter.Amount = &amount
	}

	filter.Description = strings.TrimSpace(body.Description)
	filter.Vendor = strings.TrimSpace(body.Vendor)
	return filter, nil
}

func (h *SearchTransactionsHandler) handle(ctx context.Context, input *SearchTransactionsInput) (*SearchTransactionsOutput, error) {
	filter, err := parseSearchFilter(input.Body)
	if err != nil {
		return nil, err
	}

	session := resolveSession(h.Users, input.Credentials)
	matches := h.Ledger.CustomSearch(session, filter)

	return &SearchTransactionsOutput{
		Body: ListTransactionsResponseBody{Transactions: toResponse(matches)},
	}, nil
}
