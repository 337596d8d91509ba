package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListTransactionsInput is the Huma input for the list endpoints.
type ListTransactionsInput struct {
	Credentials
}

// ListTransactionsResponseBody is the response body for the list endpoints.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Visible transactions, newest first"`
}

// ListTransactionsOutput is the Huma output for the list endpoints.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// typeLister is the interface for listing transactions by type.
type typeLister interface {
	ByType(session *service.Session, kind string) []ledger.Transaction
}

// ListTransactionsHandler serves the three list views: the whole visible
// ledger, deposits only, and payments only.
type ListTransactionsHandler struct {
	Ledger typeLister
	Users  authenticator
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(ledgerSvc typeLister, users authenticator) *ListTransactionsHandler {
	return &ListTransactionsHandler{Ledger: ledgerSvc, Users: users}
}

// Register registers the list endpoints with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Returns every transaction visible to the caller, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handleKind(""))

	huma.Register(api, huma.Operation{
		OperationID: "list-deposits",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/deposits",
		Summary:     "List deposits",
		Description: "Returns visible deposits (positive amounts), newest first.",
		Tags:        []string{"Transactions"},
	}, h.handleKind(ledger.TypeDebit))

	huma.Register(api, huma.Operation{
		OperationID: "list-payments",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/payments",
		Summary:     "List payments",
		Description: "Returns visible payments (negative amounts), newest first.",
		Tags:        []string{"Transactions"},
	}, h.handleKind(ledger.TypeCredit))
}

func (h *ListTransactionsHandler) handleKind(kind string) func(context.Context, *ListTransactionsInput) (*ListTransactionsOutput, error) {
	return func(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
		session := resolveSession(h.Users, input.Credentials)
		visible := h.Ledger.ByType(session, kind)

		return &ListTransactionsOutput{
			Body: ListTransactionsResponseBody{Transactions: toResponse(visible)},
		}, nil
	}
}
