package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// UserTransactionsInput is the Huma input for listing one user's transactions.
type UserTransactionsInput struct {
	Credentials
	UserIDPath int `path:"userID" doc:"Owner id to filter by"`
}

// UserTransactionsOutput is the Huma output for listing one user's transactions.
type UserTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// UserTransactionsHandler handles GET /v1/transactions/user/{userID}.
// Visibility still applies: a non-admin caller asking about another owner
// sees nothing and gets a 404, the same as for an owner with no records.
type UserTransactionsHandler struct {
	Ledger typeLister
	Users  authenticator
}

// NewUserTransactionsHandler creates a new UserTransactionsHandler.
func NewUserTransactionsHandler(ledgerSvc typeLister, users authenticator) *UserTransactionsHandler {
	return &UserTransactionsHandler{Ledger: ledgerSvc, Users: users}
}

// Register registers the per-user endpoint with the Huma API.
func (h *UserTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "user-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/user/{userID}",
		Summary:     "List one user's transactions",
		Description: "Returns the visible transactions owned by the given user, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UserTransactionsHandler) handle(ctx context.Context, input *UserTransactionsInput) (*UserTransactionsOutput, error) {
	session := resolveSession(h.Users, input.Credentials)
	visible := h.Ledger.ByType(session, "")

	var owned []ledger.Transaction
	for _, t := range visible {
		if t.OwnerID == input.UserIDPath {
			owned = append(owned, t)
		}
	}

	if len(owned) == 0 {
		return nil, huma.NewError(http.StatusNotFound, "no transactions found for this user")
	}

	return &UserTransactionsOutput{
		Body: ListTransactionsResponseBody{Transactions: toResponse(owned)},
	}, nil
}
