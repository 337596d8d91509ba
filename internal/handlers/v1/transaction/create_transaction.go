package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CreateTransactionBody is the request body for recording a transaction.
type CreateTransactionBody struct {
	Description string `json:"description" required:"true" doc:"Free-text description"`
	Vendor      string `json:"vendor" required:"true" doc:"Vendor name"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount; the sign is derived from kind"`
	Kind        string `json:"kind" required:"true" enum:"deposit,payment" doc:"deposit or payment"`
}

// CreateTransactionInput is the Huma input for recording a transaction.
type CreateTransactionInput struct {
	Credentials
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for recording a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// recorder is the interface for recording a new ledger entry.
type recorder interface {
	Record(ctx context.Context, session *service.Session, description, vendor string, amount decimal.Decimal, deposit bool) (ledger.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	Ledger recorder
	Users  authenticator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(ledgerSvc recorder, users authenticator) *CreateTransactionHandler {
	return &CreateTransactionHandler{Ledger: ledgerSvc, Users: users}
}

// Register registers the create endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transactions",
		Summary:       "Record transaction",
		Description:   "Records a deposit or payment owned by the authenticated caller.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	session := resolveSession(h.Users, input.Credentials)
	if session == nil {
		return nil, huma.NewError(http.StatusUnauthorized, "valid X-User-ID and X-User-PIN headers are required")
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	deposit := input.Body.Kind == "deposit"
	recorded, err := h.Ledger.Record(ctx, session, input.Body.Description, input.Body.Vendor, amount, deposit)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to record transaction", err)
	}

	out := toResponse([]ledger.Transaction{recorded})
	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   out[0],
	}, nil
}
