package transaction

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// RangeTransactionsInput is the Huma input for the date-range endpoints.
// Bounds are inclusive; reversed bounds are accepted and swapped.
type RangeTransactionsInput struct {
	Credentials
	Start string `query:"start" required:"true" doc:"Range start, YYYY-MM-DD, inclusive"`
	End   string `query:"end" required:"true" doc:"Range end, YYYY-MM-DD, inclusive"`
}

// RangeTransactionsOutput is the Huma output for the JSON date-range endpoint.
type RangeTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// RangeTextOutput is the plain-text export of the same range, one display
// line per transaction.
type RangeTextOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// rangeLister is the interface for the inclusive date-range query.
type rangeLister interface {
	ByDateRange(session *service.Session, start, end time.Time) []ledger.Transaction
}

// RangeTransactionsHandler handles GET /v1/transactions/range and its
// plain-text twin.
type RangeTransactionsHandler struct {
	Ledger rangeLister
	Users  authenticator
}

// NewRangeTransactionsHandler creates a new RangeTransactionsHandler.
func NewRangeTransactionsHandler(ledgerSvc rangeLister, users authenticator) *RangeTransactionsHandler {
	return &RangeTransactionsHandler{Ledger: ledgerSvc, Users: users}
}

// Register registers the date-range endpoints with the Huma API.
func (h *RangeTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "range-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/range",
		Summary:     "Transactions in date range",
		Description: "Returns visible transactions dated within the inclusive range, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handle)

	huma.Register(api, huma.Operation{
		OperationID: "range-transactions-text",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/range.txt",
		Summary:     "Transactions in date range as text",
		Description: "Returns the same range as plain-text display lines, one per transaction.",
		Tags:        []string{"Transactions"},
	}, h.handleText)
}

func (h *RangeTransactionsHandler) parseRange(input *RangeTransactionsInput) (start, end time.Time, err error) {
	start, err = time.Parse(ledger.DateLayout, strings.TrimSpace(input.Start))
	if err != nil {
		return start, end, huma.NewError(http.StatusBadRequest, "start must be YYYY-MM-DD", err)
	}
	end, err = time.Parse(ledger.DateLayout, strings.TrimSpace(input.End))
	if err != nil {
		return start, end, huma.NewError(http.StatusBadRequest, "end must be YYYY-MM-DD", err)
	}
	return start, end, nil
}

func (h *RangeTransactionsHandler) handle(ctx context.Context, input *RangeTransactionsInput) (*RangeTransactionsOutput, error) {
	start, end, err := h.parseRange(input)
	if err != nil {
		return nil, err
	}

	session := resolveSession(h.Users, input.Credentials)
	visible := h.Ledger.ByDateRange(session, start, end)

	return &RangeTransactionsOutput{
		Body: ListTransactionsResponseBody{Transactions: toResponse(visible)},
	}, nil
}

func (h *RangeTransactionsHandler) handleText(ctx context.Context, input *RangeTransactionsInput) (*RangeTextOutput, error) {
	start, end, err := h.parseRange(input)
	if err != nil {
		return nil, err
	}

	session := resolveSession(h.Users, input.Credentials)
	visible := h.Ledger.ByDateRange(session, start, end)

	lines := make([]string, len(visible))
	for i, t := range visible {
		lines[i] = t.DisplayLine()
	}

	return &RangeTextOutput{
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(strings.Join(lines, "\n")),
	}, nil
}
