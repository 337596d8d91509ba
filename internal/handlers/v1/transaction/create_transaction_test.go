package transaction

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, session *service.Session, description, vendor string, amount decimal.Decimal, deposit bool) (ledger.Transaction, error) {
	args := m.Called(session, description, vendor, amount, deposit)
	tx, _ := args.Get(0).(ledger.Transaction)
	return tx, args.Error(1)
}

func newCreateTestAPI(t *testing.T, rec recorder, auth authenticator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(rec, auth).Register(api)
	return api
}

func TestHTTP_CreateTransaction(t *testing.T) {
	session := &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}

	auth := new(mockAuthenticator)
	auth.On("Authenticate", 3, "4455").Return(session, nil)

	recorded := ledger.New(3, time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		"Groceries", "Market", decimal.RequireFromString("-42.75"))

	rec := new(mockRecorder)
	rec.On("Record", session, "Groceries", "Market", decimal.RequireFromString("42.75"), false).
		Return(recorded, nil)

	api := newCreateTestAPI(t, rec, auth)
	resp := api.Post("/v1/transactions",
		"X-User-ID: 3", "X-User-PIN: 4455",
		map[string]any{
			"description": "Groceries",
			"vendor":      "Market",
			"amount":      "42.75",
			"kind":        "payment",
		})
	require.Equal(t, 201, resp.Code)

	var body Transaction
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 3, body.OwnerID)
	assert.Equal(t, "-42.75", body.Amount)
	assert.Equal(t, "credit", body.Type)
	rec.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_Unauthenticated(t *testing.T) {
	auth := new(mockAuthenticator)
	auth.On("Authenticate", 9, "1111").Return(nil, service.ErrUnknownUser)

	rec := new(mockRecorder)
	api := newCreateTestAPI(t, rec, auth)

	resp := api.Post("/v1/transactions",
		"X-User-ID: 9", "X-User-PIN: 1111",
		map[string]any{
			"description": "Groceries",
			"vendor":      "Market",
			"amount":      "42.75",
			"kind":        "payment",
		})
	assert.Equal(t, 401, resp.Code)
	rec.AssertNotCalled(t, "Record")
}

func TestHTTP_CreateTransaction_BadAmount(t *testing.T) {
	session := &service.Session{User: ledger.User{ID: 3}}

	auth := new(mockAuthenticator)
	auth.On("Authenticate", 3, "4455").Return(session, nil)

	rec := new(mockRecorder)
	api := newCreateTestAPI(t, rec, auth)

	resp := api.Post("/v1/transactions",
		"X-User-ID: 3", "X-User-PIN: 4455",
		map[string]any{
			"description": "Groceries",
			"vendor":      "Market",
			"amount":      "forty",
			"kind":        "deposit",
		})
	assert.Equal(t, 400, resp.Code)
	rec.AssertNotCalled(t, "Record")
}
