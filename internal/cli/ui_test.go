package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func newTestUI(t *testing.T, input string) (*UI, *bytes.Buffer, *storage.Storage) {
	t.Helper()

	dir := t.TempDir()
	fileStorage := &storage.Storage{
		Ledger:       ledger.NewStore(),
		Transactions: storage.NewTransactionFile(filepath.Join(dir, "transactions.csv")),
		Profiles:     storage.NewProfileFile(filepath.Join(dir, "profiles.csv")),
	}
	writeQueue := operator.NewOperatorDelegator(fileStorage, 1)
	writeQueue.Start()
	t.Cleanup(writeQueue.Stop)

	svc := service.NewService(fileStorage, writeQueue)
	svc.Users.Replace([]ledger.User{
		{ID: 1, Name: "Admin", PIN: "0000", Admin: true},
		{ID: 3, Name: "Jordan", PIN: "4455"},
	})

	out := &bytes.Buffer{}
	return NewUI(svc, strings.NewReader(input), out), out, fileStorage
}

func seedLines(t *testing.T, fileStorage *storage.Storage, lines ...string) {
	t.Helper()
	for _, line := range lines {
		tx, err := storage.ParseTransactionRow(line)
		require.NoError(t, err)
		require.True(t, fileStorage.Ledger.Insert(tx))
	}
}

func TestRun_LoginRetriesThenGreets(t *testing.T) {
	ui, out, _ := newTestUI(t, "abc\n9\n3\n9999\n3\n4455\nx\n")
	ui.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "User id must be numeric. Try again.")
	assert.Contains(t, text, "No such user id. Try again.")
	assert.Contains(t, text, "Incorrect PIN. Try again.")
	assert.Contains(t, text, "Hello, Jordan!")
	assert.Contains(t, text, "Exiting...")
}

func TestRun_AdminGreeting(t *testing.T) {
	ui, out, _ := newTestUI(t, "1\n0000\nx\n")
	ui.Run(context.Background())

	assert.Contains(t, out.String(), "Hello, Admin (admin)!")
}

func TestRun_EndOfInputDuringLogin(t *testing.T) {
	ui, out, _ := newTestUI(t, "")
	ui.Run(context.Background())

	assert.NotContains(t, out.String(), "Hello")
	assert.Nil(t, ui.Session())
}

func TestStep_MenuTransitions(t *testing.T) {
	ui, _, _ := newTestUI(t, "l\nr\n6\n0\n0\nh\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}
	ctx := context.Background()

	state := ui.Step(ctx, StateHome)
	assert.Equal(t, StateLedger, state)
	state = ui.Step(ctx, state)
	assert.Equal(t, StateReports, state)
	state = ui.Step(ctx, state)
	assert.Equal(t, StateSearch, state)
	state = ui.Step(ctx, state)
	assert.Equal(t, StateReports, state)
	state = ui.Step(ctx, state)
	assert.Equal(t, StateLedger, state)
	state = ui.Step(ctx, state)
	assert.Equal(t, StateHome, state)
}

func TestStep_InvalidCommandStaysPut(t *testing.T) {
	ui, out, _ := newTestUI(t, "z\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}

	state := ui.Step(context.Background(), StateHome)
	assert.Equal(t, StateHome, state)
	assert.Contains(t, out.String(), "Invalid operation... Try again or press X to quit")
}

func TestStep_FullWordCommand(t *testing.T) {
	ui, _, _ := newTestUI(t, "ledger\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}

	assert.Equal(t, StateLedger, ui.Step(context.Background(), StateHome))
}

func TestStep_LogOutClearsSession(t *testing.T) {
	ui, out, _ := newTestUI(t, "o\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}

	state := ui.Step(context.Background(), StateHome)
	assert.Equal(t, StateLoggedOut, state)
	assert.Nil(t, ui.Session())
	assert.Contains(t, out.String(), "Logging out... Jordan")
}

func TestEntryScreen_DepositWithAmountRetry(t *testing.T) {
	ui, out, fileStorage := newTestUI(t, "d\nCoffee refund\nStarbucks\nabc\n4.25\nx\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}

	ui.Step(context.Background(), StateHome)

	text := out.String()
	assert.Contains(t, text, "DEPOSIT SCREEN")
	assert.Contains(t, text, "Invalid number. Please enter a numeric amount (e.g., 123.45).")
	assert.Contains(t, text, "Deposit added successfully! (Amount: 4.25)")

	all := fileStorage.Ledger.All()
	require.Len(t, all, 1)
	assert.Equal(t, 3, all[0].OwnerID)
	assert.Equal(t, ledger.TypeDebit, all[0].Type())
}

func TestEntryScreen_PaymentForcesNegative(t *testing.T) {
	ui, out, fileStorage := newTestUI(t, "p\nGroceries\nMarket\n12.00\nx\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}

	ui.Step(context.Background(), StateHome)

	text := out.String()
	assert.Contains(t, text, "PAYMENT SCREEN")
	assert.Contains(t, text, "Payment added successfully! (Amount: -12.00)")

	all := fileStorage.Ledger.All()
	require.Len(t, all, 1)
	assert.Equal(t, "-12.00", all[0].Amount.StringFixed(2))
}

func TestLedgerMenu_ViewAll(t *testing.T) {
	ui, out, fileStorage := newTestUI(t, "a\n")
	ui.session = &service.Session{User: ledger.User{ID: 1, Name: "Admin", Admin: true}}
	seedLines(t, fileStorage,
		"1|2024-01-05|10:00:00|Paycheck|Employer|50.00",
		"3|2024-02-10|08:00:00|Groceries|Market|-12.00",
	)

	ui.Step(context.Background(), StateLedger)

	text := out.String()
	assert.Contains(t, text, "Paycheck")
	assert.Contains(t, text, "Groceries")
}

func TestLedgerMenu_DepositsOnlyForOwner(t *testing.T) {
	ui, out, fileStorage := newTestUI(t, "d\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}
	seedLines(t, fileStorage,
		"1|2024-01-05|10:00:00|Paycheck|Employer|50.00",
		"3|2024-01-20|09:30:00|Refund|Shop|30.00",
		"3|2024-02-10|08:00:00|Groceries|Market|-12.00",
	)

	ui.Step(context.Background(), StateLedger)

	text := out.String()
	assert.Contains(t, text, "Refund")
	assert.NotContains(t, text, "Paycheck")
	assert.NotContains(t, text, "Groceries")
}

func TestSearchMenu_VendorSearch(t *testing.T) {
	ui, out, fileStorage := newTestUI(t, "1\nstar\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}
	seedLines(t, fileStorage,
		"3|2024-03-01|09:15:00|Coffee|Starbucks|-4.25",
		"3|2024-03-02|12:00:00|Lunch|Deli|-9.50",
	)

	ui.Step(context.Background(), StateSearch)

	text := out.String()
	assert.Contains(t, text, "Starbucks")
	assert.NotContains(t, text, "Deli")
}

func TestSearchMenu_CustomSearchBlankFiltersMatchAll(t *testing.T) {
	ui, out, fileStorage := newTestUI(t, "3\n\n\n\n\n\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}
	seedLines(t, fileStorage,
		"3|2024-03-01|09:15:00|Coffee|Starbucks|-4.25",
	)

	ui.Step(context.Background(), StateSearch)

	assert.Contains(t, out.String(), "Starbucks")
}

func TestSearchMenu_CustomSearchNoMatches(t *testing.T) {
	ui, out, fileStorage := newTestUI(t, "3\n\n\n\nnonesuch\n\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}
	seedLines(t, fileStorage,
		"3|2024-03-01|09:15:00|Coffee|Starbucks|-4.25",
	)

	ui.Step(context.Background(), StateSearch)

	assert.Contains(t, out.String(), "No transactions match your filters.")
}

func TestPrintAll_EmptyLedger(t *testing.T) {
	ui, out, _ := newTestUI(t, "a\n")
	ui.session = &service.Session{User: ledger.User{ID: 3, Name: "Jordan"}}

	ui.Step(context.Background(), StateLedger)

	assert.Contains(t, out.String(), "No matching transactions.")
}
