package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

// State identifies a menu of the console application. Modeling the menus as
// an explicit state machine keeps the transitions testable without a
// console attached.
type State int

const (
	StateExit State = iota
	StateLoggedOut
	StateHome
	StateLedger
	StateReports
	StateSearch
)

// UI drives the interactive console session: login, menus, entry screens,
// and report views. Input and output are plain readers and writers so tests
// can script a whole session.
type UI struct {
	svc     *service.Service
	raw     io.Reader
	in      *bufio.Reader
	out     io.Writer
	session *service.Session
}

func NewUI(svc *service.Service, in io.Reader, out io.Writer) *UI {
	return &UI{
		svc: svc,
		raw: in,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run loops login and menus until the user exits. Logging out returns to
// the login prompt; only an explicit exit (or end of input) leaves Run.
func (ui *UI) Run(ctx context.Context) {
	for {
		if !ui.login() {
			return
		}

		state := StateHome
		for state != StateExit && state != StateLoggedOut {
			state = ui.Step(ctx, state)
		}
		if state == StateExit {
			fmt.Fprintln(ui.out, "Exiting...")
			return
		}
	}
}

// Step shows the menu for the current state, reads one command, and returns
// the next state.
func (ui *UI) Step(ctx context.Context, state State) State {
	switch state {
	case StateHome:
		return ui.homeMenu(ctx)
	case StateLedger:
		return ui.ledgerMenu()
	case StateReports:
		return ui.reportsMenu()
	case StateSearch:
		return ui.searchMenu()
	default:
		return StateExit
	}
}

// Session exposes the authenticated session, for tests and callers that
// need the identity.
func (ui *UI) Session() *service.Session {
	return ui.session
}

// login prompts for a user id and pin until a pair authenticates. Returns
// false only when input is exhausted.
func (ui *UI) login() bool {
	for {
		fmt.Fprint(ui.out, "Welcome! Enter your user id: ")
		line, err := ui.readLine()
		if err != nil {
			return false
		}

		id, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(ui.out, "User id must be numeric. Try again.")
			continue
		}

		if _, ok := ui.svc.Users.FindByID(id); !ok {
			fmt.Fprintln(ui.out, "No such user id. Try again.")
			continue
		}

		fmt.Fprint(ui.out, "Enter your PIN: ")
		pin, err := ui.readPassword()
		if err != nil {
			return false
		}

		session, authErr := ui.svc.Users.Authenticate(id, strings.TrimSpace(pin))
		if authErr != nil {
			fmt.Fprintln(ui.out, "Incorrect PIN. Try again.")
			continue
		}

		ui.session = session
		suffix := ""
		if session.User.Admin {
			suffix = " (admin)"
		}
		fmt.Fprintf(ui.out, "Hello, %s%s!\n", session.User.Name, suffix)
		return true
	}
}

func (ui *UI) homeMenu(ctx context.Context) State {
	fmt.Fprintln(ui.out, `
Welcome to the Ledger!
What would you like to do?
D) Add Deposit
P) Make Payment (Debit)
L) Ledger
O) Log Out
X) Exit
Enter command:`)

	switch ui.readCommand() {
	case "d":
		ui.entryScreen(ctx, true)
		return StateHome
	case "p":
		ui.entryScreen(ctx, false)
		return StateHome
	case "l":
		return StateLedger
	case "o":
		fmt.Fprintf(ui.out, "Logging out... %s\n", ui.session.User.Name)
		ui.session = nil
		return StateLoggedOut
	case "x":
		return StateExit
	default:
		fmt.Fprintln(ui.out, "Invalid operation... Try again or press X to quit")
		return StateHome
	}
}

func (ui *UI) ledgerMenu() State {
	fmt.Fprintln(ui.out, `
LEDGER MENU
What would you like to do?
A) View All Transactions
D) View Deposits Only
P) View Payments Only
R) View Reports
H) Return to Home
Enter command:`)

	switch ui.readCommand() {
	case "a":
		ui.printAll(ui.svc.Ledger.ByType(ui.session, "all"))
		return StateLedger
	case "d":
		ui.printAll(ui.svc.Ledger.ByType(ui.session, ledger.TypeDebit))
		return StateLedger
	case "p":
		ui.printAll(ui.svc.Ledger.ByType(ui.session, ledger.TypeCredit))
		return StateLedger
	case "r":
		return StateReports
	case "h":
		return StateHome
	default:
		fmt.Fprintln(ui.out, "Invalid operation... Try again or press H to go back")
		return StateLedger
	}
}

func (ui *UI) reportsMenu() State {
	fmt.Fprintln(ui.out, `
REPORT MENU
What would you like to do?
1) Month To Date
2) Previous Month
3) Year To Date
4) Previous Year
5) Search By Vendor
6) Custom Search
0) Back
Enter command:`)

	switch ui.readCommand() {
	case "1":
		ui.printAll(ui.svc.Ledger.MonthToDate(ui.session))
		return StateReports
	case "2":
		ui.printAll(ui.svc.Ledger.PreviousMonth(ui.session))
		return StateReports
	case "3":
		ui.printAll(ui.svc.Ledger.YearToDate(ui.session))
		return StateReports
	case "4":
		ui.printAll(ui.svc.Ledger.PreviousYear(ui.session))
		return StateReports
	case "5":
		ui.searchByField(service.FieldVendor, "vendor name")
		return StateReports
	case "6":
		return StateSearch
	case "0":
		return StateLedger
	default:
		fmt.Fprintln(ui.out, "Invalid operation... Try again or press 0 to go back")
		return StateReports
	}
}

func (ui *UI) searchMenu() State {
	fmt.Fprintln(ui.out, `
SEARCH MENU
What would you like to search by?
1) Vendor Name
2) Transaction Description
3) Search for a specific transaction
0) Back
Enter command:`)

	switch ui.readCommand() {
	case "1":
		ui.searchByField(service.FieldVendor, "vendor name")
		return StateSearch
	case "2":
		ui.searchByField(service.FieldDescription, "transaction description")
		return StateSearch
	case "3":
		ui.customSearch()
		return StateSearch
	case "0":
		return StateReports
	default:
		fmt.Fprintln(ui.out, "Invalid operation... Try again or press 0 to go back")
		return StateSearch
	}
}

// entryScreen prompts for a new deposit or payment and records it. The
// amount prompt repeats until a number parses; the sign is forced by the
// entry kind.
func (ui *UI) entryScreen(ctx context.Context, deposit bool) {
	if deposit {
		fmt.Fprintln(ui.out, "DEPOSIT SCREEN")
	} else {
		fmt.Fprintln(ui.out, "PAYMENT SCREEN")
	}

	fmt.Fprint(ui.out, "Enter the Transaction Description: ")
	description, err := ui.readLine()
	if err != nil {
		return
	}

	fmt.Fprint(ui.out, "Enter the name of the vendor: ")
	vendor, err := ui.readLine()
	if err != nil {
		return
	}

	var amount decimal.Decimal
	for {
		fmt.Fprint(ui.out, "Enter the amount: ")
		line, err := ui.readLine()
		if err != nil {
			return
		}
		amount, err = decimal.NewFromString(strings.TrimSpace(line))
		if err == nil {
			break
		}
		fmt.Fprintln(ui.out, "Invalid number. Please enter a numeric amount (e.g., 123.45).")
	}

	recorded, err := ui.svc.Ledger.Record(ctx, ui.session,
		strings.TrimSpace(description), strings.TrimSpace(vendor), amount, deposit)
	if err != nil {
		fmt.Fprintf(ui.out, "Could not record the transaction: %v\n", err)
		return
	}

	kind := "Payment"
	if deposit {
		kind = "Deposit"
	}
	fmt.Fprintf(ui.out, "%s added successfully! (Amount: %s)\n", kind, recorded.Amount.StringFixed(2))
}

func (ui *UI) searchByField(field service.Field, prompt string) {
	fmt.Fprintf(ui.out, "Enter %s: ", prompt)
	needle, err := ui.readLine()
	if err != nil {
		return
	}
	ui.printAll(ui.svc.Ledger.ByField(ui.session, field, strings.TrimSpace(needle)))
}

// customSearch prompts for the optional filters. Blank answers skip a
// filter; unparseable dates and amounts are treated the same as blank.
func (ui *UI) customSearch() {
	fmt.Fprintln(ui.out, "CUSTOM SEARCH")

	var filter service.Filter

	fmt.Fprint(ui.out, "Start Date (YYYY-MM-DD) or leave it blank: ")
	if start, ok := ui.readDate(); ok {
		filter.StartDate = &start
	}

	fmt.Fprint(ui.out, "End Date (YYYY-MM-DD) or leave it blank: ")
	if end, ok := ui.readDate(); ok {
		filter.EndDate = &end
	}

	fmt.Fprint(ui.out, "Description contains (blank to skip): ")
	description, err := ui.readLine()
	if err != nil {
		return
	}
	filter.Description = strings.TrimSpace(description)

	fmt.Fprint(ui.out, "Vendor contains (blank to skip): ")
	vendor, err := ui.readLine()
	if err != nil {
		return
	}
	filter.Vendor = strings.TrimSpace(vendor)

	fmt.Fprint(ui.out, "Amount or leave it blank: ")
	if line, err := ui.readLine(); err == nil {
		if amount, parseErr := decimal.NewFromString(strings.TrimSpace(line)); parseErr == nil {
			filter.Amount = &amount
		}
	}

	matches := ui.svc.Ledger.CustomSearch(ui.session, filter)
	if len(matches) == 0 {
		fmt.Fprintln(ui.out, "No transactions match your filters.")
		return
	}
	for _, t := range matches {
		fmt.Fprintln(ui.out, t.DisplayLine())
	}
}

func (ui *UI) printAll(transactions []ledger.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(ui.out, "No matching transactions.")
		return
	}
	for _, t := range transactions {
		fmt.Fprintln(ui.out, t.DisplayLine())
	}
}

func (ui *UI) readLine() (string, error) {
	line, err := ui.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readCommand reads one line and reduces it to a single lowercase token.
func (ui *UI) readCommand() string {
	line, err := ui.readLine()
	if err != nil {
		return "x"
	}
	token := strings.ToLower(strings.TrimSpace(line))
	if token == "" {
		return ""
	}
	return token[:1]
}

func (ui *UI) readDate() (start time.Time, ok bool) {
	line, err := ui.readLine()
	if err != nil {
		return start, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return start, false
	}
	parsed, err := time.Parse(ledger.DateLayout, line)
	if err != nil {
		return start, false
	}
	return parsed, true
}

// readPassword hides the pin when the input is a real terminal and falls
// back to a plain line read otherwise (tests, pipes).
func (ui *UI) readPassword() (string, error) {
	if f, ok := ui.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pinBytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(ui.out)
		if err != nil {
			return "", err
		}
		return string(pinBytes), nil
	}
	return ui.readLine()
}
