package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Delimiter separates fields in both the transaction and profile files.
const Delimiter = "|"

// ErrSkipRow marks rows that are ignored without a diagnostic: blank lines
// and header rows, wherever they appear in the file.
var ErrSkipRow = errors.New("row skipped")

var (
	transactionHeader = []string{"userid", "date", "time", "description", "vendor", "amount"}
	profileHeader     = []string{"userid", "name", "pin", "access"}
)

func matchesHeader(fields, header []string) bool {
	if len(fields) < len(header) {
		return false
	}
	for i, token := range header {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), token) {
			return false
		}
	}
	return true
}

// ParseTransactionRow parses one pipe-delimited transaction row:
// ownerId|date|time|description|vendor|amount. Blank lines and header rows
// yield ErrSkipRow; any other malformed row yields a descriptive error so
// the caller can log it and continue.
func ParseTransactionRow(line string) (ledger.Transaction, error) {
	row := strings.TrimSpace(line)
	if row == "" {
		return ledger.Transaction{}, ErrSkipRow
	}

	fields := strings.Split(row, Delimiter)
	if matchesHeader(fields, transactionHeader) {
		return ledger.Transaction{}, ErrSkipRow
	}
	if len(fields) != 6 {
		return ledger.Transaction{}, fmt.Errorf("expected 6 fields, got %d", len(fields))
	}

	ownerID, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("bad owner id %q: %w", fields[0], err)
	}
	date, err := time.Parse(ledger.DateLayout, strings.TrimSpace(fields[1]))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("bad date %q: %w", fields[1], err)
	}
	clock, err := time.Parse(ledger.TimeLayout, strings.TrimSpace(fields[2]))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("bad time %q: %w", fields[2], err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[5]))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("bad amount %q: %w", fields[5], err)
	}

	return ledger.Transaction{
		OwnerID:     ownerID,
		Date:        date,
		Time:        clock,
		Description: strings.TrimSpace(fields[3]),
		Vendor:      strings.TrimSpace(fields[4]),
		Amount:      amount,
	}, nil
}

// ParseUserRow parses one pipe-delimited profile row: id|name|pin with an
// optional fourth access field. The access field is true only for a
// case-insensitive "true"; anything else leaves the user non-admin.
func ParseUserRow(line string) (ledger.User, error) {
	row := strings.TrimSpace(line)
	if row == "" {
		return ledger.User{}, ErrSkipRow
	}

	fields := strings.Split(row, Delimiter)
	if matchesHeader(fields, profileHeader) {
		return ledger.User{}, ErrSkipRow
	}
	if len(fields) < 3 {
		return ledger.User{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return ledger.User{}, fmt.Errorf("bad user id %q: %w", fields[0], err)
	}

	user := ledger.User{
		ID:   id,
		Name: strings.TrimSpace(fields[1]),
		PIN:  strings.TrimSpace(fields[2]),
	}
	if len(fields) >= 4 {
		user.Admin = strings.EqualFold(strings.TrimSpace(fields[3]), "true")
	}
	return user, nil
}

// FormatTransactionRow serializes a transaction to its persisted row form.
// Amounts are written with exactly two decimals, times at second precision.
func FormatTransactionRow(t ledger.Transaction) string {
	return fmt.Sprintf("%d%s%s%s%s%s%s%s%s%s%s",
		t.OwnerID, Delimiter,
		t.Date.Format(ledger.DateLayout), Delimiter,
		t.Time.Format(ledger.TimeLayout), Delimiter,
		t.Description, Delimiter,
		t.Vendor, Delimiter,
		t.Amount.StringFixed(2),
	)
}
