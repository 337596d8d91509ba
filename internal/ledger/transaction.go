package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type labels. Deposits are stored with positive amounts and
// reported as debits; payments are stored negative and reported as credits.
const (
	TypeDebit  = "debit"
	TypeCredit = "credit"
)

// Wire layouts for the calendar-date and wall-clock columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Transaction is one recorded money movement. Immutable once created: the
// ledger has no update or delete operations.
type Transaction struct {
	OwnerID     int
	Date        time.Time // calendar date, midnight UTC
	Time        time.Time // wall-clock time of day, second precision
	Description string
	Vendor      string
	Amount      decimal.Decimal
}

// New builds a transaction from an instant, splitting it into the stored
// date and time-of-day columns and truncating to second precision.
func New(ownerID int, at time.Time, description, vendor string, amount decimal.Decimal) Transaction {
	return Transaction{
		OwnerID:     ownerID,
		Date:        time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		Time:        time.Date(0, 1, 1, at.Hour(), at.Minute(), at.Second(), 0, time.UTC),
		Description: description,
		Vendor:      vendor,
		Amount:      amount,
	}
}

// Type derives the transaction type from the amount's sign: negative amounts
// are credits, everything else (zero included) is a debit.
func (t Transaction) Type() string {
	if t.Amount.IsNegative() {
		return TypeCredit
	}
	return TypeDebit
}

// DisplayLine renders the transaction as a fixed-width display row:
// date | description | vendor | amount | type | time.
func (t Transaction) DisplayLine() string {
	return fmt.Sprintf("%s | %-30s | %-18s | %10s | %-6s | %s",
		t.Date.Format(DateLayout),
		t.Description,
		t.Vendor,
		t.Amount.StringFixed(2),
		t.Type(),
		t.Time.Format(TimeLayout),
	)
}

// identity is the comparable dedup key: owner, date, time, description,
// vendor, and the amount rounded to the nearest cent.
type identity struct {
	ownerID     int
	date        string
	time        string
	description string
	vendor      string
	cents       int64
}

func (t Transaction) identityKey() identity {
	return identity{
		ownerID:     t.OwnerID,
		date:        t.Date.Format(DateLayout),
		time:        t.Time.Format(TimeLayout),
		description: t.Description,
		vendor:      t.Vendor,
		cents:       t.Amount.Round(2).Shift(2).IntPart(),
	}
}

// Same reports whether two transactions are the same record under the dedup
// identity relation.
func (t Transaction) Same(other Transaction) bool {
	return t.identityKey() == other.identityKey()
}

// SortNewestFirst orders transactions by (date, time) descending. The sort is
// stable, so records sharing a timestamp keep their insertion order.
func SortNewestFirst(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.After(transactions[j].Date)
		}
		return transactions[i].Time.After(transactions[j].Time)
	})
}
