package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// ErrNoSession is returned when a write is attempted without authenticating.
var ErrNoSession = errors.New("no authenticated session")

// LedgerService answers filtered and sorted queries over the transaction
// store and records new entries through the write queue. Every read path
// applies the session's visibility before any other filter.
type LedgerService struct {
	store    *ledger.Store
	operator *operator.OperatorDelegator
	now      func() time.Time
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store *ledger.Store, op *operator.OperatorDelegator) *LedgerService {
	return &LedgerService{
		store:    store,
		operator: op,
		now:      time.Now,
	}
}

// Visible returns the transactions the session is permitted to read, newest
// first. Admins see the whole ledger, owners see only their own records, and
// no session sees nothing.
func (s *LedgerService) Visible(session *Session) []ledger.Transaction {
	if session == nil {
		return nil
	}

	all := s.store.All()
	var visible []ledger.Transaction
	if session.User.Admin {
		visible = all
	} else {
		for _, t := range all {
			if t.OwnerID == session.User.ID {
				visible = append(visible, t)
			}
		}
	}

	ledger.SortNewestFirst(visible)
	return visible
}

// ByType narrows the visible set by transaction type: "credit" keeps
// payments (amount < 0), "debit" keeps deposits (amount > 0), and anything
// else keeps everything. Matching is case-insensitive. A zero-amount record
// appears only in the unfiltered view.
func (s *LedgerService) ByType(session *Session, kind string) []ledger.Transaction {
	visible := s.Visible(session)

	switch strings.ToLower(kind) {
	case ledger.TypeCredit:
		return keep(visible, func(t ledger.Transaction) bool { return t.Amount.IsNegative() })
	case ledger.TypeDebit:
		return keep(visible, func(t ledger.Transaction) bool { return t.Amount.IsPositive() })
	default:
		return visible
	}
}

// ByDateRange returns visible transactions dated within [start, end], both
// ends inclusive. Reversed bounds are swapped rather than rejected.
func (s *LedgerService) ByDateRange(session *Session, start, end time.Time) []ledger.Transaction {
	if start.After(end) {
		start, end = end, start
	}
	return keep(s.Visible(session), func(t ledger.Transaction) bool {
		return !t.Date.Before(start) && !t.Date.After(end)
	})
}

// ByField returns visible transactions whose vendor or description contains
// the needle, case-insensitively. An empty needle matches everything.
func (s *LedgerService) ByField(session *Session, field Field, needle string) []ledger.Transaction {
	query := strings.ToLower(needle)
	return keep(s.Visible(session), func(t ledger.Transaction) bool {
		value := t.Vendor
		if field == FieldDescription {
			value = t.Description
		}
		return strings.Contains(strings.ToLower(value), query)
	})
}

// CustomSearch applies every supplied filter conjunctively over the visible
// set. An empty result is a normal outcome, never an error.
func (s *LedgerService) CustomSearch(session *Session, filter Filter) []ledger.Transaction {
	description := strings.ToLower(filter.Description)
	vendor := strings.ToLower(filter.Vendor)

	return keep(s.Visible(session), func(t ledger.Transaction) bool {
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			return false
		}
		if description != "" && !strings.Contains(strings.ToLower(t.Description), description) {
			return false
		}
		if vendor != "" && !strings.Contains(strings.ToLower(t.Vendor), vendor) {
			return false
		}
		if filter.Amount != nil && !filter.Amount.Equal(t.Amount) {
			return false
		}
		return true
	})
}

// MonthToDate reports from the first of the current month through today.
func (s *LedgerService) MonthToDate(session *Session) []ledger.Transaction {
	today := s.today()
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.ByDateRange(session, first, today)
}

// PreviousMonth reports the whole prior calendar month.
func (s *LedgerService) PreviousMonth(session *Session) []ledger.Transaction {
	today := s.today()
	firstOfCurrent := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfPrevious := firstOfCurrent.AddDate(0, 0, -1)
	firstOfPrevious := time.Date(lastOfPrevious.Year(), lastOfPrevious.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.ByDateRange(session, firstOfPrevious, lastOfPrevious)
}

// YearToDate reports from January 1 of the current year through today.
func (s *LedgerService) YearToDate(session *Session) []ledger.Transaction {
	today := s.today()
	first := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return s.ByDateRange(session, first, today)
}

// PreviousYear reports the whole prior calendar year.
func (s *LedgerService) PreviousYear(session *Session) []ledger.Transaction {
	year := s.today().Year() - 1
	return s.ByDateRange(session,
		time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC))
}

// Record creates a new entry owned by the session, dated now at second
// precision. Deposits are forced positive, payments negative. The entry goes
// through the dedup gate and is appended to the transaction file by the
// write queue; an append failure is logged there and does not undo the
// in-memory insert.
func (s *LedgerService) Record(ctx context.Context, session *Session, description, vendor string, amount decimal.Decimal, deposit bool) (ledger.Transaction, error) {
	if session == nil {
		return ledger.Transaction{}, ErrNoSession
	}

	signed := amount.Abs()
	if !deposit {
		signed = signed.Neg()
	}

	t := ledger.New(session.User.ID, s.now(), description, vendor, signed)
	if err := s.operator.Process(ctx, &actions.RecordEntry{Transaction: t}); err != nil {
		return ledger.Transaction{}, err
	}
	return t, nil
}

func (s *LedgerService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func keep(transactions []ledger.Transaction, match func(ledger.Transaction) bool) []ledger.Transaction {
	var kept []ledger.Transaction
	for _, t := range transactions {
		if match(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
