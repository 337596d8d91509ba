package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field names a searchable text column of a transaction.
type Field int

const (
	FieldVendor Field = iota
	FieldDescription
)

// Filter is the parameter set for a custom search. Every field is optional:
// nil or blank means the filter is not applied. Applied filters combine
// conjunctively.
type Filter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
	Vendor      string
	Amount      *decimal.Decimal
}
