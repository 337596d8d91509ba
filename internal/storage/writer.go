package storage

import "github.com/carson-networks/ledger-server/internal/ledger"

// Appender is the append-only destination for newly recorded transactions.
// It is an interface so tests can swap in a failing or recording stand-in.
type Appender interface {
	Append(t ledger.Transaction) error
}

// Writer bundles the mutable write targets handed to one queued ledger
// action: the dedup-gated store and the append-only transaction file.
type Writer struct {
	Ledger       *ledger.Store
	Transactions Appender
}
