package storage

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Storage bundles the in-memory ledger store with the flat-file sources
// backing it.
type Storage struct {
	Ledger       *ledger.Store
	Transactions *TransactionFile
	Profiles     *ProfileFile
}

func NewStorage(env *config.Config) *Storage {
	return &Storage{
		Ledger:       ledger.NewStore(),
		Transactions: NewTransactionFile(env.TransactionsFile),
		Profiles:     NewProfileFile(env.ProfilesFile),
	}
}

// LoadTransactions reads the transaction file into the store through the
// dedup gate and returns how many records were added. A missing file is
// logged and the store starts empty; re-reading the same file never
// duplicates records.
func (s *Storage) LoadTransactions() int {
	rows, err := s.Transactions.Load()
	if err != nil {
		logrus.WithError(err).Warn("Storage.LoadTransactions.starting with empty ledger")
	}

	added := 0
	for _, t := range rows {
		if s.Ledger.Insert(t) {
			added++
		}
	}
	return added
}

// Write returns the write targets handed to a single queued ledger action.
func (s *Storage) Write() *Writer {
	return &Writer{
		Ledger:       s.Ledger,
		Transactions: s.Transactions,
	}
}
