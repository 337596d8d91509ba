package actions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// RecordEntry inserts one transaction through the store's dedup gate and
// appends it to the transaction file. The row is appended even when the
// store already held an identity-equal record, matching how the file has
// always been written. An append failure is logged and absorbed: the
// in-memory record stands.
type RecordEntry struct {
	Transaction ledger.Transaction
	IAction
}

func (a *RecordEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	if !writer.Ledger.Insert(a.Transaction) {
		logrus.WithField("vendor", a.Transaction.Vendor).
			Info("RecordEntry.duplicate entry, store unchanged")
	}

	if err := writer.Transactions.Append(a.Transaction); err != nil {
		logrus.WithError(err).Error("RecordEntry.append failed, in-memory record kept")
	}
	return nil
}
