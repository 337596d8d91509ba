package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// TransactionFile reads and appends the pipe-delimited transaction store.
// Appends never rewrite or truncate existing content.
type TransactionFile struct {
	Path string
}

func NewTransactionFile(path string) *TransactionFile {
	return &TransactionFile{Path: path}
}

// Load parses every row of the file. Malformed rows are skipped with a
// warning and parsing continues; a single bad row is never fatal. A missing
// file is reported to the caller, which starts with an empty ledger.
func (f *TransactionFile) Load() ([]ledger.Transaction, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open transaction file %s: %w", f.Path, err)
	}
	defer file.Close()

	var transactions []ledger.Transaction
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		t, parseErr := ParseTransactionRow(scanner.Text())
		if errors.Is(parseErr, ErrSkipRow) {
			continue
		}
		if parseErr != nil {
			logrus.WithError(parseErr).
				WithField("line", lineNo).
				Warnf("TransactionFile.Load.skipping row: %s", spew.Sdump(scanner.Text()))
			continue
		}
		transactions = append(transactions, t)
	}
	if err := scanner.Err(); err != nil {
		return transactions, fmt.Errorf("read transaction file %s: %w", f.Path, err)
	}
	return transactions, nil
}

// Append writes one serialized row to the end of the file, creating it if
// absent. The caller treats a failure as non-fatal: the in-memory record
// stands even when the append could not be written.
func (f *TransactionFile) Append(t ledger.Transaction) error {
	if f.Path == "" {
		return errors.New("transaction file path is not set")
	}

	file, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transaction file %s for append: %w", f.Path, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, FormatTransactionRow(t)); err != nil {
		return fmt.Errorf("append to transaction file %s: %w", f.Path, err)
	}
	return nil
}
