package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// ProfileFile reads the pipe-delimited user profile source.
type ProfileFile struct {
	Path string
}

func NewProfileFile(path string) *ProfileFile {
	return &ProfileFile{Path: path}
}

// Load parses every profile row. Rows with fewer than three fields or bad
// data are skipped; headers are tolerated anywhere in the file. A missing
// file is reported to the caller, which starts with an empty directory.
func (f *ProfileFile) Load() ([]ledger.User, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open profile file %s: %w", f.Path, err)
	}
	defer file.Close()

	var users []ledger.User
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		u, parseErr := ParseUserRow(scanner.Text())
		if errors.Is(parseErr, ErrSkipRow) {
			continue
		}
		if parseErr != nil {
			logrus.WithError(parseErr).
				WithField("line", lineNo).
				Warn("ProfileFile.Load.skipping row")
			continue
		}
		users = append(users, u)
	}
	if err := scanner.Err(); err != nil {
		return users, fmt.Errorf("read profile file %s: %w", f.Path, err)
	}
	return users, nil
}
