package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/ledger-server/internal/config"
)

// Bootstraps the flat-file store for a fresh install: writes header rows and
// a default admin profile when the files do not exist yet. Safe to re-run;
// existing files are never touched.
func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	seedFile(env.ProfilesFile, []string{
		"userid|name|pin|access",
		"1|Admin|0000|true",
	})
	seedFile(env.TransactionsFile, []string{
		"userid|date|time|description|vendor|amount",
	})
}

func seedFile(path string, lines []string) {
	if _, err := os.Stat(path); err == nil {
		logrus.WithField("path", path).Info("seed.file exists, skipping")
		return
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("seed.write")
		return
	}
	logrus.WithField("path", path).Info("seed.file created")
}
