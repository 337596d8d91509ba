package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/cli"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found")
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	// Structured logs go to stderr here so they do not interleave with the
	// menus on stdout.
	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Out = os.Stderr
	logrus.SetOutput(os.Stderr)

	fileStorage := storage.NewStorage(envConfig)
	fileStorage.LoadTransactions()

	writeQueue := operator.NewOperatorDelegator(fileStorage, 1)
	writeQueue.Start()
	defer writeQueue.Stop()

	svc := service.NewService(fileStorage, writeQueue)
	svc.Users.Load()

	ui := cli.NewUI(svc, os.Stdin, os.Stdout)
	ui.Run(context.Background())
}
