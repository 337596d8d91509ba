package main

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
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

	logger := logging.SetupLogging(envConfig.LogLevel)
	logrus.Info("ledger-server starting")

	fileStorage := storage.NewStorage(envConfig)
	loadedTransactions := fileStorage.LoadTransactions()

	writeQueue := operator.NewOperatorDelegator(fileStorage, 1)
	writeQueue.Start()
	defer writeQueue.Stop()

	svc := service.NewService(fileStorage, writeQueue)
	loadedUsers := svc.Users.Load()

	logrus.WithFields(logrus.Fields{
		"transactions": loadedTransactions,
		"users":        loadedUsers,
	}).Info("ledger loaded")

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
