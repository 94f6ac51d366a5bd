package main

import (
	"context"

	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/storage/sqlconfig"
)

func main() {
	logging.SetupLogging()

	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	engine, err := sqlconfig.Open(context.Background(), env)
	if err != nil {
		logrus.WithError(err).Fatal("sqlconfig.Open")
		return
	}
	defer engine.Close()

	if err := sqlconfig.RunMigrations(engine.DB); err != nil {
		logrus.WithError(err).Fatal("sqlconfig.RunMigrations")
	}
}
