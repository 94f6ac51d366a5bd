package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/api"
	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/metrics"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
	"github.com/carson-networks/budget-ledger/internal/storage/sqlconfig"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("budget-ledger starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logrus.WithError(err).Fatal("logging.SetLevel")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("openStorage")
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Error("storage.Close")
		}
	}()

	m := metrics.New()
	op := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers, m)
	op.Start()
	defer op.Stop()

	svc := service.NewService(store, op, service.Options{LockWindow: envConfig.EditLockWindow})
	if err := svc.Account.SeedAccounts(ctx, envConfig.SeedAccounts); err != nil {
		logrus.WithError(err).Fatal("AccountService.SeedAccounts")
		return
	}

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Service: svc,
		Storage: store,
		Metrics: m,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logrus.WithError(err).Error("Rest.Serve")
	}
}

func openStorage(ctx context.Context, env *config.Config) (storage.Engine, error) {
	if env.StorageBackend == config.StorageMemory {
		logrus.Info("storage: in-memory")
		return memory.New(), nil
	}

	engine, err := sqlconfig.Open(ctx, env)
	if err != nil {
		return nil, err
	}
	if err := sqlconfig.RunMigrations(engine.DB); err != nil {
		_ = engine.Close()
		return nil, err
	}
	logrus.WithField("address", env.PostgresAddress).Info("storage: postgres")
	return engine, nil
}
