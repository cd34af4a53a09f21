package cmd

import (
	"fmt"
	"log/slog"
	"os"

	accountsrender "github.com/bnema/bank-accounts-cli/internal/adapters/render/accounts"
	memoryrepo "github.com/bnema/bank-accounts-cli/internal/adapters/repo/memory"
	sqliterepo "github.com/bnema/bank-accounts-cli/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/bank-accounts-cli/internal/adapters/repo/toml"
	"github.com/bnema/bank-accounts-cli/internal/application"
	"github.com/bnema/bank-accounts-cli/internal/config"
	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/bnema/bank-accounts-cli/internal/platform/logger"
	"github.com/bnema/bank-accounts-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	manager          *application.Manager
	accountsRenderer func([]*domain.Account, accountsrender.RenderOptions) (string, error)
	log              *slog.Logger
	close            func() error
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, os.Stderr)

	repo, closeRepo, err := wireRepository(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	manager, err := application.NewManager(repo)
	if err != nil {
		_ = closeRepo()
		return nil, fmt.Errorf("wire account manager: %w", err)
	}

	log.Debug("wired account manager", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)

	return &app{
		manager:          manager,
		accountsRenderer: accountsrender.Render,
		log:              log,
		close:            closeRepo,
	}, nil
}

func wireRepository(cfg config.StorageConfig) (ports.AccountRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory:
		return memoryrepo.NewRepository(), noop, nil
	case config.DriverTOML:
		repo, err := tomlrepo.NewRepository(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil
	case config.DriverSQLite:
		repo, err := sqliterepo.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
