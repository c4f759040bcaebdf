package backend

import (
	"context"
	"fmt"
	"net/http"

	"ledgerview/internal/backend/memory"
	"ledgerview/internal/backend/rest"
	applog "ledgerview/internal/log"
	"ledgerview/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case RESTBackend:
		return f.createRESTBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createRESTBackend(config Config) (*BackendResult, error) {
	cli, err := rest.New(config.BaseURL,
		rest.WithHTTPClient(&http.Client{Timeout: config.FetchTimeout}),
		rest.WithLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rest backend: %w", err)
	}

	f.logger.Info("Initialized rest backend", applog.FieldURL, config.BaseURL, "timeout", config.FetchTimeout.String())

	return &BackendResult{
		Backend: cli,
		Cleanup: func() error {
			cli.CloseIdleConnections()
			return nil
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := memory.NewFromFiles(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to seed memory backend: %w", err)
	}

	customers, transactions := store.Len()
	f.logger.Info("Initialized memory backend", "data_directory", dataDir,
		"customers", customers, "transactions", transactions)

	return &BackendResult{
		Backend: store,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite backend: %w", err)
	}

	customers, transactions, err := repo.Counts(ctx)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to inspect sqlite backend: %w", err)
	}

	// An empty database is filled from the memory backend seed.
	if customers == 0 && transactions == 0 {
		dataDir := config.DataDirectory
		if dataDir == "" {
			dataDir = "data"
		}
		if err := seedSQLite(ctx, repo, dataDir); err != nil {
			repo.Close()
			return nil, err
		}
		customers, transactions, _ = repo.Counts(ctx)
	}

	f.logger.Info("Initialized sqlite backend", "db_path", config.SQLiteDBPath,
		"customers", customers, "transactions", transactions)

	return &BackendResult{
		Backend: repo,
		Cleanup: repo.Close,
	}, nil
}

func seedSQLite(ctx context.Context, repo *storage.SQLiteRepository, dataDir string) error {
	store, err := memory.NewFromFiles(dataDir)
	if err != nil {
		return fmt.Errorf("failed to read sqlite seed: %w", err)
	}
	customers, err := store.ListCustomers(ctx)
	if err != nil {
		return err
	}
	transactions, err := store.ListTransactions(ctx)
	if err != nil {
		return err
	}
	if err := repo.Import(ctx, customers, transactions); err != nil {
		return fmt.Errorf("failed to seed sqlite backend: %w", err)
	}
	return nil
}
