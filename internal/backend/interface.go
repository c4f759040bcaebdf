package backend

import (
	"context"
	"time"

	"ledgerview/internal/core"
)

// Ports for the data source behind the view.
type (
	// CustomerReader returns the full customer collection.
	CustomerReader interface {
		ListCustomers(ctx context.Context) ([]core.Customer, error)
	}

	// TransactionReader returns the full transaction collection.
	TransactionReader interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// Backend represents a unified backend interface that provides all necessary operations
	Backend interface {
		CustomerReader
		TransactionReader
	}
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// REST specific
	BaseURL      string
	FetchTimeout time.Duration

	// Memory backend specific, also seeds an empty SQLite database
	DataDirectory string

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	RESTBackend   BackendType = "rest"
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case RESTBackend, MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
