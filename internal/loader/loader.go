// Package loader performs the one-time load of customers and transactions
// that starts every view.
package loader

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerview/internal/backend"
	"ledgerview/internal/core"
	applog "ledgerview/internal/log"
	"ledgerview/internal/view"
)

// DefaultTimeout bounds each read when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Loader fetches both collections concurrently and turns the outcome into
// a view event. Data is committed only when both reads succeed.
type Loader struct {
	customers    backend.CustomerReader
	transactions backend.TransactionReader
	timeout      time.Duration
	logger       *applog.Logger
}

// New creates a loader reading from b.
func New(b backend.Backend, timeout time.Duration, logger *applog.Logger) *Loader {
	return NewWithReaders(b, b, timeout, logger)
}

// NewWithReaders creates a loader from separate readers.
func NewWithReaders(c backend.CustomerReader, t backend.TransactionReader, timeout time.Duration, logger *applog.Logger) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Loader{
		customers:    c,
		transactions: t,
		timeout:      timeout,
		logger:       logger.WithComponent(applog.ComponentLoader),
	}
}

// Load issues both reads and waits for them. It returns view.DataLoaded or
// view.LoadFailed; it never returns a partial result.
func (l *Loader) Load(ctx context.Context) view.Event {
	start := time.Now()

	var (
		customers       []core.Customer
		transactions    []core.Transaction
		custErr, txnErr error
	)

	// Both reads run to completion; one failing does not cancel the other.
	// Wait reports the first failure, the event carries both.
	var g errgroup.Group
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()
		customers, custErr = l.customers.ListCustomers(ctx)
		l.logRead(ctx, "customers", len(customers), custErr)
		return custErr
	})
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()
		transactions, txnErr = l.transactions.ListTransactions(ctx)
		l.logRead(ctx, "transactions", len(transactions), txnErr)
		return txnErr
	})

	elapsed := func() int64 { return time.Since(start).Milliseconds() }
	if g.Wait() != nil {
		err := errors.Join(custErr, txnErr)
		l.logger.ErrorContext(ctx, "Load failed",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err.Error(),
			applog.FieldDuration, elapsed())
		return view.LoadFailed{Err: err}
	}

	l.logger.InfoContext(ctx, "Load completed",
		applog.FieldOperation, applog.OpLoad,
		"customers", len(customers),
		"transactions", len(transactions),
		applog.FieldDuration, elapsed())

	return view.DataLoaded{Customers: customers, Transactions: transactions}
}

func (l *Loader) logRead(ctx context.Context, resource string, n int, err error) {
	if err != nil {
		l.logger.WarnContext(ctx, "Read failed",
			applog.FieldOperation, applog.OpFetch,
			applog.FieldResource, resource,
			applog.FieldError, err.Error())
		return
	}
	l.logger.DebugContext(ctx, "Read completed",
		applog.FieldOperation, applog.OpFetch,
		applog.FieldResource, resource,
		applog.FieldCount, n)
}
