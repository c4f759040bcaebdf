// Package storage is the SQLite data source: the same customers and
// transactions as the REST backend, read from a local database file.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"ledgerview/internal/core"
	applog "ledgerview/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db     *sql.DB
	logger *applog.Logger
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath
// and migrates it.
func NewSQLiteRepository(dbPath string, logger *applog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListCustomers implements backend.CustomerReader.
func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM customers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	out := []core.Customer{}
	for rows.Next() {
		var c core.Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	if err := core.ValidateCustomers(out); err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	return out, nil
}

// ListTransactions implements backend.TransactionReader.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, customer_id, date, amount FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var (
			id, customerID core.ID
			date           string
			amount         decimal.Decimal
		)
		if err := rows.Scan(&id, &customerID, &date, &amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, core.NewTransaction(id, customerID, date, amount))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	if err := core.ValidateTransactions(out); err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	return out, nil
}

// Counts returns the number of stored customers and transactions.
func (r *SQLiteRepository) Counts(ctx context.Context) (customers, transactions int, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM customers), (SELECT COUNT(*) FROM transactions)`).
		Scan(&customers, &transactions)
	if err != nil {
		return 0, 0, fmt.Errorf("count rows: %w", err)
	}
	return customers, transactions, nil
}

// Import replaces the stored data with the given collections in one
// transaction, keeping their order.
func (r *SQLiteRepository) Import(ctx context.Context, customers []core.Customer, transactions []core.Transaction) error {
	if err := core.ValidateCustomers(customers); err != nil {
		return fmt.Errorf("customers: %w", err)
	}
	if err := core.ValidateTransactions(transactions); err != nil {
		return fmt.Errorf("transactions: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM transactions`, `DELETE FROM customers`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}
	for _, c := range customers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO customers (id, name) VALUES (?, ?)`, int64(c.ID), c.Name); err != nil {
			return fmt.Errorf("insert customer %d: %w", c.ID, err)
		}
	}
	for _, t := range transactions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, customer_id, date, amount) VALUES (?, ?, ?, ?)`,
			int64(t.ID), int64(t.CustomerID), t.Date, t.Amount.String()); err != nil {
			return fmt.Errorf("insert transaction %d: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	r.logger.InfoContext(ctx, "Data imported into SQLite",
		"customers", len(customers),
		"transactions", len(transactions))
	return nil
}
