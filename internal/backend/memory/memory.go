// Package memory serves customers and transactions from process memory,
// seeded from a json-server style db.json file.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ledgerview/internal/core"
)

// SeedFile is the file read by NewFromFiles inside the seed directory.
const SeedFile = "db.json"

type Store struct {
	mu           sync.RWMutex
	customers    []core.Customer
	transactions []core.Transaction
	failWith     error
}

// Seed is the layout of db.json.
type Seed struct {
	Customers    []core.Customer    `json:"customers"`
	Transactions []core.Transaction `json:"transactions"`
}

func New(customers []core.Customer, transactions []core.Transaction) *Store {
	return &Store{
		customers:    append([]core.Customer(nil), customers...),
		transactions: append([]core.Transaction(nil), transactions...),
	}
}

// NewFromFiles loads base/db.json. A missing file yields the built-in
// sample data; a malformed one is an error.
func NewFromFiles(base string) (*Store, error) {
	path := filepath.Join(base, SeedFile)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		seed := SampleSeed()
		return New(seed.Customers, seed.Transactions), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	seed, err := ParseSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return New(seed.Customers, seed.Transactions), nil
}

// ParseSeed decodes and validates a db.json payload.
func ParseSeed(raw []byte) (Seed, error) {
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return Seed{}, err
	}
	if err := core.ValidateCustomers(seed.Customers); err != nil {
		return Seed{}, fmt.Errorf("customers: %w", err)
	}
	if err := core.ValidateTransactions(seed.Transactions); err != nil {
		return Seed{}, fmt.Errorf("transactions: %w", err)
	}
	return seed, nil
}

// ListCustomers returns a copy of the stored customers.
func (s *Store) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]core.Customer(nil), s.customers...), nil
}

// ListTransactions returns a copy of the stored transactions.
func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]core.Transaction(nil), s.transactions...), nil
}

// Len reports how many customers and transactions are stored.
func (s *Store) Len() (customers, transactions int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), len(s.transactions)
}

// FailWith makes every read return err until called again with nil.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}
