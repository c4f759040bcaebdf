package view

import (
	"ledgerview/internal/core"
)

// Event is something that happened to a view: data arriving, a filter
// input changing or a row being clicked.
type Event interface {
	Name() string
}

type (
	// DataLoaded carries both collections after both reads succeeded.
	DataLoaded struct {
		Customers    []core.Customer
		Transactions []core.Transaction
	}

	// LoadFailed carries the read errors; no data is committed.
	LoadFailed struct {
		Err error
	}

	NameFilterChanged struct {
		Value string
	}

	AmountFilterChanged struct {
		Value string
	}

	// CustomerSelected is a click on any transaction row of the customer.
	CustomerSelected struct {
		ID core.ID
	}
)

func (DataLoaded) Name() string          { return "data_loaded" }
func (LoadFailed) Name() string          { return "load_failed" }
func (NameFilterChanged) Name() string   { return "name_filter_changed" }
func (AmountFilterChanged) Name() string { return "amount_filter_changed" }
func (CustomerSelected) Name() string    { return "customer_selected" }

// Reduce returns the state that follows s once ev has happened.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case DataLoaded:
		s.Customers = append([]core.Customer(nil), e.Customers...)
		s.Transactions = append([]core.Transaction(nil), e.Transactions...)
		s.Loaded = true
		s.LoadError = nil
		s.Filtered = core.FilterCustomers(s.Customers, s.Transactions, s.NameFilter, s.AmountFilter)

	case LoadFailed:
		s.LoadError = e.Err

	case NameFilterChanged:
		s.NameFilter = e.Value
		s.Filtered = core.FilterCustomers(s.Customers, s.Transactions, s.NameFilter, s.AmountFilter)

	case AmountFilterChanged:
		s.AmountFilter = e.Value
		s.Filtered = core.FilterCustomers(s.Customers, s.Transactions, s.NameFilter, s.AmountFilter)

	case CustomerSelected:
		c, ok := s.findCustomer(e.ID)
		if !ok {
			return s
		}
		s.Selected = &c
	}
	return s
}
