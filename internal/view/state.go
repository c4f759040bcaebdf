// Package view holds the state of one mounted customers-and-transactions
// view and the reducer that moves it from one state to the next.
package view

import (
	"ledgerview/internal/core"
)

// State is everything the page shows. Values are treated as immutable:
// Reduce always returns a fresh State and never writes into the slices of
// the one it received.
type State struct {
	Customers    []core.Customer
	Transactions []core.Transaction
	Filtered     []core.Customer

	NameFilter   string
	AmountFilter string

	// Selected is nil until a transaction row is clicked.
	Selected *core.Customer

	Loaded    bool
	LoadError error
}

// Rows returns the table rows for the filtered customers.
func (s State) Rows() []core.TableRow {
	return core.BuildTableRows(s.Filtered, s.Transactions, s.SelectedID())
}

// SelectedID returns the selected customer id, or zero.
func (s State) SelectedID() core.ID {
	if s.Selected == nil {
		return 0
	}
	return s.Selected.ID
}

// Chart returns the per-date series of the selected customer. The second
// result is false when nothing is selected and no chart should be drawn.
func (s State) Chart() (core.ChartSeries, bool) {
	if s.Selected == nil {
		return core.ChartSeries{}, false
	}
	return core.BuildChartSeries(s.Transactions, s.Selected.ID), true
}

// Failed reports whether the initial load failed.
func (s State) Failed() bool {
	return s.LoadError != nil
}

func (s State) findCustomer(id core.ID) (core.Customer, bool) {
	for _, c := range s.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return core.Customer{}, false
}
