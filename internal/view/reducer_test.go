package view

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"ledgerview/internal/core"
)

func loaded() State {
	customers := []core.Customer{
		{ID: 1, Name: "Ahmed Ali"},
		{ID: 2, Name: "Aya Elsayed"},
		{ID: 3, Name: "Mina Adel"},
	}
	transactions := []core.Transaction{
		core.NewTransaction(1, 1, "2024-01-01T10:00:00Z", decimal.NewFromInt(5)),
		core.NewTransaction(2, 1, "2024-01-01T15:00:00Z", decimal.NewFromInt(3)),
		core.NewTransaction(3, 1, "2024-01-02T09:00:00Z", decimal.NewFromInt(2)),
		core.NewTransaction(4, 2, "2024-01-01T09:00:00Z", decimal.NewFromInt(550)),
		core.NewTransaction(5, 3, "2024-01-03T09:00:00Z", decimal.NewFromInt(500)),
	}
	return Reduce(State{}, DataLoaded{Customers: customers, Transactions: transactions})
}

func visible(s State) []core.ID {
	out := []core.ID{}
	for _, c := range s.Filtered {
		out = append(out, c.ID)
	}
	return out
}

func TestReduce_DataLoadedShowsEveryone(t *testing.T) {
	s := loaded()
	if !s.Loaded || s.Failed() {
		t.Fatalf("expected loaded state, got %+v", s)
	}
	if !reflect.DeepEqual(s.Filtered, s.Customers) {
		t.Fatalf("filtered must equal customers after load, got %v", visible(s))
	}
	if _, ok := s.Chart(); ok {
		t.Fatalf("no chart before a selection")
	}
}

func TestReduce_LoadFailedKeepsEmptyState(t *testing.T) {
	boom := errors.New("connection refused")
	s := Reduce(State{}, LoadFailed{Err: boom})
	if !errors.Is(s.LoadError, boom) || s.Loaded {
		t.Fatalf("unexpected state: %+v", s)
	}
	if len(s.Customers) != 0 || len(s.Filtered) != 0 || len(s.Rows()) != 0 {
		t.Fatalf("failed load must not commit data")
	}
	// The view keeps working: filters and clicks do not panic.
	s = Reduce(s, NameFilterChanged{Value: "a"})
	s = Reduce(s, CustomerSelected{ID: 1})
	if s.Selected != nil {
		t.Fatalf("cannot select a customer that was never loaded")
	}
}

func TestReduce_FilterEvents(t *testing.T) {
	s := loaded()

	s = Reduce(s, NameFilterChanged{Value: "a"})
	if got := visible(s); !reflect.DeepEqual(got, []core.ID{1, 2, 3}) {
		t.Fatalf("name filter: got %v", got)
	}

	s = Reduce(s, AmountFilterChanged{Value: "550"})
	if got := visible(s); !reflect.DeepEqual(got, []core.ID{2}) {
		t.Fatalf("name+amount filter: got %v", got)
	}

	s = Reduce(s, NameFilterChanged{Value: "mina"})
	if got := visible(s); len(got) != 0 {
		t.Fatalf("mina has no 550 transaction, got %v", got)
	}

	s = Reduce(s, AmountFilterChanged{Value: ""})
	if got := visible(s); !reflect.DeepEqual(got, []core.ID{3}) {
		t.Fatalf("clearing amount: got %v", got)
	}

	s = Reduce(s, NameFilterChanged{Value: ""})
	if !reflect.DeepEqual(s.Filtered, s.Customers) {
		t.Fatalf("clearing both filters must restore every customer")
	}
}

func TestReduce_NonNumericAmountHidesEveryone(t *testing.T) {
	s := Reduce(loaded(), AmountFilterChanged{Value: "abc"})
	if len(s.Filtered) != 0 || len(s.Rows()) != 0 {
		t.Fatalf("non-numeric amount must hide every customer, got %v", visible(s))
	}
}

func TestReduce_SameFiltersTwiceIsIdempotent(t *testing.T) {
	once := Reduce(Reduce(loaded(), NameFilterChanged{Value: "ahmed"}), AmountFilterChanged{Value: "5"})
	twice := Reduce(Reduce(once, NameFilterChanged{Value: "ahmed"}), AmountFilterChanged{Value: "5"})
	if !reflect.DeepEqual(once.Filtered, twice.Filtered) {
		t.Fatalf("expected %v, got %v", visible(once), visible(twice))
	}
}

func TestReduce_LastClickWins(t *testing.T) {
	s := Reduce(loaded(), CustomerSelected{ID: 1})
	if s.SelectedID() != 1 {
		t.Fatalf("expected 1 selected, got %d", s.SelectedID())
	}
	s = Reduce(s, CustomerSelected{ID: 2})
	if s.SelectedID() != 2 {
		t.Fatalf("expected 2 selected, got %d", s.SelectedID())
	}
	again := Reduce(s, CustomerSelected{ID: 2})
	if again.SelectedID() != 2 {
		t.Fatalf("re-click must keep the selection")
	}
	unknown := Reduce(s, CustomerSelected{ID: 42})
	if unknown.SelectedID() != 2 {
		t.Fatalf("unknown id must not change the selection")
	}
}

func TestReduce_SelectionDrivesChartAndHighlight(t *testing.T) {
	s := Reduce(loaded(), CustomerSelected{ID: 1})

	series, ok := s.Chart()
	if !ok {
		t.Fatal("expected a chart for the selection")
	}
	if !reflect.DeepEqual(series.Labels, []string{"2024-01-01", "2024-01-02"}) {
		t.Fatalf("unexpected labels: %v", series.Labels)
	}
	if !reflect.DeepEqual(series.Floats(), []float64{8, 2}) {
		t.Fatalf("unexpected data: %v", series.Floats())
	}

	for _, r := range s.Rows() {
		if r.Selected != (r.Customer.ID == 1) {
			t.Fatalf("row of customer %d: selected=%v", r.Customer.ID, r.Selected)
		}
	}
}

func TestReduce_SelectionSurvivesFiltering(t *testing.T) {
	s := Reduce(loaded(), CustomerSelected{ID: 1})
	s = Reduce(s, NameFilterChanged{Value: "mina"})
	if s.SelectedID() != 1 {
		t.Fatalf("filtering must not clear the selection")
	}
	if _, ok := s.Chart(); !ok {
		t.Fatalf("chart stays available for a filtered-out selection")
	}
}

func TestReduce_DoesNotMutatePreviousState(t *testing.T) {
	before := loaded()
	snapshot := append([]core.Customer(nil), before.Filtered...)

	after := Reduce(before, NameFilterChanged{Value: "aya"})
	after = Reduce(after, CustomerSelected{ID: 2})

	if !reflect.DeepEqual(before.Filtered, snapshot) {
		t.Fatalf("previous filtered slice was modified")
	}
	if before.NameFilter != "" || before.Selected != nil {
		t.Fatalf("previous state was modified: %+v", before)
	}
	if len(after.Filtered) != 1 {
		t.Fatalf("unexpected new state: %v", visible(after))
	}
}

func TestReduce_DataLoadedCopiesInput(t *testing.T) {
	customers := []core.Customer{{ID: 1, Name: "A"}}
	s := Reduce(State{}, DataLoaded{Customers: customers})
	customers[0].Name = "changed"
	if s.Customers[0].Name != "A" {
		t.Fatalf("state must not alias the loader's slice")
	}
}
