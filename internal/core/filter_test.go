package core

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func fixture() ([]Customer, []Transaction) {
	customers := []Customer{
		{ID: 1, Name: "Ahmed Ali"},
		{ID: 2, Name: "Aya Elsayed"},
		{ID: 3, Name: "Mina Adel"},
		{ID: 4, Name: "Sarah Reda"},
		{ID: 5, Name: "Mohamed Sayed"},
	}
	transactions := []Transaction{
		NewTransaction(1, 1, "2022-01-01", decimal.NewFromInt(1000)),
		NewTransaction(2, 1, "2022-01-02", decimal.NewFromInt(2000)),
		NewTransaction(3, 2, "2022-01-01", decimal.NewFromInt(550)),
		NewTransaction(4, 3, "2022-01-01", decimal.NewFromInt(500)),
		NewTransaction(5, 2, "2022-01-02", decimal.NewFromInt(1300)),
		NewTransaction(6, 4, "2022-01-01", decimal.NewFromInt(750)),
		NewTransaction(7, 3, "2022-01-02", decimal.NewFromInt(1250)),
		NewTransaction(8, 5, "2022-01-01", decimal.NewFromInt(2500)),
		NewTransaction(9, 5, "2022-01-02", decimal.NewFromInt(875)),
		NewTransaction(10, 1, "2022-01-03", decimal.RequireFromString("12.5")),
	}
	return customers, transactions
}

func ids(cs []Customer) []ID {
	out := make([]ID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterCustomers_NoFiltersIsIdentity(t *testing.T) {
	customers, transactions := fixture()
	got := FilterCustomers(customers, transactions, "", "")
	if !reflect.DeepEqual(got, customers) {
		t.Fatalf("expected all customers in order, got %v", ids(got))
	}
}

func TestFilterCustomers_ExactNameYieldsSingleton(t *testing.T) {
	customers, transactions := fixture()
	for _, c := range customers {
		got := FilterCustomers(customers, transactions, c.Name, "")
		if len(got) != 1 || got[0] != c {
			t.Fatalf("filter %q: expected only %d, got %v", c.Name, c.ID, ids(got))
		}
	}
}

func TestFilterCustomers_Name(t *testing.T) {
	customers, transactions := fixture()
	cases := []struct {
		filter string
		want   []ID
	}{
		{"a", []ID{1, 2, 3, 4, 5}},
		{"SAYED", []ID{2, 5}},
		{"reda", []ID{4}},
		{"zzz", []ID{}},
	}
	for _, tc := range cases {
		got := ids(FilterCustomers(customers, transactions, tc.filter, ""))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("filter %q: expected %v, got %v", tc.filter, tc.want, got)
		}
	}
}

func TestFilterCustomers_Amount(t *testing.T) {
	customers, transactions := fixture()
	cases := []struct {
		filter string
		want   []ID
	}{
		{"1000", []ID{1}},
		{"1000.00", []ID{1}},
		{" 550 ", []ID{2}},
		{"12.5", []ID{1}},
		{"12.50", []ID{1}},
		{"1", []ID{}},
		{"   ", []ID{1, 2, 3, 4, 5}},
	}
	for _, tc := range cases {
		got := ids(FilterCustomers(customers, transactions, "", tc.filter))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("amount %q: expected %v, got %v", tc.filter, tc.want, got)
		}
	}
}

func TestFilterCustomers_AmountWithoutMatchExcludes(t *testing.T) {
	customers, transactions := fixture()
	// 750 belongs to customer 4 only; everyone else must be excluded.
	got := FilterCustomers(customers, transactions, "", "750")
	for _, c := range got {
		if c.ID != 4 {
			t.Fatalf("customer %d has no 750 transaction but was kept", c.ID)
		}
	}
	if len(got) != 1 {
		t.Fatalf("expected one customer, got %v", ids(got))
	}
}

func TestFilterCustomers_NonNumericAmountHidesEveryone(t *testing.T) {
	customers, transactions := fixture()
	for _, in := range []string{"abc", "12a", "1,000", "NaN"} {
		if got := FilterCustomers(customers, transactions, "", in); len(got) != 0 {
			t.Fatalf("amount %q: expected no customers, got %v", in, ids(got))
		}
	}
}

func TestFilterCustomers_BothPredicatesAreANDed(t *testing.T) {
	customers, transactions := fixture()
	got := ids(FilterCustomers(customers, transactions, "sayed", "875"))
	if !reflect.DeepEqual(got, []ID{5}) {
		t.Fatalf("expected [5], got %v", got)
	}
	got = ids(FilterCustomers(customers, transactions, "ahmed", "875"))
	if len(got) != 0 {
		t.Fatalf("expected none, got %v", got)
	}
}

func TestFilterCustomers_Idempotent(t *testing.T) {
	customers, transactions := fixture()
	first := FilterCustomers(customers, transactions, "a", "1300")
	second := FilterCustomers(customers, transactions, "a", "1300")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected same result, got %v and %v", ids(first), ids(second))
	}
}

func TestFilterCustomers_DoesNotMutateInput(t *testing.T) {
	customers, transactions := fixture()
	before := append([]Customer(nil), customers...)
	_ = FilterCustomers(customers, transactions, "mina", "")
	if !reflect.DeepEqual(before, customers) {
		t.Fatalf("input customers were modified")
	}
}

func TestParseAmountFilter(t *testing.T) {
	cases := []struct {
		in    string
		set   bool
		valid bool
	}{
		{"", false, false},
		{"  ", false, false},
		{"10", true, true},
		{"-3.25", true, true},
		{"abc", true, false},
	}
	for _, tc := range cases {
		f := ParseAmountFilter(tc.in)
		if f.Set != tc.set || f.Valid != tc.valid {
			t.Fatalf("%q: expected set=%v valid=%v, got %+v", tc.in, tc.set, tc.valid, f)
		}
	}
	if ParseAmountFilter("abc").Matches(decimal.Zero) {
		t.Fatalf("invalid filter must not match")
	}
	if !ParseAmountFilter("").Matches(decimal.NewFromInt(99)) {
		t.Fatalf("unset filter must match")
	}
}
