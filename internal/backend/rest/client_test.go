package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledgerview/internal/core"
)

func newTestServer(t *testing.T, customers, transactions string, status int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(customers))
	})
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(transactions))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientListsCollections(t *testing.T) {
	srv := newTestServer(t,
		`[{"id": 1, "name": "Ahmed Ali"}, {"id": "2", "name": "Aya Elsayed"}]`,
		`[{"id": 1, "customer_id": 1, "date": "2022-01-01", "amount": 1000},
		  {"id": 2, "customer_id": "2", "date": "2022-01-02T10:00:00Z", "amount": 550.5}]`,
		http.StatusOK)

	cli, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	customers, err := cli.ListCustomers(context.Background())
	if err != nil {
		t.Fatalf("customers: %v", err)
	}
	if len(customers) != 2 || customers[1] != (core.Customer{ID: 2, Name: "Aya Elsayed"}) {
		t.Fatalf("unexpected customers: %+v", customers)
	}

	txs, err := cli.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 2 || txs[1].CustomerID != 2 || txs[1].Amount.String() != "550.5" {
		t.Fatalf("unexpected transactions: %+v", txs)
	}
}

func TestClientNon2xxIsStatusError(t *testing.T) {
	srv := newTestServer(t, `boom`, `boom`, http.StatusServiceUnavailable)
	cli, _ := New(srv.URL)

	_, err := cli.ListCustomers(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusServiceUnavailable || se.Body != "boom" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestClientMalformedPayloads(t *testing.T) {
	cases := []struct {
		name         string
		customers    string
		transactions string
		wantCustErr  error
		wantTxErr    error
	}{
		{"not json", `<html>`, `<html>`, ErrDecode, ErrDecode},
		{"object instead of array", `{"id": 1}`, `{"id": 1}`, ErrDecode, ErrDecode},
		{"blank name", `[{"id": 1, "name": ""}]`, `[]`, core.ErrEmptyName, nil},
		{"bad date", `[]`, `[{"id": 1, "customer_id": 1, "date": "soon", "amount": 1}]`, nil, core.ErrInvalidDate},
		{"missing amount", `[]`, `[{"id": 1, "customer_id": 1, "date": "2022-01-01"}]`, nil, core.ErrMissingAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.customers, tc.transactions, http.StatusOK)
			cli, _ := New(srv.URL)

			_, err := cli.ListCustomers(context.Background())
			if tc.wantCustErr == nil && err != nil {
				t.Fatalf("customers: unexpected error %v", err)
			}
			if tc.wantCustErr != nil && !errors.Is(err, tc.wantCustErr) {
				t.Fatalf("customers: expected %v, got %v", tc.wantCustErr, err)
			}

			_, err = cli.ListTransactions(context.Background())
			if tc.wantTxErr == nil && err != nil {
				t.Fatalf("transactions: unexpected error %v", err)
			}
			if tc.wantTxErr != nil && !errors.Is(err, tc.wantTxErr) {
				t.Fatalf("transactions: expected %v, got %v", tc.wantTxErr, err)
			}
		})
	}
}

func TestClientHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	cli, _ := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := cli.ListCustomers(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, in := range []string{"", "localhost:5000", "ftp://host", "http://"} {
		if _, err := New(in); err == nil {
			t.Errorf("New(%q) expected error", in)
		}
	}
}
