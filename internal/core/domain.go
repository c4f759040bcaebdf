package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date portion of a transaction timestamp.
const DateLayout = "2006-01-02"

type (
	// ID identifies a customer or a transaction. It decodes from a JSON
	// number or from a numeric JSON string.
	ID int64

	Customer struct {
		ID   ID     `json:"id"`
		Name string `json:"name"`
	}

	Transaction struct {
		ID         ID              `json:"id"`
		CustomerID ID              `json:"customer_id"`
		Date       string          `json:"date"` // ISO-8601 timestamp as sent by the backend
		Amount     decimal.Decimal `json:"amount"`

		hasAmount bool
	}
)

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrEmptyName     = errors.New("empty customer name")
	ErrInvalidDate   = errors.New("invalid transaction date")
	ErrMissingAmount = errors.New("missing transaction amount")
)

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("%w: null", ErrInvalidID)
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// JSON numbers such as 3.0 are still integral ids
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("%w: %s", ErrInvalidID, s)
		}
		v = int64(f)
	}
	*id = ID(v)
	return nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a form or path value into an ID.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(v), nil
}

func (c Customer) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("customer: %w: %d", ErrInvalidID, c.ID)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer %d: %w", c.ID, ErrEmptyName)
	}
	return nil
}

// UnmarshalJSON records whether the amount was present so Validate can
// tell a zero amount from a missing one.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	type plain Transaction
	var raw struct {
		plain
		Amount *decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Transaction(raw.plain)
	if raw.Amount != nil {
		t.Amount = *raw.Amount
		t.hasAmount = true
	}
	return nil
}

// NewTransaction builds a transaction outside of JSON decoding.
func NewTransaction(id, customerID ID, date string, amount decimal.Decimal) Transaction {
	return Transaction{ID: id, CustomerID: customerID, Date: date, Amount: amount, hasAmount: true}
}

func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("transaction: %w: %d", ErrInvalidID, t.ID)
	}
	if t.CustomerID <= 0 {
		return fmt.Errorf("transaction %d: customer_id: %w: %d", t.ID, ErrInvalidID, t.CustomerID)
	}
	if _, err := time.Parse(DateLayout, t.Day()); err != nil {
		return fmt.Errorf("transaction %d: %w: %q", t.ID, ErrInvalidDate, t.Date)
	}
	if !t.hasAmount {
		return fmt.Errorf("transaction %d: %w", t.ID, ErrMissingAmount)
	}
	return nil
}

// Day returns the calendar date portion of the timestamp, the text before
// the first "T".
func (t Transaction) Day() string {
	day, _, _ := strings.Cut(t.Date, "T")
	return day
}

// ValidateCustomers checks every record and reports the first bad index.
func ValidateCustomers(cs []Customer) error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// ValidateTransactions checks every record and reports the first bad index.
func ValidateTransactions(ts []Transaction) error {
	for i, t := range ts {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
