// This file parses and sanitizes the form values posted by the page.

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"ledgerview/internal/core"
)

// maxFormBytes bounds the body of event posts.
const maxFormBytes = 16 << 10

// maxFilterLength bounds a single filter value, in runes, after sanitizing.
const maxFilterLength = 200

// ErrFilterTooLong is returned for a filter value over maxFilterLength.
var ErrFilterTooLong = errors.New("filter value too long")

// FilterParams holds the filter inputs of one post. A field is only
// applied when its key was present in the form.
type FilterParams struct {
	Name      string
	Amount    string
	HasName   bool
	HasAmount bool
}

// ParseFilterParams reads the name and amount filter inputs.
func ParseFilterParams(r *http.Request) (FilterParams, error) {
	if err := parseForm(r); err != nil {
		return FilterParams{}, err
	}
	var p FilterParams
	var err error
	if _, ok := r.PostForm["name"]; ok {
		p.HasName = true
		if p.Name, err = filterValue(r, "name"); err != nil {
			return FilterParams{}, err
		}
	}
	if _, ok := r.PostForm["amount"]; ok {
		p.HasAmount = true
		if p.Amount, err = filterValue(r, "amount"); err != nil {
			return FilterParams{}, err
		}
	}
	return p, nil
}

// ParseCustomerParam reads the clicked customer id.
func ParseCustomerParam(r *http.Request) (core.ID, error) {
	if err := parseForm(r); err != nil {
		return 0, err
	}
	raw := sanitizeInput(r.PostForm.Get("customer"))
	if raw == "" {
		return 0, fmt.Errorf("missing customer")
	}
	id, err := core.ParseID(raw)
	if err != nil {
		return 0, fmt.Errorf("customer %q: %w", raw, err)
	}
	return id, nil
}

func parseForm(r *http.Request) error {
	if r.PostForm != nil {
		return nil
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// sanitizeInput drops control characters except tab, newline and carriage
// return. Surrounding whitespace is kept so that filters behave the same
// as the raw input.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// filterValue returns the sanitized value of key. Overlong values are
// rejected, never shortened.
func filterValue(r *http.Request, key string) (string, error) {
	v := sanitizeInput(r.PostForm.Get(key))
	if utf8.RuneCountInString(v) > maxFilterLength {
		return "", fmt.Errorf("%s: %w", key, ErrFilterTooLong)
	}
	return v, nil
}
