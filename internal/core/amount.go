// Package core provides the customer and transaction records together with
// the pure filtering and aggregation functions behind the view.
//
// This file contains the parsing of the amount filter typed by the user.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountFilter is the parsed form of the amount filter input.
//
// Set is false when the input is blank, in which case every customer
// passes. Valid is false when the input is not a number; such a filter
// matches no transaction at all, so filtering by it yields no customers.
type AmountFilter struct {
	Set   bool
	Valid bool
	Value decimal.Decimal
}

// ParseAmountFilter parses the raw amount filter.
//
// Examples:
//
//	ParseAmountFilter("")      -> {Set: false}
//	ParseAmountFilter(" 12 ")  -> {Set: true, Valid: true, Value: 12}
//	ParseAmountFilter("12.50") -> {Set: true, Valid: true, Value: 12.5}
//	ParseAmountFilter("abc")   -> {Set: true, Valid: false}
func ParseAmountFilter(s string) AmountFilter {
	s = strings.TrimSpace(s)
	if s == "" {
		return AmountFilter{}
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return AmountFilter{Set: true}
	}
	return AmountFilter{Set: true, Valid: true, Value: v}
}

// Matches reports whether an amount satisfies the filter. An invalid
// filter never matches.
func (f AmountFilter) Matches(amount decimal.Decimal) bool {
	if !f.Set {
		return true
	}
	return f.Valid && amount.Equal(f.Value)
}
