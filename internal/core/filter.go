package core

import "strings"

// FilterCustomers returns the customers that pass both the name and the
// amount predicate, in input order. It never modifies its inputs.
//
// An empty nameFilter passes every customer, otherwise the match is a
// case-insensitive substring test on the name. An empty amountFilter passes
// every customer, otherwise the customer needs at least one transaction
// whose amount equals the parsed filter value.
func FilterCustomers(customers []Customer, transactions []Transaction, nameFilter, amountFilter string) []Customer {
	needle := strings.ToLower(nameFilter)
	amount := ParseAmountFilter(amountFilter)

	var matching map[ID]struct{}
	if amount.Set {
		matching = customersWithAmount(transactions, amount)
	}

	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		if amount.Set {
			if _, ok := matching[c.ID]; !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func customersWithAmount(transactions []Transaction, f AmountFilter) map[ID]struct{} {
	out := make(map[ID]struct{})
	if !f.Valid {
		return out
	}
	for _, t := range transactions {
		if f.Matches(t.Amount) {
			out[t.CustomerID] = struct{}{}
		}
	}
	return out
}

// TransactionsFor returns the transactions of one customer in source order.
func TransactionsFor(transactions []Transaction, customerID ID) []Transaction {
	var out []Transaction
	for _, t := range transactions {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out
}
