package core

// TableRow is one transaction line of the customer table.
//
// Span is the number of rows the customer cells cover; it is set on the
// first row of each customer and zero on the following ones.
type TableRow struct {
	Customer    Customer
	Transaction Transaction
	Span        int
	Selected    bool
}

// First reports whether the row opens a customer group.
func (r TableRow) First() bool {
	return r.Span > 0
}

// BuildTableRows joins the visible customers with their transactions.
// Customers without transactions produce no rows. selected is the id of
// the highlighted customer, or zero for none.
func BuildTableRows(customers []Customer, transactions []Transaction, selected ID) []TableRow {
	byCustomer := make(map[ID][]Transaction, len(customers))
	for _, t := range transactions {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], t)
	}

	var rows []TableRow
	for _, c := range customers {
		txs := byCustomer[c.ID]
		for i, t := range txs {
			row := TableRow{
				Customer:    c,
				Transaction: t,
				Selected:    selected != 0 && selected == c.ID,
			}
			if i == 0 {
				row.Span = len(txs)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
