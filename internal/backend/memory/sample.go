package memory

import (
	"github.com/shopspring/decimal"

	"ledgerview/internal/core"
)

// SampleSeed returns the demo data set used when no db.json is present.
func SampleSeed() Seed {
	tx := func(id, customer core.ID, date string, amount int64) core.Transaction {
		return core.NewTransaction(id, customer, date, decimal.NewFromInt(amount))
	}
	return Seed{
		Customers: []core.Customer{
			{ID: 1, Name: "Ahmed Ali"},
			{ID: 2, Name: "Aya Elsayed"},
			{ID: 3, Name: "Mina Adel"},
			{ID: 4, Name: "Sarah Reda"},
			{ID: 5, Name: "Mohamed Sayed"},
		},
		Transactions: []core.Transaction{
			tx(1, 1, "2022-01-01", 1000),
			tx(2, 1, "2022-01-02", 2000),
			tx(3, 2, "2022-01-01", 550),
			tx(4, 3, "2022-01-01", 500),
			tx(5, 2, "2022-01-02", 1300),
			tx(6, 4, "2022-01-01", 750),
			tx(7, 3, "2022-01-02", 1250),
			tx(8, 5, "2022-01-01", 2500),
			tx(9, 5, "2022-01-02", 875),
		},
	}
}
