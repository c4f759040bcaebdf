package core

import "github.com/shopspring/decimal"

// ChartLabel is the dataset label shown in the chart legend.
const ChartLabel = "Total Transaction Amount"

// ChartSeries is the per-date total of one customer's transactions.
// Labels keep the order in which each date was first seen; Data is parallel
// to Labels.
type ChartSeries struct {
	Labels []string
	Data   []decimal.Decimal
}

// BuildChartSeries groups the customer's transactions by calendar date and
// sums the amounts per date. Dates are not sorted and gaps are not filled.
func BuildChartSeries(transactions []Transaction, customerID ID) ChartSeries {
	series := ChartSeries{Labels: []string{}, Data: []decimal.Decimal{}}
	index := map[string]int{}
	for _, t := range transactions {
		if t.CustomerID != customerID {
			continue
		}
		day := t.Day()
		i, ok := index[day]
		if !ok {
			index[day] = len(series.Labels)
			series.Labels = append(series.Labels, day)
			series.Data = append(series.Data, t.Amount)
			continue
		}
		series.Data[i] = series.Data[i].Add(t.Amount)
	}
	return series
}

// Floats returns the sums as float64 values for the charting library.
func (s ChartSeries) Floats() []float64 {
	out := make([]float64, len(s.Data))
	for i, d := range s.Data {
		out[i] = d.InexactFloat64()
	}
	return out
}

// Len returns the number of dates in the series.
func (s ChartSeries) Len() int {
	return len(s.Labels)
}
