package http

import (
	"encoding/json"
	"html/template"

	"github.com/shopspring/decimal"

	"ledgerview/internal/core"
	"ledgerview/internal/view"
)

// Chart.js dataset colours.
const (
	chartBorderColor     = "rgba(75,192,192,1)"
	chartBackgroundColor = "rgba(75,192,192,0.2)"
)

// chartDataset and chartData mirror the Chart.js "data" object.
type chartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderWidth     int       `json:"borderWidth"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

func newChartData(series core.ChartSeries) chartData {
	labels := series.Labels
	if labels == nil {
		labels = []string{}
	}
	return chartData{
		Labels: labels,
		Datasets: []chartDataset{{
			Label:           core.ChartLabel,
			Data:            series.Floats(),
			BorderColor:     chartBorderColor,
			BackgroundColor: chartBackgroundColor,
			BorderWidth:     1,
		}},
	}
}

// chartView is what the chart partial needs.
type chartView struct {
	CustomerID   core.ID
	CustomerName string
	Points       int
	JSON         string
}

// pageData is the data of every template.
type pageData struct {
	ViewID       string
	NameFilter   string
	AmountFilter string
	Failed       bool
	Rows         []core.TableRow
	Chart        *chartView
}

func newPageData(viewID string, st view.State) (pageData, error) {
	data := pageData{
		ViewID:       viewID,
		NameFilter:   st.NameFilter,
		AmountFilter: st.AmountFilter,
		Failed:       st.Failed(),
		Rows:         st.Rows(),
	}
	series, ok := st.Chart()
	if !ok {
		return data, nil
	}
	raw, err := json.Marshal(newChartData(series))
	if err != nil {
		return data, err
	}
	data.Chart = &chartView{
		CustomerID:   st.Selected.ID,
		CustomerName: st.Selected.Name,
		Points:       series.Len(),
		JSON:         string(raw),
	}
	return data, nil
}

// formatAmount renders an amount the way the backend sent it, without
// trailing zeros.
func formatAmount(d decimal.Decimal) string {
	return d.String()
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"amount": formatAmount,
	}
}
