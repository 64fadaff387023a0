package viewer

import (
	"github.com/hyesung/dartview/internal/statement"
)

// CompanyInfo is the read-only info panel for the selected company.
type CompanyInfo struct {
	CorpCode  string `json:"corp_code"`
	CorpName  string `json:"corp_name"`
	StockCode string `json:"stock_code"` // "비상장" when unlisted
}

// View is the rendered session: two classified tables, the metric options,
// and the chart for the selected metric.
type View struct {
	Company *CompanyInfo `json:"company,omitempty"`

	BalanceSheet    []statement.TableRow `json:"balance_sheet"`
	IncomeStatement []statement.TableRow `json:"income_statement"`

	Metrics        []string          `json:"metrics"`
	SelectedMetric string            `json:"selected_metric,omitempty"`
	Chart          *statement.Series `json:"chart,omitempty"`

	ActiveTab string `json:"active_tab"`
	Error     string `json:"error,omitempty"`
	Loading   bool   `json:"loading"`
}

// Render builds the view model from a session state. It is a pure function:
// the state is not mutated and repeated calls yield the same view.
func Render(state State) View {
	view := View{
		Metrics:        state.Metrics,
		SelectedMetric: state.SelectedMetric,
		Chart:          state.Chart,
		ActiveTab:      state.ActiveTab,
		Error:          state.ErrorMsg,
		Loading:        state.Loading,
	}

	if state.Selected != nil {
		view.Company = &CompanyInfo{
			CorpCode:  state.Selected.CorpCode,
			CorpName:  state.Selected.CorpName,
			StockCode: state.Selected.DisplayStockCode(),
		}
	}

	bs, is := statement.Classify(state.Result)
	view.BalanceSheet = statement.BuildTable(bs)
	view.IncomeStatement = statement.BuildTable(is)

	return view
}
