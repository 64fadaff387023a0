// Package statement turns raw DART financial line items into the classified
// tables and chart series the viewer renders.
package statement

import (
	"github.com/hyesung/dartview/internal/external/dart"
)

// Statement type and consolidation markers as DART reports them.
const (
	StatementBS    = "BS"  // 재무상태표
	StatementIS    = "IS"  // 손익계산서
	ConsolidatedFS = "CFS" // 연결재무제표
)

// TableRow is one display row: account label plus the three period amounts,
// already formatted for rendering.
type TableRow struct {
	AccountName string `json:"account_nm"`
	Current     string `json:"thstrm"`
	Prior       string `json:"frmtrm"`
	PriorPrior  string `json:"bfefrmtrm"`
}

// Classify partitions line items into balance-sheet and income-statement
// subsets. Only consolidated (CFS) rows are kept; every row lands in exactly
// one of {balance sheet, income statement, neither} based solely on
// (sj_div, fs_div).
func Classify(items []dart.LineItem) (balanceSheet, incomeStatement []dart.LineItem) {
	for _, item := range items {
		if item.FsDiv != ConsolidatedFS {
			continue
		}
		switch item.SjDiv {
		case StatementBS:
			balanceSheet = append(balanceSheet, item)
		case StatementIS:
			incomeStatement = append(incomeStatement, item)
		}
	}
	return balanceSheet, incomeStatement
}

// BuildTable formats a classified subset into display rows.
func BuildTable(items []dart.LineItem) []TableRow {
	rows := make([]TableRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, TableRow{
			AccountName: item.AccountNm,
			Current:     FormatAmount(item.ThstrmAmount),
			Prior:       FormatAmount(item.FrmtrmAmount),
			PriorPrior:  FormatAmount(item.BfefrmtrmAmount),
		})
	}
	return rows
}
