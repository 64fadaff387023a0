package statement

import (
	"strings"

	"github.com/hyesung/dartview/internal/external/dart"
)

// keyAccounts is the allow-list of chartable account names. Matching is by
// substring, so "당기순이익(손실)" qualifies but typo variants do not.
var keyAccounts = []string{
	"자산총계", "부채총계", "자본총계",
	"매출액", "영업이익", "당기순이익",
}

// ChartPoint is one (period label, value) pair.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is the three-period trend for one selected metric, oldest first.
type Series struct {
	Metric string       `json:"metric"`
	Points []ChartPoint `json:"points"`
}

// MetricOptions returns the selectable chart metrics: distinct account names
// from the full result set that contain a key account name, de-duplicated in
// order of first appearance. The first entry is the auto-selected metric.
func MetricOptions(items []dart.LineItem) []string {
	seen := make(map[string]bool)
	var options []string

	for _, item := range items {
		name := item.AccountNm
		if seen[name] {
			continue
		}
		seen[name] = true

		for _, key := range keyAccounts {
			if strings.Contains(name, key) {
				options = append(options, name)
				break
			}
		}
	}
	return options
}

// BuildSeries builds the chart series for the line item whose account name
// equals metric: up to 3 points ordered bfefrmtrm → frmtrm → thstrm. A
// period with a missing name or amount is omitted, never zero-filled.
func BuildSeries(items []dart.LineItem, metric string) (Series, bool) {
	var item *dart.LineItem
	for i := range items {
		if items[i].AccountNm == metric {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return Series{}, false
	}

	series := Series{Metric: metric}

	periods := []struct {
		name   string
		amount string
	}{
		{item.BfefrmtrmNm, item.BfefrmtrmAmount},
		{item.FrmtrmNm, item.FrmtrmAmount},
		{item.ThstrmNm, item.ThstrmAmount},
	}

	for _, p := range periods {
		if p.name == "" || p.amount == "" {
			continue
		}
		series.Points = append(series.Points, ChartPoint{
			Label: p.name,
			Value: ParseAmount(p.amount),
		})
	}

	return series, true
}
