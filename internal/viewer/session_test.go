package viewer

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/internal/external/dart"
	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

type stubFetcher struct {
	fn func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error)
}

func (f *stubFetcher) FetchFinancialStatement(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
	return f.fn(ctx, corpCode, year, reportCode)
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func testSession(fetch func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error)) *Session {
	dir := directory.New(testLogger())
	s := NewSession(dir, &stubFetcher{fn: fetch}, testLogger())
	return s
}

func okResponse() *dart.FinancialResponse {
	return &dart.FinancialResponse{
		Status: dart.StatusOK,
		List: []dart.LineItem{
			{
				SjDiv: "BS", FsDiv: "CFS", AccountNm: "자산총계",
				ThstrmNm: "제 55 기", ThstrmAmount: "1,000",
				FrmtrmNm: "제 54 기", FrmtrmAmount: "900",
				BfefrmtrmNm: "제 53 기", BfefrmtrmAmount: "800",
			},
		},
	}
}

// selectCompany seeds the session with a picked company without needing a
// loaded directory file.
func selectCompany(s *Session) {
	s.mu.Lock()
	s.state.Selected = &directory.CompanyRecord{
		CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930",
	}
	s.mu.Unlock()
}

func TestRunSearchRequiresSelection(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		t.Fatal("fetcher must not be called without a selection")
		return nil, nil
	})

	s.RunSearch(context.Background(), "2023", "11011")

	state := s.State()
	assert.Equal(t, MsgSelectCompany, state.ErrorMsg)
	assert.False(t, state.Loading)
}

func TestRunSearchSuccess(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		assert.Equal(t, "00126380", corpCode)
		assert.Equal(t, "2023", year)
		assert.Equal(t, "11011", reportCode)
		return okResponse(), nil
	})
	selectCompany(s)

	s.RunSearch(context.Background(), "2023", "11011")

	state := s.State()
	assert.Empty(t, state.ErrorMsg)
	assert.False(t, state.Loading)
	require.Len(t, state.Result, 1)

	// Metric list contains the key account and the first one is auto-charted
	require.Equal(t, []string{"자산총계"}, state.Metrics)
	assert.Equal(t, "자산총계", state.SelectedMetric)
	require.NotNil(t, state.Chart)
	require.Len(t, state.Chart.Points, 3)
	assert.Equal(t, []float64{800, 900, 1000}, []float64{
		state.Chart.Points[0].Value,
		state.Chart.Points[1].Value,
		state.Chart.Points[2].Value,
	})

	// Rendered view: one balance-sheet row, empty income statement
	view := Render(state)
	require.Len(t, view.BalanceSheet, 1)
	assert.Equal(t, "1,000", view.BalanceSheet[0].Current)
	assert.Equal(t, "900", view.BalanceSheet[0].Prior)
	assert.Equal(t, "800", view.BalanceSheet[0].PriorPrior)
	assert.Empty(t, view.IncomeStatement)
}

func TestRunSearchBusinessFailure(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		return &dart.FinancialResponse{Status: "013", Message: "no data"}, nil
	})
	selectCompany(s)

	s.RunSearch(context.Background(), "2023", "11011")

	state := s.State()
	assert.Equal(t, "no data", state.ErrorMsg)
	assert.Empty(t, state.Result)
	assert.False(t, state.Loading)
}

func TestRunSearchBusinessFailureDefaultMessage(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		return &dart.FinancialResponse{Status: "900"}, nil
	})
	selectCompany(s)

	s.RunSearch(context.Background(), "2023", "11011")
	assert.Equal(t, MsgDefaultError, s.State().ErrorMsg)
}

func TestRunSearchEmptyListIsFailure(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		return &dart.FinancialResponse{Status: dart.StatusOK}, nil
	})
	selectCompany(s)

	s.RunSearch(context.Background(), "2023", "11011")
	assert.Equal(t, MsgNoData, s.State().ErrorMsg)
}

func TestRunSearchConnectivityFailure(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		return nil, fmt.Errorf("%w: dial tcp: connection refused", dart.ErrNoResponse)
	})
	selectCompany(s)

	s.RunSearch(context.Background(), "2023", "11011")

	state := s.State()
	assert.Equal(t, MsgConnectivity, state.ErrorMsg)
	assert.False(t, state.Loading)
}

func TestRunSearchClearsPreviousError(t *testing.T) {
	calls := 0
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		calls++
		if calls == 1 {
			return &dart.FinancialResponse{Status: "013", Message: "no data"}, nil
		}
		return okResponse(), nil
	})
	selectCompany(s)

	s.RunSearch(context.Background(), "2023", "11011")
	require.Equal(t, "no data", s.State().ErrorMsg)

	s.RunSearch(context.Background(), "2022", "11011")
	assert.Empty(t, s.State().ErrorMsg)
}

func TestRunSearchStaleResponseDropped(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		if first {
			<-release // stall the first search until the second finished
			return &dart.FinancialResponse{Status: "013", Message: "stale"}, nil
		}
		return okResponse(), nil
	})
	selectCompany(s)

	done := make(chan struct{})
	go func() {
		s.RunSearch(context.Background(), "2022", "11011")
		close(done)
	}()

	// Busy-wait until the first search is in flight
	for {
		mu.Lock()
		inflight := calls == 1
		mu.Unlock()
		if inflight {
			break
		}
	}

	s.RunSearch(context.Background(), "2023", "11011")
	close(release)
	<-done

	// The stale first response must not overwrite the newer result
	state := s.State()
	assert.Empty(t, state.ErrorMsg)
	require.Len(t, state.Result, 1)
}

func TestChangeMetricReplacesChart(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		resp := okResponse()
		resp.List = append(resp.List, dart.LineItem{
			SjDiv: "IS", FsDiv: "CFS", AccountNm: "매출액",
			ThstrmNm: "제 55 기", ThstrmAmount: "500",
		})
		return resp, nil
	})
	selectCompany(s)
	s.RunSearch(context.Background(), "2023", "11011")

	first := s.State().Chart
	require.NotNil(t, first)
	assert.Equal(t, "자산총계", first.Metric)

	s.ChangeMetric("매출액")

	second := s.State().Chart
	require.NotNil(t, second)
	assert.Equal(t, "매출액", second.Metric)
	require.Len(t, second.Points, 1)
}

func TestChangeMetricUnknownDropsChart(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		return okResponse(), nil
	})
	selectCompany(s)
	s.RunSearch(context.Background(), "2023", "11011")
	require.NotNil(t, s.State().Chart)

	s.ChangeMetric("존재하지않는지표")
	assert.Nil(t, s.State().Chart)
}

func TestSelectTab(t *testing.T) {
	s := testSession(nil)
	assert.Equal(t, TabBalanceSheet, s.State().ActiveTab)

	s.SelectTab(TabChart)
	assert.Equal(t, TabChart, s.State().ActiveTab)
}

func TestDispatch(t *testing.T) {
	s := testSession(func(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error) {
		return okResponse(), nil
	})
	selectCompany(s)

	ctx := context.Background()

	require.NoError(t, s.Dispatch(ctx, Event{Kind: EventSearchRequested, Year: "2023", ReportCode: "11011"}))
	assert.Len(t, s.State().Result, 1)

	require.NoError(t, s.Dispatch(ctx, Event{Kind: EventTabSelected, Tab: TabIncomeStatement}))
	assert.Equal(t, TabIncomeStatement, s.State().ActiveTab)

	require.NoError(t, s.Dispatch(ctx, Event{Kind: EventMetricChanged, Metric: "자산총계"}))

	assert.Error(t, s.Dispatch(ctx, Event{Kind: "bogus"}))
	assert.Error(t, s.Dispatch(ctx, Event{Kind: EventSuggestionPicked, CorpCode: "없음"}))
}

func TestRenderCompanyInfo(t *testing.T) {
	s := testSession(nil)

	view := Render(s.State())
	assert.Nil(t, view.Company)

	selectCompany(s)
	view = Render(s.State())
	require.NotNil(t, view.Company)
	assert.Equal(t, "삼성전자", view.Company.CorpName)
	assert.Equal(t, "005930", view.Company.StockCode)
}
