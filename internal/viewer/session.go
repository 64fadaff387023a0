// Package viewer drives one search/render session: company selection,
// statement queries, table classification, metric selection, and the single
// live chart. UI intents arrive as named events through a single dispatcher;
// rendering is a pure function from session state to a view model.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/internal/external/dart"
	"github.com/hyesung/dartview/internal/statement"
	"github.com/hyesung/dartview/pkg/logger"
)

// User-facing messages
const (
	MsgSelectCompany = "회사를 선택해주세요."
	MsgDefaultError  = "데이터를 불러오는데 실패했습니다."
	MsgNoData        = "해당 기간의 재무제표 데이터가 없습니다."
	MsgConnectivity  = "DART API 서버에 연결할 수 없습니다."
)

// Tabs form a fixed set; switching to an identifier outside this set is a
// caller error and is not defended against.
const (
	TabBalanceSheet    = "bs"
	TabIncomeStatement = "is"
	TabChart           = "chart"
)

// StatementFetcher is the upstream query the session depends on.
type StatementFetcher interface {
	FetchFinancialStatement(ctx context.Context, corpCode, year, reportCode string) (*dart.FinancialResponse, error)
}

// State is the session-state value object: selected company, current query
// result, auto/user-selected metric, single chart handle, tab, the single
// error slot, and the loading flag.
type State struct {
	Selected       *directory.CompanyRecord
	Result         []dart.LineItem
	Metrics        []string
	SelectedMetric string
	Chart          *statement.Series
	ActiveTab      string
	ErrorMsg       string
	Loading        bool
}

// Session owns the state and applies events to it.
type Session struct {
	directory *directory.Directory
	fetcher   StatementFetcher
	logger    *logger.Logger

	mu         sync.Mutex
	state      State
	generation uint64 // stamp of the latest issued search
}

// NewSession creates a session over the given directory and fetcher.
func NewSession(dir *directory.Directory, fetcher StatementFetcher, log *logger.Logger) *Session {
	return &Session{
		directory: dir,
		fetcher:   fetcher,
		logger:    log,
		state:     State{ActiveTab: TabBalanceSheet},
	}
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Suggest returns autocomplete suggestions for term.
func (s *Session) Suggest(term string) []directory.CompanyRecord {
	return s.directory.Search(term)
}

// PickSuggestion selects a company by corp_code, replacing any previous
// selection for the rest of the search session.
func (s *Session) PickSuggestion(corpCode string) error {
	record, ok := s.directory.Get(corpCode)
	if !ok {
		return fmt.Errorf("unknown corp_code %q", corpCode)
	}

	s.mu.Lock()
	s.state.Selected = &record
	s.mu.Unlock()
	return nil
}

// SelectTab activates the named tab, deactivating the others.
func (s *Session) SelectTab(tab string) {
	s.mu.Lock()
	s.state.ActiveTab = tab
	s.mu.Unlock()
}

// ChangeMetric re-renders the chart for the newly chosen account. The
// previous chart handle is dropped before the new one is built, so at most
// one chart is alive at a time.
func (s *Session) ChangeMetric(metric string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Chart = nil
	s.state.SelectedMetric = metric

	if series, ok := statement.BuildSeries(s.state.Result, metric); ok {
		s.state.Chart = &series
	}
}

// RunSearch issues the financial-statement query for the selected company.
// The loading flag is cleared on every exit path. Overlapping searches are
// resolved by generation stamp: only the most recent one applies its result.
func (s *Session) RunSearch(ctx context.Context, year, reportCode string) {
	s.mu.Lock()
	if s.state.Selected == nil {
		s.state.ErrorMsg = MsgSelectCompany
		s.mu.Unlock()
		return
	}
	corpCode := s.state.Selected.CorpCode

	// Clear previous error and result view, show loading
	s.state.ErrorMsg = ""
	s.state.Result = nil
	s.state.Metrics = nil
	s.state.SelectedMetric = ""
	s.state.Chart = nil
	s.state.Loading = true

	s.generation++
	gen := s.generation
	s.mu.Unlock()

	resp, err := s.fetcher.FetchFinancialStatement(ctx, corpCode, year, reportCode)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer search has been issued; this response is stale
	if gen != s.generation {
		return
	}
	s.state.Loading = false

	if err != nil {
		if errors.Is(err, dart.ErrNoResponse) {
			s.state.ErrorMsg = MsgConnectivity
		} else {
			s.state.ErrorMsg = MsgDefaultError
		}
		s.logger.WithError(err).WithField("corp_code", corpCode).Error("Financial statement query failed")
		return
	}

	if resp.Status != dart.StatusOK {
		if resp.Message != "" {
			s.state.ErrorMsg = resp.Message
		} else {
			s.state.ErrorMsg = MsgDefaultError
		}
		return
	}

	if len(resp.List) == 0 {
		s.state.ErrorMsg = MsgNoData
		return
	}

	// Success: replace the result in full and chart the first key metric
	s.state.Result = resp.List
	s.state.Metrics = statement.MetricOptions(resp.List)
	if len(s.state.Metrics) > 0 {
		s.state.SelectedMetric = s.state.Metrics[0]
		if series, ok := statement.BuildSeries(resp.List, s.state.SelectedMetric); ok {
			s.state.Chart = &series
		}
	}
}
