package handlers

import (
	"net/http"

	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/internal/viewer"
	"github.com/hyesung/dartview/pkg/logger"
)

// StatementHandler serves the fully rendered statement view: classified
// tables, metric options, and the chart series for the auto-selected metric.
// Each request runs an ephemeral viewer session, so the endpoint stays
// stateless while sharing the exact search/render semantics with the client.
type StatementHandler struct {
	directory *directory.Directory
	fetcher   viewer.StatementFetcher
	logger    *logger.Logger
}

// NewStatementHandler creates a new statement view handler.
func NewStatementHandler(dir *directory.Directory, fetcher viewer.StatementFetcher, log *logger.Logger) *StatementHandler {
	return &StatementHandler{directory: dir, fetcher: fetcher, logger: log}
}

// Get runs one search and renders the view model.
// GET /api/statement?corpCode&year&reportCode[&metric]
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	corpCode := q.Get("corpCode")
	year := q.Get("year")
	reportCode := q.Get("reportCode")

	if corpCode == "" || year == "" || reportCode == "" {
		respondError(w, http.StatusBadRequest, "필수 파라미터가 누락되었습니다.")
		return
	}

	session := viewer.NewSession(h.directory, h.fetcher, h.logger)

	if err := session.Dispatch(ctx, viewer.Event{Kind: viewer.EventSuggestionPicked, CorpCode: corpCode}); err != nil {
		respondError(w, http.StatusNotFound, "회사를 찾을 수 없습니다.")
		return
	}

	session.Dispatch(ctx, viewer.Event{
		Kind:       viewer.EventSearchRequested,
		Year:       year,
		ReportCode: reportCode,
	})

	if metric := q.Get("metric"); metric != "" {
		session.Dispatch(ctx, viewer.Event{Kind: viewer.EventMetricChanged, Metric: metric})
	}

	view := viewer.Render(session.State())

	if view.Error != "" {
		status := http.StatusBadRequest
		if view.Error == viewer.MsgConnectivity {
			status = http.StatusServiceUnavailable
		}
		respondError(w, status, view.Error)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": StatusSuccess,
		"view":   view,
	})
}
