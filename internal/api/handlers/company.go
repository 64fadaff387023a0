package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/pkg/logger"
)

// CompanyStore is the optional SQLite-backed lookup path built by the
// reference loader.
type CompanyStore interface {
	Search(ctx context.Context, term string, limit int) ([]directory.CompanyRecord, error)
	Get(ctx context.Context, corpCode string) (directory.CompanyRecord, bool, error)
}

// CompanyHandler serves autocomplete and the company info panel. The store
// is consulted first when available; the in-memory directory is the
// fallback, so the server works without a prior init-db run.
type CompanyHandler struct {
	directory *directory.Directory
	store     CompanyStore // nil when the store file is absent
	logger    *logger.Logger
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(dir *directory.Directory, store CompanyStore, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{directory: dir, store: store, logger: log}
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	CorpCode  string `json:"corp_code"`
	CorpName  string `json:"corp_name"`
	StockCode string `json:"stock_code"`
	Listed    bool   `json:"listed"`
}

// Search returns up to 10 autocomplete suggestions.
// GET /api/companies/search?q=삼성
func (h *CompanyHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	term := r.URL.Query().Get("q")

	records := h.search(ctx, term)

	suggestions := make([]Suggestion, 0, len(records))
	for _, rec := range records {
		suggestions = append(suggestions, Suggestion{
			CorpCode:  rec.CorpCode,
			CorpName:  rec.CorpName,
			StockCode: rec.DisplayStockCode(),
			Listed:    rec.Listed(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": StatusSuccess,
		"list":   suggestions,
	})
}

func (h *CompanyHandler) search(ctx context.Context, term string) []directory.CompanyRecord {
	if h.store != nil {
		records, err := h.store.Search(ctx, term, directory.MaxSuggestions)
		if err == nil {
			return records
		}
		h.logger.WithError(err).Warn("Store search failed, falling back to directory")
	}
	return h.directory.Search(term)
}

// Get returns the info panel for one company.
// GET /api/companies/{corpCode}
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	corpCode := mux.Vars(r)["corpCode"]

	record, ok := h.lookup(ctx, corpCode)
	if !ok {
		respondError(w, http.StatusNotFound, "회사를 찾을 수 없습니다.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": StatusSuccess,
		"company": Suggestion{
			CorpCode:  record.CorpCode,
			CorpName:  record.CorpName,
			StockCode: record.DisplayStockCode(),
			Listed:    record.Listed(),
		},
	})
}

func (h *CompanyHandler) lookup(ctx context.Context, corpCode string) (directory.CompanyRecord, bool) {
	if h.store != nil {
		record, ok, err := h.store.Get(ctx, corpCode)
		if err == nil && ok {
			return record, true
		}
		if err != nil {
			h.logger.WithError(err).Warn("Store lookup failed, falling back to directory")
		}
	}
	return h.directory.Get(corpCode)
}
