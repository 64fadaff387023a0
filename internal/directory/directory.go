// Package directory holds the in-memory company reference directory used for
// autocomplete and the company info panel. Records are immutable reference
// data loaded wholesale from the corpCodes dataset.
package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hyesung/dartview/pkg/logger"
)

// MaxSuggestions caps autocomplete results.
const MaxSuggestions = 10

// CompanyRecord is one company in the DART corp-code dataset.
// A blank or whitespace-only stock_code means the company is unlisted.
type CompanyRecord struct {
	CorpCode    string `json:"corp_code"`
	CorpName    string `json:"corp_name"`
	CorpEngName string `json:"corp_eng_name,omitempty"`
	StockCode   string `json:"stock_code,omitempty"`
	ModifyDate  string `json:"modify_date,omitempty"`
}

// Listed reports whether the company has a non-blank stock code.
func (r CompanyRecord) Listed() bool {
	return strings.TrimSpace(r.StockCode) != ""
}

// DisplayStockCode returns the trimmed stock code, or "비상장" for
// unlisted companies.
func (r CompanyRecord) DisplayStockCode() string {
	code := strings.TrimSpace(r.StockCode)
	if code == "" {
		return "비상장"
	}
	return code
}

// Directory is the loaded company directory.
// Reads vastly outnumber the occasional wholesale reload, so it is guarded
// by a RWMutex.
type Directory struct {
	mu      sync.RWMutex
	records []CompanyRecord
	logger  *logger.Logger
}

// New creates an empty directory.
func New(log *logger.Logger) *Directory {
	return &Directory{logger: log}
}

// LoadFile replaces the directory contents with the dataset at path.
// On failure the previous contents are kept; an empty directory simply
// yields no autocomplete matches.
func (d *Directory) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read corp codes: %w", err)
	}

	var records []CompanyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse corp codes: %w", err)
	}

	d.mu.Lock()
	d.records = records
	d.mu.Unlock()

	d.logger.WithField("count", len(records)).Info("Company directory loaded")
	return nil
}

// Len returns the number of loaded companies.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

// Search returns up to MaxSuggestions companies whose corp_name contains
// term, or whose non-blank stock_code contains term. Matching is
// case-sensitive as typed and results preserve directory order.
// An empty term yields no suggestions.
func (d *Directory) Search(term string) []CompanyRecord {
	if term == "" {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	matches := make([]CompanyRecord, 0, MaxSuggestions)
	for _, r := range d.records {
		if strings.Contains(r.CorpName, term) ||
			(strings.TrimSpace(r.StockCode) != "" && strings.Contains(r.StockCode, term)) {
			matches = append(matches, r)
			if len(matches) == MaxSuggestions {
				break
			}
		}
	}
	return matches
}

// Get looks up a company by corp_code.
func (d *Directory) Get(corpCode string) (CompanyRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, r := range d.records {
		if r.CorpCode == corpCode {
			return r, true
		}
	}
	return CompanyRecord{}, false
}
