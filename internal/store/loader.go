package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

// Loader is the one-shot batch job that (re)builds the company store from
// the corpCodes dataset. Idempotent by recreation: any existing store file
// is deleted up front.
type Loader struct {
	cfg    config.DataConfig
	logger *logger.Logger
}

// Stats summarizes one completed load.
type Stats struct {
	Total         int
	Listed        int
	Unlisted      int
	Batches       int
	Samples       []directory.CompanyRecord
	FileSizeBytes int64
}

// NewLoader creates a loader.
func NewLoader(cfg config.DataConfig, log *logger.Logger) *Loader {
	return &Loader{cfg: cfg, logger: log}
}

// Run executes the load. A missing or unparseable dataset aborts the job;
// per-record failures inside a batch do not.
func (l *Loader) Run(ctx context.Context) (*Stats, error) {
	data, err := os.ReadFile(l.cfg.CorpCodesPath)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var records []directory.CompanyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	l.logger.WithField("count", len(records)).Info("Company dataset loaded")

	s, err := Create(l.cfg.StorePath)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	stats := &Stats{}

	batchSize := l.cfg.BatchSize
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := s.InsertBatch(ctx, records[i:end], l.logger); err != nil {
			return nil, fmt.Errorf("insert batch %d: %w", stats.Batches+1, err)
		}
		stats.Batches++

		l.logger.WithFields(map[string]interface{}{
			"processed": end,
			"total":     len(records),
		}).Debug("Batch inserted")
	}

	if stats.Total, err = s.Count(ctx); err != nil {
		return nil, fmt.Errorf("count companies: %w", err)
	}
	if stats.Listed, err = s.ListedCount(ctx); err != nil {
		return nil, fmt.Errorf("count listed companies: %w", err)
	}
	stats.Unlisted = stats.Total - stats.Listed

	if stats.Samples, err = s.SampleListed(ctx, 5); err != nil {
		return nil, fmt.Errorf("sample companies: %w", err)
	}

	// Close before stat so the size reflects the flushed file
	if err := s.Close(); err != nil {
		return nil, fmt.Errorf("close store: %w", err)
	}

	info, err := os.Stat(l.cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("stat store file: %w", err)
	}
	stats.FileSizeBytes = info.Size()

	return stats, nil
}
