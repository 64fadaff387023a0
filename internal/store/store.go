// Package store is the SQLite-backed company reference store produced by the
// one-shot loader and consulted by the server for company lookups.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    corp_code TEXT NOT NULL UNIQUE,
    corp_name TEXT NOT NULL,
    corp_eng_name TEXT,
    stock_code TEXT,
    modify_date TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_corp_name ON companies(corp_name);
CREATE INDEX IF NOT EXISTS idx_stock_code ON companies(stock_code);
CREATE INDEX IF NOT EXISTS idx_corp_code ON companies(corp_code);
`

// Store wraps the SQLite handle.
// ⭐ SSOT: 회사 참조 스토어 접근은 이 패키지에서만
type Store struct {
	db   *sql.DB
	path string
}

// Open opens an existing store file. It does not create one; run the loader
// first.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("store file not found: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Create deletes any pre-existing store file and creates a fresh one with
// the companies schema.
func Create(path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove existing store: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the store handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// InsertBatch inserts one batch of records inside a single transaction.
// Duplicate corp_code failures are expected and swallowed; any other
// per-record failure is logged and skipped without aborting the batch.
func (s *Store) InsertBatch(ctx context.Context, records []directory.CompanyRecord, log *logger.Logger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO companies (corp_code, corp_name, corp_eng_name, stock_code, modify_date)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx, r.CorpCode, r.CorpName, r.CorpEngName, r.StockCode, r.ModifyDate)
		if err == nil {
			continue
		}
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			continue // duplicate corp_code is benign
		}
		log.WithError(err).WithField("corp_name", r.CorpName).Warn("Failed to insert company")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Count returns the total number of stored companies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n)
	return n, err
}

// ListedCount returns the number of companies with a non-blank stock code.
func (s *Store) ListedCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companies WHERE TRIM(stock_code) != ''`).Scan(&n)
	return n, err
}

// SampleListed returns up to limit listed companies in insertion order.
func (s *Store) SampleListed(ctx context.Context, limit int) ([]directory.CompanyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT corp_code, corp_name, stock_code
		FROM companies
		WHERE TRIM(stock_code) != ''
		ORDER BY id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("sample listed: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// Search mirrors the in-memory directory search: corp_name contains term, or
// non-blank stock_code contains term; insertion order; capped at limit.
// instr() keeps the match case-sensitive as typed.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]directory.CompanyRecord, error) {
	if term == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT corp_code, corp_name, stock_code
		FROM companies
		WHERE instr(corp_name, ?) > 0
		   OR (TRIM(stock_code) != '' AND instr(stock_code, ?) > 0)
		ORDER BY id
		LIMIT ?
	`, term, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// Get looks up one company by corp_code.
func (s *Store) Get(ctx context.Context, corpCode string) (directory.CompanyRecord, bool, error) {
	var r directory.CompanyRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT corp_code, corp_name, stock_code
		FROM companies
		WHERE corp_code = ?
	`, corpCode).Scan(&r.CorpCode, &r.CorpName, &r.StockCode)

	if err == sql.ErrNoRows {
		return directory.CompanyRecord{}, false, nil
	}
	if err != nil {
		return directory.CompanyRecord{}, false, fmt.Errorf("get company: %w", err)
	}
	return r, true, nil
}

func scanCompanies(rows *sql.Rows) ([]directory.CompanyRecord, error) {
	var records []directory.CompanyRecord
	for rows.Next() {
		var r directory.CompanyRecord
		if err := rows.Scan(&r.CorpCode, &r.CorpName, &r.StockCode); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
