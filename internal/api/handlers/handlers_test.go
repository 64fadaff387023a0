package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyesung/dartview/internal/directory"
	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

// testDirectory loads a directory with a small fixture dataset.
func testDirectory(t *testing.T) *directory.Directory {
	t.Helper()

	records := []directory.CompanyRecord{
		{CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930"},
		{CorpCode: "00164779", CorpName: "SK하이닉스", StockCode: "000660"},
		{CorpCode: "99999999", CorpName: "삼성벤처투자", StockCode: " "},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "corpCodes.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	dir := directory.New(testLogger())
	require.NoError(t, dir.LoadFile(path))
	return dir
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
