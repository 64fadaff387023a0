package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hyesung/dartview/internal/external/gemini"
	"github.com/hyesung/dartview/pkg/config"
)

func newExplainHandler(apiKey string) *ExplainHandler {
	client := gemini.NewClient(config.GeminiConfig{
		APIKey:  apiKey,
		Model:   "gemini-2.0-flash",
		Timeout: 2 * time.Second,
	}, testLogger())
	return NewExplainHandler(client, testLogger())
}

func TestExplainPost_MissingKey(t *testing.T) {
	h := newExplainHandler("")

	req := httptest.NewRequest(http.MethodPost, "/api/explain",
		strings.NewReader(`{"companyName":"삼성전자","financialData":[],"dataType":"BS"}`))
	rec := httptest.NewRecorder()
	h.Post(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "GEMINI_API_KEY가 설정되지 않았습니다.", body["message"])
}

func TestExplainPost_MalformedBody(t *testing.T) {
	h := newExplainHandler("test-key")

	req := httptest.NewRequest(http.MethodPost, "/api/explain", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Post(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "잘못된 요청 형식입니다.", body["message"])
}

func TestExplainPost_MissingFields(t *testing.T) {
	h := newExplainHandler("test-key")

	tests := []struct {
		name string
		body string
	}{
		{"no company name", `{"financialData":[{"account_nm":"자산총계"}],"dataType":"BS"}`},
		{"no financial data", `{"companyName":"삼성전자","dataType":"BS"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/explain", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Post(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "회사명과 재무 데이터가 필요합니다.", body["message"])
		})
	}
}
