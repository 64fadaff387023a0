package gemini

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestStatementName(t *testing.T) {
	tests := []struct {
		dataType string
		want     string
	}{
		{"BS", "재무상태표"},
		{"IS", "손익계산서"},
		{"", "손익계산서"},
	}

	for _, tt := range tests {
		t.Run(tt.dataType, func(t *testing.T) {
			if got := statementName(tt.dataType); got != tt.want {
				t.Errorf("statementName(%q) = %q, want %q", tt.dataType, got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("삼성전자", "BS", `{"자산총계":"1,000"}`)

	for _, want := range []string{
		"삼성전자",
		"재무상태표",
		`{"자산총계":"1,000"}`,
		"전반적인 재무 상태",
		"투자자 관점",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExplainWithoutKey(t *testing.T) {
	c := NewClient(config.GeminiConfig{APIKey: "", Model: "gemini-2.0-flash", Timeout: time.Second}, testLogger())

	if c.HasKey() {
		t.Error("HasKey() = true for empty key")
	}

	if _, err := c.Explain(context.Background(), "삼성전자", map[string]string{}, "BS"); err == nil {
		t.Error("expected error when key is not configured")
	}
}
