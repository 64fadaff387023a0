package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

// Client generates plain-language explanations of financial statements
// through the Gemini API.
// ⭐ SSOT: Gemini 호출은 이 클라이언트에서만
type Client struct {
	logger  *logger.Logger
	apiKey  string
	model   string
	timeout time.Duration
}

// NewClient creates a new Gemini client.
func NewClient(cfg config.GeminiConfig, log *logger.Logger) *Client {
	return &Client{
		logger:  log,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// HasKey reports whether a credential is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// statementName maps a sj_div value to its Korean statement name.
func statementName(dataType string) string {
	if dataType == "BS" {
		return "재무상태표"
	}
	return "손익계산서"
}

// buildPrompt builds the fixed explanation prompt embedding the serialized
// financial data and statement type.
func buildPrompt(companyName, dataType string, financialJSON string) string {
	return fmt.Sprintf(`
당신은 재무 전문가입니다. 다음 %s의 %s 데이터를 일반인도 이해하기 쉽게 설명해주세요.

재무 데이터:
%s

다음 형식으로 설명해주세요:
1. **전반적인 재무 상태**: 회사의 재무 상태를 한 문장으로 요약
2. **주요 지표 분석**:
   - 중요한 계정 항목 3-5개를 선택하여 설명
   - 각 항목의 의미와 변화 추이
   - 긍정적/부정적 신호 해석
3. **투자자 관점**: 이 데이터가 투자자에게 의미하는 바
4. **주의할 점**: 데이터 해석 시 고려해야 할 사항

쉬운 용어를 사용하고, 구체적인 숫자를 인용하며, 비유를 들어 설명해주세요.
`, companyName, statementName(dataType), financialJSON)
}

// Explain asks Gemini for a plain-language summary of the given financial
// data. The call is bounded by the configured timeout with a single retry.
func (c *Client) Explain(ctx context.Context, companyName string, financialData interface{}, dataType string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	serialized, err := json.MarshalIndent(financialData, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize financial data: %w", err)
	}

	prompt := buildPrompt(companyName, dataType, string(serialized))

	const maxAttempts = 2

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		c.logger.WithError(err).WithFields(map[string]interface{}{
			"attempt": attempt,
			"company": companyName,
		}).Warn("Gemini generation failed")
	}

	return "", fmt.Errorf("gemini generation failed after %d attempts: %w", maxAttempts, lastErr)
}

// generate performs one bounded generateContent call.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.4)),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return result.Text(), nil
}
