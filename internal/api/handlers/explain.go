package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hyesung/dartview/internal/external/gemini"
	"github.com/hyesung/dartview/pkg/logger"
)

// ExplainHandler produces plain-language explanations of financial data.
type ExplainHandler struct {
	gemini *gemini.Client
	logger *logger.Logger
}

// NewExplainHandler creates a new explain handler.
func NewExplainHandler(client *gemini.Client, log *logger.Logger) *ExplainHandler {
	return &ExplainHandler{gemini: client, logger: log}
}

// ExplainRequest is the /api/explain request body.
type ExplainRequest struct {
	CompanyName   string          `json:"companyName"`
	FinancialData json.RawMessage `json:"financialData"`
	DataType      string          `json:"dataType"`
}

// Post generates an explanation for the submitted financial data.
// POST /api/explain
func (h *ExplainHandler) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.gemini.HasKey() {
		respondError(w, http.StatusBadRequest, "GEMINI_API_KEY가 설정되지 않았습니다.")
		return
	}

	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}

	if req.CompanyName == "" || len(req.FinancialData) == 0 {
		respondError(w, http.StatusBadRequest, "회사명과 재무 데이터가 필요합니다.")
		return
	}

	explanation, err := h.gemini.Explain(ctx, req.CompanyName, req.FinancialData, req.DataType)
	if err != nil {
		h.logger.WithError(err).WithField("company", req.CompanyName).Error("Explanation generation failed")
		respondError(w, http.StatusInternalServerError, "AI 설명 생성 중 오류가 발생했습니다.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":      StatusSuccess,
		"explanation": explanation,
	})
}
