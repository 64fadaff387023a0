package handlers

import (
	"errors"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/hyesung/dartview/internal/external/dart"
	"github.com/hyesung/dartview/pkg/logger"
)

// FinancialHandler proxies financial-statement queries to DART, injecting
// the server-held credential.
// ⭐ SSOT: /api/financial 프록시는 이 핸들러에서만
type FinancialHandler struct {
	dart   *dart.Client
	logger *logger.Logger
}

// NewFinancialHandler creates a new financial proxy handler.
func NewFinancialHandler(client *dart.Client, log *logger.Logger) *FinancialHandler {
	return &FinancialHandler{dart: client, logger: log}
}

// Get relays one financial-statement query.
// GET /api/financial?corpCode&year&reportCode[&apiKey]
func (h *FinancialHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	corpCode := q.Get("corpCode")
	year := q.Get("year")
	reportCode := q.Get("reportCode")
	apiKey := q.Get("apiKey")

	if apiKey == "" && !h.dart.HasKey() {
		respondError(w, http.StatusBadRequest,
			"API 인증키가 필요합니다. DART_API_KEY를 설정하거나 apiKey 파라미터를 전달하세요.")
		return
	}

	if corpCode == "" || year == "" || reportCode == "" {
		respondError(w, http.StatusBadRequest, "필수 파라미터가 누락되었습니다.")
		return
	}

	result, err := h.dart.Relay(ctx, apiKey, corpCode, year, reportCode)
	if err != nil {
		if errors.Is(err, dart.ErrNoResponse) {
			// Request sent, nothing came back
			h.logger.WithError(err).WithField("corp_code", corpCode).Error("DART unreachable")
			respondError(w, http.StatusServiceUnavailable, "DART API 서버에 연결할 수 없습니다.")
			return
		}
		h.logger.WithError(err).Error("Financial proxy failure")
		respondError(w, http.StatusInternalServerError, "서버 오류가 발생했습니다.")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"corp_code":   corpCode,
		"bsns_year":   year,
		"reprt_code":  reportCode,
		"http_status": result.StatusCode,
		"dart_status": gjson.GetBytes(result.Body, "status").String(),
	}).Info("DART query relayed")

	// Relay upstream body and status verbatim, success or not
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.StatusCode)
	w.Write(result.Body)
}
