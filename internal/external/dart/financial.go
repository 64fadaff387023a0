package dart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DART status codes
// 000 = success, 013 = no data, others = error
const (
	StatusOK     = "000"
	StatusNoData = "013"
)

// Report codes (reprt_code) for the single-account financial statement API
const (
	ReportQ1     = "11013" // 1분기보고서
	ReportHalf   = "11012" // 반기보고서
	ReportQ3     = "11014" // 3분기보고서
	ReportAnnual = "11011" // 사업보고서
)

// ErrNoResponse marks an upstream call where the request was sent but no
// response came back (unreachable host, timeout). Callers use it to tell
// connectivity failures apart from local ones.
var ErrNoResponse = errors.New("dart: no response from upstream")

// FinancialResponse represents the fnlttSinglAcnt.json response
type FinancialResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	List    []LineItem `json:"list,omitempty"`
}

// LineItem is one reported account row with up to three period amounts.
// Amounts are strings as DART reports them: comma-grouped digits or "-".
type LineItem struct {
	RceptNo   string `json:"rcept_no"`
	ReprtCode string `json:"reprt_code"`
	BsnsYear  string `json:"bsns_year"`
	CorpCode  string `json:"corp_code"`
	StockCode string `json:"stock_code"`

	FsDiv     string `json:"fs_div"` // CFS: 연결, OFS: 별도
	FsNm      string `json:"fs_nm"`
	SjDiv     string `json:"sj_div"` // BS: 재무상태표, IS: 손익계산서
	SjNm      string `json:"sj_nm"`
	AccountNm string `json:"account_nm"`

	ThstrmNm        string `json:"thstrm_nm"`
	ThstrmDt        string `json:"thstrm_dt"`
	ThstrmAmount    string `json:"thstrm_amount"`
	FrmtrmNm        string `json:"frmtrm_nm"`
	FrmtrmDt        string `json:"frmtrm_dt"`
	FrmtrmAmount    string `json:"frmtrm_amount"`
	BfefrmtrmNm     string `json:"bfefrmtrm_nm"`
	BfefrmtrmDt     string `json:"bfefrmtrm_dt"`
	BfefrmtrmAmount string `json:"bfefrmtrm_amount"`

	Ord      string `json:"ord"`
	Currency string `json:"currency"`
}

// RelayResult is the upstream response as received, for verbatim relay.
type RelayResult struct {
	StatusCode int
	Body       []byte
}

// financialURL builds the fnlttSinglAcnt.json request URL.
func (c *Client) financialURL(apiKey, corpCode, year, reportCode string) string {
	q := url.Values{}
	q.Set("crtfc_key", apiKey)
	q.Set("corp_code", corpCode)
	q.Set("bsns_year", year)
	q.Set("reprt_code", reportCode)
	return c.baseURL + "/api/fnlttSinglAcnt.json?" + q.Encode()
}

// FetchFinancialStatement fetches financial statement line items for one
// (company, year, report) query using the configured credential.
// A non-"000" DART status is returned in the response, not as an error;
// business failures are the caller's to interpret.
func (c *Client) FetchFinancialStatement(ctx context.Context, corpCode, year, reportCode string) (*FinancialResponse, error) {
	result, err := c.Relay(ctx, c.apiKey, corpCode, year, reportCode)
	if err != nil {
		return nil, err
	}

	if result.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", result.StatusCode)
	}

	var resp FinancialResponse
	if err := json.Unmarshal(result.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &resp, nil
}

// Relay performs the upstream request and returns the raw body and status
// code so the proxy can pass them through verbatim. An empty apiKey falls
// back to the configured credential.
// No retries; a send-without-response failure wraps ErrNoResponse.
func (c *Client) Relay(ctx context.Context, apiKey, corpCode, year, reportCode string) (*RelayResult, error) {
	if apiKey == "" {
		apiKey = c.apiKey
	}
	reqURL := c.financialURL(apiKey, corpCode, year, reportCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"corp_code":  corpCode,
		"bsns_year":  year,
		"reprt_code": reportCode,
	}).Debug("DART financial statement request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNoResponse, err)
	}

	return &RelayResult{StatusCode: resp.StatusCode, Body: body}, nil
}
