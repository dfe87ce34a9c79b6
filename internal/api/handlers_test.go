package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/copilot"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/dataset"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/metrics"
)

func testDataset() dataset.Dataset {
	schema := dataset.DefaultSchema()
	rows := []map[string]string{
		{
			dataset.ColCampaignName: "Festive Push", dataset.ColBrand: "Brand X",
			dataset.ColChannel: "Instagram", dataset.ColRegion: "Mumbai",
			dataset.ColCTR: "4.0%", dataset.ColRoAS: "5.0x",
			dataset.ColConversion: "300", dataset.ColMediaSpend: "₹30,000",
			dataset.ColAgentStatus: "Agent",
		},
		{
			dataset.ColCampaignName: "Summer Sale", dataset.ColBrand: "Brand X",
			dataset.ColChannel: "YouTube", dataset.ColRegion: "Delhi NCR",
			dataset.ColCTR: "2.0%", dataset.ColRoAS: "3.0x",
			dataset.ColConversion: "100", dataset.ColMediaSpend: "₹10,000",
			dataset.ColAgentStatus: "Manual",
		},
	}
	data := make(dataset.Dataset, 0, len(rows))
	for _, raw := range rows {
		data = append(data, dataset.NormalizeRow(schema, raw))
	}
	return data
}

func testHandler(data dataset.Dataset) http.Handler {
	knowledge := dataset.BuildKnowledge(data)
	resolver := copilot.NewResolver(data, knowledge, nil, time.Second)
	formatter := metrics.NewFormatter(rand.New(rand.NewSource(1)))
	h := NewHandlers(data, knowledge, resolver, formatter, nil, nil, "openai")
	return SetupRoutes(h, nil)
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleChat(t *testing.T) {
	handler := testHandler(testDataset())

	rec := doRequest(t, handler, http.MethodPost, "/api/chat",
		`{"messages":[{"role":"user","content":"what is the average ctr?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Contains(t, body["reply"], "CTR: 3.00%")
	assert.Equal(t, "local", body["source"])
}

func TestHandleChatFallback(t *testing.T) {
	handler := testHandler(testDataset())

	rec := doRequest(t, handler, http.MethodPost, "/api/chat",
		`{"messages":[{"role":"user","content":"what should my strategy be?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Contains(t, body["reply"], "AI currently unavailable.")
	assert.Equal(t, "fallback", body["source"])
}

func TestHandleChatValidation(t *testing.T) {
	handler := testHandler(testDataset())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{not json`, "invalid JSON body"},
		{"missing messages", `{}`, "messages array required"},
		{"empty messages", `{"messages":[]}`, "messages array required"},
		{"blank content", `{"messages":[{"role":"user","content":"  "}]}`, "message content required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/chat", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeBody(t, rec)["error"])
		})
	}
}

func TestHandleMetrics(t *testing.T) {
	rec := doRequest(t, testHandler(testDataset()), http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary metrics.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "3.0", summary.KPIs.CTR)
	assert.Len(t, summary.ChannelData, 2)
	assert.Len(t, summary.Performance, 7)
}

func TestHandleMetricsEmptyDataset(t *testing.T) {
	rec := doRequest(t, testHandler(dataset.Dataset{}), http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "no marketing data available", decodeBody(t, rec)["error"])
}

func TestHandleDataSummary(t *testing.T) {
	rec := doRequest(t, testHandler(testDataset()), http.MethodGet, "/api/data/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 2, body["totalRecords"])
	assert.Equal(t, "3.00", body["avgCTR"])
	assert.Equal(t, "4.00", body["avgRoAS"])
	assert.Equal(t, []interface{}{"Instagram", "YouTube"}, body["channels"])
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, testHandler(testDataset()), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 2, body["dataRecords"])
	assert.NotEmpty(t, body["instance"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandleDiag(t *testing.T) {
	rec := doRequest(t, testHandler(testDataset()), http.MethodGet, "/api/diag", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["hasOpenAIKey"])
	assert.Equal(t, false, body["hasGeminiKey"])
	assert.Equal(t, "openai", body["provider"])
	assert.EqualValues(t, 2, body["dataRecords"])
	assert.Len(t, body["datasetKnowledgeCategories"], 7)
}

func TestHandleDiagProvidersWithoutKeys(t *testing.T) {
	handler := testHandler(testDataset())

	rec := doRequest(t, handler, http.MethodGet, "/api/diag/openai", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing OPENAI_API_KEY", decodeBody(t, rec)["error"])

	rec = doRequest(t, handler, http.MethodGet, "/api/diag/gemini", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing GEMINI_API_KEY", decodeBody(t, rec)["error"])
}
