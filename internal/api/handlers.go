package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/copilot"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/dataset"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/metrics"
)

// Chat request bodies are capped to keep conversation payloads bounded.
const maxChatBodyBytes = 1 << 20 // 1MB

// Handlers contains all HTTP handlers and the immutable dataset context
// they read. Everything here is safe for unrestricted concurrent reads:
// nothing is mutated after construction.
type Handlers struct {
	data       dataset.Dataset
	knowledge  dataset.Knowledge
	resolver   *copilot.Resolver
	formatter  *metrics.Formatter
	openAI     *copilot.OpenAIClient
	gemini     *copilot.GeminiClient
	provider   string
	instanceID string
}

// NewHandlers creates the handler set over a loaded dataset snapshot.
// openAI and gemini may be nil when their credentials are absent.
func NewHandlers(
	data dataset.Dataset,
	knowledge dataset.Knowledge,
	resolver *copilot.Resolver,
	formatter *metrics.Formatter,
	openAI *copilot.OpenAIClient,
	gemini *copilot.GeminiClient,
	provider string,
) *Handlers {
	return &Handlers{
		data:       data,
		knowledge:  knowledge,
		resolver:   resolver,
		formatter:  formatter,
		openAI:     openAI,
		gemini:     gemini,
		provider:   provider,
		instanceID: uuid.NewString(),
	}
}

type chatRequest struct {
	Messages []copilot.Message `json:"messages"`
}

type chatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source,omitempty"`
}

// HandleChat answers a chat conversation. Malformed input is the only path
// that returns an error status; every well-formed request gets a reply.
//
//	POST /api/chat
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.resolver.Resolve(r.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, copilot.ErrNoMessages) || errors.Is(err, copilot.ErrEmptyMessage) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to resolve answer")
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{Reply: result.Reply, Source: string(result.Source)})
}

// HandleMetrics returns the dashboard metrics payload. With zero records
// loaded there is nothing meaningful to render, so this one endpoint
// reports unavailability instead of zeros.
//
//	GET /api/metrics
func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if len(h.data) == 0 {
		respondError(w, http.StatusServiceUnavailable, "no marketing data available")
		return
	}
	respondJSON(w, http.StatusOK, h.formatter.Build(h.knowledge, time.Now()))
}

// HandleDataSummary returns a compact dataset summary.
//
//	GET /api/data/summary
func (h *Handlers) HandleDataSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"totalRecords":    len(h.data),
		"brands":          h.knowledge.Overview.Brands,
		"channels":        h.knowledge.Overview.Channels,
		"regions":         h.knowledge.Overview.Regions,
		"avgCTR":          fmt.Sprintf("%.2f", h.knowledge.Performance.AvgCTR),
		"avgRoAS":         fmt.Sprintf("%.2f", h.knowledge.Performance.AvgRoAS),
		"agentAutomation": fmt.Sprintf("%.2f", h.knowledge.AgentImpact.AvgAutomation),
	})
}

// HandleHealth reports basic liveness and the loaded record count.
//
//	GET /api/health
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":          true,
		"dataRecords": len(h.data),
		"instance":    h.instanceID,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleDiag reports environment diagnostics: which provider credentials
// are present and what the knowledge snapshot contains.
//
//	GET /api/diag
func (h *Handlers) HandleDiag(w http.ResponseWriter, r *http.Request) {
	openAIModel := ""
	if h.openAI != nil {
		openAIModel = h.openAI.Model()
	}
	geminiModel := ""
	if h.gemini != nil {
		geminiModel = h.gemini.Model()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":                         true,
		"provider":                   h.provider,
		"hasOpenAIKey":               h.openAI != nil,
		"openaiModel":                openAIModel,
		"hasGeminiKey":               h.gemini != nil,
		"geminiModel":                geminiModel,
		"dataRecords":                len(h.data),
		"datasetKnowledgeCategories": h.knowledge.CategoryNames(),
	})
}

// HandleDiagOpenAI performs a live round-trip to OpenAI for sanity-checking.
//
//	GET /api/diag/openai
func (h *Handlers) HandleDiagOpenAI(w http.ResponseWriter, r *http.Request) {
	h.diagProvider(w, r, h.openAI, "Missing OPENAI_API_KEY")
}

// HandleDiagGemini performs a live round-trip to Gemini for sanity-checking.
//
//	GET /api/diag/gemini
func (h *Handlers) HandleDiagGemini(w http.ResponseWriter, r *http.Request) {
	h.diagProvider(w, r, h.gemini, "Missing GEMINI_API_KEY")
}

func (h *Handlers) diagProvider(w http.ResponseWriter, r *http.Request, provider copilot.Provider, missingMsg string) {
	if provider == nil || isNilProvider(provider) {
		respondError(w, http.StatusBadRequest, missingMsg)
		return
	}
	text, err := provider.Complete(r.Context(), "", "Reply with: OK")
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "text": text})
}

// isNilProvider guards against typed-nil interface values from the optional
// client fields.
func isNilProvider(p copilot.Provider) bool {
	switch v := p.(type) {
	case *copilot.OpenAIClient:
		return v == nil
	case *copilot.GeminiClient:
		return v == nil
	default:
		return false
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
