// Package gemini implements the LLM-backed slot extractor over Google's
// Gemini generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"awaaz/internal/config"
	"awaaz/internal/domain"
	"awaaz/internal/extractor"
	"awaaz/internal/schema"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Extractor implements port.SlotExtractor using the Gemini API.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// New creates a Gemini-backed slot extractor.
func New(cfg *config.ProviderConfig) *Extractor {
	return newExtractor(cfg, "")
}

// NewWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ProviderConfig, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// turnResponse models the JSON object the model is instructed to return.
// Only extracted_fields is consumed; the question flow stays deterministic.
type turnResponse struct {
	ExtractedFields map[string]string `json:"extracted_fields"`
	NextQuestion    string            `json:"next_question"`
	FilledFields    []string          `json:"filled_fields"`
	MissingFields   []string          `json:"missing_fields"`
}

func (e *Extractor) Extract(ctx context.Context, utterance string, record domain.FormRecord) (*domain.ExtractionResult, error) {
	prompt := extractor.TurnSystemPrompt + "\n\n" + extractor.BuildTurnMessage(utterance, record)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.3,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, extractor.NewRateLimitError("gemini", fmt.Errorf("status 429: %s", truncate(string(respBody), 200)), retryAfter)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody, record)
}

// geminiResponse models the Gemini API response envelope.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte, record domain.FormRecord) (*domain.ExtractionResult, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API: no parts")
	}

	text := resp.Candidates[0].Content.Parts[0].Text

	var parsed turnResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		// The model sometimes wraps its JSON in prose; salvage the object.
		salvaged, ok := extractor.SalvageJSONObject(text)
		if !ok {
			return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
		}
		if err := json.Unmarshal([]byte(salvaged), &parsed); err != nil {
			return nil, fmt.Errorf("parsing salvaged LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
		}
	}

	// Keep the extractor contract: known fields only, trimmed, non-empty,
	// and never a field the record already holds.
	values := map[string]string{}
	for field, value := range parsed.ExtractedFields {
		value = strings.TrimSpace(value)
		if value == "" || !schema.Known(field) || record.Filled(field) {
			continue
		}
		values[field] = value
	}

	return &domain.ExtractionResult{Values: values, RawEvidence: text}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
