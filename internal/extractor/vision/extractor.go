// Package vision implements the document-image field extractor over Google's
// Gemini generateContent REST API with inline image data.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"awaaz/internal/config"
	"awaaz/internal/domain"
	"awaaz/internal/extractor"
	"awaaz/internal/port"
	"awaaz/internal/schema"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Extractor implements port.DocumentExtractor using the Gemini vision API.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// New creates a Gemini-backed document extractor.
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
		timeout = 60 * time.Second
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

// documentResponse models the JSON object the model is instructed to return.
type documentResponse struct {
	ExtractedFields map[string]string `json:"extracted_fields"`
	RawText         string            `json:"raw_text"`
	Confidence      string            `json:"confidence"`
}

func (e *Extractor) Extract(ctx context.Context, input port.DocumentInput) (*port.DocumentOutput, error) {
	if !domain.AllowedImageTypes[input.ContentType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, input.ContentType)
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": extractor.DocumentPrompt},
					{
						"inline_data": map[string]interface{}{
							"mime_type": input.ContentType,
							"data":      base64.StdEncoding.EncodeToString(input.ImageBytes),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.1,
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
		return nil, extractor.NewRateLimitError("gemini-vision", fmt.Errorf("status 429"), retryAfter)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func parseResponse(body []byte) (*port.DocumentOutput, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	text := resp.Candidates[0].Content.Parts[0].Text

	var parsed documentResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		salvaged, ok := extractor.SalvageJSONObject(text)
		if !ok {
			return nil, fmt.Errorf("parsing vision JSON output: %w (raw: %s)", err, truncate(text, 500))
		}
		if err := json.Unmarshal([]byte(salvaged), &parsed); err != nil {
			return nil, fmt.Errorf("parsing salvaged vision JSON output: %w (raw: %s)", err, truncate(text, 500))
		}
	}

	// Unknown and empty fields are dropped silently; the caller merges the
	// rest under the usual fill-once rules.
	fields := map[string]string{}
	for field, value := range parsed.ExtractedFields {
		value = strings.TrimSpace(value)
		if value == "" || !schema.Known(field) {
			continue
		}
		fields[field] = value
	}

	confidence := domain.Confidence(strings.ToLower(strings.TrimSpace(parsed.Confidence)))
	switch confidence {
	case domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow:
	default:
		confidence = domain.ConfidenceLow
	}

	return &port.DocumentOutput{
		Fields:     fields,
		RawText:    parsed.RawText,
		Confidence: confidence,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
