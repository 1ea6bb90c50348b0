// internal/providers/ollama/provider.go
// Package ollama provides a Completer backed by Ollama-compatible HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/logging"
	"github.com/mwiater/frameworkstats/internal/providers"
)

// Provider implements providers.Completer using the Ollama /api/generate endpoint.
type Provider struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeoutDuration()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL: cfg.OllamaBaseURL(),
		model:   cfg.ModelName(),
		timeout: timeout,
	}
}

// generateResponse defines the fields of a non-streaming /api/generate reply used here.
type generateResponse struct {
	Model         string `json:"model"`
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	TotalDuration int64  `json:"total_duration"`
	EvalCount     int    `json:"eval_count"`
}

// Name implements providers.Completer.
func (p *Provider) Name() string { return "ollama" }

// Complete issues a non-streaming generate request. A schema is passed as the
// structured output `format` and sampling temperature is pinned to zero.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	payload := map[string]any{
		"model":   model,
		"prompt":  req.Prompt,
		"stream":  false,
		"options": map[string]any{"temperature": 0},
	}
	if req.Schema != nil {
		payload["format"] = req.Schema
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	logging.LogRequest("out", p.Name(), model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama: generate: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("in", p.Name(), model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: /api/generate returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	text := strings.TrimSpace(result.Response)
	if text == "" {
		return "", providers.ErrEmptyResponse
	}
	return text, nil
}

// Close implements providers.Completer.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
