// Package gemini provides a Completer backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/logging"
	"github.com/mwiater/frameworkstats/internal/providers"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini: missing API key")

// generator is the subset of the genai models service used by Provider.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider implements providers.Completer using google.golang.org/genai.
type Provider struct {
	models  generator
	model   string
	timeout time.Duration
}

// New constructs a Provider using the API key named by the configuration.
func New(ctx context.Context, cfg *appconfig.Config) (*Provider, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, cfg.APIKeyEnvName())
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Provider{models: client.Models, model: cfg.ModelName(), timeout: cfg.RequestTimeoutDuration()}, nil
}

// Name implements providers.Completer.
func (p *Provider) Name() string { return "gemini" }

// Complete sends the prompt as a single user turn. A schema switches the
// response to JSON mode with the schema as the response constraint.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	config := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		schema, err := convertSchema(req.Schema)
		if err != nil {
			return "", fmt.Errorf("gemini: convert response schema: %w", err)
		}
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	logging.LogRequest("out", p.Name(), model, req.Prompt)
	resp, err := p.models.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	logging.LogRequest("in", p.Name(), model, text)
	if text == "" {
		return "", providers.ErrEmptyResponse
	}
	return text, nil
}

// Close implements providers.Completer. The genai client holds no resources
// that need explicit release.
func (p *Provider) Close() error { return nil }

// convertSchema maps the JSON schema subset used for structured replies
// (type, properties, required, minimum, maximum, items, description) onto
// genai.Schema. Unsupported keywords are ignored.
func convertSchema(doc map[string]any) (*genai.Schema, error) {
	s := &genai.Schema{}
	if t, ok := doc["type"].(string); ok {
		typ, err := schemaType(t)
		if err != nil {
			return nil, err
		}
		s.Type = typ
	}
	if d, ok := doc["description"].(string); ok {
		s.Description = d
	}
	if v, ok := number(doc["minimum"]); ok {
		s.Minimum = &v
	}
	if v, ok := number(doc["maximum"]); ok {
		s.Maximum = &v
	}
	if props, ok := doc["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q is not an object", name)
			}
			converted, err := convertSchema(child)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			s.Properties[name] = converted
		}
	}
	switch req := doc["required"].(type) {
	case []string:
		s.Required = append(s.Required, req...)
	case []any:
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	if len(s.Required) > 0 {
		s.PropertyOrdering = append([]string(nil), s.Required...)
	}
	if items, ok := doc["items"].(map[string]any); ok {
		converted, err := convertSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		s.Items = converted
	}
	return s, nil
}

func schemaType(t string) (genai.Type, error) {
	switch t {
	case "object":
		return genai.TypeObject, nil
	case "integer":
		return genai.TypeInteger, nil
	case "number":
		return genai.TypeNumber, nil
	case "string":
		return genai.TypeString, nil
	case "boolean":
		return genai.TypeBoolean, nil
	case "array":
		return genai.TypeArray, nil
	default:
		return "", fmt.Errorf("unsupported schema type %q", t)
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
