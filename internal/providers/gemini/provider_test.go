package gemini

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/providers"
)

type fakeGenerator struct {
	model  string
	config *genai.GenerateContentConfig
	prompt string
	reply  string
	err    error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.reply}}},
		}},
	}, nil
}

func TestCompleteWithSchema(t *testing.T) {
	gen := &fakeGenerator{reply: ` {"scores":{"react":40}} `}
	p := &Provider{models: gen, model: "gemini-2.0-flash"}

	schema := map[string]any{
		"type":     "object",
		"required": []string{"scores"},
		"properties": map[string]any{
			"scores": map[string]any{
				"type":     "object",
				"required": []any{"react"},
				"properties": map[string]any{
					"react": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				},
			},
		},
	}
	got, err := p.Complete(context.Background(), providers.CompletionRequest{Prompt: "score these", Schema: schema})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"scores":{"react":40}}` {
		t.Fatalf("unexpected reply %q", got)
	}
	if gen.model != "gemini-2.0-flash" || gen.prompt != "score these" {
		t.Fatalf("unexpected request: model=%s prompt=%s", gen.model, gen.prompt)
	}
	if gen.config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected JSON mime type, got %q", gen.config.ResponseMIMEType)
	}
	react := gen.config.ResponseSchema.Properties["scores"].Properties["react"]
	if react.Type != genai.TypeInteger || react.Minimum == nil || *react.Maximum != 100 {
		t.Fatalf("unexpected react schema: %+v", react)
	}
	if len(gen.config.ResponseSchema.Properties["scores"].Required) != 1 {
		t.Fatalf("expected required react key: %+v", gen.config.ResponseSchema.Properties["scores"])
	}
}

func TestCompleteEmptyAndError(t *testing.T) {
	p := &Provider{models: &fakeGenerator{reply: "  "}, model: "m"}
	if _, err := p.Complete(context.Background(), providers.CompletionRequest{Prompt: "x"}); !errors.Is(err, providers.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}

	boom := errors.New("quota exceeded")
	p = &Provider{models: &fakeGenerator{err: boom}, model: "m"}
	if _, err := p.Complete(context.Background(), providers.CompletionRequest{Prompt: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestConvertSchemaRejectsUnknownType(t *testing.T) {
	if _, err := convertSchema(map[string]any{"type": "tuple"}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("FRAMEWORKSTATS_TEST_KEY", "")
	cfg := &appconfig.Config{APIKeyEnv: "FRAMEWORKSTATS_TEST_KEY"}
	if _, err := New(context.Background(), cfg); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
