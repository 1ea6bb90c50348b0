// internal/providerfactory/factory.go
package providerfactory

import (
	"context"
	"fmt"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/logging"
	"github.com/mwiater/frameworkstats/internal/providers"
	"github.com/mwiater/frameworkstats/internal/providers/gemini"
	"github.com/mwiater/frameworkstats/internal/providers/ollama"
)

var newGemini = func(ctx context.Context, cfg *appconfig.Config) (providers.Completer, error) {
	return gemini.New(ctx, cfg)
}

// NewCompleter selects and configures the completion backend named by the
// application configuration.
func NewCompleter(ctx context.Context, cfg *appconfig.Config) (providers.Completer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}

	switch name := cfg.ProviderName(); name {
	case "gemini":
		provider, err := newGemini(ctx, cfg)
		if err != nil {
			logging.LogWarn("Gemini provider unavailable: %v", err)
			return nil, err
		}
		logging.LogDebug("Gemini provider ready: model %s", cfg.ModelName())
		return provider, nil
	case "ollama":
		logging.LogDebug("Ollama provider ready: %s model %s", cfg.OllamaBaseURL(), cfg.ModelName())
		return ollama.New(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", name)
	}
}
