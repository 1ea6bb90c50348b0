// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/frameworkstats/internal/frameworks"
	"github.com/mwiater/frameworkstats/internal/source"
	"github.com/mwiater/frameworkstats/internal/stats"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"

	defaultImplementationsDir  = "src/components"
	defaultPreviewURL          = "http://localhost:4321/test"
	defaultStatsFile           = "src/data/framework-stats.json"
	defaultOrderFile           = "src/data/framework-order.json"
	defaultIterations          = 5
	defaultBundleSizePrecision = 2
	defaultMaxRetries          = 3
	defaultRetryBackoff        = 1000 * time.Millisecond
	defaultMaxRenderTime       = 10000 * time.Millisecond
	defaultReadyFlag           = "__frameworkReady"
	defaultReadyTimeout        = 1000 * time.Millisecond
	defaultNavigationTimeout   = 30 * time.Second
	defaultNetworkIdle         = 500 * time.Millisecond
	defaultRequestTimeout      = 120 * time.Second
	defaultProvider            = "gemini"
	defaultModel               = "gemini-2.0-flash"
	defaultOllamaModel         = "llama3.2"
	defaultOllamaURL           = "http://localhost:11434"
	defaultAPIKeyEnv           = "GEMINI_API_KEY"
	defaultLogFile             = "frameworkstats.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Frameworks          []string `json:"frameworks" mapstructure:"frameworks"`
	ImplementationsDir  string   `json:"implementationsDir" mapstructure:"implementationsDir"`
	SupportedExtensions []string `json:"supportedExtensions" mapstructure:"supportedExtensions"`
	PreviewURL          string   `json:"previewURL" mapstructure:"previewURL"`
	StatsFile           string   `json:"statsFile" mapstructure:"statsFile"`
	FlatOutput          bool     `json:"flatOutput" mapstructure:"flatOutput"`
	OrderFile           string   `json:"orderFile" mapstructure:"orderFile"`
	Metrics             []string `json:"metrics,omitempty" mapstructure:"metrics"`

	BundleSizeIterations   int  `json:"bundleSizeIterations" mapstructure:"bundleSizeIterations"`
	RenderTimeIterations   int  `json:"renderTimeIterations" mapstructure:"renderTimeIterations"`
	ComplexityRounds       int  `json:"complexityRounds" mapstructure:"complexityRounds"`
	BundleSizePrecision    *int `json:"bundleSizePrecision,omitempty" mapstructure:"bundleSizePrecision"`
	UpdateComplexityScores bool `json:"updateComplexityScores" mapstructure:"updateComplexityScores"`

	// MaxRetries is the retry count after a failed attempt; unset means 3, 0 disables retries.
	MaxRetries        *int   `json:"maxRetries,omitempty" mapstructure:"maxRetries"`
	RetryBackoffMs    int    `json:"retryBackoffMs" mapstructure:"retryBackoffMs"`
	MaxRenderTimeMs   int    `json:"maxRenderTimeMs" mapstructure:"maxRenderTimeMs"`
	ReadyFlag         string `json:"readyFlag" mapstructure:"readyFlag"`
	ReadyTimeoutMs    int    `json:"readyTimeoutMs" mapstructure:"readyTimeoutMs"`
	NavigationTimeout int    `json:"navigationTimeout" mapstructure:"navigationTimeout"`
	NetworkIdleMs     int    `json:"networkIdleMs" mapstructure:"networkIdleMs"`
	Headless          *bool  `json:"headless,omitempty" mapstructure:"headless"`
	ChromePath        string `json:"chromePath,omitempty" mapstructure:"chromePath"`

	Provider       string `json:"provider" mapstructure:"provider"`
	Model          string `json:"model" mapstructure:"model"`
	OllamaURL      string `json:"ollamaURL,omitempty" mapstructure:"ollamaURL"`
	RequestTimeout int    `json:"requestTimeout,omitempty" mapstructure:"requestTimeout"`
	APIKeyEnv      string `json:"apiKeyEnv,omitempty" mapstructure:"apiKeyEnv"`

	Debug      bool   `json:"debug" mapstructure:"debug"`
	LogFile    string `json:"logFile,omitempty" mapstructure:"logFile"`
	ConfigPath string `json:"-" mapstructure:"-"`
}

// FrameworkIDs returns the configured cohort, or the canonical ordering when none is set.
func (c Config) FrameworkIDs() ([]string, error) {
	return frameworks.Resolve(c.Frameworks)
}

// Extensions returns the implementation file suffixes to try, in order.
func (c Config) Extensions() []string {
	if len(c.SupportedExtensions) == 0 {
		return source.DefaultExtensions
	}
	return c.SupportedExtensions
}

// ImplementationsPath returns the directory holding `<id>Container<ext>` files.
func (c Config) ImplementationsPath() string {
	return orDefault(c.ImplementationsDir, defaultImplementationsDir)
}

// PreviewBaseURL returns the base URL of the per-framework demo routes without a trailing slash.
func (c Config) PreviewBaseURL() string {
	return strings.TrimRight(orDefault(c.PreviewURL, defaultPreviewURL), "/")
}

// StatsFilePath returns the path of the statistics artifact.
func (c Config) StatsFilePath() string {
	return orDefault(c.StatsFile, defaultStatsFile)
}

// OrderFilePath returns the path of the persisted framework display order.
func (c Config) OrderFilePath() string {
	return orDefault(c.OrderFile, defaultOrderFile)
}

// BundleSizeRuns returns how many harness samples feed the bundle size median.
func (c Config) BundleSizeRuns() int {
	return positiveOr(c.BundleSizeIterations, defaultIterations)
}

// RenderTimeRuns returns how many harness samples feed the render time median.
func (c Config) RenderTimeRuns() int {
	return positiveOr(c.RenderTimeIterations, defaultIterations)
}

// ComplexityRoundCount returns how many batched scoring rounds feed the complexity median.
func (c Config) ComplexityRoundCount() int {
	return positiveOr(c.ComplexityRounds, defaultIterations)
}

// Precision returns the number of decimal places kept for bundle sizes.
func (c Config) Precision() int {
	if c.BundleSizePrecision == nil || *c.BundleSizePrecision < 0 {
		return defaultBundleSizePrecision
	}
	return *c.BundleSizePrecision
}

// RetryAttempts returns the number of retries after a failed measurement attempt.
func (c Config) RetryAttempts() int {
	if c.MaxRetries == nil {
		return defaultMaxRetries
	}
	if *c.MaxRetries < 0 {
		return 0
	}
	return *c.MaxRetries
}

// RetryBackoff returns the base delay of the exponential backoff between attempts.
func (c Config) RetryBackoff() time.Duration {
	return millisOr(c.RetryBackoffMs, defaultRetryBackoff)
}

// MaxRenderTime returns the largest render time accepted as a valid sample.
func (c Config) MaxRenderTime() time.Duration {
	return millisOr(c.MaxRenderTimeMs, defaultMaxRenderTime)
}

// ReadyFlagName returns the global the harness polls to detect a rendered widget.
func (c Config) ReadyFlagName() string {
	return orDefault(c.ReadyFlag, defaultReadyFlag)
}

// ReadyTimeout returns how long the harness polls for the readiness flag.
func (c Config) ReadyTimeout() time.Duration {
	return millisOr(c.ReadyTimeoutMs, defaultReadyTimeout)
}

// NavigationTimeoutDuration returns the bound on a single navigation including network idle.
func (c Config) NavigationTimeoutDuration() time.Duration {
	if c.NavigationTimeout <= 0 {
		return defaultNavigationTimeout
	}
	return time.Duration(c.NavigationTimeout) * time.Second
}

// NetworkIdle returns the quiet window that counts as network idle.
func (c Config) NetworkIdle() time.Duration {
	return millisOr(c.NetworkIdleMs, defaultNetworkIdle)
}

// HeadlessEnabled reports whether the browser runs headless (default true).
func (c Config) HeadlessEnabled() bool {
	return c.Headless == nil || *c.Headless
}

// ProviderName returns the configured completion backend.
func (c Config) ProviderName() string {
	return strings.ToLower(orDefault(c.Provider, defaultProvider))
}

// ModelName returns the model used for complexity scoring. The default
// depends on the provider.
func (c Config) ModelName() string {
	if c.ProviderName() == "ollama" {
		return orDefault(c.Model, defaultOllamaModel)
	}
	return orDefault(c.Model, defaultModel)
}

// OllamaBaseURL returns the Ollama endpoint used by the ollama provider.
func (c Config) OllamaBaseURL() string {
	return strings.TrimRight(orDefault(c.OllamaURL, defaultOllamaURL), "/")
}

// RequestTimeoutDuration returns the timeout for a single model request.
func (c Config) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// APIKeyEnvName returns the environment variable holding the Gemini API key.
func (c Config) APIKeyEnvName() string {
	return orDefault(c.APIKeyEnv, defaultAPIKeyEnv)
}

// APIKey returns the Gemini API key from the environment.
func (c Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.APIKeyEnvName()))
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	return orDefault(c.LogFile, defaultLogFile)
}

// Validate reports configuration values that would make a run meaningless.
func (c Config) Validate() error {
	var problems []string
	if _, err := c.FrameworkIDs(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := stats.MetricsByName(c.Metrics); err != nil {
		problems = append(problems, err.Error())
	}
	for name, v := range map[string]int{
		"bundleSizeIterations": c.BundleSizeIterations,
		"renderTimeIterations": c.RenderTimeIterations,
		"complexityRounds":     c.ComplexityRounds,
	} {
		if v < 0 {
			problems = append(problems, fmt.Sprintf("%s must not be negative", name))
		}
	}
	switch c.ProviderName() {
	case "gemini", "ollama":
	default:
		problems = append(problems, fmt.Sprintf("unsupported provider %q", c.Provider))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func millisOr(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
