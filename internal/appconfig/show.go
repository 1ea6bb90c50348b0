package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the effective configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}
	if cfg == nil {
		cfg = &Config{}
	}

	ids, err := cfg.FrameworkIDs()
	frameworkList := strings.Join(ids, ", ")
	if err != nil {
		frameworkList = fmt.Sprintf("invalid (%v)", err)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:                    %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Frameworks:               %s\n", frameworkList)
	fmt.Fprintf(out, "  Implementations Dir:      %s\n", cfg.ImplementationsPath())
	fmt.Fprintf(out, "  Supported Extensions:     %s\n", strings.Join(cfg.Extensions(), " "))
	fmt.Fprintf(out, "  Preview URL:              %s\n", cfg.PreviewBaseURL())
	fmt.Fprintf(out, "  Stats File:               %s (flat: %v)\n", cfg.StatsFilePath(), cfg.FlatOutput)
	fmt.Fprintf(out, "  Order File:               %s\n", cfg.OrderFilePath())
	fmt.Fprintf(out, "  Bundle Size Iterations:   %d\n", cfg.BundleSizeRuns())
	fmt.Fprintf(out, "  Render Time Iterations:   %d\n", cfg.RenderTimeRuns())
	fmt.Fprintf(out, "  Bundle Size Precision:    %d\n", cfg.Precision())
	fmt.Fprintf(out, "  Update Complexity Scores: %v\n", cfg.UpdateComplexityScores)
	fmt.Fprintf(out, "  Complexity Rounds:        %d\n", cfg.ComplexityRoundCount())
	fmt.Fprintf(out, "  Max Retries:              %d (backoff %s)\n", cfg.RetryAttempts(), cfg.RetryBackoff())
	fmt.Fprintf(out, "  Max Render Time:          %s\n", cfg.MaxRenderTime())
	fmt.Fprintf(out, "  Navigation Timeout:       %s (network idle %s)\n", cfg.NavigationTimeoutDuration(), cfg.NetworkIdle())
	fmt.Fprintf(out, "  Ready Flag:               %s (timeout %s)\n", cfg.ReadyFlagName(), cfg.ReadyTimeout())
	fmt.Fprintf(out, "  Headless:                 %v\n", cfg.HeadlessEnabled())
	fmt.Fprintf(out, "  Provider:                 %s\n", cfg.ProviderName())
	fmt.Fprintf(out, "  Model:                    %s\n", cfg.ModelName())
	if cfg.ProviderName() == "ollama" {
		fmt.Fprintf(out, "  Ollama URL:               %s\n", cfg.OllamaBaseURL())
	} else {
		keyState := "missing"
		if cfg.APIKey() != "" {
			keyState = "set"
		}
		fmt.Fprintf(out, "  API Key (%s): %s\n", cfg.APIKeyEnvName(), keyState)
	}
	fmt.Fprintf(out, "  Log File:                 %s\n", cfg.LogFilePath())
}
