// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad verifies that a valid file loads with defaults applied, and that
// invalid JSON, unknown frameworks and missing files are rejected.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
        "frameworks": ["react", "vue"],
        "bundleSizeIterations": 3,
        "updateComplexityScores": true
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	ids, err := cfg.FrameworkIDs()
	if err != nil || len(ids) != 2 {
		t.Fatalf("expected 2 frameworks, got %v (%v)", ids, err)
	}
	if cfg.BundleSizeRuns() != 3 {
		t.Fatalf("expected 3 bundle size runs, got %d", cfg.BundleSizeRuns())
	}
	if cfg.RenderTimeRuns() != 5 || cfg.ComplexityRoundCount() != 5 {
		t.Fatalf("expected default iteration counts, got %d/%d", cfg.RenderTimeRuns(), cfg.ComplexityRoundCount())
	}
	if !cfg.UpdateComplexityScores {
		t.Fatal("expected updateComplexityScores to be true")
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.ConfigPath)
	}

	noRetry, err := Load(writeConfig(t, `{ "maxRetries": 0 }`))
	if err != nil {
		t.Fatalf("Load() with maxRetries 0 failed: %v", err)
	}
	if noRetry.RetryAttempts() != 0 {
		t.Fatalf("expected maxRetries 0 to disable retries, got %d", noRetry.RetryAttempts())
	}

	if _, err := Load(writeConfig(t, `{ "frameworks": [`)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}
	if _, err := Load(writeConfig(t, `{ "frameworks": ["angular"] }`)); err == nil {
		t.Fatal("Load() with unknown framework should have failed")
	}
	if _, err := Load(writeConfig(t, `{ "metrics": ["memory"] }`)); err == nil {
		t.Fatal("Load() with unknown metric should have failed")
	}
	if _, err := Load(writeConfig(t, `{ "provider": "openai" }`)); err == nil {
		t.Fatal("Load() with unsupported provider should have failed")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.json")); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config

	if cfg.MaxRenderTime() != 10*time.Second {
		t.Fatalf("expected default max render time of 10s, got %v", cfg.MaxRenderTime())
	}
	if cfg.RetryAttempts() != 3 {
		t.Fatalf("expected default retry attempts of 3, got %d", cfg.RetryAttempts())
	}
	if cfg.RetryBackoff() != time.Second {
		t.Fatalf("expected default backoff of 1s, got %v", cfg.RetryBackoff())
	}
	if cfg.Precision() != 2 {
		t.Fatalf("expected default precision of 2, got %d", cfg.Precision())
	}
	if !cfg.HeadlessEnabled() {
		t.Fatal("expected headless by default")
	}
	if cfg.PreviewBaseURL() != "http://localhost:4321/test" {
		t.Fatalf("unexpected preview url %q", cfg.PreviewBaseURL())
	}
	if got := cfg.Extensions(); len(got) != 5 || got[0] != ".tsx" {
		t.Fatalf("unexpected default extensions %v", got)
	}
	if cfg.ProviderName() != "gemini" || cfg.ModelName() != "gemini-2.0-flash" {
		t.Fatalf("unexpected provider defaults %s/%s", cfg.ProviderName(), cfg.ModelName())
	}

	if local := (Config{Provider: "Ollama"}); local.ModelName() != "llama3.2" {
		t.Fatalf("expected ollama default model, got %s", local.ModelName())
	}
	if pinned := (Config{Provider: "ollama", Model: "qwen3"}); pinned.ModelName() != "qwen3" {
		t.Fatalf("expected configured model, got %s", pinned.ModelName())
	}

	zero := 0
	noRetry := Config{MaxRetries: &zero, BundleSizePrecision: &zero, PreviewURL: "http://example.test/demo/"}
	if noRetry.RetryAttempts() != 0 {
		t.Fatalf("expected maxRetries 0 to disable retries, got %d", noRetry.RetryAttempts())
	}
	negative := -1
	if got := (Config{MaxRetries: &negative}).RetryAttempts(); got != 0 {
		t.Fatalf("expected negative maxRetries to disable retries, got %d", got)
	}
	if noRetry.Precision() != 0 {
		t.Fatalf("expected explicit precision 0, got %d", noRetry.Precision())
	}
	if noRetry.PreviewBaseURL() != "http://example.test/demo" {
		t.Fatalf("expected trailing slash trimmed, got %q", noRetry.PreviewBaseURL())
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", &Config{Provider: "ollama"})
	out := buf.String()
	for _, want := range []string{"No config file loaded", "Provider:                 ollama", "Model:                    llama3.2", "Ollama URL:", "vanillajs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
