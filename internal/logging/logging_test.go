package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func useConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := console
	console = &buf
	t.Cleanup(func() {
		console = prev
		_ = Close()
	})
	return &buf
}

func TestInitAndLoggingToFile(t *testing.T) {
	buf := useConsole(t)
	logPath := filepath.Join(t.TempDir(), "nested", "frameworkstats.log")

	if err := Init(logPath, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	LogEvent("hello %s", "world")
	LogWarn("careful %d", 3)
	LogDebug("hidden")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "careful 3") || !strings.Contains(content, "level=WARN") {
		t.Fatalf("expected LogWarn content, got: %s", content)
	}
	if strings.Contains(content, "hidden") {
		t.Fatalf("debug message logged without debug: %s", content)
	}
	if !strings.Contains(buf.String(), "hello world") {
		t.Fatalf("expected console output, got: %s", buf.String())
	}
}

func TestDebugLevel(t *testing.T) {
	buf := useConsole(t)
	if err := Init("", true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogDebug("visible %s", "now")
	if !strings.Contains(buf.String(), "visible now") {
		t.Fatalf("expected debug output, got: %s", buf.String())
	}
}

func TestLogRequest(t *testing.T) {
	buf := useConsole(t)
	if err := Init("", true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	LogRequest(" out ", "", "gemini-2.0-flash", map[string]any{"ok": true})
	out := buf.String()
	for _, want := range []string{"[OUT]", "unknown", "gemini-2.0-flash", ":true}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}
