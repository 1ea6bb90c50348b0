package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestReadFallsThroughToLaterExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reactContainer.jsx", "export default () => null;")

	r := NewReader(dir, []string{".tsx", ".jsx"})
	impl, err := r.Read("react")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if impl.Source != "export default () => null;" {
		t.Fatalf("unexpected source: %q", impl.Source)
	}
	if impl.Extension != ".jsx" || filepath.Base(impl.Path) != "reactContainer.jsx" {
		t.Fatalf("unexpected implementation: %+v", impl)
	}
}

func TestReadPrefersEarlierExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vueContainer.astro", "astro")
	writeFile(t, dir, "vueContainer.vue", "vue")

	impl, err := NewReader(dir, nil).Read("vue")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if impl.Source != "astro" {
		t.Fatalf("expected .astro to win over .vue, got %q", impl.Source)
	}
}

func TestReadNotFoundNamesFramework(t *testing.T) {
	r := NewReader(t.TempDir(), []string{".tsx", ".jsx"})
	_, err := r.Read("svelte")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "svelte" {
		t.Fatalf("expected NotFoundError naming svelte, got %v", err)
	}
	if !strings.Contains(err.Error(), "svelte") || len(nf.Tried) != 2 {
		t.Fatalf("unexpected error: %v (%v)", err, nf.Tried)
	}
}

func TestReadPropagatesOtherErrors(t *testing.T) {
	r := NewReader("impl", []string{".tsx", ".jsx"})
	boom := errors.New("permission denied")
	r.readFile = func(string) ([]byte, error) { return nil, boom }

	_, err := r.Read("react")
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error to propagate, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("read error should not be reported as not found")
	}
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reactContainer.tsx", "react")
	writeFile(t, dir, "vueContainer.vue", "vue")

	impls, err := NewReader(dir, nil).ReadAll([]string{"react", "vue"})
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if impls["react"].Source != "react" || impls["vue"].Source != "vue" {
		t.Fatalf("unexpected implementations: %+v", impls)
	}

	if _, err := NewReader(dir, nil).ReadAll([]string{"react", "alpine"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
