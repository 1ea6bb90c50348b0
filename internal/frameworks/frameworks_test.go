package frameworks

import "testing"

func TestIDsCanonicalOrder(t *testing.T) {
	ids := IDs()
	if len(ids) != 9 {
		t.Fatalf("expected 9 frameworks, got %d", len(ids))
	}
	if ids[0] != "vanillajs" || ids[len(ids)-1] != "stimulus" {
		t.Fatalf("unexpected canonical order: %v", ids)
	}
}

func TestResolve(t *testing.T) {
	ids, err := Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve(nil): %v", err)
	}
	if len(ids) != len(IDs()) {
		t.Fatalf("expected canonical ids, got %v", ids)
	}

	ids, err = Resolve([]string{"react", " vue ", "react"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(ids) != 2 || ids[0] != "react" || ids[1] != "vue" {
		t.Fatalf("unexpected resolved ids: %v", ids)
	}

	if _, err := Resolve([]string{"react", "angular"}); err == nil {
		t.Fatal("expected error for unknown framework")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("cssOnly"); got != "CSS Only" {
		t.Fatalf("DisplayName(cssOnly) = %q", got)
	}
	if got := DisplayName("other"); got != "other" {
		t.Fatalf("DisplayName fallback = %q", got)
	}
}
