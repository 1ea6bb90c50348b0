package source

import "testing"

func TestCharacterCount(t *testing.T) {
	cases := []struct {
		name string
		code string
		lang string
		want int
	}{
		{"whitespace only removed", "a b\n\tc", "text", 3},
		{"line comment", "x = 1; // set x\ny = 2;", "javascript", len("x=1;y=2;")},
		{"block comment", "a /* gone\n still gone */ b", "svelte", 2},
		{"html comment", "<div><!-- note --></div>", "html", len("<div></div>")},
		{"jsx comment keeps braces", "<p>{/* hidden */}</p>", "typescript", len("<p>{}</p>")},
		{"svelte comment keeps braces", "{/* a */}<b/>{/* b */}", "svelte", len("{}<b/>{}")},
		{"line comment kept for html", "<a>//x</a>", "html", len("<a>//x</a>")},
	}
	for _, tc := range cases {
		if got := CharacterCount(tc.code, tc.lang); got != tc.want {
			t.Fatalf("%s: CharacterCount = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestLanguage(t *testing.T) {
	cases := map[string]string{
		".tsx":    "typescript",
		"jsx":     "jsx",
		".vue":    "vue",
		".svelte": "svelte",
		".astro":  "html",
		".md":     "text",
	}
	for ext, want := range cases {
		if got := Language(ext); got != want {
			t.Fatalf("Language(%q) = %q, want %q", ext, got, want)
		}
	}
}

func TestImplementationCharacterCount(t *testing.T) {
	impl := Implementation{Extension: ".vue", Source: "<template><!-- c --><b/></template>"}
	if got := impl.CharacterCount(); got != len("<template><b/></template>") {
		t.Fatalf("CharacterCount = %d", got)
	}
}
