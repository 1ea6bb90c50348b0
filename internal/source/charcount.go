package source

import (
	"regexp"
	"slices"
)

var (
	lineComment  = regexp.MustCompile(`//.*`)
	htmlComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Language maps an implementation file extension to the language name used
// for comment stripping and prompt code fences.
func Language(ext string) string {
	switch normalizeExt(ext) {
	case ".tsx", ".ts":
		return "typescript"
	case ".jsx":
		return "jsx"
	case ".js":
		return "javascript"
	case ".vue":
		return "vue"
	case ".svelte":
		return "svelte"
	case ".astro", ".html":
		return "html"
	default:
		return "text"
	}
}

// CharacterCount returns the length of code after removing comments and
// whitespace, using the comment syntaxes valid for lang. A JSX comment
// `{/* ... */}` loses only its block comment, so its braces still count.
func CharacterCount(code, lang string) int {
	clean := code
	if slices.Contains([]string{"vue", "typescript", "javascript", "jsx"}, lang) {
		clean = lineComment.ReplaceAllString(clean, "")
	}
	if slices.Contains([]string{"html", "vue"}, lang) {
		clean = htmlComment.ReplaceAllString(clean, "")
	}
	clean = blockComment.ReplaceAllString(clean, "")
	clean = whitespace.ReplaceAllString(clean, "")
	return len([]rune(clean))
}

// CharacterCount returns the comment- and whitespace-free length of the implementation.
func (i Implementation) CharacterCount() int {
	return CharacterCount(i.Source, Language(i.Extension))
}
