// Package frameworks holds the fixed registry of compared nested-checkbox
// implementations and their canonical display ordering.
package frameworks

import (
	"fmt"
	"strings"
)

// ID is the stable key naming one implementation variant (e.g. "vue", "cssOnly").
type ID = string

// Framework describes a single registered implementation.
type Framework struct {
	ID          ID
	DisplayName string
	// ClientFramework names the hydration runtime, or "" for script-only variants.
	ClientFramework string
}

var registry = []Framework{
	{ID: "vanillajs", DisplayName: "Vanilla JS"},
	{ID: "alpine", DisplayName: "Alpine.js"},
	{ID: "vue", DisplayName: "Vue", ClientFramework: "vue"},
	{ID: "react", DisplayName: "React", ClientFramework: "react"},
	{ID: "svelte", DisplayName: "Svelte", ClientFramework: "svelte"},
	{ID: "hyperscript", DisplayName: "Hyperscript"},
	{ID: "cssOnly", DisplayName: "CSS Only"},
	{ID: "jquery", DisplayName: "jQuery"},
	{ID: "stimulus", DisplayName: "Stimulus"},
}

// All returns every registered framework in canonical order.
func All() []Framework {
	out := make([]Framework, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the canonical default ordering of framework ids.
func IDs() []ID {
	ids := make([]ID, len(registry))
	for i, fw := range registry {
		ids[i] = fw.ID
	}
	return ids
}

// IsValid reports whether id names a registered framework.
func IsValid(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Lookup returns the registered framework for id.
func Lookup(id string) (Framework, bool) {
	for _, fw := range registry {
		if fw.ID == id {
			return fw, true
		}
	}
	return Framework{}, false
}

// DisplayName returns the human readable name for id, falling back to the id itself.
func DisplayName(id string) string {
	if fw, ok := Lookup(id); ok {
		return fw.DisplayName
	}
	return id
}

// Resolve validates a configured id list. An empty list yields the canonical
// ordering; duplicates are dropped, unknown ids are an error.
func Resolve(ids []string) ([]ID, error) {
	if len(ids) == 0 {
		return IDs(), nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]ID, 0, len(ids))
	var unknown []string
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" || seen[id] {
			continue
		}
		if !IsValid(id) {
			unknown = append(unknown, id)
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown framework ids: %s", strings.Join(unknown, ", "))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no frameworks configured")
	}
	return out, nil
}
