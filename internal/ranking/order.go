package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mwiater/frameworkstats/internal/frameworks"
	"github.com/mwiater/frameworkstats/internal/logging"
	"github.com/mwiater/frameworkstats/internal/util"
)

// NormalizeOrder drops unknown and repeated ids and appends every missing
// framework in canonical order. An order with no valid ids becomes the
// canonical order.
func NormalizeOrder(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(frameworks.IDs()))
	for _, id := range ids {
		if !frameworks.IsValid(id) || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range frameworks.IDs() {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// LoadOrder reads the saved display order. A missing or unreadable file
// yields the canonical order.
func LoadOrder(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.LogWarn("Could not read framework order %s: %v", path, err)
		}
		return frameworks.IDs()
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		logging.LogWarn("Error parsing saved framework order %s: %v", path, err)
		return frameworks.IDs()
	}
	return NormalizeOrder(ids)
}

// SaveOrder persists ids as the display order. Unknown ids are rejected.
func SaveOrder(path string, ids []string) ([]string, error) {
	for _, id := range ids {
		if !frameworks.IsValid(id) {
			return nil, fmt.Errorf("unknown framework %q", id)
		}
	}
	order := NormalizeOrder(ids)
	data, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := util.WriteFile(path, append(data, '\n')); err != nil {
		return nil, fmt.Errorf("save framework order: %w", err)
	}
	return order, nil
}

// ResetOrder removes the saved display order.
func ResetOrder(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reset framework order: %w", err)
	}
	return nil
}
