package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mwiater/frameworkstats/internal/util"
)

// Save writes f to path, replacing any previous file atomically. With flat
// set, only the framework mapping is written, without metadata.
func Save(path string, f *File, flat bool) error {
	if f == nil {
		return fmt.Errorf("nil stats file")
	}
	var payload any = f
	if flat {
		payload = f.Frameworks
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	data = append(data, '\n')
	if err := util.WriteFile(path, data); err != nil {
		return fmt.Errorf("write stats file %s: %w", path, err)
	}
	return nil
}

// Load reads a stats file in either the nested or the flat layout.
func Load(path string) (*File, error) {
	raw, err := readFrameworks(path)
	if err != nil {
		return nil, err
	}
	f := &File{Frameworks: make(map[string]FrameworkStats, len(raw.frameworks))}
	if raw.metadata != nil {
		if err := json.Unmarshal(raw.metadata, &f.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata in %s: %w", path, err)
		}
	}
	for id, msg := range raw.frameworks {
		var rec FrameworkStats
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, fmt.Errorf("decode %s stats in %s: %w", id, path, err)
		}
		f.Frameworks[id] = rec
	}
	return f, nil
}

// LoadComplexityScores returns the complexityScore of every framework in the
// file at path that carries the field. Frameworks without it are omitted.
func LoadComplexityScores(path string) (map[string]float64, error) {
	raw, err := readFrameworks(path)
	if err != nil {
		return nil, err
	}
	scores := make(map[string]float64, len(raw.frameworks))
	for id, msg := range raw.frameworks {
		var rec struct {
			ComplexityScore *float64 `json:"complexityScore"`
		}
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, fmt.Errorf("decode %s stats in %s: %w", id, path, err)
		}
		if rec.ComplexityScore != nil {
			scores[id] = *rec.ComplexityScore
		}
	}
	return scores, nil
}

type rawFile struct {
	metadata   json.RawMessage
	frameworks map[string]json.RawMessage
}

// readFrameworks detects the file layout: a nested file has an object under
// "frameworks"; anything else is treated as the flat id -> stats mapping.
func readFrameworks(path string) (*rawFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stats file %s: %w", path, err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode stats file %s: %w", path, err)
	}

	if nested, ok := top["frameworks"]; ok && isObject(nested) {
		var frameworks map[string]json.RawMessage
		if err := json.Unmarshal(nested, &frameworks); err != nil {
			return nil, fmt.Errorf("decode frameworks in %s: %w", path, err)
		}
		return &rawFile{metadata: top["metadata"], frameworks: frameworks}, nil
	}

	delete(top, "metadata")
	return &rawFile{frameworks: top}, nil
}

func isObject(msg json.RawMessage) bool {
	trimmed := bytes.TrimSpace(msg)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
