package complexity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mwiater/frameworkstats/internal/util"
)

// ErrMalformedResponse is returned when a model reply does not match the score schema.
var ErrMalformedResponse = errors.New("malformed complexity response")

// Result is the parsed model reply.
type Result struct {
	Scores map[string]int `json:"scores"`
}

// ResponseSchema returns the JSON schema a reply must satisfy: an object
// whose "scores" property maps exactly the given ids to integers in [0, 100].
func ResponseSchema(ids []string) map[string]any {
	props := make(map[string]any, len(ids))
	required := make([]any, 0, len(ids))
	for _, id := range ids {
		props[id] = map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": 100,
		}
		required = append(required, id)
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"scores"},
		"properties": map[string]any{
			"scores": map[string]any{
				"type":                 "object",
				"properties":           props,
				"required":             required,
				"additionalProperties": false,
			},
		},
	}
}

// ParseResponse validates raw against ResponseSchema(ids) and decodes it.
// Any mismatch is reported as ErrMalformedResponse.
func ParseResponse(raw string, ids []string) (Result, error) {
	body := stripCodeFence(raw)
	if !json.Valid([]byte(body)) {
		return Result{}, fmt.Errorf("%w: reply is not JSON: %q", ErrMalformedResponse, util.TruncateRunes(body, 200))
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(ResponseSchema(ids)),
		gojsonschema.NewStringLoader(body),
	)
	if err != nil {
		return Result{}, fmt.Errorf("%w: schema validation error: %v", ErrMalformedResponse, err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return Result{}, fmt.Errorf("%w: %s", ErrMalformedResponse, strings.Join(details, "; "))
	}

	// Decoded as float64: the schema accepts whole numbers written as 40.0.
	var decoded struct {
		Scores map[string]float64 `json:"scores"`
	}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	parsed := Result{Scores: make(map[string]int, len(decoded.Scores))}
	for id, v := range decoded.Scores {
		parsed.Scores[id] = int(v)
	}
	return parsed, nil
}

// stripCodeFence removes a surrounding markdown code fence some models add
// even in JSON mode.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
