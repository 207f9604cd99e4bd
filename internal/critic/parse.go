package critic

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"

	"github.com/magnusgp/fermatter/common/id"
	"github.com/magnusgp/fermatter/internal/model"
)

// parseResponse extracts the raw observation list from a model response
// body. Accepts either {"observations": [...]} or a bare array, with or
// without surrounding markdown code fences. Returns false when the body is
// not parseable structured data.
func parseResponse(content string) ([]map[string]any, bool) {
	cleaned := stripCodeFences(strings.TrimSpace(content))

	var wrapper struct {
		Observations []map[string]any `json:"observations"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil && wrapper.Observations != nil {
		return wrapper.Observations, true
	}

	var bare []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &bare); err == nil {
		return bare, true
	}

	return nil, false
}

func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// sanitizeObservations converts raw items into validated observations.
// Model output is never trusted: every field is coerced or clamped, a fresh
// local id is always assigned, and individually malformed items are skipped
// without failing the batch.
func sanitizeObservations(ctx context.Context, raw []map[string]any, paragraphCount int) []model.Observation {
	observations := make([]model.Observation, 0, len(raw))

	for i, item := range raw {
		if item == nil {
			slog.WarnContext(ctx, "skipping malformed observation", "index", i)
			continue
		}
		observations = append(observations, sanitizeObservation(item, paragraphCount))
	}

	return observations
}

func sanitizeObservation(raw map[string]any, paragraphCount int) model.Observation {
	obsType := model.ParseObservationType(stringField(raw, "type"))

	paraIdx, ok := intField(raw, "paragraph")
	if !ok || paraIdx < 0 {
		paraIdx = 0
	}
	if paraIdx >= paragraphCount {
		paraIdx = paragraphCount - 1
		if paraIdx < 0 {
			paraIdx = 0
		}
	}

	severity, ok := intField(raw, "severity")
	if !ok {
		severity = 2
	}
	if severity < 1 {
		severity = 1
	}
	if severity > 5 {
		severity = 5
	}

	title := stringField(raw, "title")
	if title == "" {
		title = "Observation"
	}

	return model.Observation{
		ID:         id.NewString(),
		Type:       obsType,
		Severity:   severity,
		Paragraph:  paraIdx,
		AnchorText: stringField(raw, "anchor_text"),
		Title:      title,
		Note:       stringField(raw, "note"),
		Question:   stringField(raw, "question"),
		SourceIDs:  stringListField(raw, "source_ids"),
	}
}

func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// intField returns the value at key as an int. JSON numbers decode as
// float64; only whole numbers qualify as integers.
func intField(raw map[string]any, key string) (int, bool) {
	f, ok := raw[key].(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func stringListField(raw map[string]any, key string) []string {
	items, ok := raw[key].([]any)
	if !ok {
		return []string{}
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}
