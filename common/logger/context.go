package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment, so analysis internals
// never have to repeat request-level context in every log statement.
type LogFields struct {
	Mode           *string // Analysis mode (scientific/journalist/grandma)
	Scope          *string // "document" or "selection"
	ParagraphCount *int    // Paragraphs in the analyzed text
	SnapshotCount  *int    // Snapshots supplied for instability detection
	Component      string  // Component name (e.g., "fermatter.analysis.analyzer")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.Mode != nil {
		result.Mode = next.Mode
	}
	if next.Scope != nil {
		result.Scope = next.Scope
	}
	if next.ParagraphCount != nil {
		result.ParagraphCount = next.ParagraphCount
	}
	if next.SnapshotCount != nil {
		result.SnapshotCount = next.SnapshotCount
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{ParagraphCount: logger.Ptr(n)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if
// truncated. Useful for logging potentially long prompts or model output.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
