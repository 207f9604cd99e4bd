// Package analysis implements the feedback pipeline: paragraph segmentation,
// rewrite instability detection over snapshot sequences, the deterministic
// heuristic rules, and the orchestration policy that falls back from the
// external critic to the rules.
package analysis

import (
	"regexp"
	"strings"
)

var paragraphBoundary = regexp.MustCompile(`\n\s*\n`)

// SplitParagraphs splits text into non-empty paragraphs. Paragraphs are
// separated by one or more blank lines. The zero-based slice index is the
// paragraph's positional identity for this segmentation run.
func SplitParagraphs(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{}
	}

	pieces := paragraphBoundary.Split(trimmed, -1)
	paragraphs := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if p := strings.TrimSpace(piece); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
