package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/magnusgp/fermatter/common/id"
	"github.com/magnusgp/fermatter/internal/model"
)

// Rule scans the paragraph sequence and emits zero or more observations.
// Rules are pure and independent; RunRules concatenates their output in the
// fixed registration order, never interleaved or re-sorted.
type Rule func(paragraphs []string) []model.Observation

var heuristicRules = []Rule{
	checkLongParagraphs,
	checkMissingEvidence,
	checkUnclearClaims,
}

// RunRules applies every heuristic rule in order and concatenates the
// results. A single paragraph may be flagged by multiple rules.
func RunRules(paragraphs []string) []model.Observation {
	observations := []model.Observation{}
	for _, rule := range heuristicRules {
		observations = append(observations, rule(paragraphs)...)
	}
	return observations
}

const longParagraphWords = 150

func checkLongParagraphs(paragraphs []string) []model.Observation {
	var observations []model.Observation
	for idx, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) <= longParagraphWords {
			continue
		}

		anchorWords := words
		if len(anchorWords) > 6 {
			anchorWords = anchorWords[:6]
		}

		observations = append(observations, model.Observation{
			ID:         id.NewString(),
			Type:       model.ObservationStructure,
			Severity:   3,
			Paragraph:  idx,
			AnchorText: strings.Join(anchorWords, " ") + "…",
			Title:      "Long paragraph",
			Note:       fmt.Sprintf("This paragraph has %d words. Consider breaking it into smaller chunks for readability.", len(words)),
			Question:   "Could this paragraph be split into more focused sections?",
		})
	}
	return observations
}

var (
	claimPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(clearly|obviously|everyone knows|it is known)\b`),
		regexp.MustCompile(`\b(always|never|all|none|every)\b.*\b(are|is|will|do)\b`),
	}

	evidenceCues = []string{
		"because",
		"since",
		"therefore",
		"research shows",
		"according to",
		"study",
		"evidence",
		"data",
		"found that",
	}
)

func checkMissingEvidence(paragraphs []string) []model.Observation {
	var observations []model.Observation
	for idx, para := range paragraphs {
		lower := strings.ToLower(para)

		var claimMatch []int
		for _, pattern := range claimPatterns {
			if loc := pattern.FindStringIndex(lower); loc != nil {
				claimMatch = loc
				break
			}
		}
		if claimMatch == nil {
			continue
		}

		hasEvidence := false
		for _, cue := range evidenceCues {
			if strings.Contains(lower, cue) {
				hasEvidence = true
				break
			}
		}
		if hasEvidence {
			continue
		}

		observations = append(observations, model.Observation{
			ID:         id.NewString(),
			Type:       model.ObservationMissingEvidence,
			Severity:   3,
			Paragraph:  idx,
			AnchorText: anchorWindow(para, claimMatch[0], 10, 20),
			Title:      "Unsupported claim",
			Note:       "This paragraph contains strong claims without apparent supporting evidence.",
			Question:   "What evidence or reasoning supports this claim?",
		})
	}
	return observations
}

var vaguePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(things|stuff|something|somehow|somewhat)\b`),
	regexp.MustCompile(`\b(very|really|quite|rather)\s+(good|bad|important|interesting)\b`),
	regexp.MustCompile(`\b(etc|and so on|and so forth)\b`),
}

func checkUnclearClaims(paragraphs []string) []model.Observation {
	var observations []model.Observation
	for idx, para := range paragraphs {
		lower := strings.ToLower(para)

		// First matching pattern wins; at most one observation per
		// paragraph for this rule.
		for _, pattern := range vaguePatterns {
			loc := pattern.FindStringIndex(lower)
			if loc == nil {
				continue
			}

			observations = append(observations, model.Observation{
				ID:         id.NewString(),
				Type:       model.ObservationUnclearClaim,
				Severity:   2,
				Paragraph:  idx,
				AnchorText: anchorWindow(para, loc[0], 10, 20),
				Title:      "Vague language",
				Note:       "This paragraph contains vague language that could be more specific.",
				Question:   "Can you be more specific about what you mean here?",
			})
			break
		}
	}
	return observations
}

// anchorWindow extracts a short quote around a match position so the caller
// can locate the flagged span in the original paragraph.
func anchorWindow(para string, at, before, after int) string {
	start := at - before
	if start < 0 {
		start = 0
	}
	end := at + after
	if end > len(para) {
		end = len(para)
	}
	return strings.TrimSpace(para[start:end])
}
