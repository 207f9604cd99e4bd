package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/magnusgp/fermatter/common/id"
	"github.com/magnusgp/fermatter/internal/model"
)

const (
	// fingerprintWidth truncates the content hash; 16 hex chars is plenty
	// for positional comparison within a single document.
	fingerprintWidth = 16

	// unstableThreshold is the accumulated rewrite count at which a
	// paragraph position is reported as unstable.
	unstableThreshold = 2

	// highChurnCount is the rewrite count at which instability severity
	// steps up from 2 to 3.
	highChurnCount = 4
)

// Fingerprint computes a deterministic content fingerprint for a paragraph.
// Internal whitespace runs collapse to single spaces before hashing, so
// "a  b" and "a b" fingerprint identically.
func Fingerprint(paragraph string) string {
	normalized := strings.Join(strings.Fields(paragraph), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:fingerprintWidth]
}

// RewriteCounts maps paragraph index to accumulated rewrite count.
type RewriteCounts map[int]int

// At returns the count at idx, zero when absent.
func (rc RewriteCounts) At(idx int) int {
	return rc[idx]
}

// ComputeRewriteCounts compares consecutive snapshots position-by-position
// and counts content changes per paragraph index. Fewer than two snapshots
// yields no signal. A position present in only one of the two snapshots
// counts as a change.
func ComputeRewriteCounts(snapshots []model.Snapshot) RewriteCounts {
	counts := RewriteCounts{}
	if len(snapshots) < 2 {
		return counts
	}

	prev := fingerprints(snapshots[0].Text)
	for i := 1; i < len(snapshots); i++ {
		curr := fingerprints(snapshots[i].Text)

		maxLen := len(prev)
		if len(curr) > maxLen {
			maxLen = len(curr)
		}
		for idx := 0; idx < maxLen; idx++ {
			if fingerprintAt(prev, idx) != fingerprintAt(curr, idx) {
				counts[idx]++
			}
		}

		prev = curr
	}

	return counts
}

func fingerprints(text string) []string {
	paragraphs := SplitParagraphs(text)
	fps := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		fps[i] = Fingerprint(p)
	}
	return fps
}

// fingerprintAt returns the fingerprint at idx, or the distinguished absent
// value for out-of-range positions. The empty string can never collide with
// a real fingerprint.
func fingerprintAt(fps []string, idx int) string {
	if idx < 0 || idx >= len(fps) {
		return ""
	}
	return fps[idx]
}

// instabilityFindings converts accumulated rewrite counts into observations
// and unstable-paragraph entries for every position at or above the
// threshold. Severity is 2, stepping to 3 for heavily churned positions.
func instabilityFindings(counts RewriteCounts) ([]model.Observation, []model.UnstableParagraph) {
	var observations []model.Observation
	var unstable []model.UnstableParagraph

	for _, paraIdx := range sortedKeys(counts) {
		count := counts.At(paraIdx)
		if count < unstableThreshold {
			continue
		}

		severity := 2
		if count >= highChurnCount {
			severity = 3
		}

		observations = append(observations, model.Observation{
			ID:        id.NewString(),
			Type:      model.ObservationInstability,
			Severity:  severity,
			Paragraph: paraIdx,
			Title:     "Frequently rewritten",
			Note:      fmt.Sprintf("This paragraph has been rewritten %d times.", count),
			Question:  "Are you struggling to express this idea clearly?",
		})
		unstable = append(unstable, model.UnstableParagraph{
			Paragraph:    paraIdx,
			RewriteCount: count,
			Note:         fmt.Sprintf("Rewritten %d times across snapshots", count),
		})
	}

	return observations, unstable
}

// sortedKeys returns map keys in ascending order so findings come out in
// paragraph order regardless of map iteration.
func sortedKeys(counts RewriteCounts) []int {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
