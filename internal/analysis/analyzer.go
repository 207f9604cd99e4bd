package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/magnusgp/fermatter/common/logger"
	"github.com/magnusgp/fermatter/internal/critic"
	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/sources"
)

// Reviewer is the external analysis collaborator. Satisfied by
// *critic.Critic; tests substitute a fake.
type Reviewer interface {
	Configured() bool
	Review(ctx context.Context, req critic.ReviewRequest) ([]model.Observation, error)
}

// Request is one analysis run over the caller's current text and optional
// snapshot history.
type Request struct {
	Text      string
	Snapshots []model.Snapshot
	Goal      string
	Mode      model.AnalysisMode
	Sources   model.SourcesInput
	Scope     *model.AnalysisScope
}

// Result is always produced; degraded conditions resolve to a populated
// result with UsedLLM=false and a warning, never an error.
type Result struct {
	Observations []model.Observation
	Unstable     []model.UnstableParagraph
	SourcesUsed  []model.SourceUsed
	Meta         model.Meta
}

// Analyzer orchestrates scope resolution, the external-vs-heuristic
// decision, the instability pass, and source collection.
type Analyzer struct {
	reviewer Reviewer
	useLLM   bool
}

func NewAnalyzer(reviewer Reviewer, useLLM bool) *Analyzer {
	return &Analyzer{reviewer: reviewer, useLLM: useLLM}
}

// Analyze runs the full pipeline. All per-request state is local to this
// call; there is no error path for normal inputs.
func (a *Analyzer) Analyze(ctx context.Context, req Request) *Result {
	start := time.Now()

	sc := logger.StartSpan(ctx, "analysis.analyze")
	defer sc.End()
	ctx = sc.Context()

	mode := req.Mode
	if mode == "" {
		mode = model.ModeScientific
	}

	paragraphs, isSelection := resolveScope(req)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component:      "fermatter.analysis.analyzer",
		Mode:           logger.Ptr(string(mode)),
		Scope:          logger.Ptr(scopeLabel(isSelection)),
		ParagraphCount: logger.Ptr(len(paragraphs)),
		SnapshotCount:  logger.Ptr(len(req.Snapshots)),
	})

	var observations []model.Observation
	var warning string
	usedLLM := false

	if a.useLLM && a.reviewer != nil && a.reviewer.Configured() {
		reviewed, err := a.reviewer.Review(ctx, critic.ReviewRequest{
			Paragraphs:     paragraphs,
			Mode:           mode,
			Goal:           req.Goal,
			SourcesContext: sources.FormatForPrompt(req.Sources.LibraryIDs, req.Sources.User),
			IsSelection:    isSelection,
		})
		if err != nil {
			slog.WarnContext(ctx, "llm analysis failed, falling back to heuristics", "error", err)
			warning = fmt.Sprintf("AI analysis failed: %v. Using basic analysis instead.", err)
		} else {
			observations = reviewed
			usedLLM = true
		}
	}

	if !usedLLM {
		observations = RunRules(paragraphs)
	}

	// Instability only makes sense against the whole document: snapshots
	// cannot be aligned with a sub-selection.
	var unstable []model.UnstableParagraph
	if !isSelection {
		counts := ComputeRewriteCounts(req.Snapshots)
		instabilityObs, unstableParas := instabilityFindings(counts)
		observations = append(observations, instabilityObs...)
		unstable = unstableParas
	}

	result := &Result{
		Observations: observations,
		Unstable:     unstable,
		SourcesUsed:  collectSources(observations, req.Sources.User),
		Meta: model.Meta{
			ParagraphCount: len(paragraphs),
			LatencyMS:      time.Since(start).Milliseconds(),
			UsedLLM:        usedLLM,
			Warning:        warning,
		},
	}

	slog.InfoContext(ctx, "analysis completed",
		"observations", len(result.Observations),
		"unstable", len(result.Unstable),
		"used_llm", usedLLM,
		"latency_ms", result.Meta.LatencyMS)

	return result
}

// resolveScope decides which paragraphs the rule engine and critic see.
// Selection scope analyzes the selection text alone. Document scope may be
// filtered to a caller-specified index subset; out-of-range indices drop
// silently and the requested order is preserved.
func resolveScope(req Request) (paragraphs []string, isSelection bool) {
	if req.Scope != nil && req.Scope.Type == model.ScopeSelection && req.Scope.SelectionText != "" {
		return SplitParagraphs(req.Scope.SelectionText), true
	}

	paragraphs = SplitParagraphs(req.Text)
	if req.Scope != nil && len(req.Scope.Paragraphs) > 0 {
		filtered := make([]string, 0, len(req.Scope.Paragraphs))
		for _, idx := range req.Scope.Paragraphs {
			if idx >= 0 && idx < len(paragraphs) {
				filtered = append(filtered, paragraphs[idx])
			}
		}
		paragraphs = filtered
	}
	return paragraphs, false
}

var userSourceRef = regexp.MustCompile(`^U(\d+)$`)

// collectSources resolves the union of cited source ids, in citation order,
// deduplicated by id. Library ids resolve through the catalog; U<n> ids
// resolve against the caller's user-source list by 1-based position.
// Unresolvable ids are skipped silently but stay on the observations.
func collectSources(observations []model.Observation, userSources []string) []model.SourceUsed {
	seen := map[string]bool{}
	used := []model.SourceUsed{}

	for _, obs := range observations {
		for _, sid := range obs.SourceIDs {
			if seen[sid] {
				continue
			}
			seen[sid] = true

			if m := userSourceRef.FindStringSubmatch(sid); m != nil {
				n, err := strconv.Atoi(m[1])
				if err != nil || n < 1 || n > len(userSources) {
					continue
				}
				used = append(used, model.SourceUsed{
					ID:    sid,
					Title: userSources[n-1],
				})
				continue
			}

			if source, ok := sources.GetByID(sid); ok {
				used = append(used, model.SourceUsed{
					ID:    source.ID,
					Title: source.Title,
					URL:   source.URL,
				})
			}
		}
	}

	return used
}

func scopeLabel(isSelection bool) string {
	if isSelection {
		return string(model.ScopeSelection)
	}
	return string(model.ScopeDocument)
}
