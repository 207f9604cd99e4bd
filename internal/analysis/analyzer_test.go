package analysis_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magnusgp/fermatter/internal/analysis"
	"github.com/magnusgp/fermatter/internal/critic"
	"github.com/magnusgp/fermatter/internal/model"
)

type mockReviewer struct {
	configured bool
	reviewFn   func(ctx context.Context, req critic.ReviewRequest) ([]model.Observation, error)
	callCount  int
	lastReq    critic.ReviewRequest
}

func (m *mockReviewer) Configured() bool {
	return m.configured
}

func (m *mockReviewer) Review(ctx context.Context, req critic.ReviewRequest) ([]model.Observation, error) {
	m.callCount++
	m.lastReq = req
	if m.reviewFn != nil {
		return m.reviewFn(ctx, req)
	}
	return nil, nil
}

var _ = Describe("Analyzer", func() {
	var (
		ctx      context.Context
		reviewer *mockReviewer
	)

	BeforeEach(func() {
		ctx = context.Background()
		reviewer = &mockReviewer{configured: true}
	})

	Describe("external path", func() {
		It("uses reviewer output exclusively on success", func() {
			reviewer.reviewFn = func(_ context.Context, _ critic.ReviewRequest) ([]model.Observation, error) {
				return []model.Observation{{
					ID:        "obs-1",
					Type:      model.ObservationTone,
					Severity:  2,
					Paragraph: 0,
					Title:     "Tone check",
				}}, nil
			}
			analyzer := analysis.NewAnalyzer(reviewer, true)

			// "Obviously" would trigger the heuristics if they ran.
			result := analyzer.Analyze(ctx, analysis.Request{Text: "Obviously correct."})

			Expect(result.Meta.UsedLLM).To(BeTrue())
			Expect(result.Meta.Warning).To(BeEmpty())
			Expect(result.Observations).To(HaveLen(1))
			Expect(result.Observations[0].ID).To(Equal("obs-1"))
		})

		It("falls back to heuristics with a warning on failure", func() {
			reviewer.reviewFn = func(_ context.Context, _ critic.ReviewRequest) ([]model.Observation, error) {
				return nil, errors.New("boom")
			}
			analyzer := analysis.NewAnalyzer(reviewer, true)

			text := "Everyone knows this is true."
			result := analyzer.Analyze(ctx, analysis.Request{Text: text})

			Expect(result.Meta.UsedLLM).To(BeFalse())
			Expect(result.Meta.Warning).To(ContainSubstring("AI analysis failed"))
			Expect(result.Meta.Warning).To(ContainSubstring("Using basic analysis instead"))

			expected := analysis.RunRules(analysis.SplitParagraphs(text))
			Expect(result.Observations).To(HaveLen(len(expected)))
			for i := range expected {
				Expect(result.Observations[i].Type).To(Equal(expected[i].Type))
				Expect(result.Observations[i].Paragraph).To(Equal(expected[i].Paragraph))
			}
		})

		It("skips the reviewer when the feature flag is off", func() {
			analyzer := analysis.NewAnalyzer(reviewer, false)

			result := analyzer.Analyze(ctx, analysis.Request{Text: "Some text."})

			Expect(reviewer.callCount).To(Equal(0))
			Expect(result.Meta.UsedLLM).To(BeFalse())
		})

		It("skips the reviewer when no credential is configured", func() {
			reviewer.configured = false
			analyzer := analysis.NewAnalyzer(reviewer, true)

			result := analyzer.Analyze(ctx, analysis.Request{Text: "Some text."})

			Expect(reviewer.callCount).To(Equal(0))
			Expect(result.Meta.UsedLLM).To(BeFalse())
			Expect(result.Meta.Warning).To(BeEmpty())
		})
	})

	Describe("scope resolution", func() {
		It("analyzes the selection text when scope is selection", func() {
			analyzer := analysis.NewAnalyzer(reviewer, true)
			reviewer.reviewFn = func(_ context.Context, _ critic.ReviewRequest) ([]model.Observation, error) {
				return []model.Observation{}, nil
			}

			result := analyzer.Analyze(ctx, analysis.Request{
				Text: "Full doc para one.\n\nFull doc para two.",
				Scope: &model.AnalysisScope{
					Type:          model.ScopeSelection,
					SelectionText: "Just this selection.",
				},
			})

			Expect(reviewer.lastReq.IsSelection).To(BeTrue())
			Expect(reviewer.lastReq.Paragraphs).To(Equal([]string{"Just this selection."}))
			Expect(result.Meta.ParagraphCount).To(Equal(1))
		})

		It("filters document paragraphs to the requested subset", func() {
			analyzer := analysis.NewAnalyzer(reviewer, true)
			reviewer.reviewFn = func(_ context.Context, _ critic.ReviewRequest) ([]model.Observation, error) {
				return []model.Observation{}, nil
			}

			analyzer.Analyze(ctx, analysis.Request{
				Text: "P0.\n\nP1.\n\nP2.",
				Scope: &model.AnalysisScope{
					Type:       model.ScopeDocument,
					Paragraphs: []int{2, 0, 99, -1},
				},
			})

			Expect(reviewer.lastReq.IsSelection).To(BeFalse())
			Expect(reviewer.lastReq.Paragraphs).To(Equal([]string{"P2.", "P0."}))
		})
	})

	Describe("instability pass", func() {
		snapshots := []model.Snapshot{
			{TS: "t0", Text: "P1\n\nP2"},
			{TS: "t1", Text: "P1x\n\nP2"},
			{TS: "t2", Text: "P1\n\nP2"},
		}

		It("reports paragraphs rewritten at least twice", func() {
			analyzer := analysis.NewAnalyzer(nil, false)

			result := analyzer.Analyze(ctx, analysis.Request{
				Text:      "P1\n\nP2",
				Snapshots: snapshots,
			})

			Expect(result.Unstable).To(HaveLen(1))
			Expect(result.Unstable[0].Paragraph).To(Equal(0))
			Expect(result.Unstable[0].RewriteCount).To(Equal(2))
			Expect(result.Unstable[0].Note).To(Equal("Rewritten 2 times across snapshots"))

			instability := observationsOfType(result.Observations, model.ObservationInstability)
			Expect(instability).To(HaveLen(1))
			Expect(instability[0].Severity).To(Equal(2))
		})

		It("steps severity up for heavy churn", func() {
			churned := []model.Snapshot{
				{TS: "t0", Text: "a"},
				{TS: "t1", Text: "b"},
				{TS: "t2", Text: "c"},
				{TS: "t3", Text: "d"},
				{TS: "t4", Text: "e"},
			}
			analyzer := analysis.NewAnalyzer(nil, false)

			result := analyzer.Analyze(ctx, analysis.Request{Text: "e", Snapshots: churned})

			instability := observationsOfType(result.Observations, model.ObservationInstability)
			Expect(instability).To(HaveLen(1))
			Expect(instability[0].Severity).To(Equal(3))
			Expect(result.Unstable[0].RewriteCount).To(Equal(4))
		})

		It("runs even when the external path succeeded", func() {
			reviewer.reviewFn = func(_ context.Context, _ critic.ReviewRequest) ([]model.Observation, error) {
				return []model.Observation{}, nil
			}
			analyzer := analysis.NewAnalyzer(reviewer, true)

			result := analyzer.Analyze(ctx, analysis.Request{
				Text:      "P1\n\nP2",
				Snapshots: snapshots,
			})

			Expect(result.Meta.UsedLLM).To(BeTrue())
			Expect(result.Unstable).To(HaveLen(1))
		})

		It("is skipped for selection scope", func() {
			analyzer := analysis.NewAnalyzer(nil, false)

			result := analyzer.Analyze(ctx, analysis.Request{
				Text:      "P1\n\nP2",
				Snapshots: snapshots,
				Scope: &model.AnalysisScope{
					Type:          model.ScopeSelection,
					SelectionText: "P1",
				},
			})

			Expect(result.Unstable).To(BeEmpty())
			Expect(observationsOfType(result.Observations, model.ObservationInstability)).To(BeEmpty())
		})
	})

	Describe("source collection", func() {
		It("resolves library and user ids, dropping unresolvable ones", func() {
			reviewer.reviewFn = func(_ context.Context, _ critic.ReviewRequest) ([]model.Observation, error) {
				return []model.Observation{{
					ID:        "obs-1",
					Type:      model.ObservationCitationNeeded,
					Severity:  3,
					Paragraph: 0,
					SourceIDs: []string{"S1", "U1", "S99", "U5"},
				}}, nil
			}
			analyzer := analysis.NewAnalyzer(reviewer, true)

			result := analyzer.Analyze(ctx, analysis.Request{
				Text:    "Some text.",
				Sources: model.SourcesInput{User: []string{"My Paper", "My Blog"}},
			})

			Expect(result.SourcesUsed).To(HaveLen(2))
			Expect(result.SourcesUsed[0].ID).To(Equal("S1"))
			Expect(result.SourcesUsed[0].Title).To(Equal("The Elements of Style"))
			Expect(result.SourcesUsed[1].ID).To(Equal("U1"))
			Expect(result.SourcesUsed[1].Title).To(Equal("My Paper"))

			// The observation keeps its unresolvable ids.
			Expect(result.Observations[0].SourceIDs).To(Equal([]string{"S1", "U1", "S99", "U5"}))
		})

		It("deduplicates repeated citations", func() {
			reviewer.reviewFn = func(_ context.Context, _ critic.ReviewRequest) ([]model.Observation, error) {
				return []model.Observation{
					{ID: "a", Type: model.ObservationPrecision, Severity: 2, SourceIDs: []string{"S2"}},
					{ID: "b", Type: model.ObservationPrecision, Severity: 2, SourceIDs: []string{"S2", "S3"}},
				}, nil
			}
			analyzer := analysis.NewAnalyzer(reviewer, true)

			result := analyzer.Analyze(ctx, analysis.Request{Text: "Some text."})

			Expect(result.SourcesUsed).To(HaveLen(2))
			Expect(result.SourcesUsed[0].ID).To(Equal("S2"))
			Expect(result.SourcesUsed[1].ID).To(Equal("S3"))
		})
	})

	Describe("end to end", func() {
		It("analyzes a plain two-paragraph document heuristically", func() {
			analyzer := analysis.NewAnalyzer(nil, false)

			result := analyzer.Analyze(ctx, analysis.Request{
				Text: "This is simple.\n\nThis is another paragraph.",
			})

			Expect(result.Meta.ParagraphCount).To(Equal(2))
			Expect(result.Meta.UsedLLM).To(BeFalse())
			Expect(result.Unstable).To(BeEmpty())
			Expect(result.Meta.LatencyMS).To(BeNumerically(">=", 0))
		})
	})
})
