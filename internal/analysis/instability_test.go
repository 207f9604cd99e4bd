package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magnusgp/fermatter/internal/analysis"
	"github.com/magnusgp/fermatter/internal/model"
)

var _ = Describe("Fingerprint", func() {
	It("is deterministic", func() {
		Expect(analysis.Fingerprint("some paragraph")).
			To(Equal(analysis.Fingerprint("some paragraph")))
	})

	It("normalizes internal whitespace runs", func() {
		Expect(analysis.Fingerprint("a  b")).To(Equal(analysis.Fingerprint("a b")))
		Expect(analysis.Fingerprint("a\tb \n c")).To(Equal(analysis.Fingerprint("a b c")))
	})

	It("distinguishes different content", func() {
		Expect(analysis.Fingerprint("a b")).NotTo(Equal(analysis.Fingerprint("a c")))
	})

	It("truncates to a fixed short width", func() {
		Expect(analysis.Fingerprint("anything")).To(HaveLen(16))
	})
})

var _ = Describe("ComputeRewriteCounts", func() {
	It("returns empty with no snapshots", func() {
		Expect(analysis.ComputeRewriteCounts(nil)).To(BeEmpty())
	})

	It("returns empty with a single snapshot", func() {
		snapshots := []model.Snapshot{{TS: "2026-01-01T00:00:00Z", Text: "P1\n\nP2"}}
		Expect(analysis.ComputeRewriteCounts(snapshots)).To(BeEmpty())
	})

	It("counts changes per paragraph position across consecutive pairs", func() {
		snapshots := []model.Snapshot{
			{TS: "t0", Text: "P1\n\nP2"},
			{TS: "t1", Text: "P1x\n\nP2"},
			{TS: "t2", Text: "P1\n\nP2"},
		}

		counts := analysis.ComputeRewriteCounts(snapshots)

		Expect(counts.At(0)).To(Equal(2))
		Expect(counts.At(1)).To(Equal(0))
	})

	It("treats a missing position as a change", func() {
		snapshots := []model.Snapshot{
			{TS: "t0", Text: "P1"},
			{TS: "t1", Text: "P1\n\nP2"},
		}

		counts := analysis.ComputeRewriteCounts(snapshots)

		Expect(counts.At(0)).To(Equal(0))
		Expect(counts.At(1)).To(Equal(1))
	})

	It("ignores whitespace-only rewrites", func() {
		snapshots := []model.Snapshot{
			{TS: "t0", Text: "some  spaced   text"},
			{TS: "t1", Text: "some spaced text"},
		}

		Expect(analysis.ComputeRewriteCounts(snapshots)).To(BeEmpty())
	})
})
