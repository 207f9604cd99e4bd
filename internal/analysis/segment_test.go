package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magnusgp/fermatter/internal/analysis"
)

var _ = Describe("SplitParagraphs", func() {
	It("splits on blank lines", func() {
		Expect(analysis.SplitParagraphs("A\n\nB")).To(Equal([]string{"A", "B"}))
	})

	It("treats runs of blank lines as one boundary", func() {
		Expect(analysis.SplitParagraphs("A\n\n\nB")).To(Equal([]string{"A", "B"}))
	})

	It("treats whitespace-only lines as blank", func() {
		Expect(analysis.SplitParagraphs("A\n   \nB")).To(Equal([]string{"A", "B"}))
	})

	It("trims outer whitespace from each paragraph", func() {
		Expect(analysis.SplitParagraphs("  first para  \n\n  second para  ")).
			To(Equal([]string{"first para", "second para"}))
	})

	It("returns empty for empty input", func() {
		Expect(analysis.SplitParagraphs("")).To(BeEmpty())
	})

	It("returns empty for whitespace-only input", func() {
		Expect(analysis.SplitParagraphs("   \n \n\t ")).To(BeEmpty())
	})

	It("keeps single newlines inside a paragraph", func() {
		Expect(analysis.SplitParagraphs("line one\nline two\n\nnext")).
			To(Equal([]string{"line one\nline two", "next"}))
	})

	It("never returns empty paragraphs", func() {
		for _, p := range analysis.SplitParagraphs("A\n\n \n\nB\n\n\n\nC") {
			Expect(p).NotTo(BeEmpty())
		}
	})
})
