package analysis_test

import (
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/magnusgp/fermatter/internal/analysis"
	"github.com/magnusgp/fermatter/internal/model"
)

func paragraphOfWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word" + strconv.Itoa(i)
	}
	return strings.Join(words, " ")
}

func observationsOfType(obs []model.Observation, t model.ObservationType) []model.Observation {
	var filtered []model.Observation
	for _, o := range obs {
		if o.Type == t {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

var _ = Describe("RunRules", func() {
	Describe("long-paragraph rule", func() {
		It("flags a paragraph of 151 words exactly once", func() {
			obs := analysis.RunRules([]string{paragraphOfWords(151)})

			structural := observationsOfType(obs, model.ObservationStructure)
			Expect(structural).To(HaveLen(1))
			Expect(structural[0].Severity).To(Equal(3))
			Expect(structural[0].Paragraph).To(Equal(0))
			Expect(structural[0].AnchorText).To(Equal("word0 word1 word2 word3 word4 word5…"))
			Expect(structural[0].Note).To(ContainSubstring("151 words"))
		})

		It("does not flag a paragraph of exactly 150 words", func() {
			obs := analysis.RunRules([]string{paragraphOfWords(150)})
			Expect(observationsOfType(obs, model.ObservationStructure)).To(BeEmpty())
		})
	})

	Describe("missing-evidence rule", func() {
		It("flags an absolutist claim without an evidence cue", func() {
			obs := analysis.RunRules([]string{"Everyone knows this is true."})

			flagged := observationsOfType(obs, model.ObservationMissingEvidence)
			Expect(flagged).To(HaveLen(1))
			Expect(flagged[0].Severity).To(Equal(3))
			Expect(flagged[0].AnchorText).NotTo(BeEmpty())
		})

		It("does not flag when an evidence cue is present", func() {
			obs := analysis.RunRules([]string{"Everyone knows this is true because the data shows it."})
			Expect(observationsOfType(obs, model.ObservationMissingEvidence)).To(BeEmpty())
		})

		It("flags universal quantifiers followed by a copula", func() {
			obs := analysis.RunRules([]string{"All politicians are dishonest."})
			Expect(observationsOfType(obs, model.ObservationMissingEvidence)).To(HaveLen(1))
		})

		It("matches case-insensitively", func() {
			obs := analysis.RunRules([]string{"CLEARLY this is the best approach."})
			Expect(observationsOfType(obs, model.ObservationMissingEvidence)).To(HaveLen(1))
		})
	})

	Describe("unclear-claim rule", func() {
		It("flags vague nouns", func() {
			obs := analysis.RunRules([]string{"There are many things to consider here."})

			vague := observationsOfType(obs, model.ObservationUnclearClaim)
			Expect(vague).To(HaveLen(1))
			Expect(vague[0].Severity).To(Equal(2))
		})

		It("flags vague intensifier combos", func() {
			obs := analysis.RunRules([]string{"The results were very interesting."})
			Expect(observationsOfType(obs, model.ObservationUnclearClaim)).To(HaveLen(1))
		})

		It("flags trailing vagueness markers", func() {
			obs := analysis.RunRules([]string{"We measured mass, velocity, and so on."})
			Expect(observationsOfType(obs, model.ObservationUnclearClaim)).To(HaveLen(1))
		})

		It("emits at most one observation per paragraph", func() {
			obs := analysis.RunRules([]string{"There is stuff here and it is very important, etc."})
			Expect(observationsOfType(obs, model.ObservationUnclearClaim)).To(HaveLen(1))
		})
	})

	It("lets a single paragraph collect observations from multiple rules", func() {
		para := "Obviously there is stuff to fix. " + paragraphOfWords(150)
		obs := analysis.RunRules([]string{para})

		Expect(observationsOfType(obs, model.ObservationStructure)).To(HaveLen(1))
		Expect(observationsOfType(obs, model.ObservationMissingEvidence)).To(HaveLen(1))
		Expect(observationsOfType(obs, model.ObservationUnclearClaim)).To(HaveLen(1))
	})

	It("concatenates rule output in fixed rule order", func() {
		obs := analysis.RunRules([]string{
			"There is vague stuff here.",
			paragraphOfWords(151),
		})

		Expect(obs).To(HaveLen(2))
		// Structure rule runs before the unclear-claim rule, regardless of
		// paragraph order.
		Expect(obs[0].Type).To(Equal(model.ObservationStructure))
		Expect(obs[1].Type).To(Equal(model.ObservationUnclearClaim))
	})

	It("assigns a unique id to every observation", func() {
		obs := analysis.RunRules([]string{
			"Obviously there is stuff to fix here.",
			"Never trust results that are very good.",
		})

		seen := map[string]bool{}
		for _, o := range obs {
			Expect(o.ID).NotTo(BeEmpty())
			Expect(seen[o.ID]).To(BeFalse())
			seen[o.ID] = true
		}
	})
})
