// Package sources holds the curated citation library and the prompt
// formatting for caller-supplied sources. The library is static and
// read-only, safe for unsynchronized concurrent reads.
package sources

import (
	"fmt"
	"strings"

	"github.com/magnusgp/fermatter/internal/model"
)

var librarySources = []model.LibrarySource{
	{
		ID:      "S1",
		Title:   "The Elements of Style",
		URL:     "https://en.wikipedia.org/wiki/The_Elements_of_Style",
		Snippet: "Omit needless words. Vigorous writing is concise. A sentence should contain no unnecessary words, a paragraph no unnecessary sentences.",
	},
	{
		ID:      "S2",
		Title:   "On Writing Well - William Zinsser",
		URL:     "https://en.wikipedia.org/wiki/On_Writing_Well",
		Snippet: "Clutter is the disease of American writing. We are a society strangling in unnecessary words, circular constructions, pompous frills and meaningless jargon.",
	},
	{
		ID:      "S3",
		Title:   "APA Publication Manual (7th ed.)",
		URL:     "https://apastyle.apa.org/",
		Snippet: "Scholarly writing should be clear, concise, and free of bias. Every claim should be supported by evidence, properly cited.",
	},
	{
		ID:      "S4",
		Title:   "Chicago Manual of Style",
		URL:     "https://www.chicagomanualofstyle.org/",
		Snippet: "Good writing is good thinking made visible. Structure your arguments logically and support claims with credible sources.",
	},
	{
		ID:      "S5",
		Title:   "Nature: How to Write a Paper",
		URL:     "https://www.nature.com/nature/for-authors/formatting-guide",
		Snippet: "Scientific papers should present findings clearly. Avoid jargon where possible. State limitations explicitly.",
	},
	{
		ID:      "S6",
		Title:   "Plain Language Guidelines",
		URL:     "https://www.plainlanguage.gov/guidelines/",
		Snippet: "Use simple words and short sentences. Write for your reader, not yourself. Organize information logically.",
	},
	{
		ID:      "S7",
		Title:   "Critical Thinking - Stanford Encyclopedia",
		URL:     "https://plato.stanford.edu/entries/critical-thinking/",
		Snippet: "Critical thinking involves careful examination of claims and arguments. Identify assumptions, evaluate evidence, and consider alternative interpretations.",
	},
	{
		ID:      "S8",
		Title:   "Logical Fallacies - Purdue OWL",
		URL:     "https://owl.purdue.edu/owl/general_writing/academic_writing/logic_in_argumentative_writing/",
		Snippet: "Common fallacies include ad hominem attacks, straw man arguments, false dichotomies, and appeals to authority without evidence.",
	},
}

var sourcesByID = func() map[string]model.LibrarySource {
	m := make(map[string]model.LibrarySource, len(librarySources))
	for _, s := range librarySources {
		m[s.ID] = s
	}
	return m
}()

// All returns every library source in catalog order.
func All() []model.LibrarySource {
	return librarySources
}

// GetByID looks up a single library source.
func GetByID(id string) (model.LibrarySource, bool) {
	s, ok := sourcesByID[id]
	return s, ok
}

// GetByIDs resolves the given ids, silently skipping misses.
func GetByIDs(ids []string) []model.LibrarySource {
	resolved := make([]model.LibrarySource, 0, len(ids))
	for _, id := range ids {
		if s, ok := sourcesByID[id]; ok {
			resolved = append(resolved, s)
		}
	}
	return resolved
}

// FormatForPrompt renders the requested library sources and the caller's own
// sources as a text block for the model prompt. User sources get sequential
// synthesized ids U1..Un in input order.
func FormatForPrompt(libraryIDs []string, userSources []string) string {
	var lines []string

	for _, libID := range libraryIDs {
		source, ok := GetByID(libID)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s — %s", source.ID, source.Title, source.URL))
		lines = append(lines, "    "+source.Snippet)
	}

	for i, userSource := range userSources {
		lines = append(lines, fmt.Sprintf("[U%d] User-provided: %s", i+1, userSource))
	}

	if len(lines) == 0 {
		return "No sources provided."
	}
	return strings.Join(lines, "\n")
}
