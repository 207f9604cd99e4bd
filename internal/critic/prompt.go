package critic

import (
	"fmt"
	"strings"

	"github.com/magnusgp/fermatter/common/llm"
	"github.com/magnusgp/fermatter/internal/model"
)

// modePrompts selects the tone profile for the critic. Unrecognized modes
// fall back to scientific.
var modePrompts = map[model.AnalysisMode]string{
	model.ModeScientific: `You are reviewing academic/scientific writing.
Focus on: precision of claims, citation needs, logical structure, methodology clarity,
and avoiding overstatement. Be rigorous but constructive.`,
	model.ModeJournalist: `You are reviewing journalistic writing.
Focus on: clarity for general audiences, lead strength, source attribution,
fact-checking needs, and engaging structure. Be direct and practical.`,
	model.ModeGrandma: `You are reviewing an email or letter to a family member.
Focus on: warmth, clarity, avoiding confusion, appropriate length,
and emotional tone. Be gentle and supportive in your feedback.`,
}

// responseSchema documents the expected output shape. Reflected once and
// embedded in the system prompt.
type responseSchema struct {
	Observations []observationSchema `json:"observations" jsonschema:"required,description=List of feedback observations"`
}

type observationSchema struct {
	Type       string   `json:"type" jsonschema:"required,enum=missing_evidence,enum=unclear_claim,enum=logic_gap,enum=structure,enum=tone,enum=precision,enum=citation_needed"`
	Severity   int      `json:"severity" jsonschema:"required,minimum=1,maximum=5"`
	Paragraph  int      `json:"paragraph" jsonschema:"required,minimum=0,description=Zero-indexed paragraph number"`
	AnchorText string   `json:"anchor_text" jsonschema:"description=Short quoted text (3-10 words) from the paragraph"`
	Title      string   `json:"title" jsonschema:"required"`
	Note       string   `json:"note" jsonschema:"required,description=Detailed explanation"`
	Question   string   `json:"question" jsonschema:"required,description=Question for the writer to consider"`
	SourceIDs  []string `json:"source_ids" jsonschema:"description=IDs of cited sources"`
}

var schemaText = llm.SchemaJSON(llm.GenerateSchema[responseSchema]())

// ReviewRequest carries everything the critic needs for one analysis call.
type ReviewRequest struct {
	Paragraphs     []string
	Mode           model.AnalysisMode
	Goal           string
	SourcesContext string
	IsSelection    bool
}

func buildMessages(req ReviewRequest) []llm.Message {
	scopeNote := "You are analyzing the FULL DOCUMENT."
	if req.IsSelection {
		scopeNote = "You are analyzing a TEXT SELECTION from a larger document."
	}

	tone, ok := modePrompts[req.Mode]
	if !ok {
		tone = modePrompts[model.ModeScientific]
	}

	goalNote := ""
	if req.Goal != "" {
		goalNote = fmt.Sprintf("\nThe writer's stated goal: %s\n", req.Goal)
	}

	systemPrompt := fmt.Sprintf(`You are a writing critic and editor. Your role is to provide feedback ONLY.

CRITICAL RULES:
1. NEVER write replacement text or suggested sentences for the user
2. NEVER rewrite any part of their text
3. Only provide critiques, questions, flags, and references
4. Be specific about which paragraph (0-indexed) you're commenting on
5. Quote a short "anchor_text" (3-10 words) from the paragraph you're referencing

%s

%s
%s
AVAILABLE SOURCES FOR CITATION:
%s

CITATION RULES:
- When recommending references, ONLY cite from the provided sources using [S#] or [U#] format
- If no source supports a claim that needs support, output a "citation_needed" observation
- NEVER invent or hallucinate sources

OUTPUT FORMAT:
Return a JSON object with key "observations" matching this schema:
%s

Make 3-8 high-signal observations. Prefer quality over quantity.
Severity scale: 1=minor suggestion, 3=should address, 5=critical issue.`,
		tone, scopeNote, goalNote, req.SourcesContext, schemaText)

	var paraBlocks []string
	for i, p := range req.Paragraphs {
		paraBlocks = append(paraBlocks, fmt.Sprintf("[Paragraph %d]\n%s", i, p))
	}

	userPrompt := fmt.Sprintf(`Please analyze the following text and provide feedback.

TEXT TO ANALYZE:
%s

Remember: Return ONLY valid JSON matching the schema. No markdown, no explanations outside the JSON.`,
		strings.Join(paraBlocks, "\n\n"))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}
}
