package rubric

import (
	"fmt"
	"strings"
)

// Prompt renders the evaluation prompt for a transcript. The LLM is asked for
// the human-readable report first, then exactly one marker-delimited JSON
// block for machine parsing. The instruction is advisory: callers must still
// expect absent markers, malformed JSON and out-of-range values.
func (r Rubric) Prompt(transcript string) string {
	var b strings.Builder

	b.WriteString("You are a senior customer experience auditor for a premium hair replacement studio. ")
	b.WriteString("Analyze the sales call transcript and provide a detailed evaluation.\n\n")
	b.WriteString("TRANSCRIPT\n---\n")
	b.WriteString(transcript)
	b.WriteString("\n---\n\n")

	b.WriteString("OUTPUT FORMAT\n")
	b.WriteString("1) First write the full human-readable report exactly as specified below ")
	b.WriteString("(each parameter must include a line '... Score: X/Max').\n")
	if r.FallbackDefault == DefaultNotApplicable {
		b.WriteString("   If a parameter genuinely does not apply to this call, write \"N/A\" instead of a number.\n")
	}
	b.WriteString("2) Then, on a NEW line, output ONLY this JSON between markers for machine parsing:\n")
	b.WriteString(r.StartMarker + "\n")
	b.WriteString(r.jsonSkeleton())
	b.WriteString("\n" + r.EndMarker + "\n\n")

	b.WriteString("[CALL ANALYSIS REPORT]\n\n")
	b.WriteString("1. Overall Summary & Customer Intent\n\n")
	b.WriteString("2. Detailed Parameter Evaluation:\n")
	for _, p := range r.Parameters {
		fmt.Fprintf(&b, "* %s\n  - Analysis: ...\n  - %s Score: __/%d\n\n", p.Label, p.Label, p.Max)
	}
	b.WriteString("3. Final Verdict & Recommendation\n")

	if r.HasCallMetadata {
		b.WriteString(`
CONSULTATION CHECKLIST AND CLIENT BEHAVIOR
Inside the same JSON block, also fill these two objects:
"consultation_checklist": set "is_booking_call" to true only when the call is
a consultation booking call; when it is false, set the remaining five fields
(photos_requested, budget_discussed, timeline_discussed,
branch_location_shared, consultation_booked) to null.
"client_behavior": "interest_level" must be one of HIGH, MEDIUM, LOW,
CANNOT_DETERMINE; "budget_category" one of ABOVE_25K, BELOW_25K,
NOT_DISCUSSED; "reasoning" is a short free-text justification.
`)
	}

	return b.String()
}

func (r Rubric) jsonSkeleton() string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, p := range r.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		if r.FallbackDefault == DefaultNotApplicable {
			fmt.Fprintf(&b, "%q: <int 0-%d or \"N/A\">", p.Key, p.Max)
		} else {
			fmt.Fprintf(&b, "%q: <int>", p.Key)
		}
	}
	if r.HasCallMetadata {
		b.WriteString(`, "consultation_checklist": { "is_booking_call": <bool>, "photos_requested": <bool or null>, "budget_discussed": <bool or null>, "timeline_discussed": <bool or null>, "branch_location_shared": <bool or null>, "consultation_booked": <bool or null> }`)
		b.WriteString(`, "client_behavior": { "interest_level": "<HIGH|MEDIUM|LOW|CANNOT_DETERMINE>", "budget_category": "<ABOVE_25K|BELOW_25K|NOT_DISCUSSED>", "reasoning": "<text>" }`)
	}
	b.WriteString(" }")
	return b.String()
}
