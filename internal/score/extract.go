package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"call-audit-go/internal/rubric"
)

// Extraction failure reasons. These are expected outcomes, not faults: the
// caller reacts by running the regex fallback over the unmodified text.
var (
	ErrNoStartMarker = errors.New("start marker not found")
	ErrNoEndMarker   = errors.New("end marker not found")
)

// Extraction is the parsed form of one LLM evaluation response.
type Extraction struct {
	Scores    Map
	Checklist *ConsultationChecklist
	Behavior  *ClientBehavior

	// Report is the human-readable text with the marker block stripped.
	// Only valid on the success path; on failure callers must keep the
	// original raw text as the report.
	Report string
}

// Extract parses the marker-delimited JSON block out of a raw LLM response.
// Every rubric key is present in the result, defaulting to NotApplicable when
// the block omits it or holds a non-coercible value.
func Extract(r rubric.Rubric, raw string) (Extraction, error) {
	start := strings.Index(raw, r.StartMarker)
	if start < 0 {
		return Extraction{}, ErrNoStartMarker
	}
	body := start + len(r.StartMarker)
	end := strings.Index(raw[body:], r.EndMarker)
	if end < 0 {
		return Extraction{}, ErrNoEndMarker
	}

	block := strings.TrimSpace(raw[body : body+end])
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return Extraction{}, fmt.Errorf("marker block is not valid JSON: %w", err)
	}

	scores := make(Map, len(r.Parameters))
	for _, key := range r.Keys() {
		rawVal, ok := obj[key]
		if !ok {
			scores[key] = NotApplicable()
			continue
		}
		var v Value
		if err := json.Unmarshal(rawVal, &v); err != nil {
			v = NotApplicable()
		}
		scores[key] = v
	}

	out := Extraction{
		Scores: scores,
		Report: strings.TrimRight(raw[:start], " \t\r\n"),
	}

	if r.HasCallMetadata {
		out.Checklist, out.Behavior = parseCallMetadata(obj)
	}
	return out, nil
}

// parseCallMetadata reads the nested consultation_checklist and
// client_behavior objects. Both are optional and individually tolerant:
// a malformed object is dropped rather than failing the extraction.
func parseCallMetadata(obj map[string]json.RawMessage) (*ConsultationChecklist, *ClientBehavior) {
	var checklist *ConsultationChecklist
	if raw, ok := obj["consultation_checklist"]; ok {
		var c ConsultationChecklist
		if err := json.Unmarshal(raw, &c); err == nil {
			if !c.IsBookingCall {
				// items are meaningless on non-booking calls
				c.PhotosRequested = nil
				c.BudgetDiscussed = nil
				c.TimelineDiscussed = nil
				c.BranchLocationShared = nil
				c.ConsultationBooked = nil
			}
			checklist = &c
		}
	}

	var behavior *ClientBehavior
	if raw, ok := obj["client_behavior"]; ok {
		var b ClientBehavior
		if err := json.Unmarshal(raw, &b); err == nil {
			b.Normalize()
			behavior = &b
		}
	}
	return checklist, behavior
}
