package score

import (
	"regexp"
	"sync"

	"call-audit-go/internal/rubric"
)

// The fallback anchors on the parameter's report heading, allows up to 200
// characters of analysis text, then matches the literal word Score and either
// an optionally quoted N/A or the "score/max" pattern. First match wins; no
// scanning for better candidates.
const (
	naTail    = `.{0,200}?Score\s*[:\-]?\s*"?N/A"?`
	ratioTail = `.{0,200}?Score\s*[:\-]?\s*(\d{1,2})\s*/\s*\d{1,2}`
)

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func pattern(expr string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[expr]; ok {
		return re
	}
	re := regexp.MustCompile(`(?is)` + expr)
	patternCache[expr] = re
	return re
}

// Fallback scrapes per-parameter scores out of free-form report text when the
// marker block was absent or unparseable. Matching is label-anchored, so the
// order of the score lines in the text does not matter. A parameter whose
// label never matches gets the rubric's default: zero for the pre-N/A
// 9-parameter rubric, NotApplicable for later rubrics.
func Fallback(r rubric.Rubric, raw string) Map {
	scores := make(Map, len(r.Parameters))
	for _, p := range r.Parameters {
		scores[p.Key] = grab(p, raw, r.FallbackDefault)
	}
	return scores
}

func grab(p rubric.Parameter, text string, def rubric.DefaultPolicy) Value {
	if pattern(p.LabelPattern + naTail).MatchString(text) {
		return NotApplicable()
	}
	if m := pattern(p.LabelPattern + ratioTail).FindStringSubmatch(text); m != nil {
		return Coerce(m[1])
	}
	if def == rubric.DefaultZero {
		return Scored(0)
	}
	return NotApplicable()
}
