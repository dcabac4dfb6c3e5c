package score

import (
	"call-audit-go/internal/rubric"
)

// Correction records one repair the validator made to a score. Corrections
// are diagnostics: they get logged for observability and never fail the
// request.
type Correction struct {
	Key       string `json:"key"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// Validate clamps every scored value into [0, max(key)] for the given rubric.
// The model is instructed to respect the maxima but not guaranteed to, so
// over-maximum values cap at the maximum and negatives floor at zero.
// Sentinel values pass through untouched, and any rubric key missing from the
// input appears in the output as NotApplicable. Idempotent: validating the
// output again yields the same map and no corrections.
func Validate(r rubric.Rubric, in Map) (Map, []Correction) {
	out := make(Map, len(r.Parameters))
	var corrections []Correction

	for _, p := range r.Parameters {
		v, ok := in[p.Key]
		if !ok {
			out[p.Key] = NotApplicable()
			continue
		}
		n, scored := v.Points()
		if !scored {
			out[p.Key] = v
			continue
		}
		switch {
		case n > p.Max:
			out[p.Key] = Scored(p.Max)
			corrections = append(corrections, Correction{
				Key:       p.Key,
				Original:  v.String(),
				Corrected: Scored(p.Max).String(),
			})
		case n < 0:
			out[p.Key] = Scored(0)
			corrections = append(corrections, Correction{
				Key:       p.Key,
				Original:  v.String(),
				Corrected: Scored(0).String(),
			})
		default:
			out[p.Key] = v
		}
	}
	return out, corrections
}
