package rubric

import "fmt"

// DefaultPolicy controls what the regex fallback stores for a parameter whose
// label never matched. The two deployed rubric generations disagree on this
// and are kept apart on purpose: the 9-parameter rubric predates "N/A"
// semantics and records a zero, the 11-parameter rubric records NotApplicable.
type DefaultPolicy int

const (
	DefaultZero DefaultPolicy = iota
	DefaultNotApplicable
)

// Parameter is one scored dimension of a call evaluation.
type Parameter struct {
	Key          string // JSON key inside the marker block
	Label        string // heading used in the human-readable report
	LabelPattern string // regex fragment locating the heading in free text
	Max          int
}

// Rubric bundles everything version-specific about an evaluation: the
// parameter set with per-key maxima, the marker strings bounding the machine
// block, and the fallback default policy. Extraction and validation are
// generic over a Rubric so the versions never fork the code paths.
type Rubric struct {
	Version         string
	StartMarker     string
	EndMarker       string
	Parameters      []Parameter
	FallbackDefault DefaultPolicy

	// HasCallMetadata marks rubrics whose marker block also carries the
	// consultation checklist and client behavior objects.
	HasCallMetadata bool
}

// Keys returns the parameter keys in rubric order.
func (r Rubric) Keys() []string {
	keys := make([]string, len(r.Parameters))
	for i, p := range r.Parameters {
		keys[i] = p.Key
	}
	return keys
}

// Max returns the maximum score for key, or false for an unknown key.
func (r Rubric) Max(key string) (int, bool) {
	for _, p := range r.Parameters {
		if p.Key == key {
			return p.Max, true
		}
	}
	return 0, false
}

// V1 is the original 9-parameter sales call rubric.
var V1 = Rubric{
	Version:         "v1",
	StartMarker:     "<<<SCORES_JSON_START>>>",
	EndMarker:       "<<<SCORES_JSON_END>>>",
	FallbackDefault: DefaultZero,
	Parameters: []Parameter{
		{Key: "greeting", Label: "Professional Greeting & Introduction", LabelPattern: `Professional\s+Greeting\s*&\s*Introduction`, Max: 15},
		{Key: "listening", Label: "Active Listening & Empathy", LabelPattern: `Active\s+Listening\s*&\s*Empathy`, Max: 15},
		{Key: "understanding_needs", Label: "Understanding Customer's Needs", LabelPattern: `Understanding\s+Customer[’']?s\s+Needs`, Max: 10},
		{Key: "product_explanation", Label: "Product/Service Explanation", LabelPattern: `Product/?Service\s+Explanation`, Max: 10},
		{Key: "personalization", Label: "Personalization & Lifestyle Suitability", LabelPattern: `Personalization\s*&\s*Lifestyle(?:\s*Suitability)?`, Max: 10},
		{Key: "objection_handling", Label: "Handling Objections & Answering Queries", LabelPattern: `Handling\s+Objections\s*&\s*Answering\s+Queries`, Max: 10},
		{Key: "pricing_communication", Label: "Pricing & Value Communication", LabelPattern: `Pricing\s*&\s*Value\s+Communication`, Max: 10},
		{Key: "trust_building", Label: "Trust & Confidence Building", LabelPattern: `Trust\s*&\s*Confidence\s+Building`, Max: 10},
		{Key: "call_closure", Label: "Call Closure & Next Step Commitment", LabelPattern: `Call\s+Closure\s*&\s*Next\s+Step\s+Commitment`, Max: 10},
	},
}

// V2 is the 11-parameter rubric with "N/A" semantics and the consultation
// checklist / client behavior metadata.
var V2 = Rubric{
	Version:         "v2",
	StartMarker:     "<<<SCORES_11_JSON_START>>>",
	EndMarker:       "<<<SCORES_11_JSON_END>>>",
	FallbackDefault: DefaultNotApplicable,
	HasCallMetadata: true,
	Parameters: []Parameter{
		{Key: "greeting", Label: "Professional Greeting & Introduction", LabelPattern: `Professional\s+Greeting\s*&\s*Introduction`, Max: 10},
		{Key: "listening", Label: "Active Listening & Empathy", LabelPattern: `Active\s+Listening\s*&\s*Empathy`, Max: 10},
		{Key: "understanding_needs", Label: "Understanding Customer's Needs", LabelPattern: `Understanding\s+Customer[’']?s\s+Needs`, Max: 8},
		{Key: "call_closure", Label: "Call Closure & Next Step Commitment", LabelPattern: `Call\s+Closure\s*&\s*Next\s+Step\s+Commitment`, Max: 8},
		{Key: "trust_building", Label: "Trust & Confidence Building", LabelPattern: `Trust\s*&\s*Confidence\s+Building`, Max: 8},
		{Key: "product_explanation", Label: "Product/Service Explanation", LabelPattern: `Product/?Service\s+Explanation`, Max: 10},
		{Key: "hairline_types", Label: "Hairline Types & Customization", LabelPattern: `Hairline\s+Types(?:\s*&\s*Customization)?`, Max: 8},
		{Key: "brand_differentiation", Label: "Brand Differentiation", LabelPattern: `Brand\s+Differentiation`, Max: 10},
		{Key: "budget_justification", Label: "Budget Justification & Value", LabelPattern: `Budget\s+Justification(?:\s*&\s*Value)?`, Max: 10},
		{Key: "delivery_timeline", Label: "Delivery Timeline Commitment", LabelPattern: `Delivery\s+Timeline(?:\s+Commitment)?`, Max: 8},
		{Key: "servicing_details", Label: "Servicing & Aftercare Details", LabelPattern: `Servicing\s*(?:&\s*Aftercare)?\s*Details`, Max: 10},
	},
}

// ByVersion resolves a configured rubric version string.
func ByVersion(v string) (Rubric, error) {
	switch v {
	case "v1":
		return V1, nil
	case "v2", "":
		return V2, nil
	}
	return Rubric{}, fmt.Errorf("unknown rubric version %q", v)
}
