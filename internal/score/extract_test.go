package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-audit-go/internal/rubric"
)

func TestExtract_MarkerRoundTrip(t *testing.T) {
	raw := "The agent opened well and listened actively.\n\n" +
		"<<<SCORES_11_JSON_START>>>\n" +
		`{"greeting": 9, "listening": 7, "understanding_needs": "N/A", "call_closure": 5}` +
		"\n<<<SCORES_11_JSON_END>>>\n"

	ext, err := Extract(rubric.V2, raw)
	require.NoError(t, err)

	assert.Equal(t, Scored(9), ext.Scores["greeting"])
	assert.Equal(t, Scored(7), ext.Scores["listening"])
	assert.Equal(t, NotApplicable(), ext.Scores["understanding_needs"])
	assert.Equal(t, Scored(5), ext.Scores["call_closure"])

	// keys absent from the block are still present, as the sentinel
	for _, key := range rubric.V2.Keys() {
		_, ok := ext.Scores[key]
		assert.True(t, ok, "missing key %s", key)
	}
	assert.Equal(t, NotApplicable(), ext.Scores["hairline_types"])

	// report is everything before the start marker, right-trimmed
	assert.Equal(t, "The agent opened well and listened actively.", ext.Report)
}

func TestExtract_NoStartMarker(t *testing.T) {
	_, err := Extract(rubric.V2, "no machine block in this text at all")
	assert.ErrorIs(t, err, ErrNoStartMarker)
}

func TestExtract_NoEndMarker(t *testing.T) {
	raw := "report text\n<<<SCORES_11_JSON_START>>>\n{\"greeting\": 5}\n"
	_, err := Extract(rubric.V2, raw)
	assert.ErrorIs(t, err, ErrNoEndMarker)
}

func TestExtract_MalformedJSON(t *testing.T) {
	raw := "report text\n<<<SCORES_11_JSON_START>>>\nnot json\n<<<SCORES_11_JSON_END>>>"
	_, err := Extract(rubric.V2, raw)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoStartMarker)
	assert.NotErrorIs(t, err, ErrNoEndMarker)
}

func TestExtract_SentinelCaseInsensitive(t *testing.T) {
	raw := "r\n<<<SCORES_11_JSON_START>>>\n" +
		`{"greeting": "n/a", "listening": "N/a"}` +
		"\n<<<SCORES_11_JSON_END>>>"

	ext, err := Extract(rubric.V2, raw)
	require.NoError(t, err)
	assert.Equal(t, NotApplicable(), ext.Scores["greeting"])
	assert.Equal(t, NotApplicable(), ext.Scores["listening"])
}

func TestExtract_NonCoercibleValueBecomesSentinel(t *testing.T) {
	raw := "r\n<<<SCORES_11_JSON_START>>>\n" +
		`{"greeting": "excellent", "listening": [7], "call_closure": "6"}` +
		"\n<<<SCORES_11_JSON_END>>>"

	ext, err := Extract(rubric.V2, raw)
	require.NoError(t, err)
	assert.Equal(t, NotApplicable(), ext.Scores["greeting"])
	assert.Equal(t, NotApplicable(), ext.Scores["listening"])
	assert.Equal(t, Scored(6), ext.Scores["call_closure"], "numeric strings coerce")
}

func TestExtract_V1Markers(t *testing.T) {
	raw := "legacy report\n<<<SCORES_JSON_START>>>\n" +
		`{"greeting": 14, "listening": 12}` +
		"\n<<<SCORES_JSON_END>>>"

	ext, err := Extract(rubric.V1, raw)
	require.NoError(t, err)
	assert.Equal(t, Scored(14), ext.Scores["greeting"])
	assert.Equal(t, Scored(12), ext.Scores["listening"])
	assert.Len(t, ext.Scores, len(rubric.V1.Parameters))
	assert.Nil(t, ext.Checklist)
	assert.Nil(t, ext.Behavior)
}

func TestExtract_ConsultationChecklist(t *testing.T) {
	raw := "r\n<<<SCORES_11_JSON_START>>>\n" +
		`{"greeting": 8, "consultation_checklist": {"is_booking_call": true, "photos_requested": true, "budget_discussed": false, "timeline_discussed": true, "branch_location_shared": false, "consultation_booked": true}}` +
		"\n<<<SCORES_11_JSON_END>>>"

	ext, err := Extract(rubric.V2, raw)
	require.NoError(t, err)
	require.NotNil(t, ext.Checklist)
	assert.True(t, ext.Checklist.IsBookingCall)
	require.NotNil(t, ext.Checklist.PhotosRequested)
	assert.True(t, *ext.Checklist.PhotosRequested)
	require.NotNil(t, ext.Checklist.BudgetDiscussed)
	assert.False(t, *ext.Checklist.BudgetDiscussed)
}

func TestExtract_ChecklistItemsNullForNonBookingCall(t *testing.T) {
	raw := "r\n<<<SCORES_11_JSON_START>>>\n" +
		`{"consultation_checklist": {"is_booking_call": false, "photos_requested": true, "budget_discussed": true}}` +
		"\n<<<SCORES_11_JSON_END>>>"

	ext, err := Extract(rubric.V2, raw)
	require.NoError(t, err)
	require.NotNil(t, ext.Checklist)
	assert.False(t, ext.Checklist.IsBookingCall)
	assert.Nil(t, ext.Checklist.PhotosRequested)
	assert.Nil(t, ext.Checklist.BudgetDiscussed)
	assert.Nil(t, ext.Checklist.ConsultationBooked)
}

func TestExtract_ClientBehaviorNormalized(t *testing.T) {
	raw := "r\n<<<SCORES_11_JSON_START>>>\n" +
		`{"client_behavior": {"interest_level": "high", "budget_category": "somewhere around 30k", "reasoning": "asked about EMI"}}` +
		"\n<<<SCORES_11_JSON_END>>>"

	ext, err := Extract(rubric.V2, raw)
	require.NoError(t, err)
	require.NotNil(t, ext.Behavior)
	assert.Equal(t, "HIGH", ext.Behavior.InterestLevel)
	assert.Equal(t, "NOT_DISCUSSED", ext.Behavior.BudgetCategory)
	assert.Equal(t, "asked about EMI", ext.Behavior.Reasoning)
}

// End-to-end extraction plus validation over the 11-parameter rubric.
func TestExtractThenValidate_Scenario(t *testing.T) {
	raw := "...report text...\n" +
		"<<<SCORES_11_JSON_START>>>\n" +
		`{"greeting": 14, "listening": 7, "hairline_types": "N/A"}` +
		"\n<<<SCORES_11_JSON_END>>>"

	ext, err := Extract(rubric.V2, raw)
	require.NoError(t, err)

	validated, corrections := Validate(rubric.V2, ext.Scores)
	assert.Equal(t, Scored(10), validated["greeting"], "capped from 14")
	assert.Equal(t, Scored(7), validated["listening"])
	assert.Equal(t, NotApplicable(), validated["hairline_types"])
	for _, key := range []string{"understanding_needs", "call_closure", "trust_building", "product_explanation", "brand_differentiation", "budget_justification", "delivery_timeline", "servicing_details"} {
		assert.Equal(t, NotApplicable(), validated[key], key)
	}
	require.Len(t, corrections, 1)
	assert.Equal(t, "greeting", corrections[0].Key)
	assert.Equal(t, "...report text...", ext.Report)
}
