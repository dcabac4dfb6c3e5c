package score

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Value
	}{
		{"int float", float64(7), Scored(7)},
		{"numeric string", "7", Scored(7)},
		{"float string", "7.0", Scored(7)},
		{"sentinel", "N/A", NotApplicable()},
		{"sentinel lowercase", "n/a", NotApplicable()},
		{"sentinel padded", "  N/A  ", NotApplicable()},
		{"nil", nil, NotApplicable()},
		{"prose", "excellent", NotApplicable()},
		{"bool", true, NotApplicable()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Coerce(tc.in))
		})
	}
}

func TestValueJSON(t *testing.T) {
	b, err := json.Marshal(Map{"greeting": Scored(9), "listening": NotApplicable()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"greeting": 9, "listening": "N/A"}`, string(b))

	var v Value
	require.NoError(t, json.Unmarshal([]byte(`"N/A"`), &v))
	assert.True(t, v.IsNA())
	require.NoError(t, json.Unmarshal([]byte(`12`), &v))
	assert.Equal(t, Scored(12), v)
}

func TestMapTotal(t *testing.T) {
	m := Map{
		"greeting":  Scored(9),
		"listening": Scored(6),
		"closure":   NotApplicable(),
	}
	total, skipped := m.Total()
	assert.Equal(t, 15, total)
	assert.Equal(t, 1, skipped)
}

func TestClientBehaviorNormalize(t *testing.T) {
	b := ClientBehavior{InterestLevel: " medium ", BudgetCategory: "above_25k"}
	b.Normalize()
	assert.Equal(t, "MEDIUM", b.InterestLevel)
	assert.Equal(t, "ABOVE_25K", b.BudgetCategory)

	b = ClientBehavior{InterestLevel: "enthusiastic", BudgetCategory: "maybe"}
	b.Normalize()
	assert.Equal(t, "CANNOT_DETERMINE", b.InterestLevel)
	assert.Equal(t, "NOT_DISCUSSED", b.BudgetCategory)
}
