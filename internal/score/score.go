// Package score turns semi-structured LLM evaluation text into a strict,
// validated scorecard. The primary path parses a marker-delimited JSON block;
// when that fails the regex fallback scrapes the labeled score lines instead.
package score

import (
	"encoding/json"
	"strconv"
	"strings"
)

// sentinel is the wire form of a score that does not apply to the call.
const sentinel = "N/A"

// Value is a tagged score: either an integer number of points or
// NotApplicable. Keeping the two cases apart forces anything doing arithmetic
// over scores to handle the N/A case explicitly instead of treating it as 0.
type Value struct {
	scored bool
	points int
}

// Scored wraps an integer score.
func Scored(points int) Value {
	return Value{scored: true, points: points}
}

// NotApplicable is the sentinel value for a parameter the call never reached.
func NotApplicable() Value {
	return Value{}
}

// IsNA reports whether the value is the sentinel.
func (v Value) IsNA() bool {
	return !v.scored
}

// Points returns the integer score; ok is false for the sentinel.
func (v Value) Points() (int, bool) {
	return v.points, v.scored
}

func (v Value) String() string {
	if !v.scored {
		return sentinel
	}
	return strconv.Itoa(v.points)
}

// MarshalJSON emits the integer or the literal "N/A" string, matching the
// shape the rubric prompt asks the model for.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.scored {
		return json.Marshal(sentinel)
	}
	return json.Marshal(v.points)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = Coerce(raw)
	return nil
}

// Coerce maps a loosely-typed JSON value onto a Value. The case-insensitive
// sentinel string, null and anything that cannot be read as an integer all
// collapse to NotApplicable; numeric strings and whole floats are accepted
// because models emit both.
func Coerce(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return NotApplicable()
	case float64:
		return Scored(int(t))
	case int:
		return Scored(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Scored(int(n))
		}
		if f, err := t.Float64(); err == nil {
			return Scored(int(f))
		}
		return NotApplicable()
	case string:
		s := strings.TrimSpace(t)
		if strings.EqualFold(s, sentinel) {
			return NotApplicable()
		}
		if n, err := strconv.Atoi(s); err == nil {
			return Scored(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Scored(int(f))
		}
		return NotApplicable()
	default:
		return NotApplicable()
	}
}

// Map holds one Value per rubric parameter key. Every key of the active
// rubric is present after extraction and validation.
type Map map[string]Value

// ConsultationChecklist captures whether the call was a consultation booking
// call and, when it was, which checklist items the agent covered. The five
// item fields are null when IsBookingCall is false.
type ConsultationChecklist struct {
	IsBookingCall        bool  `json:"is_booking_call"`
	PhotosRequested      *bool `json:"photos_requested"`
	BudgetDiscussed      *bool `json:"budget_discussed"`
	TimelineDiscussed    *bool `json:"timeline_discussed"`
	BranchLocationShared *bool `json:"branch_location_shared"`
	ConsultationBooked   *bool `json:"consultation_booked"`
}

// ClientBehavior summarizes the prospect's stance as judged by the model.
type ClientBehavior struct {
	InterestLevel  string `json:"interest_level"`
	BudgetCategory string `json:"budget_category"`
	Reasoning      string `json:"reasoning"`
}

var interestLevels = map[string]bool{
	"HIGH": true, "MEDIUM": true, "LOW": true, "CANNOT_DETERMINE": true,
}

var budgetCategories = map[string]bool{
	"ABOVE_25K": true, "BELOW_25K": true, "NOT_DISCUSSED": true,
}

// Normalize uppercases the enum fields and replaces anything outside the
// allowed sets with the respective unknown member.
func (b *ClientBehavior) Normalize() {
	b.InterestLevel = strings.ToUpper(strings.TrimSpace(b.InterestLevel))
	if !interestLevels[b.InterestLevel] {
		b.InterestLevel = "CANNOT_DETERMINE"
	}
	b.BudgetCategory = strings.ToUpper(strings.TrimSpace(b.BudgetCategory))
	if !budgetCategories[b.BudgetCategory] {
		b.BudgetCategory = "NOT_DISCUSSED"
	}
}

// Total sums the scored values; N/A entries are skipped and reported in the
// second return so callers can surface partial coverage.
func (m Map) Total() (total int, skipped int) {
	for _, v := range m {
		if n, ok := v.Points(); ok {
			total += n
		} else {
			skipped++
		}
	}
	return total, skipped
}
