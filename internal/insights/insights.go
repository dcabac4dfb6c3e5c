// Package insights re-prompts the LLM over prior per-call audit outputs to
// produce agent coaching narratives at daily, weekly and monthly grain.
package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"call-audit-go/internal/llm"
	"call-audit-go/internal/logger"
)

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Insights is the fixed coaching schema every aggregate endpoint returns.
type Insights struct {
	Mistakes    []string `json:"mistakes"`
	Strengths   []string `json:"strengths"`
	ActionItems []string `json:"action_items"`
}

// FallbackInsights is returned when the model's JSON cannot be parsed. The
// request still succeeds; the caller sees placeholder entries.
func FallbackInsights() Insights {
	return Insights{
		Mistakes:    []string{"error"},
		Strengths:   []string{"error"},
		ActionItems: []string{"error"},
	}
}

type Generator struct {
	llm Completer
}

func NewGenerator(c Completer) *Generator {
	return &Generator{llm: c}
}

type ConsolidatedInput struct {
	AgentName string
	Date      string
	Calls     []map[string]any
	Stats     map[string]any
}

type WeeklyInput struct {
	AgentName      string
	WeekStart      string
	WeekEnd        string
	DailySummaries []map[string]any
	Stats          map[string]any
}

type MonthlyInput struct {
	AgentName          string
	Month              int
	Year               int
	WeeklySummaries    []map[string]any
	Stats              map[string]any
	PreviousMonthStats map[string]any
}

// Consolidated builds the daily coaching summary for one agent.
func (g *Generator) Consolidated(ctx context.Context, in ConsolidatedInput) (Insights, error) {
	stats := in.Stats
	if len(stats) == 0 {
		stats = ComputeStats(in.Calls)
	}
	prompt := fmt.Sprintf(`You are a sales coaching engine. Below are the audited calls of agent %q for %s, followed by aggregate statistics.

CALLS:
%s

AGGREGATE STATS:
%s

%s`, in.AgentName, in.Date, mustJSON(in.Calls), mustJSON(stats), outputContract)
	return g.generate(ctx, prompt)
}

// Weekly builds the weekly coaching summary from the week's daily summaries.
func (g *Generator) Weekly(ctx context.Context, in WeeklyInput) (Insights, error) {
	prompt := fmt.Sprintf(`You are a sales coaching engine. Below are the daily audit summaries of agent %q for the week %s to %s, followed by aggregate statistics.

DAILY SUMMARIES:
%s

AGGREGATE STATS:
%s

%s`, in.AgentName, in.WeekStart, in.WeekEnd, mustJSON(in.DailySummaries), mustJSON(in.Stats), outputContract)
	return g.generate(ctx, prompt)
}

// Monthly builds the monthly coaching summary, optionally contrasting against
// the previous month's statistics.
func (g *Generator) Monthly(ctx context.Context, in MonthlyInput) (Insights, error) {
	comparison := ""
	if len(in.PreviousMonthStats) > 0 {
		comparison = fmt.Sprintf("\nPREVIOUS MONTH STATS (for trend comparison):\n%s\n", mustJSON(in.PreviousMonthStats))
	}
	prompt := fmt.Sprintf(`You are a sales coaching engine. Below are the weekly audit summaries of agent %q for %d/%d, followed by aggregate statistics.

WEEKLY SUMMARIES:
%s

AGGREGATE STATS:
%s
%s
%s`, in.AgentName, in.Month, in.Year, mustJSON(in.WeeklySummaries), mustJSON(in.Stats), comparison, outputContract)
	return g.generate(ctx, prompt)
}

const outputContract = `Return ONLY a JSON object with exactly these keys:
"mistakes" (list of recurring mistakes, most impactful first),
"strengths" (list of consistent strengths),
"action_items" (list of concrete coaching actions: owner + what + by when).
Ground every entry in the supplied data. Do not invent numbers. Do not wrap the JSON in backticks.`

// generate runs the completion and parses the coaching JSON. A parse failure
// is not an error: the fixed fallback payload is returned instead, matching
// the endpoint contract of always answering 200 once the model responded.
func (g *Generator) generate(ctx context.Context, prompt string) (Insights, error) {
	log := logger.New().WithComponent("insights")

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return Insights{}, fmt.Errorf("coaching generation failed: %w", err)
	}

	block := llm.ExtractJSON(raw)
	if block == "" {
		log.Warn("no JSON object in coaching response, using fallback payload")
		return FallbackInsights(), nil
	}
	var out Insights
	if err := json.Unmarshal([]byte(block), &out); err != nil {
		log.WithError(err).Warn("coaching JSON unparseable, using fallback payload")
		return FallbackInsights(), nil
	}
	return out, nil
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
