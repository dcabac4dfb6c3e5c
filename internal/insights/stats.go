package insights

import "call-audit-go/internal/score"

// ComputeStats derives aggregate statistics from per-call summaries when the
// caller supplies none. Each summary may carry a numeric "total_score" and a
// "scores" object holding per-parameter values (integers or "N/A").
func ComputeStats(calls []map[string]any) map[string]any {
	paramSums := map[string]int{}
	paramCounts := map[string]int{}
	naCounts := map[string]int{}
	totalSum := 0.0
	totalCount := 0

	for _, call := range calls {
		if t, ok := call["total_score"].(float64); ok {
			totalSum += t
			totalCount++
		}
		rawScores, ok := call["scores"].(map[string]any)
		if !ok {
			continue
		}
		for key, raw := range rawScores {
			v := score.Coerce(raw)
			if n, scored := v.Points(); scored {
				paramSums[key] += n
				paramCounts[key]++
			} else {
				naCounts[key]++
			}
		}
	}

	paramAverages := map[string]float64{}
	for key, sum := range paramSums {
		paramAverages[key] = float64(sum) / float64(paramCounts[key])
	}

	stats := map[string]any{
		"call_count":         len(calls),
		"parameter_averages": paramAverages,
		"na_counts":          naCounts,
	}
	if totalCount > 0 {
		stats["average_total_score"] = totalSum / float64(totalCount)
	}
	return stats
}
