package aggregator

import (
	"strconv"
	"strings"

	"grievance-insights-go/internal/types"
)

// Classifier assigns a severity to a grievance lacking one.
type Classifier interface {
	Classify(title, description string) types.ClassificationResult
}

// Aggregate folds records into summary analytics. Records without a
// recognizable severity are classified with c and the label is written back
// into records[i]; callers must not aggregate the same slice concurrently.
//
// Resolution time samples come from records carrying both CreatedAt and
// ResolvedAt; resolved records without timestamps count toward the rate only.
// A nil c labels every unlabeled record Low.
func Aggregate(records []types.GrievanceRecord, c Classifier) types.AnalyticsSummary {
	sevCounts := map[types.Severity]int{
		types.SeverityHigh:   0,
		types.SeverityMedium: 0,
		types.SeverityLow:    0,
	}
	if len(records) == 0 {
		return types.AnalyticsSummary{SeverityBreakdown: sevCounts}
	}

	statuses := map[string]int{}
	cats := map[string]int{}
	resolved := 0
	var days []float64

	for i := range records {
		r := &records[i]
		sev, ok := types.ParseSeverity(string(r.Severity))
		if !ok {
			sev = types.SeverityLow
			if c != nil {
				sev = c.Classify(r.Title, r.Description).Severity
			}
		}
		r.Severity = sev
		sevCounts[sev]++

		if s := strings.TrimSpace(r.Status); s != "" {
			statuses[s]++
		}
		if r.Category != "" {
			cats[r.Category]++
		}
		if r.IsResolved() {
			resolved++
			if d, ok := r.ResolutionDays(); ok {
				days = append(days, d)
			}
		}
	}

	total := len(records)
	avg := 0.0
	if len(days) > 0 {
		sum := 0.0
		for _, d := range days {
			sum += d
		}
		avg = sum / float64(len(days))
	}

	return types.AnalyticsSummary{
		TotalGrievances:   total,
		SeverityBreakdown: sevCounts,
		ResolutionRate:    round1(float64(resolved) / float64(total) * 100),
		AvgResolutionTime: round1(avg),
		ResolvedCount:     resolved,
		PendingCount:      total - resolved,
		StatusBreakdown:   statuses,
		CategoryBreakdown: cats,
	}
}

// round1 rounds to one decimal place, halves to even, on the exact decimal
// value of v: 6.25 becomes 6.2 and 18.75 becomes 18.8.
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
