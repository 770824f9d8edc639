package actionable

import (
	"fmt"

	"grievance-insights-go/internal/types"
)

const (
	highShareThreshold = 0.35
	minResolutionRate  = 50.0
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate picks the most pressing follow-up for a batch summary. A large
// share of High grievances outranks a slow resolution rate.
func Generate(s types.AnalyticsSummary) ActionCard {
	if s.TotalGrievances == 0 {
		return ActionCard{
			Insight: "No grievances in this batch",
			Action:  "Monitor intake",
			Impact:  "None",
		}
	}

	high := s.SeverityBreakdown[types.SeverityHigh]
	share := float64(high) / float64(s.TotalGrievances)
	if share >= highShareThreshold {
		return ActionCard{
			Insight: fmt.Sprintf("High severity share is %.0f%% (%d of %d)", share*100, high, s.TotalGrievances),
			Action:  "Escalate High grievances to field supervisors and assign same-day responders",
			Impact:  "Shorter exposure to safety hazards",
		}
	}
	if s.ResolutionRate < minResolutionRate && s.PendingCount > 0 {
		return ActionCard{
			Insight: fmt.Sprintf("Only %.1f%% resolved, %d pending", s.ResolutionRate, s.PendingCount),
			Action:  "Clear the pending backlog, oldest Medium grievances first",
			Impact:  "Higher resolution rate and fewer repeat reports",
		}
	}
	return ActionCard{
		Insight: "No strong severity or backlog pattern detected",
		Action:  "Monitor and collect more data",
		Impact:  "Low immediate intervention",
	}
}
