package types

import (
	"strings"
	"time"
)

// Severity is the urgency label assigned to a grievance.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Severities lists every label, highest first.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// ParseSeverity maps a label in any case ("high", "HIGH") to its Severity.
func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range Severities {
		if strings.EqualFold(strings.TrimSpace(s), string(sev)) {
			return sev, true
		}
	}
	return "", false
}

const StatusResolved = "Resolved"

type GrievanceRecord struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity,omitempty"`
	Status      string    `json:"status,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	ResolvedAt  time.Time `json:"resolved_at,omitzero"`
}

// IsResolved reports whether the record's status is "Resolved". Unlike an
// exact comparison it ignores case and surrounding spaces, since intake
// systems store the status as "resolved".
func (g GrievanceRecord) IsResolved() bool {
	return strings.EqualFold(strings.TrimSpace(g.Status), StatusResolved)
}

// ResolutionDays is the elapsed time between creation and resolution in days.
// ok is false when either timestamp is missing or they are out of order.
func (g GrievanceRecord) ResolutionDays() (days float64, ok bool) {
	if g.CreatedAt.IsZero() || g.ResolvedAt.IsZero() || g.ResolvedAt.Before(g.CreatedAt) {
		return 0, false
	}
	return g.ResolvedAt.Sub(g.CreatedAt).Hours() / 24, true
}

type FeatureBundle struct {
	Text          string           `json:"text"`
	KeywordScores map[Severity]int `json:"keyword_scores"`
	TextLength    int              `json:"text_length"`
	UrgencyScore  int              `json:"urgency_score"`
}

type ClassificationResult struct {
	Severity   Severity         `json:"severity"`
	Confidence float64          `json:"confidence"`
	Features   FeatureBundle    `json:"features"`
	Scores     map[Severity]int `json:"scores"`
}

type AnalyticsSummary struct {
	TotalGrievances   int              `json:"total_grievances"`
	SeverityBreakdown map[Severity]int `json:"severity_breakdown"`
	ResolutionRate    float64          `json:"resolution_rate"`
	AvgResolutionTime float64          `json:"avg_resolution_time"`
	ResolvedCount     int              `json:"resolved_count"`
	PendingCount      int              `json:"pending_count"`
	StatusBreakdown   map[string]int   `json:"status_breakdown,omitempty"`
	CategoryBreakdown map[string]int   `json:"category_breakdown,omitempty"`
}
