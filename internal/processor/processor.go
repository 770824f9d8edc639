package processor

import (
	"time"

	"github.com/google/uuid"
	"grievance-insights-go/internal/classifier"
	"grievance-insights-go/internal/types"
)

// Result is returned by /classify
type Result struct {
	ID             string                     `json:"id"`
	Title          string                     `json:"title"`
	Classification types.ClassificationResult `json:"classification"`
	DurationMs     int64                      `json:"duration_ms"`
}

// Process classifies a single grievance. A record without an ID is given a
// fresh one; the record itself is not modified.
func Process(rec types.GrievanceRecord, s *classifier.Scorer) Result {
	start := time.Now()
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}
	res := Result{
		ID:             id,
		Title:          rec.Title,
		Classification: s.Classify(rec.Title, rec.Description),
	}
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}
