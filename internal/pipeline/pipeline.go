// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"grievance-insights-go/internal/actionable"
	"grievance-insights-go/internal/aggregator"
	"grievance-insights-go/internal/dataset"
	"grievance-insights-go/internal/logger"
	"grievance-insights-go/internal/types"
)

// Source supplies a batch of grievance records.
type Source interface {
	Fetch(ctx context.Context) ([]types.GrievanceRecord, error)
}

// WorkbookSource reads records from an xlsx workbook on disk.
type WorkbookSource struct {
	Path string
}

func (w WorkbookSource) Fetch(ctx context.Context) ([]types.GrievanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataset.Load(w.Path)
}

// StaticSource serves a fixed batch, as posted to the API.
type StaticSource []types.GrievanceRecord

func (s StaticSource) Fetch(context.Context) ([]types.GrievanceRecord, error) {
	return s, nil
}

type Report struct {
	Summary    types.AnalyticsSummary  `json:"summary"`
	ActionCard actionable.ActionCard   `json:"action_card"`
	Records    []types.GrievanceRecord `json:"records,omitempty"`
	DurationMs int64                   `json:"duration_ms"`
}

// Run fetches one batch from src, classifies and aggregates it, and derives
// an action card. The returned records carry their severities.
func Run(ctx context.Context, src Source, c aggregator.Classifier) (Report, error) {
	log := logger.New().Component("pipeline")
	start := time.Now()

	records, err := src.Fetch(ctx)
	if err != nil {
		log.WithError(err).Error("fetch failed")
		return Report{}, fmt.Errorf("pipeline.Run: fetch: %w", err)
	}

	summary := aggregator.Aggregate(records, c)
	rep := Report{
		Summary:    summary,
		ActionCard: actionable.Generate(summary),
		Records:    records,
		DurationMs: time.Since(start).Milliseconds(),
	}
	log.WithField("total_grievances", summary.TotalGrievances).
		WithField("duration_ms", rep.DurationMs).
		Info("pipeline finished")
	return rep, nil
}
