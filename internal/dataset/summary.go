package dataset

import (
	"fmt"

	"grievance-insights-go/internal/aggregator"
	"grievance-insights-go/internal/logger"
	"grievance-insights-go/internal/types"
)

// LoadAndSummarize reads the workbook at path and aggregates its grievances,
// classifying rows that carry no severity. The loaded records are returned
// with severities filled in.
func LoadAndSummarize(path string, c aggregator.Classifier) ([]types.GrievanceRecord, types.AnalyticsSummary, error) {
	log := logger.New().Component("dataset.summary").WithField("path", path)
	log.Info("opening dataset for summarization")

	records, err := Load(path)
	if err != nil {
		log.WithError(err).Error("load failed")
		return nil, types.AnalyticsSummary{}, fmt.Errorf("dataset.LoadAndSummarize: %w", err)
	}

	summary := aggregator.Aggregate(records, c)
	log.WithFields(map[string]interface{}{
		"total_grievances": summary.TotalGrievances,
		"high":             summary.SeverityBreakdown[types.SeverityHigh],
		"resolution_rate":  summary.ResolutionRate,
	}).Info("dataset summarization complete")
	return records, summary, nil
}
