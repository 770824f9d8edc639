// Package report exports batch analytics to an xlsx workbook.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"grievance-insights-go/internal/types"
)

const (
	summarySheet    = "Summary"
	grievancesSheet = "Grievances"
)

// WriteWorkbook saves summary and the tagged records to path, one sheet each.
func WriteWorkbook(path string, summary types.AnalyticsSummary, records []types.GrievanceRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("report.WriteWorkbook: %w", err)
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total grievances", summary.TotalGrievances},
		{"High", summary.SeverityBreakdown[types.SeverityHigh]},
		{"Medium", summary.SeverityBreakdown[types.SeverityMedium]},
		{"Low", summary.SeverityBreakdown[types.SeverityLow]},
		{"Resolved", summary.ResolvedCount},
		{"Pending", summary.PendingCount},
		{"Resolution rate (%)", summary.ResolutionRate},
		{"Avg resolution time (days)", summary.AvgResolutionTime},
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return fmt.Errorf("report.WriteWorkbook: %w", err)
	}

	if _, err := f.NewSheet(grievancesSheet); err != nil {
		return fmt.Errorf("report.WriteWorkbook: %w", err)
	}
	rows = [][]interface{}{{"ID", "Title", "Severity", "Status", "Category"}}
	for _, r := range records {
		rows = append(rows, []interface{}{r.ID, r.Title, string(r.Severity), r.Status, r.Category})
	}
	if err := writeRows(f, grievancesSheet, rows); err != nil {
		return fmt.Errorf("report.WriteWorkbook: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report.WriteWorkbook: save: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
