package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"grievance-insights-go/internal/types"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	summary := types.AnalyticsSummary{
		TotalGrievances: 2,
		ResolutionRate:  50,
		ResolvedCount:   1,
		PendingCount:    1,
	}
	summary.SeverityBreakdown = map[types.Severity]int{
		types.SeverityHigh:   1,
		types.SeverityMedium: 0,
		types.SeverityLow:    1,
	}
	records := []types.GrievanceRecord{
		{ID: "1", Title: "Fire", Severity: types.SeverityHigh, Status: "Pending"},
		{ID: "2", Title: "Feedback", Severity: types.SeverityLow, Status: "Resolved"},
	}
	if err := WriteWorkbook(path, summary, records); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(summarySheet, "B2"); got != "2" {
		t.Errorf("total cell = %q, want 2", got)
	}
	if got, _ := f.GetCellValue(summarySheet, "B8"); got != "50" {
		t.Errorf("resolution rate cell = %q, want 50", got)
	}
	rows, err := f.GetRows(grievancesSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("grievance rows = %d, want 3", len(rows))
	}
	if rows[1][2] != "High" || rows[2][3] != "Resolved" {
		t.Errorf("rows = %v", rows)
	}
}
