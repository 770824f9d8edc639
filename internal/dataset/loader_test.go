package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"grievance-insights-go/internal/classifier"
	"grievance-insights-go/internal/types"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", axis, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "grievances.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Grievance ID", "Title", "Description", "Severity", "Status", "Category", "Created At", "Resolved At"},
		{"g-1", "Fire in building", "smoke everywhere", "", "Pending", "safety", "2025-03-01", ""},
		{"g-2", "Broken light", "dark street", "medium", "Resolved", "electricity", "2025-03-01", "2025-03-04"},
		{"g-3", "", "", "", "", "", "", ""},
		{"g-4", "Suggestion", "", "urgentish", "", "", "not a date", ""},
	})

	records, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(records), records)
	}

	first := records[0]
	if first.ID != "g-1" || first.Title != "Fire in building" || first.Category != "safety" {
		t.Errorf("first = %+v", first)
	}
	if first.Severity != "" {
		t.Errorf("blank severity should stay empty, got %q", first.Severity)
	}

	second := records[1]
	if second.Severity != types.SeverityMedium {
		t.Errorf("severity = %q, want Medium", second.Severity)
	}
	if !second.IsResolved() {
		t.Error("expected resolved")
	}
	if d, ok := second.ResolutionDays(); !ok || d != 3 {
		t.Errorf("resolution days = %v, %v; want 3", d, ok)
	}

	if records[2].Severity != "" || !records[2].CreatedAt.IsZero() {
		t.Errorf("unparseable cells should be dropped: %+v", records[2])
	}
}

func TestLoadErrors(t *testing.T) {
	noText := writeWorkbook(t, [][]interface{}{{"ID", "Status"}, {"1", "Resolved"}})
	if _, err := Load(noText); err == nil {
		t.Error("expected error without title/description columns")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2025-03-01", "03-01-25", "3/1/2025", "2025-03-01T00:00:00Z"} {
		if got := parseDate(s); !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", s, got, want)
		}
	}
	if !parseDate("").IsZero() {
		t.Error("empty string should parse to zero time")
	}
}

func TestLoadAndSummarize(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Title", "Description", "Status"},
		{"Flood in basement", "water rising", "Resolved"},
		{"Broken bench", "", "Pending"},
	})
	records, summary, err := LoadAndSummarize(path, classifier.New(classifier.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalGrievances != 2 || summary.ResolvedCount != 1 || summary.ResolutionRate != 50 {
		t.Errorf("summary = %+v", summary)
	}
	if records[0].Severity != types.SeverityHigh || records[1].Severity != types.SeverityMedium {
		t.Errorf("severities = %q, %q", records[0].Severity, records[1].Severity)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"Title", "Description", "Status"}})
	records, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}

	_, summary, err := LoadAndSummarize(path, classifier.New(classifier.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalGrievances != 0 || summary.ResolutionRate != 0 || len(summary.SeverityBreakdown) != 3 {
		t.Errorf("summary = %+v", summary)
	}
}
