package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"grievance-insights-go/internal/pipeline"
	"grievance-insights-go/internal/processor"
	"grievance-insights-go/internal/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}

func TestClassifyText(t *testing.T) {
	out, err := execute(t, "classify", "--title", "Fire in building", "--description", "emergency")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Severity:   High") || !strings.Contains(out, "Confidence: 0.95") {
		t.Errorf("output = %q", out)
	}
}

func TestClassifyJSON(t *testing.T) {
	out, err := execute(t, "classify", "--title", "broken", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var res processor.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if res.Classification.Severity != types.SeverityMedium || res.Classification.Confidence != 0.7 {
		t.Errorf("classification = %+v", res.Classification)
	}
}

func TestClassifyUnknownFormat(t *testing.T) {
	_, err := execute(t, "classify", "--format", "xml")
	if exitCode(err) != 2 {
		t.Errorf("err = %v, want exit code 2", err)
	}
}

func TestClassifyCustomKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kw.yaml")
	if err := os.WriteFile(path, []byte("keyword_sets:\n  High: [pothole]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--keywords", path, "classify", "--title", "Pothole")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Severity:   High") {
		t.Errorf("output = %q", out)
	}

	_, err = execute(t, "--keywords", filepath.Join(t.TempDir(), "missing.yaml"), "classify")
	if exitCode(err) != 3 {
		t.Errorf("err = %v, want exit code 3", err)
	}
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Title", "Description", "Status"},
		{"Flood", "water everywhere", "Resolved"},
		{"Broken light", "", "Pending"},
	}
	for i, row := range rows {
		axis, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", axis, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "in.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeWorkbook(t *testing.T) {
	out, err := execute(t, "analyze", writeWorkbook(t), "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var rep pipeline.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if rep.Summary.TotalGrievances != 2 || rep.Summary.ResolutionRate != 50 {
		t.Errorf("summary = %+v", rep.Summary)
	}
	if len(rep.Records) != 0 {
		t.Error("records should be omitted from JSON output")
	}
}

func TestAnalyzeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"Theft at station","status":"Resolved"}]`))
	}))
	defer srv.Close()

	out, err := execute(t, "analyze", "--url", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Total grievances:    1") || !strings.Contains(out, "Resolution rate:     100.0%") {
		t.Errorf("output = %q", out)
	}
}

func TestAnalyzeArgErrors(t *testing.T) {
	if _, err := execute(t, "analyze"); exitCode(err) != 2 {
		t.Errorf("no source: err = %v, want exit code 2", err)
	}
	if _, err := execute(t, "analyze", "a.xlsx", "--url", "http://x"); exitCode(err) != 2 {
		t.Errorf("both sources: err = %v, want exit code 2", err)
	}
	if _, err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing.xlsx")); exitCode(err) != 4 {
		t.Errorf("missing workbook: err = %v, want exit code 4", err)
	}
}

func TestReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	msg, err := execute(t, "report", writeWorkbook(t), "--out", out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "wrote 2 grievances") {
		t.Errorf("output = %q", msg)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("report not written: %v", err)
	}

	if _, err := execute(t, "report", writeWorkbook(t)); exitCode(err) != 2 {
		t.Errorf("missing --out: err = %v, want exit code 2", err)
	}
}
