package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"grievance-insights-go/internal/types"
)

// dateLayouts are tried in order for created/resolved cells. "01-02-06" is
// how excelize renders cells with the default date number format.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01-02-06",
	"1/2/2006",
}

type columns struct {
	id, title, description, severity, status, category, created, resolved int
}

// Load reads grievance rows from the first sheet of an xlsx workbook. Columns
// are found by header name; rows with neither a title nor a description are
// skipped. Missing cells are left empty. An empty sheet or a header-only
// sheet yields no records.
func Load(path string) ([]types.GrievanceRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := detectColumns(rows[0])
	if cols.title == -1 && cols.description == -1 {
		return nil, fmt.Errorf("no title or description column in header %v", rows[0])
	}

	var out []types.GrievanceRecord
	for _, r := range rows[1:] {
		rec := types.GrievanceRecord{
			ID:          cell(r, cols.id),
			Title:       cell(r, cols.title),
			Description: cell(r, cols.description),
			Status:      cell(r, cols.status),
			Category:    cell(r, cols.category),
			CreatedAt:   parseDate(cell(r, cols.created)),
			ResolvedAt:  parseDate(cell(r, cols.resolved)),
		}
		if sev, ok := types.ParseSeverity(cell(r, cols.severity)); ok {
			rec.Severity = sev
		}
		if rec.Title == "" && rec.Description == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func detectColumns(header []string) columns {
	c := columns{-1, -1, -1, -1, -1, -1, -1, -1}
	set := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "resolved") || strings.Contains(l, "closed"):
			set(&c.resolved, i)
		case strings.Contains(l, "created") || strings.Contains(l, "submitted") || strings.Contains(l, "filed"):
			set(&c.created, i)
		case strings.Contains(l, "title") || strings.Contains(l, "subject"):
			set(&c.title, i)
		case strings.Contains(l, "description") || strings.Contains(l, "details") || strings.Contains(l, "text"):
			set(&c.description, i)
		case strings.Contains(l, "severity") || strings.Contains(l, "priority"):
			set(&c.severity, i)
		case strings.Contains(l, "status") || strings.Contains(l, "state"):
			set(&c.status, i)
		case strings.Contains(l, "category") || strings.Contains(l, "department"):
			set(&c.category, i)
		case l == "id" || strings.HasSuffix(l, " id") || strings.HasSuffix(l, "_id"):
			set(&c.id, i)
		}
	}
	return c
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
