package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"grievance-insights-go/internal/classifier"
	"grievance-insights-go/internal/intake"
	"grievance-insights-go/internal/pipeline"
	"grievance-insights-go/internal/processor"
	"grievance-insights-go/internal/report"
	"grievance-insights-go/internal/types"
)

type globalFlags struct {
	keywords string
}

func (g *globalFlags) scorer() (*classifier.Scorer, error) {
	cfg := classifier.DefaultConfig()
	if g.keywords != "" {
		var err error
		if cfg, err = classifier.LoadConfig(g.keywords); err != nil {
			return nil, exitError(3, "failed to load keywords: %v", err)
		}
	}
	return classifier.New(cfg), nil
}

func newClassifyCmd(g *globalFlags) *cobra.Command {
	var title, description, format string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single grievance",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.scorer()
			if err != nil {
				return err
			}
			res := processor.Process(types.GrievanceRecord{Title: title, Description: description}, s)
			return writeClassification(cmd.OutOrStdout(), res, format)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "Grievance title")
	flags.StringVar(&description, "description", "", "Grievance description")
	flags.StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

type analyzeFlags struct {
	url     string
	timeout time.Duration
	format  string
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [workbook.xlsx]",
		Short: "Summarize a batch of grievances from a workbook or the intake service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := sourceFor(args, f)
			if err != nil {
				return err
			}
			rep, err := runPipeline(cmd.Context(), src, g, f.timeout)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), rep, f.format)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.url, "url", "", "Intake service base URL (instead of a workbook)")
	flags.DurationVar(&f.timeout, "timeout", 30*time.Second, "Overall fetch timeout")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	return cmd
}

func newReportCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}
	var out string
	cmd := &cobra.Command{
		Use:   "report [workbook.xlsx]",
		Short: "Write batch analytics and tagged grievances to an xlsx workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return exitError(2, "--out is required")
			}
			src, err := sourceFor(args, f)
			if err != nil {
				return err
			}
			rep, err := runPipeline(cmd.Context(), src, g, f.timeout)
			if err != nil {
				return err
			}
			if err := report.WriteWorkbook(out, rep.Summary, rep.Records); err != nil {
				return exitError(5, "failed to write report: %v", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d grievances to %s\n", rep.Summary.TotalGrievances, out)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&out, "out", "", "Output workbook path")
	flags.StringVar(&f.url, "url", "", "Intake service base URL (instead of a workbook)")
	flags.DurationVar(&f.timeout, "timeout", 30*time.Second, "Overall fetch timeout")
	return cmd
}

func sourceFor(args []string, f *analyzeFlags) (pipeline.Source, error) {
	switch {
	case len(args) == 1 && f.url != "":
		return nil, exitError(2, "pass either a workbook or --url, not both")
	case len(args) == 1:
		return pipeline.WorkbookSource{Path: args[0]}, nil
	case f.url != "":
		return intake.NewClient(f.url, f.timeout), nil
	}
	return nil, exitError(2, "a workbook path or --url is required")
}

func runPipeline(ctx context.Context, src pipeline.Source, g *globalFlags, timeout time.Duration) (pipeline.Report, error) {
	s, err := g.scorer()
	if err != nil {
		return pipeline.Report{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	rep, err := pipeline.Run(ctx, src, s)
	if err != nil {
		return pipeline.Report{}, exitError(4, "failed to load grievances: %v", err)
	}
	return rep, nil
}

func writeClassification(w io.Writer, res processor.Result, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return writeJSON(w, res)
	case "text":
		c := res.Classification
		fmt.Fprintf(w, "Severity:   %s\n", c.Severity)
		fmt.Fprintf(w, "Confidence: %.2f\n", c.Confidence)
		fmt.Fprintf(w, "Scores:     High=%d Medium=%d Low=%d\n",
			c.Scores[types.SeverityHigh], c.Scores[types.SeverityMedium], c.Scores[types.SeverityLow])
		return nil
	}
	return exitError(2, "unknown format %q", format)
}

func writeReport(w io.Writer, rep pipeline.Report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		rep.Records = nil
		return writeJSON(w, rep)
	case "text":
		s := rep.Summary
		fmt.Fprintf(w, "Total grievances:    %d\n", s.TotalGrievances)
		for _, sev := range types.Severities {
			fmt.Fprintf(w, "  %-6s             %d\n", sev, s.SeverityBreakdown[sev])
		}
		fmt.Fprintf(w, "Resolved / pending:  %d / %d\n", s.ResolvedCount, s.PendingCount)
		fmt.Fprintf(w, "Resolution rate:     %.1f%%\n", s.ResolutionRate)
		fmt.Fprintf(w, "Avg resolution time: %.1f days\n", s.AvgResolutionTime)
		fmt.Fprintf(w, "Action:              %s\n", rep.ActionCard.Action)
		return nil
	}
	return exitError(2, "unknown format %q", format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
