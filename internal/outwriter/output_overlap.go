package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintOverlapReport outputs the audience overlap report, dispatching based on the output format configured.
func PrintOverlapReport(report *schema.OverlapReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForOverlap(w, report, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverlapTables(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeOverlapTables writes the overlap matrix, the unique reach summary and
// the optional segment performance table.
func writeOverlapTables(report *schema.OverlapReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	if err := writeOverlapMatrixTable(report.Matrix, cfg, fmtFloat, writer); err != nil {
		return err
	}

	reach := report.UniqueReach
	if _, err := fmt.Fprintf(writer, "Unique reach: %d of %d summed (dedup rate: %s, floor: %d)\n", reach.Total, reach.SumIndividual, formatPercent(fmtFloat, reach.DedupRate), reach.MaxIndividual); err != nil {
		return err
	}

	if len(report.Performance) > 0 {
		if err := writeSegmentTable(report.Performance, cfg, fmtFloat, intFmt, writer); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Snapshot backend: %s\n", duration, cfg.Workers, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// writeOverlapMatrixTable renders the pairwise overlap matrix. Rows carry an
// index column so wide matrices stay readable with numeric column headers.
func writeOverlapMatrixTable(matrix *schema.OverlapMatrix, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"#", "Segment"}
	for i := range matrix.SegmentNames {
		headers = append(headers, strconv.Itoa(i+1))
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, name := range matrix.SegmentNames {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(name, GetMaxTableNameWidth(cfg)),
		}
		for j := range matrix.SegmentNames {
			row = append(row, formatPercent(fmtFloat, matrix.At(i, j)))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintSegmentResults outputs the segment performance results, dispatching based on the output format configured.
func PrintSegmentResults(results []schema.SegmentPerformance, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForSegments(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSegments(w, results, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeSegmentTable(results, cfg, fmtFloat, intFmt, w); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
				return err
			}
			return nil
		}, "Wrote table")
	}
	return nil
}

// writeSegmentTable generates and writes the human-readable table.
func writeSegmentTable(results []schema.SegmentPerformance, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Segment", "Placements", "Spend", "Conversions", "CTR", "CVR", "ROAS"}
	if cfg.Detail {
		headers = append(headers, "CPA", "CPM")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.SegmentName, GetMaxTableNameWidth(cfg)),
			fmt.Sprintf(intFmt, r.Placements),
			fmtFloat(r.Spend),
			fmtFloat(r.Conversions),
			fmtFloat(r.CTR) + "%",
			fmtFloat(r.CVR) + "%",
			fmtFloat(r.ROAS),
		}
		if cfg.Detail {
			row = append(row, fmtFloat(r.CPA), fmtFloat(r.CPM))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d segments by spend\n", len(results)); err != nil {
		return err
	}
	return nil
}

// PrintLookalikeResults outputs the lookalike matches, dispatching based on the output format configured.
func PrintLookalikeResults(base *schema.Segment, matches []schema.LookalikeMatch, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForLookalikes(w, base, matches)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForLookalikes(w, base, matches, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLookalikeTable(base, matches, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeLookalikeTable generates and writes the human-readable table.
func writeLookalikeTable(base *schema.Segment, matches []schema.LookalikeMatch, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Lookalikes for %s (%s, reach %d)\n", base.Name, schema.DisplayEnum(base.Category), base.Reach); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Segment", "Category", "Reach", "Score"}
	if cfg.Detail {
		headers = append(headers, "Reasons")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, m := range matches {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(m.Segment.Name, GetMaxTableNameWidth(cfg)),
			schema.DisplayEnum(m.Segment.Category),
			strconv.FormatInt(m.Segment.Reach, 10),
			fmtFloat(m.Score),
		}
		if cfg.Detail {
			row = append(row, strings.Join(m.Reasons, "; "))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d matches\n", len(matches)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// PrintExpansionResults outputs the audience expansion plan, dispatching based on the output format configured.
func PrintExpansionResults(goals *schema.ExpansionGoals, snapshot *schema.ExpansionSnapshot, recommendations []schema.ExpansionRecommendation, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForExpansion(w, goals, snapshot, recommendations)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForExpansion(w, recommendations, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpansionTable(goals, snapshot, recommendations, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeExpansionTable writes the current position against goals, then the
// recommendation table.
func writeExpansionTable(goals *schema.ExpansionGoals, snapshot *schema.ExpansionSnapshot, recommendations []schema.ExpansionRecommendation, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Current reach: %d%s\n", snapshot.CurrentReach, formatGoalInt(goals.TargetReach)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "CPA: %s%s, CVR: %s%%%s\n", fmtFloat(snapshot.CPA), formatGoalFloat(fmtFloat, goals.TargetCPA), fmtFloat(snapshot.CVR), formatGoalFloat(fmtFloat, goals.TargetCVR)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Projected conversions: %s%s\n", fmtFloat(snapshot.ProjectedConversions), formatGoalFloat(fmtFloat, goals.TargetConversions)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Priority", "Reason", "Suggested", "Impact"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range recommendations {
		row := []string{
			strconv.Itoa(i + 1),
			priorityLabel(r.Priority, cfg),
			r.Reason,
			schema.FormatSegmentNames(r.Suggested),
			r.Impact,
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d recommendations\n", len(recommendations)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// formatGoalInt renders an integer goal suffix, empty when the goal is unset.
func formatGoalInt(goal int64) string {
	if goal <= 0 {
		return ""
	}
	return fmt.Sprintf(" (goal %d)", goal)
}

// formatGoalFloat renders a float goal suffix, empty when the goal is unset.
func formatGoalFloat(fmtFloat func(float64) string, goal float64) string {
	if goal <= 0 {
		return ""
	}
	return fmt.Sprintf(" (goal %s)", fmtFloat(goal))
}

// priorityLabel colors the recommendation priority for table output.
func priorityLabel(priority schema.Priority, cfg *contract.Config) string {
	label := schema.DisplayEnum(priority)
	if !cfg.UseColors {
		return label
	}
	switch priority {
	case schema.HighPriority:
		return color.New(color.FgRed).Sprint(label)
	case schema.MediumPriority:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return label
	}
}
