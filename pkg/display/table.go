package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/0xmhha/onchange/pkg/aggregator"
	"github.com/0xmhha/onchange/pkg/history"
)

// tableFormatter formats output as tables.
type tableFormatter struct {
	config Config
}

// FormatRuns implements Formatter.FormatRuns.
func (f *tableFormatter) FormatRuns(w io.Writer, records []history.Record) error {
	header := []string{"#", "Started", "Duration", "Status", "Exit", "Trigger", "Command"}

	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			fmt.Sprintf("%d", rec.Seq),
			rec.Started.Local().Format(timeLayout),
			formatDuration(rec.Duration),
			rec.Status,
			formatExit(rec),
			formatTrigger(rec),
			strings.Join(rec.Args, " "),
		}
	}

	return f.writeTable(w, header, rows)
}

// writeTable writes a formatted table.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}

	// Column widths in terminal cells.
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	headerLine := f.formatRow(header, widths)
	if f.config.Color {
		headerLine = lipgloss.NewRenderer(w).NewStyle().Bold(true).Render(headerLine)
	}
	if _, err := fmt.Fprintln(w, headerLine); err != nil {
		return err
	}

	if !f.config.Compact {
		separator := make([]string, len(header))
		for i, width := range widths {
			separator[i] = strings.Repeat("-", width)
		}
		if _, err := fmt.Fprintln(w, f.formatRow(separator, widths)); err != nil {
			return err
		}
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(w, f.formatRow(row, widths)); err != nil {
			return err
		}
	}

	return nil
}

// formatRow pads every cell but the last to its column width.
func (f *tableFormatter) formatRow(cells []string, widths []int) string {
	gap := "  "
	if f.config.Compact {
		gap = " "
	}

	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(cell)

		if i < len(cells)-1 {
			if pad := widths[i] - lipgloss.Width(cell); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
	}

	return b.String()
}

// FormatStats implements Formatter.FormatStats.
func (f *tableFormatter) FormatStats(w io.Writer, stats aggregator.Statistics) error {
	if err := writeHeader(w, "Run Statistics", f.config.Compact); err != nil {
		return err
	}

	if stats.Count == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded")
		return err
	}

	rows := [][]string{
		{"Runs", fmt.Sprintf("%d", stats.Count)},
		{"Succeeded", fmt.Sprintf("%d", stats.OK)},
		{"Failed", fmt.Sprintf("%d", stats.Failed)},
		{"Spawn Errors", fmt.Sprintf("%d", stats.SpawnErrors)},
		{"Wait Errors", fmt.Sprintf("%d", stats.WaitErrors)},
		{"Success Rate", formatPercent(stats.SuccessRate)},
		{"Total Time", formatDuration(stats.TotalDuration)},
		{"Average Time", formatDuration(stats.AvgDuration)},
		{"Min Time", formatDuration(stats.MinDuration)},
		{"Max Time", formatDuration(stats.MaxDuration)},
	}

	if stats.P50Duration > 0 || stats.P95Duration > 0 {
		rows = append(rows,
			[]string{"P50 Time", formatDuration(stats.P50Duration)},
			[]string{"P95 Time", formatDuration(stats.P95Duration)},
			[]string{"P99 Time", formatDuration(stats.P99Duration)},
		)
	}

	rows = append(rows,
		[]string{"First Run", stats.FirstSeen.Local().Format(timeLayout)},
		[]string{"Last Run", stats.LastSeen.Local().Format(timeLayout)},
	)

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// FormatGroupedStats implements Formatter.FormatGroupedStats.
func (f *tableFormatter) FormatGroupedStats(w io.Writer, grouped map[string]aggregator.Statistics, dimensions []string) error {
	if err := validateDimensions(dimensions); err != nil {
		return err
	}

	if err := writeHeader(w, "Grouped Run Statistics", f.config.Compact); err != nil {
		return err
	}

	header := make([]string, len(dimensions), len(dimensions)+5)
	copy(header, dimensions)
	header = append(header, "Runs", "OK", "Failed", "Success", "Avg Time")

	rows := make([][]string, 0, len(grouped))
	for _, key := range sortedKeys(grouped) {
		stats := grouped[key]

		row := make([]string, len(dimensions), len(header))
		for i, part := range strings.SplitN(key, "|", len(dimensions)) {
			row[i] = part
		}

		row = append(row,
			fmt.Sprintf("%d", stats.Count),
			fmt.Sprintf("%d", stats.OK),
			fmt.Sprintf("%d", stats.Failed),
			formatPercent(stats.SuccessRate),
			formatDuration(stats.AvgDuration))

		rows = append(rows, row)
	}

	return f.writeTable(w, header, rows)
}
