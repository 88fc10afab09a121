// Package stats contains score calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/verte-zerg/keydrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// CharsPerMinute converts a session score into correct characters per minute.
func CharsPerMinute(score, durationSec int) float64 {
	if durationSec <= 0 {
		return 0
	}
	return float64(score) / (float64(durationSec) / 60.0)
}

// Sparkline maps each value onto sparkChars between the lowest and highest
// value. A flat series renders at mid height.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := slices.Min(values), slices.Max(values)
	spread := hi - lo
	top := len(sparkChars) - 1
	out := make([]byte, len(values))
	for i, v := range values {
		level := top / 2
		if spread > 1e-9 {
			level = int(math.Round((v - lo) / spread * float64(top)))
		}
		out[i] = sparkChars[min(max(level, 0), top)]
	}
	return string(out)
}

// RenderSummary prints totals for the report's sessions.
func RenderSummary(w io.Writer, report Report) error {
	records := report.Records
	if len(records) == 0 || !report.HasBest {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var total int
	var totalCPM float64
	for _, r := range records {
		total += r.Score
		totalCPM += CharsPerMinute(r.Score, r.DurationSec)
	}
	count := float64(len(records))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(records)),
		fmt.Sprintf("Best score: %d", report.Best),
		fmt.Sprintf("Last score: %d", records[len(records)-1].Score),
		fmt.Sprintf("Avg score: %.2f", float64(total)/count),
		fmt.Sprintf("Avg chars/min: %.2f", totalCPM/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderScoreTable prints one row per session, oldest first.
func RenderScoreTable(w io.Writer, records []model.ScoreRecord) error {
	if len(records) == 0 {
		return nil
	}
	cols := []column{
		{title: "Ended"},
		{title: "Length", numeric: true},
		{title: "Score", numeric: true},
		{title: "Chars/min", numeric: true},
		{title: "Reason"},
		{title: "Characters"},
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%ds", r.DurationSec),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1f", CharsPerMinute(r.Score, r.DurationSec)),
			r.Reason,
			r.Categories,
		})
	}
	for _, line := range renderTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints a sparkline of the most recent scores that fit width.
func RenderTrend(w io.Writer, records []model.ScoreRecord, width int) error {
	if len(records) < 2 {
		return nil
	}
	if width > 0 && len(records) > width {
		records = records[len(records)-width:]
	}
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = float64(r.Score)
	}
	if _, err := fmt.Fprintln(w, "Trend"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, Sparkline(values))
	return err
}
