// Package report renders a census.Result for people and machines: a
// console layout, indented JSON and an HTML page component.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/JonMunkholm/census/internal/census"
	"github.com/JonMunkholm/census/internal/dataset"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// NotAvailable is printed in place of an absent statistic.
const NotAvailable = "n/a"

// Report wraps a Result with details about the run that produced it.
type Report struct {
	RunID       uuid.UUID     `json:"runId"`
	Source      string        `json:"source"`
	Rows        int           `json:"rows"`
	Skipped     int           `json:"skipped"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Result      census.Result `json:"result"`
}

// New stamps res with a fresh run ID and the current time.
func New(source string, stats dataset.LoadStats, res census.Result) Report {
	return Report{
		RunID:       uuid.New(),
		Source:      source,
		Rows:        stats.Rows,
		Skipped:     stats.Skipped,
		GeneratedAt: time.Now().UTC(),
		Result:      res,
	}
}

// line is one labelled statistic, shared by the text and HTML layouts.
type line struct {
	Label string
	Value string
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func textOrNA(t pgtype.Text) string {
	if !t.Valid {
		return NotAvailable
	}
	return t.String
}

// lines lists the scalar statistics in display order.
func lines(res census.Result) []line {
	minHours := NotAvailable
	if res.MinWorkHours.Valid {
		minHours = fmt.Sprintf("%d hours/week", res.MinWorkHours.Int32)
	}
	countryPct := NotAvailable
	if res.HighestEarningCountry.Valid {
		countryPct = pct(res.HighestEarningCountryPercentage)
	}

	return []line{
		{"Average age of men", strconv.FormatFloat(res.AverageAgeMen, 'f', 1, 64)},
		{"Percentage with Bachelors degrees", pct(res.PercentageBachelors)},
		{"Percentage with higher education that earn >50K", pct(res.HigherEducationRich)},
		{"Percentage without higher education that earn >50K", pct(res.LowerEducationRich)},
		{"Min work time", minHours},
		{"Percentage of rich among those who work fewest hours", pct(res.RichPercentage)},
		{"Country with highest percentage of rich", textOrNA(res.HighestEarningCountry)},
		{"Highest percentage of rich people in country", countryPct},
		{"Top occupation in " + census.India, textOrNA(res.TopINOccupation)},
	}
}

// WriteText writes the console layout of rep to w.
func WriteText(w io.Writer, rep Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Census report %s\n", rep.RunID)
	fmt.Fprintf(tw, "Source: %s (%d rows, %d skipped)\n\n", rep.Source, rep.Rows, rep.Skipped)

	fmt.Fprintln(tw, "Number of each race:")
	if len(rep.Result.RaceCount) == 0 {
		fmt.Fprintf(tw, "  %s\n", NotAvailable)
	}
	for _, g := range rep.Result.RaceCount {
		fmt.Fprintf(tw, "  %s\t%d\n", g.Label, g.Count)
	}
	fmt.Fprintln(tw)

	for _, l := range lines(rep.Result) {
		fmt.Fprintf(tw, "%s:\t%s\n", l.Label, l.Value)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteJSON writes rep as indented JSON. Absent statistics encode as null.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Write dispatches on format ("text" or "json").
func Write(w io.Writer, rep Report, format string) error {
	switch format {
	case "json":
		return WriteJSON(w, rep)
	case "text", "":
		return WriteText(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
