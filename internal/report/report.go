package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/surveyops/triage/internal/completeness"
	"github.com/surveyops/triage/internal/normalize"
)

// Point is one record's completeness flag at its original row position,
// shaped for a scatter/strip visualization of where complete records sit in
// the file.
type Point struct {
	Row      int
	Complete bool
}

// Report bundles everything a renderer or sink needs about one triage run.
type Report struct {
	Source       string
	GeneratedAt  time.Time
	Rules        []string
	CellsChanged int
	Summary      completeness.Summary
	Points       []Point
}

// Assemble builds a Report from the pipeline outputs. The vector and summary
// must come from the same analysis pass.
func Assemble(source string, rules normalize.RuleSet, res normalize.Result, vec completeness.Vector, sum completeness.Summary) Report {
	points := make([]Point, len(vec))
	for i, complete := range vec {
		points[i] = Point{Row: i, Complete: complete}
	}

	return Report{
		Source:       source,
		GeneratedAt:  time.Now(),
		Rules:        rules.Strings(),
		CellsChanged: res.CellsChanged,
		Summary:      sum,
		Points:       points,
	}
}

// ZeroEffect reports whether normalization rewrote no cells, the advisory
// signal that the configured rules likely do not match the data's encoding.
func (r Report) ZeroEffect() bool {
	return r.CellsChanged == 0
}

// Render writes the human-readable run summary.
func (r Report) Render(w io.Writer) error {
	var out strings.Builder

	out.WriteString(strings.Repeat("=", 50) + "\n")
	out.WriteString("SURVEY TRIAGE SUMMARY\n")
	out.WriteString(strings.Repeat("=", 50) + "\n")
	out.WriteString(fmt.Sprintf("Source: %s\n", r.Source))
	out.WriteString(fmt.Sprintf("Missing-value rules: %s\n", formatRules(r.Rules)))
	out.WriteString(fmt.Sprintf("Cells normalized to missing: %d\n", r.CellsChanged))
	if r.ZeroEffect() {
		out.WriteString("WARNING: no cells matched the rule set; the rules may not fit this data's encoding\n")
	}
	out.WriteString(fmt.Sprintf("Total records: %d\n", r.Summary.TotalRecords))
	out.WriteString(fmt.Sprintf("Complete records: %d (%.1f%%)\n",
		r.Summary.CompleteCount, r.Summary.CompleteFraction*100))
	if n := r.Summary.TotalRecords - r.Summary.CompleteCount; n > 0 {
		out.WriteString(fmt.Sprintf("Incomplete records: %d\n", n))
	}
	if len(r.Summary.CompleteRowIndices) > 0 {
		out.WriteString(fmt.Sprintf("First complete row: %d, last: %d\n",
			r.Summary.CompleteRowIndices[0],
			r.Summary.CompleteRowIndices[len(r.Summary.CompleteRowIndices)-1]))
	}
	out.WriteString(strings.Repeat("=", 50) + "\n")

	_, err := io.WriteString(w, out.String())
	return err
}

func formatRules(rules []string) string {
	if len(rules) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(rules))
	for i, r := range rules {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return strings.Join(quoted, ", ")
}
