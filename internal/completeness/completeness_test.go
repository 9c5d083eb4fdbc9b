package completeness

import (
	"math"
	"testing"

	"github.com/surveyops/triage/internal/normalize"
	"github.com/surveyops/triage/internal/table"
)

func makeTable(t *testing.T, columns []string, rows ...[]string) table.Table {
	t.Helper()
	tbl := table.New(columns...)
	for _, row := range rows {
		rec := make(table.Record, 0, len(row))
		for _, raw := range row {
			rec = append(rec, table.NewCell(raw))
		}
		if err := tbl.Append(rec); err != nil {
			t.Fatalf("Failed to build test table: %v", err)
		}
	}
	return tbl
}

func TestAnalyzeCompleteDistribution(t *testing.T) {
	// 5 records: first 2 fully populated, last 3 each missing one cell.
	tbl := makeTable(t, []string{"A", "B"},
		[]string{"1", "x"},
		[]string{"2", "y"},
		[]string{"NA", "z"},
		[]string{"3", "NA"},
		[]string{"N/A", "w"},
	)
	res, err := normalize.Normalize(tbl, normalize.DefaultRules())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	vec, sum := Analyze(res.Table)

	if len(vec) != 5 {
		t.Fatalf("Expected vector of length 5, got %d", len(vec))
	}
	want := []bool{true, true, false, false, false}
	for i, complete := range want {
		if vec[i] != complete {
			t.Errorf("Record %d: expected complete=%v, got %v", i, complete, vec[i])
		}
	}

	if sum.TotalRecords != 5 {
		t.Errorf("Expected 5 total records, got %d", sum.TotalRecords)
	}
	if sum.CompleteCount != 2 {
		t.Errorf("Expected 2 complete records, got %d", sum.CompleteCount)
	}
	if math.Abs(sum.CompleteFraction-0.4) > 1e-9 {
		t.Errorf("Expected fraction 0.4, got %f", sum.CompleteFraction)
	}
	if len(sum.CompleteRowIndices) != 2 || sum.CompleteRowIndices[0] != 0 || sum.CompleteRowIndices[1] != 1 {
		t.Errorf("Expected complete row indices [0 1], got %v", sum.CompleteRowIndices)
	}
}

func TestEmptyCellsCountAsPresent(t *testing.T) {
	// Empty strings only affect completeness after the normalizer rewrites
	// them, which the default rule set does not.
	tbl := makeTable(t, []string{"A", "B"}, []string{"", "5"})

	vec, sum := Analyze(tbl)
	if !vec[0] {
		t.Error("Record with an Empty cell should count as complete")
	}
	if sum.CompleteCount != 1 {
		t.Errorf("Expected 1 complete record, got %d", sum.CompleteCount)
	}
}

func TestAnalyzeEmptyTable(t *testing.T) {
	vec, sum := Analyze(table.New("A", "B"))

	if len(vec) != 0 {
		t.Errorf("Expected empty vector, got length %d", len(vec))
	}
	if sum.CompleteFraction != 0 {
		t.Errorf("Expected fraction 0 for empty table, got %f", sum.CompleteFraction)
	}
	if len(sum.CompleteRowIndices) != 0 {
		t.Errorf("Expected no complete row indices, got %v", sum.CompleteRowIndices)
	}
}

func TestCompleteRowIndicesStrictlyIncreasing(t *testing.T) {
	tbl := makeTable(t, []string{"A"},
		[]string{"NA"},
		[]string{"1"},
		[]string{"NA"},
		[]string{"2"},
		[]string{"3"},
	)
	res, err := normalize.Normalize(tbl, normalize.DefaultRules())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	_, sum := Analyze(res.Table)

	want := []int{1, 3, 4}
	if len(sum.CompleteRowIndices) != len(want) {
		t.Fatalf("Expected indices %v, got %v", want, sum.CompleteRowIndices)
	}
	for i, idx := range want {
		if sum.CompleteRowIndices[i] != idx {
			t.Errorf("Expected indices %v, got %v", want, sum.CompleteRowIndices)
			break
		}
	}
	for i := 1; i < len(sum.CompleteRowIndices); i++ {
		if sum.CompleteRowIndices[i] <= sum.CompleteRowIndices[i-1] {
			t.Errorf("Indices not strictly increasing: %v", sum.CompleteRowIndices)
			break
		}
	}
}

func TestMoreRulesNeverIncreaseCompleteness(t *testing.T) {
	tbl := makeTable(t, []string{"A", "B"},
		[]string{"1", ""},
		[]string{"NA", "2"},
		[]string{"3", "4"},
		[]string{"", ""},
	)

	base, err := normalize.Normalize(tbl, normalize.DefaultRules())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	_, baseSum := Analyze(base.Table)

	wider, err := normalize.Normalize(tbl, normalize.DefaultRules().WithEmpty())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	_, widerSum := Analyze(wider.Table)

	if widerSum.CompleteCount > baseSum.CompleteCount {
		t.Errorf("Adding a rule increased complete count: %d > %d",
			widerSum.CompleteCount, baseSum.CompleteCount)
	}
	if baseSum.CompleteCount != 3 {
		t.Errorf("Expected 3 complete records under default rules, got %d", baseSum.CompleteCount)
	}
	// Only {"3","4"} has neither an NA token nor an empty cell.
	if widerSum.CompleteCount != 1 {
		t.Errorf("Expected 1 complete record with the empty rule, got %d", widerSum.CompleteCount)
	}
}
