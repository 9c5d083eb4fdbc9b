package report

import (
	"testing"
	"time"
)

func TestSQLiteSinkSaveAndReadBack(t *testing.T) {
	rules, res, vec, sum := triageFixture(t)
	rep := Assemble("survey.csv", rules, res, vec, sum)

	sink, err := OpenSQLiteSink(":memory:")
	if err != nil {
		t.Fatalf("Failed to open sink: %v", err)
	}
	defer sink.Close()

	runID, err := sink.Save(rep)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("Expected a positive run id, got %d", runID)
	}

	var source, generatedAt string
	var cellsChanged, totalRecords, completeCount int
	var fraction float64
	err = sink.db.QueryRow(`SELECT source, generated_at, cells_changed, total_records, complete_count, complete_fraction
		FROM runs WHERE id = ?`, runID).
		Scan(&source, &generatedAt, &cellsChanged, &totalRecords, &completeCount, &fraction)
	if err != nil {
		t.Fatalf("Failed to read run back: %v", err)
	}

	if source != "survey.csv" {
		t.Errorf("Expected source survey.csv, got %q", source)
	}
	if _, err := time.Parse(time.RFC3339, generatedAt); err != nil {
		t.Errorf("Stored timestamp %q is not RFC 3339: %v", generatedAt, err)
	}
	if cellsChanged != 1 || totalRecords != 3 || completeCount != 2 {
		t.Errorf("Unexpected run scalars: changed=%d total=%d complete=%d",
			cellsChanged, totalRecords, completeCount)
	}

	var points, completePoints int
	if err := sink.db.QueryRow(`SELECT COUNT(*), SUM(complete) FROM run_points WHERE run_id = ?`, runID).
		Scan(&points, &completePoints); err != nil {
		t.Fatalf("Failed to count points: %v", err)
	}
	if points != 3 {
		t.Errorf("Expected 3 points, got %d", points)
	}
	if completePoints != 2 {
		t.Errorf("Expected 2 complete points, got %d", completePoints)
	}
}

func TestSQLiteSinkMultipleRuns(t *testing.T) {
	rules, res, vec, sum := triageFixture(t)
	rep := Assemble("survey.csv", rules, res, vec, sum)

	sink, err := OpenSQLiteSink(":memory:")
	if err != nil {
		t.Fatalf("Failed to open sink: %v", err)
	}
	defer sink.Close()

	first, err := sink.Save(rep)
	if err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	second, err := sink.Save(rep)
	if err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	if second <= first {
		t.Errorf("Expected increasing run ids, got %d then %d", first, second)
	}
}
