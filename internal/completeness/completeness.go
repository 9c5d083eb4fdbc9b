package completeness

import "github.com/surveyops/triage/internal/table"

// Vector holds one flag per record, in table order: true iff the record has
// no Missing cell. Empty cells count as present; semantic emptiness only
// affects completeness after the normalizer has rewritten it to Missing.
type Vector []bool

// Summary aggregates the vector. Row indices are 0-based and preserve the
// original table order, so consumers can ask whether complete records
// cluster early or late in the file.
type Summary struct {
	TotalRecords       int
	CompleteCount      int
	CompleteFraction   float64
	CompleteRowIndices []int
}

// Analyze computes per-record completeness and its aggregate summary. Pure
// computation: the table is not mutated and a zero-record table yields a
// fraction of 0 rather than a division error.
func Analyze(t table.Table) (Vector, Summary) {
	vec := make(Vector, 0, t.NumRecords())
	sum := Summary{TotalRecords: t.NumRecords()}

	for i, rec := range t.Records {
		complete := true
		for _, cell := range rec {
			if cell.IsMissing() {
				complete = false
				break
			}
		}
		vec = append(vec, complete)
		if complete {
			sum.CompleteCount++
			sum.CompleteRowIndices = append(sum.CompleteRowIndices, i)
		}
	}

	if sum.TotalRecords > 0 {
		sum.CompleteFraction = float64(sum.CompleteCount) / float64(sum.TotalRecords)
	}

	return vec, sum
}
