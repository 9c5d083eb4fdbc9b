package normalize

import (
	"sort"
	"strings"

	"github.com/surveyops/triage/internal/table"
)

// RuleSet is the collection of raw string tokens recognized as "no answer".
// Matching is exact, case-sensitive and untrimmed unless the relaxation
// options are switched on. The empty string is a legal pattern: a rule set
// containing "" treats empty cells as missing, one without it does not.
type RuleSet struct {
	Patterns []string

	// FoldCase matches patterns case-insensitively. Off by default: the
	// provider documents the tokens as literal "NA"/"N/A".
	FoldCase bool

	// TrimSpace strips surrounding whitespace from cell values before
	// matching. Off by default.
	TrimSpace bool
}

// DefaultRules is the provider-documented token set. It deliberately does not
// include the empty string; callers opt in via WithEmpty or an explicit "".
func DefaultRules() RuleSet {
	return RuleSet{Patterns: []string{"NA", "N/A"}}
}

// WithEmpty returns a copy of the rule set that also treats empty cells as
// missing.
func (r RuleSet) WithEmpty() RuleSet {
	out := r
	out.Patterns = append(append([]string(nil), r.Patterns...), "")
	return out
}

func (r RuleSet) key(s string) string {
	if r.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if r.FoldCase {
		s = strings.ToLower(s)
	}
	return s
}

func (r RuleSet) compile() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Patterns))
	for _, p := range r.Patterns {
		set[r.key(p)] = struct{}{}
	}
	return set
}

// Matches reports whether a raw cell value denotes "no answer" under this
// rule set.
func (r RuleSet) Matches(raw string) bool {
	_, ok := r.compile()[r.key(raw)]
	return ok
}

// Strings returns the patterns in a stable order for display.
func (r RuleSet) Strings() []string {
	out := append([]string(nil), r.Patterns...)
	sort.Strings(out)
	return out
}

// Result is the outcome of a normalization pass. CellsChanged counts exactly
// the cells rewritten to Missing; zero is a reportable condition, since a
// rule set that matched nothing usually means the rules do not fit the
// data's actual encoding.
type Result struct {
	Table        table.Table
	CellsChanged int
}

// Unchanged reports whether the pass rewrote no cells at all.
func (r Result) Unchanged() bool {
	return r.CellsChanged == 0
}

// Normalize rewrites every cell whose raw form matches the rule set into the
// canonical Missing marker. The input table is never mutated; the result
// holds a fresh copy. Processing is per-cell and order-independent, so the
// pass is deterministic and idempotent: Missing cells have no raw match
// semantics and are left alone.
func Normalize(t table.Table, rules RuleSet) (Result, error) {
	out, err := t.Clone()
	if err != nil {
		return Result{}, err
	}

	lookup := rules.compile()
	changed := 0
	for _, rec := range out.Records {
		for i, cell := range rec {
			if cell.Kind == table.Missing {
				continue
			}
			if _, ok := lookup[rules.key(cell.Raw)]; ok {
				rec[i] = table.MissingCell(cell.Raw)
				changed++
			}
		}
	}

	return Result{Table: out, CellsChanged: changed}, nil
}
