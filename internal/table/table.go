package table

import (
	"fmt"
	"strconv"
)

// Kind tags the interpretation of a cell's raw content.
type Kind int

const (
	Text Kind = iota
	Numeric
	Empty
	Missing
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	case Empty:
		return "empty"
	case Missing:
		return "missing"
	}
	return "unknown"
}

// Cell is a single value at a (record, column) position. The raw string form
// is kept as ingested so missing-value tokens inside nominally numeric columns
// stay visible to normalization.
type Cell struct {
	Kind Kind
	Raw  string
	Num  float64 // parsed value, valid only when Kind == Numeric
}

// NewCell classifies a raw string into a Text, Numeric or Empty cell.
// Missing cells are never produced here; only normalization introduces them.
func NewCell(raw string) Cell {
	if raw == "" {
		return Cell{Kind: Empty}
	}
	if n, ok := parseNumeric(raw); ok {
		return Cell{Kind: Numeric, Raw: raw, Num: n}
	}
	return Cell{Kind: Text, Raw: raw}
}

// MissingCell returns the canonical missing marker, retaining the raw form
// the cell had before it was rewritten.
func MissingCell(raw string) Cell {
	return Cell{Kind: Missing, Raw: raw}
}

func (c Cell) IsMissing() bool {
	return c.Kind == Missing
}

// Record is one row of a Table. Cells are positional and share the Table's
// column order.
type Record []Cell

// Table is an ordered set of records over a fixed, shared column list.
// Every record has exactly len(Columns) cells, in column order.
type Table struct {
	Columns []string
	Records []Record
}

// New creates an empty table with the given column names.
func New(columns ...string) Table {
	return Table{Columns: append([]string(nil), columns...)}
}

// InvariantViolationError reports a record whose width does not match the
// table's column list. The table layer never pads or truncates to hide this.
type InvariantViolationError struct {
	Row  int
	Got  int
	Want int
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("record %d has %d cells, table has %d columns", e.Row, e.Got, e.Want)
}

// Append adds a record, rejecting width mismatches.
func (t *Table) Append(rec Record) error {
	if len(rec) != len(t.Columns) {
		return &InvariantViolationError{Row: len(t.Records), Got: len(rec), Want: len(t.Columns)}
	}
	t.Records = append(t.Records, rec)
	return nil
}

// NumRecords returns the row count.
func (t Table) NumRecords() int {
	return len(t.Records)
}

// NumColumns returns the column count.
func (t Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnIndex returns the position of a named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone deep-copies the table, re-checking the uniform-width invariant on the
// way. A violation means the table was built outside this package's API.
func (t Table) Clone() (Table, error) {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, 0, len(t.Records)),
	}
	for i, rec := range t.Records {
		if len(rec) != len(t.Columns) {
			return Table{}, &InvariantViolationError{Row: i, Got: len(rec), Want: len(t.Columns)}
		}
		out.Records = append(out.Records, append(Record(nil), rec...))
	}
	return out, nil
}

// parseNumeric is a fast classification check; values that look numeric are
// parsed, everything else stays textual. Scientific notation and signs are
// accepted, date-like strings are not probed (they classify as text).
func parseNumeric(str string) (float64, bool) {
	if len(str) == 0 || len(str) > 24 {
		return 0, false
	}

	i := 0
	if str[0] == '-' || str[0] == '+' {
		if len(str) == 1 {
			return 0, false
		}
		i = 1
	}

	hasDigit := false
	hasDot := false
	hasExp := false
	for ; i < len(str); i++ {
		c := str[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.':
			if hasDot || hasExp {
				return 0, false
			}
			hasDot = true
		case c == 'e' || c == 'E':
			if hasExp || !hasDigit || i == len(str)-1 {
				return 0, false
			}
			hasExp = true
			if str[i+1] == '-' || str[i+1] == '+' {
				i++
			}
		default:
			return 0, false
		}
	}
	if !hasDigit {
		return 0, false
	}

	n, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
