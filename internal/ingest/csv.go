package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/surveyops/triage/internal/table"
)

// Read parses delimited data into a Table. The first row is the header and
// defines the column set; every subsequent row must have the same width
// (encoding/csv enforces this, we surface it with row context). Cell content
// is kept in literal string form so tokens like "NA" inside numeric columns
// survive until normalization.
func Read(r io.Reader) (table.Table, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err == io.EOF {
		return table.Table{}, fmt.Errorf("no header row: file is empty")
	}
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read headers: %w", err)
	}

	t := table.New(headers...)
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table.Table{}, fmt.Errorf("failed to read record %d: %w", row, err)
		}

		cells := make(table.Record, 0, len(record))
		for _, value := range record {
			cells = append(cells, table.NewCell(value))
		}
		if err := t.Append(cells); err != nil {
			return table.Table{}, err
		}
		row++
	}

	return t, nil
}

// Load reads a CSV file from disk into a Table.
func Load(path string) (table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Write renders a Table back to CSV, emitting each cell's raw string form.
// Missing cells are written as their pre-normalization raw token; use a
// marker-aware exporter if canonical output is needed.
func Write(w io.Writer, t table.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	row := make([]string, len(t.Columns))
	for i, rec := range t.Records {
		if len(rec) != len(t.Columns) {
			return &table.InvariantViolationError{Row: i, Got: len(rec), Want: len(t.Columns)}
		}
		for j, cell := range rec {
			row[j] = cell.Raw
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Save writes a Table to a CSV file.
func Save(path string, t table.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return Write(file, t)
}
