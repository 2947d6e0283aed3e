// Package export renders report tables to interchange formats: CSV per
// table and a single XLSX workbook for a whole report set.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"premalloc/internal/model"
)

// WriteCSV renders a table as CSV, header row first. Cells containing
// commas are quoted, so a written table re-parses verbatim.
func WriteCSV(w io.Writer, table model.ReportTable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table previously rendered by WriteCSV: the first row
// becomes the headers, the rest the data rows.
func ReadCSV(r io.Reader) (model.ReportTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return model.ReportTable{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return model.ReportTable{}, nil
	}
	return model.ReportTable{Headers: rows[0], Rows: rows[1:]}, nil
}
