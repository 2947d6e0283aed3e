// Package ingest parses uploaded premium files into source records.
//
// Two layouts are accepted: a positional layout of at least seven
// delimited fields (policy, premium type, street, city, state, zip,
// premium, optional company code) and a header-named layout where
// columns are located by header aliases. Quoted fields may contain
// embedded commas.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"premalloc/internal/model"
)

// positional column layout, for files without a header row.
const (
	posPolicyNumber = 0
	posPremiumType  = 1
	posStreet       = 2
	posCity         = 3
	posState        = 4
	posZip          = 5
	posPremium      = 6
	posCompanyCode  = 7 // optional
	positionalMin   = 7
)

// Parse reads CSV content and returns one source record per usable row.
// A malformed CSV stream is an error; a stream with zero usable rows is
// not (it produces empty, well-formed reports downstream).
func Parse(r io.Reader) ([]model.SourceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if isHeaderRow(rows[0]) {
		return parseNamed(resolveColumns(rows[0]), rows[1:]), nil
	}
	return parsePositional(rows), nil
}

// ParseFile reads and parses a premium file from disk.
func ParseFile(path string) ([]model.SourceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open premium file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

func parsePositional(rows [][]string) []model.SourceRecord {
	var records []model.SourceRecord
	for _, row := range rows {
		if len(row) < positionalMin {
			continue
		}
		n := len(records) + 1
		rec := model.SourceRecord{
			PolicyNumber: defaultPolicy(trimCell(row[posPolicyNumber]), n),
			PremiumType:  trimCell(row[posPremiumType]),
			Street:       trimCell(row[posStreet]),
			City:         trimCell(row[posCity]),
			State:        trimCell(row[posState]),
			Zip:          trimCell(row[posZip]),
			Premium:      ParsePremium(row[posPremium]),
		}
		if len(row) > posCompanyCode {
			rec.CompanyCode = trimCell(row[posCompanyCode])
		}
		records = append(records, rec)
	}
	return records
}

func parseNamed(idx columnIndex, rows [][]string) []model.SourceRecord {
	var records []model.SourceRecord
	for _, row := range rows {
		cell := func(f Field) string {
			i, ok := idx[f]
			if !ok || i >= len(row) {
				return ""
			}
			return trimCell(row[i])
		}

		n := len(records) + 1
		rec := model.SourceRecord{
			PolicyNumber: defaultPolicy(cell(FieldPolicyNumber), n),
			PremiumType:  cell(FieldPremiumType),
			Street:       cell(FieldStreet),
			City:         cell(FieldCity),
			State:        cell(FieldState),
			Zip:          cell(FieldZip),
			Premium:      ParsePremium(cell(FieldPremium)),
			CompanyCode:  cell(FieldCompanyCode),
		}

		// Files that carry only a combined address column get a
		// best-effort split into the component fields.
		if rec.Street == "" {
			if combined := cell(FieldAddress); combined != "" {
				applyCombinedAddress(&rec, combined)
			}
		}
		records = append(records, rec)
	}
	return records
}

// applyCombinedAddress splits "street, city, state zip" into component
// fields, filling only the ones still empty.
func applyCombinedAddress(rec *model.SourceRecord, combined string) {
	parts := strings.Split(combined, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) > 0 {
		rec.Street = parts[0]
	}
	if len(parts) > 1 && rec.City == "" {
		rec.City = parts[1]
	}
	if len(parts) > 2 {
		stateZip := strings.Fields(parts[2])
		if len(stateZip) > 0 && rec.State == "" {
			rec.State = stateZip[0]
		}
		if len(stateZip) > 1 && rec.Zip == "" {
			rec.Zip = stateZip[1]
		}
	}
}

// ParsePremium parses a premium amount, tolerating "$" and ","
// formatting. Missing or invalid values parse to zero rather than
// failing the row.
func ParsePremium(raw string) decimal.Decimal {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func defaultPolicy(policy string, n int) string {
	if policy != "" {
		return policy
	}
	return fmt.Sprintf("POL-%d", n)
}

func trimCell(s string) string {
	return strings.TrimSpace(s)
}
