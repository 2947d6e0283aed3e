package ingest

// Field identifies a logical column of the premium file.
type Field int

const (
	FieldPolicyNumber Field = iota
	FieldPremiumType
	FieldStreet
	FieldCity
	FieldState
	FieldZip
	FieldPremium
	FieldCompanyCode
	// FieldAddress is a combined single-column address, accepted when a
	// file carries no separate street/city/state/zip columns.
	FieldAddress
)

// fieldAliases maps each logical field to its accepted header spellings
// in priority order. Kept as data so the accepted layouts are visible
// in one place; resolution happens once per file, not per row.
var fieldAliases = map[Field][]string{
	FieldPolicyNumber: {"Policy #", "Policy Number", "Policy", "POLICY"},
	FieldPremiumType:  {"Premium Type", "PremiumType", "PREMIUM TYPE"},
	FieldStreet:       {"Street", "STREET"},
	FieldCity:         {"City", "CITY", "city"},
	FieldState:        {"State", "STATE", "state"},
	FieldZip:          {"Zip", "ZIP", "Zip Code", "Postal Code"},
	FieldPremium:      {"Premiums", "Premium", "PREMIUMS", "Premium Amount"},
	FieldCompanyCode:  {"Company Code", "Company", "COMPANY"},
	FieldAddress:      {"Address", "address", "Source Address", "Street Address", "ADDRESS"},
}

// columnIndex resolves header text to column positions for each logical
// field. Headers are matched exactly after trimming; the alias lists
// above carry the accepted case variants.
type columnIndex map[Field]int

func resolveColumns(header []string) columnIndex {
	position := make(map[string]int, len(header))
	for i, h := range header {
		h = trimCell(h)
		if _, seen := position[h]; !seen {
			position[h] = i
		}
	}

	idx := make(columnIndex)
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if i, ok := position[alias]; ok {
				idx[field] = i
				break
			}
		}
	}
	return idx
}

// isHeaderRow reports whether the row names enough known columns to be
// treated as a header rather than data.
func isHeaderRow(row []string) bool {
	idx := resolveColumns(row)
	if _, ok := idx[FieldStreet]; ok {
		return true
	}
	if _, ok := idx[FieldAddress]; ok {
		return true
	}
	return len(idx) >= 2
}
