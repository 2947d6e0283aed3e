package jurisdiction

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTable returns the built-in Kentucky municipality table. City
// names are the literal jurisdiction names used in official filings.
// Entries carrying the fallback code are municipalities that allocate
// at county level despite being listed.
func DefaultTable() map[string]Entry {
	return map[string]Entry{
		"COVINGTON":     {Code: "5", County: "KENTON COUNTY"},
		"VILLA HILLS":   {Code: "116", County: "KENTON COUNTY"},
		"FLORENCE":      {Code: "16", County: "BOONE COUNTY"},
		"LOUISVILLE":    {Code: "1", County: "JEFFERSON COUNTY"},
		"OWENSBORO":     {Code: "8", County: "DAVIESS COUNTY"},
		"CRITTENDEN":    {Code: "285", County: "GRANT COUNTY"},
		"DEMOSSVILLE":   {Code: FallbackCode, County: "PENDLETON COUNTY"},
		"LONDON":        {Code: "78", County: "LAUREL COUNTY"},
		"ALEXANDRIA":    {Code: "123", County: "CAMPBELL COUNTY"},
		"BELLEVUE":      {Code: "34", County: "CAMPBELL COUNTY"},
		"COLD SPRING":   {Code: "148", County: "CAMPBELL COUNTY"},
		"DAYTON":        {Code: "46", County: "CAMPBELL COUNTY"},
		"EDGEWOOD":      {Code: FallbackCode, County: "KENTON COUNTY"},
		"ERLANGER":      {Code: "14", County: "KENTON COUNTY"},
		"FORT MITCHELL": {Code: "57", County: "KENTON COUNTY"},
		"FORT THOMAS":   {Code: "58", County: "CAMPBELL COUNTY"},
		"INDEPENDENCE":  {Code: FallbackCode, County: "KENTON COUNTY"},
		"NEWPORT":       {Code: FallbackCode, County: "CAMPBELL COUNTY"},
		"TAYLOR MILL":   {Code: FallbackCode, County: "KENTON COUNTY"},
	}
}

// LoadTable reads a municipality table from a YAML file of the form:
//
//	COVINGTON:
//	  code: "5"
//	  county: KENTON COUNTY
func LoadTable(path string) (map[string]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	var table map[string]Entry
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}

	for city, entry := range table {
		if entry.Code == "" || entry.County == "" {
			return nil, fmt.Errorf("table entry %q: code and county are required", city)
		}
	}
	return table, nil
}
