package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Report names in their declared output order. Match Exceptions is only
// present when at least one record did not match cleanly.
const (
	ReportJobSummary        = "Job Summary"
	ReportAllocationDetail  = "Allocation Detail"
	ReportAllocationSummary = "Allocation Summary"
	ReportSourceData        = "Source Data"
	ReportMatchExceptions   = "Match Exceptions"
)

// ReportTable is one rendered tabular report: ordered column headers
// plus rows of same-length string cells. Numeric cells are fixed
// 2-decimal strings; percentage cells are "NN.NN%" or "-". Tables are
// never mutated after assembly.
type ReportTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ReportSet holds named report tables in a fixed declared order. The
// order is preserved through JSON marshalling so report consumers see
// the tables in the same sequence every run.
type ReportSet struct {
	order  []string
	tables map[string]ReportTable
}

// NewReportSet creates an empty report set.
func NewReportSet() *ReportSet {
	return &ReportSet{tables: make(map[string]ReportTable)}
}

// Add appends a named table. Re-adding an existing name replaces the
// table without changing its position.
func (s *ReportSet) Add(name string, table ReportTable) {
	if _, exists := s.tables[name]; !exists {
		s.order = append(s.order, name)
	}
	s.tables[name] = table
}

// Get returns the named table.
func (s *ReportSet) Get(name string) (ReportTable, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Names returns the report names in declared order.
func (s *ReportSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of tables in the set.
func (s *ReportSet) Len() int {
	return len(s.order)
}

// MarshalJSON renders the set as a JSON object with keys in declared
// order.
func (s *ReportSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.tables[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a set from a JSON object, preserving key order.
func (s *ReportSet) UnmarshalJSON(data []byte) error {
	s.order = nil
	s.tables = make(map[string]ReportTable)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("report set: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("report set: expected string key, got %v", keyTok)
		}
		var table ReportTable
		if err := dec.Decode(&table); err != nil {
			return fmt.Errorf("report set: decode %q: %w", name, err)
		}
		s.Add(name, table)
	}
	return nil
}

// RunResult is the externally observable output of one pipeline run.
type RunResult struct {
	Success         bool           `json:"success"`
	TotalRecords    int            `json:"totalRecords"`
	MatchPercentage string         `json:"matchPercentage"` // "NN.NN"
	Reports         *ReportSet     `json:"reports"`
	Summary         map[string]int `json:"summary"` // match code -> record count
	Message         string         `json:"message,omitempty"`

	// Narrative is the optional advisory exception summary. It never
	// affects report numbers.
	Narrative string `json:"narrative,omitempty"`
}
