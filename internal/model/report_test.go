package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestReportSet_PreservesInsertionOrder(t *testing.T) {
	set := NewReportSet()
	names := []string{ReportJobSummary, ReportAllocationDetail, ReportAllocationSummary, ReportSourceData}
	for _, name := range names {
		set.Add(name, ReportTable{Headers: []string{name}})
	}

	if got := set.Names(); !reflect.DeepEqual(got, names) {
		t.Errorf("Names() = %v, want %v", got, names)
	}
	if set.Len() != len(names) {
		t.Errorf("Len() = %d, want %d", set.Len(), len(names))
	}
}

func TestReportSet_AddReplacesWithoutReordering(t *testing.T) {
	set := NewReportSet()
	set.Add("first", ReportTable{Headers: []string{"a"}})
	set.Add("second", ReportTable{Headers: []string{"b"}})
	set.Add("first", ReportTable{Headers: []string{"replaced"}})

	if got := set.Names(); !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Errorf("Names() = %v, want [first second]", got)
	}
	table, _ := set.Get("first")
	if table.Headers[0] != "replaced" {
		t.Errorf("replaced table headers = %v", table.Headers)
	}
}

func TestReportSet_JSONOrderRoundTrip(t *testing.T) {
	set := NewReportSet()
	set.Add(ReportJobSummary, ReportTable{
		Headers: []string{"Match Code"},
		Rows:    [][]string{{"0"}},
	})
	set.Add(ReportAllocationDetail, ReportTable{
		Headers: []string{"Policy #"},
		Rows:    [][]string{{"POL-1"}},
	})

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Keys must appear in declared order in the serialized form itself.
	s := string(data)
	if strings.Index(s, ReportJobSummary) > strings.Index(s, ReportAllocationDetail) {
		t.Errorf("serialized key order wrong: %s", s)
	}

	var restored ReportSet
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := restored.Names(); !reflect.DeepEqual(got, set.Names()) {
		t.Errorf("restored names = %v, want %v", got, set.Names())
	}
	table, ok := restored.Get(ReportAllocationDetail)
	if !ok || table.Rows[0][0] != "POL-1" {
		t.Errorf("restored table = %+v", table)
	}
}

func TestReportSet_UnmarshalRejectsNonObject(t *testing.T) {
	var set ReportSet
	if err := json.Unmarshal([]byte(`["not","an","object"]`), &set); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}

func TestRunResult_JSONFieldNames(t *testing.T) {
	result := RunResult{
		Success:         true,
		TotalRecords:    3,
		MatchPercentage: "66.67",
		Reports:         NewReportSet(),
		Summary:         map[string]int{"0": 2},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"success"`, `"totalRecords"`, `"matchPercentage"`, `"reports"`, `"summary"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("serialized result missing %s: %s", key, data)
		}
	}
	if strings.Contains(string(data), `"message"`) {
		t.Errorf("empty message should be omitted: %s", data)
	}
}
