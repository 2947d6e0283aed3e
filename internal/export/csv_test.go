package export

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"premalloc/internal/model"
)

func TestCSV_RoundTrip(t *testing.T) {
	table := model.ReportTable{
		Headers: []string{"Policy #", "Normal Address", "Premiums"},
		Rows: [][]string{
			{"POL-1", "1 Plaza, Suite 200, Florence, KY 41042", "1250.50"},
			{"POL-2", `said "no"`, "0.00"},
			{"Total of Detail Report", "", "1250.50"},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("round trip changed the table:\n got %+v\nwant %+v", got, table)
	}
}

func TestWriteCSV_QuotesCommaCells(t *testing.T) {
	table := model.ReportTable{
		Headers: []string{"Address"},
		Rows:    [][]string{{"100 Main St, Covington, KY 41011"}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(buf.String(), `"100 Main St, Covington, KY 41011"`) {
		t.Errorf("comma cell not quoted: %q", buf.String())
	}
}

func TestReadCSV_Empty(t *testing.T) {
	got, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCSV(empty): %v", err)
	}
	if len(got.Headers) != 0 || len(got.Rows) != 0 {
		t.Errorf("empty input = %+v, want empty table", got)
	}
}
