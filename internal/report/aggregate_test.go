package report

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"premalloc/internal/classify"
	"premalloc/internal/model"
)

func mustStrategy(t *testing.T, name string) CategoryStrategy {
	t.Helper()
	s, err := StrategyFromName(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func record(policy, city, county, code, matchCode, premium string) model.ClassifiedRecord {
	matched := ""
	if matchCode == classify.CodeGoodMatch {
		matched = "100 MAIN ST, " + city + ", KY, 41011"
	}
	return model.ClassifiedRecord{
		Source: model.SourceRecord{
			PolicyNumber: policy,
			Street:       "100 Main St",
			City:         city,
			State:        "KY",
			Zip:          "41011",
			Premium:      decimal.RequireFromString(premium),
		},
		Outcome:          model.GeocodeOutcome{Candidates: boolToInt(matchCode == classify.CodeGoodMatch), MatchedAddress: matched},
		Jurisdiction:     model.Jurisdiction{Name: city, Code: code, County: county},
		MatchCode:        matchCode,
		MatchDescription: classify.Describe(matchCode),
		Premium:          decimal.RequireFromString(premium),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sampleRecords() []model.ClassifiedRecord {
	return []model.ClassifiedRecord{
		record("POL-1", "COVINGTON", "KENTON COUNTY", "5", "0", "250.00"),
		record("POL-2", "FLORENCE", "BOONE COUNTY", "16", "0", "100.00"),
		record("POL-3", "COVINGTON", "KENTON COUNTY", "5", "3", "49.99"),
		record("POL-4", "NOWHERE COUNTY", "NOWHERE COUNTY", "9998", "4", "600.01"),
	}
}

func TestJobSummary_AllCodesRendered(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.JobSummary(sampleRecords())

	if len(table.Rows) != len(classify.Codes) {
		t.Fatalf("got %d rows, want %d (one per code, zero-count included)", len(table.Rows), len(classify.Codes))
	}
	for i, code := range classify.Codes {
		if table.Rows[i][0] != code {
			t.Errorf("row %d code = %q, want %q (ascending, -1 first)", i, table.Rows[i][0], code)
		}
	}
}

func TestJobSummary_CountsAndPremiumsReconcile(t *testing.T) {
	records := sampleRecords()
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.JobSummary(records)

	countSum := 0
	premiumSum := decimal.Zero
	for _, row := range table.Rows {
		n, err := strconv.Atoi(row[2])
		if err != nil {
			t.Fatalf("record count cell %q: %v", row[2], err)
		}
		countSum += n
		if row[4] != "-" {
			premiumSum = premiumSum.Add(decimal.RequireFromString(row[4]))
		}
	}

	if countSum != len(records) {
		t.Errorf("record counts sum to %d, want %d", countSum, len(records))
	}
	if want := TotalPremiums(records); !premiumSum.Equal(want) {
		t.Errorf("premium column sums to %s, want %s", premiumSum, want)
	}
}

func TestJobSummary_ZeroCountRowsUseDashes(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.JobSummary(sampleRecords())

	for _, row := range table.Rows {
		if row[2] == "0" {
			for _, col := range []int{3, 4, 5} {
				if row[col] != "-" {
					t.Errorf("code %s zero-count column %d = %q, want -", row[0], col, row[col])
				}
			}
		}
	}
}

func TestJobSummary_Percentages(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.JobSummary(sampleRecords())

	// Code 0: 2 of 4 records, 350.00 of 1000.00 premiums.
	var goodRow []string
	for _, row := range table.Rows {
		if row[0] == "0" {
			goodRow = row
		}
	}
	if goodRow[3] != "50.00%" {
		t.Errorf("record percentage = %q, want 50.00%%", goodRow[3])
	}
	if goodRow[4] != "350.00" {
		t.Errorf("premiums = %q, want 350.00", goodRow[4])
	}
	if goodRow[5] != "35.00%" {
		t.Errorf("premium percentage = %q, want 35.00%%", goodRow[5])
	}
}

func TestJobSummary_EmptyInput(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.JobSummary(nil)

	if len(table.Rows) != len(classify.Codes) {
		t.Fatalf("got %d rows, want %d", len(table.Rows), len(classify.Codes))
	}
	for _, row := range table.Rows {
		if row[2] != "0" || row[3] != "-" || row[4] != "-" || row[5] != "-" {
			t.Errorf("empty-input row = %v, want zero count and dashes", row)
		}
	}
}

func TestAllocationDetail_TotalRowFirst(t *testing.T) {
	records := sampleRecords()
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.AllocationDetail(records)

	if len(table.Rows) != len(records)+1 {
		t.Fatalf("got %d rows, want %d", len(table.Rows), len(records)+1)
	}

	total := table.Rows[0]
	if total[0] != "Total of Detail Report" {
		t.Errorf("first row label = %q", total[0])
	}
	if total[1] != "1000.00" || total[2] != "1000.00" {
		t.Errorf("total row premiums = %q/%q, want 1000.00 in both", total[1], total[2])
	}
	for i := 3; i < len(total); i++ {
		if total[i] != "" {
			t.Errorf("total row cell %d = %q, want blank", i, total[i])
		}
	}
}

func TestAllocationDetail_RowContents(t *testing.T) {
	records := sampleRecords()
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.AllocationDetail(records)

	if len(table.Headers) != 24 {
		t.Fatalf("got %d headers, want 24", len(table.Headers))
	}

	row := table.Rows[1] // POL-1, good match
	if row[0] != "POL-1" || row[1] != "250.00" || row[2] != "250.00" {
		t.Errorf("policy/premium cells = %v", row[:3])
	}
	if row[3] != "KENTON" {
		t.Errorf("jurisdiction assigned = %q, want KENTON (suffix stripped)", row[3])
	}
	if row[5] != "KENTON COUNTY" {
		t.Errorf("county = %q, want KENTON COUNTY (suffix kept)", row[5])
	}
	if row[14] != "100 MAIN ST" || row[15] != "COVINGTON" || row[16] != "KY" || row[17] != "41011" {
		t.Errorf("matched address cells = %v", row[14:18])
	}
	if row[18] != "S8HPNTSCZA" {
		t.Errorf("matched identifier = %q", row[18])
	}
	if row[19] != "POL" {
		t.Errorf("company code = %q, want policy prefix POL", row[19])
	}
	if row[23] != "Muni" {
		t.Errorf("final column = %q, want Muni", row[23])
	}

	exception := table.Rows[3] // POL-3, no candidates
	if exception[14] != "" || exception[15] != "" || exception[16] != "" || exception[17] != "" {
		t.Errorf("unmatched record should have empty matched cells, got %v", exception[14:18])
	}
	if exception[18] != "-" {
		t.Errorf("unmatched identifier = %q, want -", exception[18])
	}
}

func TestAllocationDetail_PreservesInputOrder(t *testing.T) {
	records := sampleRecords()
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.AllocationDetail(records)

	for i, r := range records {
		if table.Rows[i+1][0] != r.Source.PolicyNumber {
			t.Errorf("row %d policy = %q, want %q", i+1, table.Rows[i+1][0], r.Source.PolicyNumber)
		}
	}
}

func TestAllocationSummary_FixedRowsAndGrouping(t *testing.T) {
	records := sampleRecords()
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.AllocationSummary(records)

	if len(table.Headers) != 11 {
		t.Fatalf("got %d headers, want 11", len(table.Headers))
	}

	if table.Rows[0][0] != "Total of Detail Report" ||
		table.Rows[1][0] != "Total of County Allocation Report" ||
		table.Rows[2][0] != "Total of All Premiums" {
		t.Fatalf("fixed rows = %v %v %v", table.Rows[0][0], table.Rows[1][0], table.Rows[2][0])
	}

	// County allocation pass does not exist: its row is all zero.
	for i := 2; i < len(table.Rows[1]); i++ {
		if cell := table.Rows[1][i]; cell != "0" && cell != "0.00" {
			t.Errorf("county allocation row cell %d = %q, want zero", i, cell)
		}
	}

	// Jurisdictions sorted lexicographically: BOONE, KENTON, NOWHERE.
	wantOrder := []string{"BOONE", "KENTON", "NOWHERE"}
	if len(table.Rows) != 3+len(wantOrder) {
		t.Fatalf("got %d rows, want %d", len(table.Rows), 3+len(wantOrder))
	}
	for i, name := range wantOrder {
		if table.Rows[3+i][0] != name {
			t.Errorf("jurisdiction row %d = %q, want %q", i, table.Rows[3+i][0], name)
		}
	}

	// KENTON groups POL-1 and POL-3.
	kenton := table.Rows[4]
	if kenton[1] != "5" || kenton[2] != "2" || kenton[3] != "299.99" {
		t.Errorf("KENTON row = %v", kenton)
	}
}

func TestAllocationSummary_TotalsReconcile(t *testing.T) {
	records := sampleRecords()
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.AllocationSummary(records)

	countSum := 0
	premiumSum := decimal.Zero
	for _, row := range table.Rows[3:] {
		n, err := strconv.Atoi(row[2])
		if err != nil {
			t.Fatalf("count cell %q: %v", row[2], err)
		}
		countSum += n
		premiumSum = premiumSum.Add(decimal.RequireFromString(row[3]))
	}

	if countSum != len(records) {
		t.Errorf("per-jurisdiction counts sum to %d, want %d", countSum, len(records))
	}
	if want := TotalPremiums(records); !premiumSum.Equal(want) {
		t.Errorf("per-jurisdiction premiums sum to %s, want %s", premiumSum, want)
	}
}

func TestAllocationSummary_LifeMirror(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.AllocationSummary(sampleRecords())

	// Headers: 4 fixed + 7 categories; Life is column 8.
	if table.Headers[8] != "Life" {
		t.Fatalf("header 8 = %q, want Life", table.Headers[8])
	}
	for _, row := range table.Rows[3:] {
		if row[8] != row[3] {
			t.Errorf("jurisdiction %s: Life = %q, want total %q", row[0], row[8], row[3])
		}
		for _, col := range []int{4, 5, 6, 7, 9, 10} {
			if row[col] != "0.00" {
				t.Errorf("jurisdiction %s: category column %d = %q, want 0.00", row[0], col, row[col])
			}
		}
	}
}

func TestAllocationSummary_SplitStrategy(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "split"))
	table := agg.AllocationSummary(sampleRecords())

	// BOONE holds 100.00: Casualty 60.00, Fire & Allied 40.00.
	boone := table.Rows[3]
	if boone[4] != "60.00" || boone[5] != "40.00" {
		t.Errorf("split cells = %q/%q, want 60.00/40.00", boone[4], boone[5])
	}
	if boone[8] != "0.00" {
		t.Errorf("Life under split strategy = %q, want 0.00", boone[8])
	}
}

func TestMatchExceptions_PresenceAndOrder(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))

	records := sampleRecords()
	table, present := agg.MatchExceptions(records)
	if !present {
		t.Fatal("expected exceptions to be present")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d exception rows, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "POL-3" || table.Rows[1][0] != "POL-4" {
		t.Errorf("exception order = %q, %q", table.Rows[0][0], table.Rows[1][0])
	}
	if table.Rows[1][3] != "100 Main St, NOWHERE COUNTY, KY 41011" {
		t.Errorf("normalized address = %q", table.Rows[1][3])
	}

	clean := []model.ClassifiedRecord{
		record("POL-1", "COVINGTON", "KENTON COUNTY", "5", "0", "10.00"),
	}
	if _, present := agg.MatchExceptions(clean); present {
		t.Error("all-clean run should omit the exceptions table")
	}
}

func TestSourceData_EchoesEveryRecord(t *testing.T) {
	records := sampleRecords()
	agg := NewAggregator(mustStrategy(t, "life"))
	table := agg.SourceData(records)

	if len(table.Rows) != len(records) {
		t.Fatalf("got %d rows, want %d", len(table.Rows), len(records))
	}
	row := table.Rows[0]
	if row[1] != "GENERAL" || row[3] != "UPLOAD" {
		t.Errorf("literal tags = %q/%q, want GENERAL/UPLOAD", row[1], row[3])
	}
	if row[4] != "250.00" {
		t.Errorf("premium = %q", row[4])
	}
}

func TestAssemble_DeclaredOrder(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))

	set := agg.Assemble(sampleRecords())
	want := []string{
		model.ReportJobSummary,
		model.ReportAllocationDetail,
		model.ReportAllocationSummary,
		model.ReportSourceData,
		model.ReportMatchExceptions,
	}
	names := set.Names()
	if len(names) != len(want) {
		t.Fatalf("got %d reports, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("report %d = %q, want %q", i, names[i], want[i])
		}
	}

	clean := agg.Assemble([]model.ClassifiedRecord{
		record("POL-1", "COVINGTON", "KENTON COUNTY", "5", "0", "10.00"),
	})
	if _, ok := clean.Get(model.ReportMatchExceptions); ok {
		t.Error("clean run should not include Match Exceptions")
	}
	if clean.Len() != 4 {
		t.Errorf("clean run has %d reports, want 4", clean.Len())
	}
}

func TestAssemble_EmptyInputProducesWellFormedReports(t *testing.T) {
	agg := NewAggregator(mustStrategy(t, "life"))
	set := agg.Assemble(nil)

	if set.Len() != 4 {
		t.Fatalf("got %d reports, want 4", set.Len())
	}
	detail, _ := set.Get(model.ReportAllocationDetail)
	if len(detail.Rows) != 1 || detail.Rows[0][1] != "0.00" {
		t.Errorf("empty detail = %v", detail.Rows)
	}
}
