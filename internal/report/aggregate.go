// Package report turns a run's classified records into the fixed set of
// allocation report tables.
//
// This is the part of the system with real invariants: record counts
// and premium totals must reconcile across tables, every match-code
// bucket must appear in the Job Summary, and percentages render
// consistently ("NN.NN%", "-" when a denominator is zero).
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"premalloc/internal/classify"
	"premalloc/internal/model"
)

// countySuffix is stripped when a county name renders in the
// "Jurisdiction Assigned To" column but kept in the "County" column.
const countySuffix = " COUNTY"

// matchedIdentifier is the fixed per-identifier token carried on good
// matches in the Allocation Detail report.
const matchedIdentifier = "S8HPNTSCZA"

// Aggregator builds the report tables. One aggregator per run; it owns
// no state between calls beyond its category strategy.
type Aggregator struct {
	categories CategoryStrategy
}

// NewAggregator creates an aggregator with the given category strategy.
func NewAggregator(categories CategoryStrategy) *Aggregator {
	return &Aggregator{categories: categories}
}

// Summary counts records per match code. Every code in the taxonomy is
// present, zero-count or not.
func Summary(records []model.ClassifiedRecord) map[string]int {
	counts := make(map[string]int, len(classify.Codes))
	for _, code := range classify.Codes {
		counts[code] = 0
	}
	for _, r := range records {
		counts[r.MatchCode]++
	}
	return counts
}

// TotalPremiums sums the premium amounts of all records.
func TotalPremiums(records []model.ClassifiedRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Premium)
	}
	return total
}

// JobSummary builds the per-match-code rollup. One row per code, all
// codes rendered, sorted ascending by numeric value with -1 first.
func (a *Aggregator) JobSummary(records []model.ClassifiedRecord) model.ReportTable {
	counts := Summary(records)
	premiums := make(map[string]decimal.Decimal, len(classify.Codes))
	for _, code := range classify.Codes {
		premiums[code] = decimal.Zero
	}
	for _, r := range records {
		premiums[r.MatchCode] = premiums[r.MatchCode].Add(r.Premium)
	}

	total := len(records)
	totalPremiums := TotalPremiums(records)

	rows := make([][]string, 0, len(classify.Codes))
	for _, code := range classify.Codes {
		count := counts[code]

		recordPct := "-"
		premiumCell := "-"
		premiumPct := "-"
		if count > 0 {
			recordPct = percentCell(decimal.NewFromInt(int64(count)), decimal.NewFromInt(int64(total)))
			premiumCell = premiums[code].StringFixed(2)
			premiumPct = percentCell(premiums[code], totalPremiums)
		}

		rows = append(rows, []string{
			code,
			classify.Describe(code),
			strconv.Itoa(count),
			recordPct,
			premiumCell,
			premiumPct,
		})
	}

	return model.ReportTable{
		Headers: []string{
			"Match Code", "Match Description", "# of Records",
			"% of records", "Total of Source Premiums", "% of Source Premiums",
		},
		Rows: rows,
	}
}

var allocationDetailHeaders = []string{
	"Policy #", "Source Premiums", "Premiums",
	"Jurisdiction Assigned To", "Jurisdiction Code", "County", "City",
	"Match Code", "Match Description", "Premium Type",
	"Normal Street", "Normal City", "Normal State", "Normal Zip",
	"Matched Street", "Matched City", "Matched State", "Matched Zip",
	"Matched Identifier", "Company Code",
	"Miscellaneous 1", "Miscellaneous 2", "Miscellaneous 3", "Miscellaneous 4",
}

// AllocationDetail builds the per-record detail table. The total row is
// always first; data rows preserve input order.
func (a *Aggregator) AllocationDetail(records []model.ClassifiedRecord) model.ReportTable {
	total := TotalPremiums(records).StringFixed(2)

	totalRow := make([]string, len(allocationDetailHeaders))
	totalRow[0] = "Total of Detail Report"
	totalRow[1] = total
	totalRow[2] = total

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, totalRow)

	for _, r := range records {
		premium := r.Premium.StringFixed(2)
		matchedStreet, matchedCity, matchedState, matchedZip := splitMatchedAddress(r.Outcome.MatchedAddress)

		identifier := "-"
		if r.MatchCode == classify.CodeGoodMatch {
			identifier = matchedIdentifier
		}

		premiumType := r.Source.PremiumType
		if premiumType == "" {
			premiumType = "L"
		}

		rows = append(rows, []string{
			r.Source.PolicyNumber,
			premium,
			premium, // duplicated by design: source premiums and allocated premiums agree in this report family
			strings.TrimSuffix(r.Jurisdiction.County, countySuffix),
			r.Jurisdiction.Code,
			r.Jurisdiction.County,
			r.Source.City,
			r.MatchCode,
			r.MatchDescription,
			premiumType,
			r.Source.Street,
			r.Source.City,
			r.Source.State,
			r.Source.Zip,
			matchedStreet,
			matchedCity,
			matchedState,
			matchedZip,
			identifier,
			r.Source.EffectiveCompanyCode(),
			"-", "-", "-", "Muni",
		})
	}

	return model.ReportTable{Headers: allocationDetailHeaders, Rows: rows}
}

// splitMatchedAddress parses the geocoder's matched-address string into
// street, city, state and zip by comma split. Best effort: segments the
// geocoder did not return come back empty.
func splitMatchedAddress(matched string) (street, city, state, zip string) {
	if matched == "" {
		return "", "", "", ""
	}
	parts := strings.Split(matched, ",")
	segment := func(i int) string {
		if i >= len(parts) {
			return ""
		}
		return strings.TrimSpace(parts[i])
	}
	return segment(0), segment(1), segment(2), segment(3)
}

// AllocationSummary builds the per-jurisdiction rollup: three fixed
// grand-total rows followed by one row per distinct jurisdiction,
// sorted lexicographically.
func (a *Aggregator) AllocationSummary(records []model.ClassifiedRecord) model.ReportTable {
	headers := append([]string{
		"Jurisdiction Assigned To", "Jurisdiction Code", "# of Records", "Total Premiums",
	}, CategoryColumns...)

	type bucket struct {
		code  string
		count int
		total decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	var names []string
	for _, r := range records {
		name := strings.TrimSuffix(r.Jurisdiction.County, countySuffix)
		b, ok := buckets[name]
		if !ok {
			b = &bucket{code: r.Jurisdiction.Code, total: decimal.Zero}
			buckets[name] = b
			names = append(names, name)
		}
		b.count++
		b.total = b.total.Add(r.Premium)
	}
	sort.Strings(names)

	totalRecords := strconv.Itoa(len(records))
	totalPremiums := TotalPremiums(records)

	rows := make([][]string, 0, len(names)+3)
	rows = append(rows,
		summaryTotalRow("Total of Detail Report", totalRecords, totalPremiums, a.categories),
		// The county allocation pass does not exist in this system; its
		// total row is structurally present and always zero.
		summaryTotalRow("Total of County Allocation Report", "0", decimal.Zero, a.categories),
		summaryTotalRow("Total of All Premiums", totalRecords, totalPremiums, a.categories),
	)

	for _, name := range names {
		b := buckets[name]
		row := []string{name, b.code, strconv.Itoa(b.count), b.total.StringFixed(2)}
		row = append(row, a.categories.Allocate(b.total)...)
		rows = append(rows, row)
	}

	return model.ReportTable{Headers: headers, Rows: rows}
}

func summaryTotalRow(label, count string, total decimal.Decimal, categories CategoryStrategy) []string {
	row := []string{label, "", count, total.StringFixed(2)}
	return append(row, categories.Allocate(total)...)
}

// MatchExceptions builds the exception table. The second return value
// reports whether any record failed to match cleanly; when false the
// table is omitted from the report set entirely.
func (a *Aggregator) MatchExceptions(records []model.ClassifiedRecord) (model.ReportTable, bool) {
	var rows [][]string
	for _, r := range records {
		if r.MatchCode == classify.CodeGoodMatch {
			continue
		}
		rows = append(rows, []string{
			r.Source.PolicyNumber,
			r.MatchCode,
			r.MatchDescription,
			r.Source.OneLineAddress(),
			r.Premium.StringFixed(2),
		})
	}
	if len(rows) == 0 {
		return model.ReportTable{}, false
	}
	return model.ReportTable{
		Headers: []string{"Policy #", "Match Code", "Description", "Normal Address", "Premiums"},
		Rows:    rows,
	}, true
}

// SourceData echoes every processed record.
func (a *Aggregator) SourceData(records []model.ClassifiedRecord) model.ReportTable {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Source.PolicyNumber,
			"GENERAL",
			r.Source.OneLineAddress(),
			"UPLOAD",
			r.Premium.StringFixed(2),
		})
	}
	return model.ReportTable{
		Headers: []string{"Policy #", "Premium Type", "Source Address", "Company Code", "Premiums"},
		Rows:    rows,
	}
}

// percentCell renders value/total as "NN.NN%", or "-" when the
// denominator is zero.
func percentCell(value, total decimal.Decimal) string {
	if total.IsZero() {
		return "-"
	}
	return value.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(2) + "%"
}
