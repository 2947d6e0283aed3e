// Package classify assigns a match code to each geocoded record.
//
// The taxonomy is closed: every record lands in exactly one bucket and
// every bucket appears in the Job Summary report, zero-count or not.
package classify

import (
	"strings"

	"premalloc/internal/model"
)

// Match codes. String-valued so they can key report tables directly.
const (
	CodeForcedAllocation   = "-1"
	CodeGoodMatch          = "0"
	CodeFuzzyMatch         = "1"
	CodeMultipleHits       = "2"
	CodeNoCandidates       = "3"
	CodePOBox              = "4"
	CodeNotInState         = "5"
	CodeUnverified         = "6"
	CodeStreetNameMismatch = "7"
	CodeZipMismatch        = "8"
	CodeUnitNumberMissing  = "9"
)

// Codes lists every match code in ascending numeric order, -1 first.
// Report generation iterates this slice so zero-count buckets still
// render.
var Codes = []string{
	CodeForcedAllocation,
	CodeGoodMatch,
	CodeFuzzyMatch,
	CodeMultipleHits,
	CodeNoCandidates,
	CodePOBox,
	CodeNotInState,
	CodeUnverified,
	CodeStreetNameMismatch,
	CodeZipMismatch,
	CodeUnitNumberMissing,
}

var descriptions = map[string]string{
	CodeForcedAllocation:   "Forced Allocation",
	CodeGoodMatch:          "Good Match",
	CodeFuzzyMatch:         "Fuzzy Match",
	CodeMultipleHits:       "Multiple Hits",
	CodeNoCandidates:       "No Candidates",
	CodePOBox:              "PO Box or Rural Route",
	CodeNotInState:         "Address not in state",
	CodeUnverified:         "Unverified Address",
	CodeStreetNameMismatch: "Street Name Mismatch",
	CodeZipMismatch:        "ZIP Code Mismatch",
	CodeUnitNumberMissing:  "Unit Number Missing",
}

// Describe returns the human-readable description for a match code, or
// "Unknown" for codes outside the taxonomy.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Unknown"
}

// Classify assigns a match code and description to one geocode outcome.
//
// Decision order: a failed geocoder call always classifies as
// Unverified Address, a successful call with candidates as Good Match,
// and an empty result as PO Box or No Candidates depending on the raw
// address text. Codes -1, 1, 2, 5, 7-9 are reserved for upstream
// signals this system does not compute.
func Classify(outcome model.GeocodeOutcome, rawAddress string) (code, description string) {
	switch {
	case outcome.Failed:
		code = CodeUnverified
	case outcome.Candidates > 0:
		code = CodeGoodMatch
	case IsPOBox(rawAddress):
		code = CodePOBox
	default:
		code = CodeNoCandidates
	}
	return code, Describe(code)
}

// IsPOBox reports whether the address text matches a PO Box pattern,
// case-insensitively.
func IsPOBox(address string) bool {
	lower := strings.ToLower(address)
	return strings.Contains(lower, "po box") || strings.Contains(lower, "p.o. box")
}
