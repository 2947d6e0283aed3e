package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SourceRecord is one parsed row of an uploaded premium file.
// Records are immutable once parsed; one row yields exactly one record.
type SourceRecord struct {
	PolicyNumber string          `json:"policy_number"`
	PremiumType  string          `json:"premium_type,omitempty"`  // letter code, e.g. "L"
	Street       string          `json:"street"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Zip          string          `json:"zip"`
	Premium      decimal.Decimal `json:"premium"`                 // parsed, "$" and "," stripped
	CompanyCode  string          `json:"company_code,omitempty"`
}

// OneLineAddress builds the single-line address submitted to the geocoder.
// Empty fields pass through as empty segments; no validation is applied.
func (r SourceRecord) OneLineAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", r.Street, r.City, r.State, r.Zip)
}

// HasAddress reports whether any address field is populated. Rows that
// fail this check are skipped by the pipeline rather than geocoded.
func (r SourceRecord) HasAddress() bool {
	return strings.TrimSpace(r.Street) != "" || strings.TrimSpace(r.City) != "" ||
		strings.TrimSpace(r.State) != "" || strings.TrimSpace(r.Zip) != ""
}

// EffectiveCompanyCode returns the explicit company code when present,
// otherwise the portion of the policy number before its first hyphen.
func (r SourceRecord) EffectiveCompanyCode() string {
	if r.CompanyCode != "" {
		return r.CompanyCode
	}
	return strings.SplitN(r.PolicyNumber, "-", 2)[0]
}

// Coordinates is a geographic point returned by the geocoder.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeOutcome is the result of submitting one address to the
// geocoder. Created once per record; immutable.
type GeocodeOutcome struct {
	Failed         bool         `json:"failed"`          // transport/decode failure, distinct from zero candidates
	Candidates     int          `json:"candidates"`      // number of candidate matches returned
	MatchedAddress string       `json:"matched_address,omitempty"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
	TigerLineID    string       `json:"tiger_line_id,omitempty"` // opaque pass-through
	Side           string       `json:"side,omitempty"`          // side of street, pass-through
}

// Jurisdiction is the tax entity a premium is allocated to.
type Jurisdiction struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	County string `json:"county"`
}

// ClassifiedRecord is the unit the aggregation engine consumes: the
// source row, its geocode outcome, the resolved jurisdiction and the
// assigned match code. Every usable source row produces exactly one.
type ClassifiedRecord struct {
	Source           SourceRecord    `json:"source"`
	Outcome          GeocodeOutcome  `json:"outcome"`
	Jurisdiction     Jurisdiction    `json:"jurisdiction"`
	MatchCode        string          `json:"match_code"`
	MatchDescription string          `json:"match_description"`
	Premium          decimal.Decimal `json:"premium"`
}
