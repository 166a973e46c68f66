// Package edgar fetches and types SEC EDGAR XBRL company facts.
// API documentation: https://www.sec.gov/developer
package edgar

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// COMPANY FACTS (data.sec.gov/api/xbrl/companyfacts)
// =============================================================================

// Fact is a single tagged numeric disclosure, scoped to a concept, unit and
// time period. Start is empty for instant (point-in-time) facts.
type Fact struct {
	Value     float64 `json:"val"`
	End       string  `json:"end"`             // period end, "2023-12-31"
	Start     string  `json:"start,omitempty"` // period start, empty for instants
	FiscalYr  int     `json:"fy"`              // fiscal-year label of the filing
	FiscalPer string  `json:"fp"`              // "FY", "Q1", ...
	Form      string  `json:"form"`            // "10-K", "10-Q", ...
	Accession string  `json:"accn"`
	Filed     string  `json:"filed,omitempty"`
}

// EndDate parses the period end. Returns the zero time when unparseable.
func (f Fact) EndDate() time.Time {
	t, _ := time.Parse("2006-01-02", f.End)
	return t
}

// StartDate parses the period start. Returns the zero time for instants.
func (f Fact) StartDate() time.Time {
	if f.Start == "" {
		return time.Time{}
	}
	t, _ := time.Parse("2006-01-02", f.Start)
	return t
}

// ConceptFacts holds every reported fact for one concept, keyed by unit
// (e.g. "USD", "shares").
type ConceptFacts struct {
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Units       map[string][]Fact `json:"units"`
}

// CompanyFacts is the typed form of the raw companyfacts payload:
// taxonomy namespace -> concept -> unit -> facts. It is read-only input and
// is never mutated past the ingestion boundary.
type CompanyFacts struct {
	CIK        int64                              `json:"cik"`
	EntityName string                             `json:"entityName"`
	Facts      map[string]map[string]ConceptFacts `json:"facts"`
}

// Concept returns the facts for namespace/concept, or nil when absent.
func (cf *CompanyFacts) Concept(namespace, concept string) *ConceptFacts {
	if cf == nil {
		return nil
	}
	ns, ok := cf.Facts[namespace]
	if !ok {
		return nil
	}
	c, ok := ns[concept]
	if !ok {
		return nil
	}
	return &c
}

// ParseCompanyFacts decodes a raw companyfacts payload into the typed model.
// Everything past the ingestion boundary works on this type, never on the
// raw nested JSON.
func ParseCompanyFacts(body []byte) (*CompanyFacts, error) {
	var cf CompanyFacts
	if err := json.Unmarshal(body, &cf); err != nil {
		return nil, fmt.Errorf("malformed companyfacts payload: %w", err)
	}
	if cf.Facts == nil {
		return nil, fmt.Errorf("companyfacts payload has no facts section")
	}
	return &cf, nil
}

// =============================================================================
// COMPANY METADATA (data.sec.gov/submissions)
// =============================================================================

// CompanyMeta is the slice of the submissions payload this library needs for
// source tagging and logging context.
type CompanyMeta struct {
	CIK            string   `json:"cik"`
	Name           string   `json:"name"`
	SIC            string   `json:"sic"`
	SICDescription string   `json:"sicDescription"`
	Tickers        []string `json:"tickers"`
}

// ParseCompanyMeta decodes a submissions payload.
func ParseCompanyMeta(body []byte) (*CompanyMeta, error) {
	var meta CompanyMeta
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("malformed submissions payload: %w", err)
	}
	return &meta, nil
}
