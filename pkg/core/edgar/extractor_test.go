package edgar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gaap = "us-gaap"

func factSet(concepts map[string][]Fact) *CompanyFacts {
	ns := make(map[string]ConceptFacts, len(concepts))
	for name, facts := range concepts {
		ns[name] = ConceptFacts{Units: map[string][]Fact{usdUnit: facts}}
	}
	return &CompanyFacts{
		CIK:        1234,
		EntityName: "Test Co",
		Facts:      map[string]map[string]ConceptFacts{gaap: ns},
	}
}

func annualFact(value float64, start, end string, fy int) Fact {
	return Fact{Value: value, Start: start, End: end, FiscalYr: fy, FiscalPer: "FY", Form: "10-K"}
}

func TestExtractAnnualSeriesOneValuePerYear(t *testing.T) {
	// Two 10-K filings both report fiscal 2022; the comparative column in
	// the fiscal-2023 filing must not produce a second 2022 entry.
	cf := factSet(map[string][]Fact{
		"Revenues": {
			annualFact(100, "2022-01-01", "2022-12-31", 2022),
			annualFact(100, "2022-01-01", "2022-12-31", 2023),
			annualFact(120, "2023-01-01", "2023-12-31", 2023),
		},
	})

	series := ExtractAnnualSeries(cf, gaap, []string{"Revenues"})
	require.Len(t, series, 2)
	assert.Equal(t, 100.0, series[2022])
	assert.Equal(t, 120.0, series[2023])
}

func TestExtractAnnualSeriesRejectsShortPeriods(t *testing.T) {
	// A Q4 value mistagged with FY/10-K still fails the 10-14 month span
	// check and must be excluded.
	cf := factSet(map[string][]Fact{
		"Revenues": {
			annualFact(30, "2023-10-01", "2023-12-31", 2023), // ~3 months
			annualFact(25, "2022-01-01", "2023-06-30", 2023), // ~18 months
		},
	})

	series := ExtractAnnualSeries(cf, gaap, []string{"Revenues"})
	assert.Empty(t, series)
}

func TestExtractAnnualSeriesAcceptsFiftyTwoWeekYears(t *testing.T) {
	// Retail-style 52/53-week fiscal years are ~364/371 days and must pass.
	cf := factSet(map[string][]Fact{
		"Revenues": {
			annualFact(500, "2023-01-29", "2024-02-03", 2023),
		},
	})

	series := ExtractAnnualSeries(cf, gaap, []string{"Revenues"})
	assert.Equal(t, 500.0, series[2024])
}

func TestExtractAnnualSeriesRestatementWins(t *testing.T) {
	// Fiscal-2023 filing restates calendar 2022 from 100 to 95. The value
	// filed under the higher fiscal-year label wins.
	cf := factSet(map[string][]Fact{
		"Revenues": {
			annualFact(100, "2022-01-01", "2022-12-31", 2022),
			annualFact(95, "2022-01-01", "2022-12-31", 2023),
		},
	})

	series := ExtractAnnualSeries(cf, gaap, []string{"Revenues"})
	assert.Equal(t, 95.0, series[2022])
}

func TestExtractAnnualSeriesFiltersQuarterlyForms(t *testing.T) {
	cf := factSet(map[string][]Fact{
		"Revenues": {
			{Value: 40, Start: "2023-01-01", End: "2023-12-31", FiscalYr: 2023, FiscalPer: "FY", Form: "10-Q"},
			{Value: 41, Start: "2023-01-01", End: "2023-12-31", FiscalYr: 2023, FiscalPer: "Q4", Form: "10-K"},
		},
	})

	series := ExtractAnnualSeries(cf, gaap, []string{"Revenues"})
	assert.Empty(t, series)
}

func TestExtractAnnualSeriesConceptPriority(t *testing.T) {
	// First concept with any data short-circuits; values are never merged
	// across concepts even when a later one has more years.
	cf := factSet(map[string][]Fact{
		"RevenueFromContractWithCustomerExcludingAssessedTax": {
			annualFact(200, "2023-01-01", "2023-12-31", 2023),
		},
		"Revenues": {
			annualFact(210, "2023-01-01", "2023-12-31", 2023),
			annualFact(190, "2022-01-01", "2022-12-31", 2022),
		},
	})

	series := ExtractAnnualSeries(cf, gaap, []string{
		"RevenueFromContractWithCustomerExcludingAssessedTax",
		"Revenues",
	})
	require.Len(t, series, 1)
	assert.Equal(t, 200.0, series[2023])
}

func TestExtractAnnualSeriesEmptyWhenNoConceptHasData(t *testing.T) {
	cf := factSet(map[string][]Fact{})
	series := ExtractAnnualSeries(cf, gaap, []string{"Revenues", "SalesRevenueNet"})
	assert.Empty(t, series)

	// Empty means unavailable, not zero.
	_, ok := series[2023]
	assert.False(t, ok)
}

func TestExtractInstantSeries(t *testing.T) {
	cf := factSet(map[string][]Fact{
		"Assets": {
			{Value: 900, End: "2022-12-31", FiscalYr: 2022, FiscalPer: "FY", Form: "10-K"},
			{Value: 910, End: "2022-12-31", FiscalYr: 2023, FiscalPer: "FY", Form: "10-K"}, // restated
			{Value: 1000, End: "2023-12-31", FiscalYr: 2023, FiscalPer: "FY", Form: "10-K"},
			{Value: 980, End: "2023-09-30", FiscalYr: 2023, FiscalPer: "Q3", Form: "10-Q"},
		},
	})

	series := ExtractInstantSeries(cf, gaap, []string{"Assets"})
	require.Len(t, series, 2)
	assert.Equal(t, 910.0, series[2022])
	assert.Equal(t, 1000.0, series[2023])
}

func TestSeriesHelpers(t *testing.T) {
	s := AnnualSeries{2021: 1, 2023: 3, 2022: 2}
	assert.Equal(t, []int{2021, 2022, 2023}, s.Years())

	year, value, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 2023, year)
	assert.Equal(t, 3.0, value)

	_, _, ok = AnnualSeries{}.Latest()
	assert.False(t, ok)
}

func TestParseCompanyFactsRejectsMalformed(t *testing.T) {
	_, err := ParseCompanyFacts([]byte(`{"cik": "not-a-number"`))
	assert.Error(t, err)

	_, err = ParseCompanyFacts([]byte(`{"cik": 1234, "entityName": "X"}`))
	assert.Error(t, err, "payload without a facts section is malformed")
}
