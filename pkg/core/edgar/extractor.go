package edgar

import (
	"sort"
)

const (
	// Only the annual report is authoritative for yearly values; quarterly
	// forms restate overlapping periods with less rigor.
	annualForm     = "10-K"
	fullYearPeriod = "FY"
	usdUnit        = "USD"

	// A full fiscal year spans 10-14 months. 52/53-week years land near 12;
	// anything shorter is a quarterly or partial period mistagged as annual.
	minAnnualMonths = 10.0
	maxAnnualMonths = 14.0

	daysPerMonth = 30.44
)

// AnnualSeries maps calendar year -> one value. An empty series means the
// concept is unavailable; callers must never read that as zero.
type AnnualSeries map[int]float64

// Years returns the series' calendar years in ascending order.
func (s AnnualSeries) Years() []int {
	years := make([]int, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Latest returns the most recent year and its value, or ok=false when empty.
func (s AnnualSeries) Latest() (year int, value float64, ok bool) {
	for y, v := range s {
		if !ok || y > year {
			year, value, ok = y, v, true
		}
	}
	return year, value, ok
}

// ExtractAnnualSeries tries the concepts in priority order and returns the
// annual USD series of the first one that yields any data. Values are never
// merged across concepts: mixing synonymous tags from different filers
// produces incoherent series.
func ExtractAnnualSeries(cf *CompanyFacts, namespace string, concepts []string) AnnualSeries {
	for _, concept := range concepts {
		if series := extractDurationSeries(cf, namespace, concept); len(series) > 0 {
			return series
		}
	}
	return AnnualSeries{}
}

// ExtractInstantSeries is the point-in-time counterpart used for balance
// sheet items: same form filter and restatement precedence, but facts carry
// no period start.
func ExtractInstantSeries(cf *CompanyFacts, namespace string, concepts []string) AnnualSeries {
	for _, concept := range concepts {
		if series := extractInstantSeries(cf, namespace, concept); len(series) > 0 {
			return series
		}
	}
	return AnnualSeries{}
}

func extractDurationSeries(cf *CompanyFacts, namespace, concept string) AnnualSeries {
	c := cf.Concept(namespace, concept)
	if c == nil {
		return nil
	}

	best := make(map[int]Fact)
	for _, f := range c.Units[usdUnit] {
		if f.Form != annualForm || f.FiscalPer != fullYearPeriod {
			continue
		}
		if !isAnnualSpan(f) {
			continue
		}
		keepLatestRestatement(best, f)
	}
	return collapse(best)
}

func extractInstantSeries(cf *CompanyFacts, namespace, concept string) AnnualSeries {
	c := cf.Concept(namespace, concept)
	if c == nil {
		return nil
	}

	best := make(map[int]Fact)
	for _, f := range c.Units[usdUnit] {
		if f.Form != annualForm || f.FiscalPer != fullYearPeriod {
			continue
		}
		if f.Start != "" {
			continue // duration fact tagged onto an instant concept
		}
		if f.EndDate().IsZero() {
			continue
		}
		keepLatestRestatement(best, f)
	}
	return collapse(best)
}

// isAnnualSpan rejects facts whose period is not a full fiscal year.
func isAnnualSpan(f Fact) bool {
	start, end := f.StartDate(), f.EndDate()
	if start.IsZero() || end.IsZero() {
		return false
	}
	months := end.Sub(start).Hours() / 24 / daysPerMonth
	return months >= minAnnualMonths && months <= maxAnnualMonths
}

// keepLatestRestatement groups facts by the calendar year of the period end
// and keeps the one reported under the highest fiscal-year label, so a
// restated value from a later filing always replaces the original. Equal
// labels fall back to the later filing date.
func keepLatestRestatement(best map[int]Fact, f Fact) {
	year := f.EndDate().Year()
	cur, ok := best[year]
	if !ok || f.FiscalYr > cur.FiscalYr || (f.FiscalYr == cur.FiscalYr && f.Filed > cur.Filed) {
		best[year] = f
	}
}

func collapse(best map[int]Fact) AnnualSeries {
	if len(best) == 0 {
		return nil
	}
	series := make(AnnualSeries, len(best))
	for year, f := range best {
		series[year] = f.Value
	}
	return series
}
