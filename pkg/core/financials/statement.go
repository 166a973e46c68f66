// Package financials assembles clean annual statements and derived metrics
// from extracted XBRL series. All functions are pure; missing inputs degrade
// to absent fields, never to zeros or errors.
package financials

import (
	"opsbench/pkg/core/config"
	"opsbench/pkg/core/edgar"
	"opsbench/pkg/models"
)

const (
	// Sanity bounds for any %-of-revenue ratio. A margin outside this band
	// is a unit or tagging error in the source, not information, so it is
	// downgraded to absent rather than reported as a distorted number.
	marginFloorPct = -200.0
	marginCeilPct  = 100.0

	// Most recent reporting years carried into the profile.
	maxProfileYears = 3
)

// expenseSeries is one extracted expense concept with its config entry.
type expenseSeries struct {
	spec   config.ExpenseConcept
	series edgar.AnnualSeries
}

// BuildYearlyFinancials assembles income-statement records for the most
// recent years with revenue data, newest first. Growth is computed against
// the adjacent calendar year of the same extracted series, never against a
// different filing's comparative column.
func BuildYearlyFinancials(cf *edgar.CompanyFacts, cfg *config.Config) []models.YearlyFinancial {
	cc := cfg.Concepts
	revenue := edgar.ExtractAnnualSeries(cf, cc.Namespace, cc.Revenue)
	if len(revenue) == 0 {
		return nil
	}

	gross := edgar.ExtractAnnualSeries(cf, cc.Namespace, cc.GrossProfit)
	operating := edgar.ExtractAnnualSeries(cf, cc.Namespace, cc.OperatingIncome)
	net := edgar.ExtractAnnualSeries(cf, cc.Namespace, cc.NetIncome)

	expenses := make([]expenseSeries, 0, len(cc.Expenses))
	for _, spec := range cc.Expenses {
		expenses = append(expenses, expenseSeries{
			spec:   spec,
			series: edgar.ExtractAnnualSeries(cf, cc.Namespace, []string{spec.Concept}),
		})
	}

	years := revenue.Years()
	if len(years) > maxProfileYears {
		years = years[len(years)-maxProfileYears:]
	}

	out := make([]models.YearlyFinancial, 0, len(years))
	for i := len(years) - 1; i >= 0; i-- { // newest first
		year := years[i]
		rev := revenue[year]

		yf := models.YearlyFinancial{
			Year:            year,
			Revenue:         rev,
			RevenueGrowth:   growthVsPriorYear(revenue, year),
			GrossMargin:     ratioOfRevenue(gross, year, rev),
			OperatingMargin: ratioOfRevenue(operating, year, rev),
			NetMargin:       ratioOfRevenue(net, year, rev),
			Expenses:        expenseLines(expenses, year, rev),
		}
		out = append(out, yf)
	}
	return out
}

// growthVsPriorYear returns year-over-year revenue growth in percent, or nil
// when the prior calendar year is absent from the series.
func growthVsPriorYear(revenue edgar.AnnualSeries, year int) *float64 {
	prior, ok := revenue[year-1]
	if !ok || prior <= 0 {
		return nil
	}
	growth := (revenue[year] - prior) / prior * 100
	return &growth
}

// ratioOfRevenue returns numerator/revenue as a percentage, with the sanity
// bound applied. Out-of-band ratios are absent, never present-but-wrong.
func ratioOfRevenue(numerator edgar.AnnualSeries, year int, revenue float64) *float64 {
	v, ok := numerator[year]
	if !ok || revenue <= 0 {
		return nil
	}
	pct := v / revenue * 100
	if pct < marginFloorPct || pct > marginCeilPct {
		return nil
	}
	return &pct
}

// expenseLines emits the year's expense records in config order. When a
// granular S&M or G&A line exists for the year, the SG&A aggregate is
// dropped so the same dollars are not counted twice.
func expenseLines(expenses []expenseSeries, year int, revenue float64) []models.ExpenseLine {
	hasGranular := false
	for _, e := range expenses {
		if e.spec.Role != config.RoleSM && e.spec.Role != config.RoleGA {
			continue
		}
		if _, ok := e.series[year]; ok {
			hasGranular = true
			break
		}
	}

	var lines []models.ExpenseLine
	for _, e := range expenses {
		amount, ok := e.series[year]
		if !ok {
			continue
		}
		if e.spec.IsAggregate() && hasGranular {
			continue
		}
		lines = append(lines, models.ExpenseLine{
			Category:         e.spec.Label,
			Amount:           amount,
			PercentOfRevenue: ratioOfRevenue(e.series, year, revenue),
		})
	}
	return lines
}

// GAPercent returns the company's G&A burden as a percent of revenue for the
// most recent year, preferring the granular G&A line and falling back to the
// SG&A aggregate. Used as the peer-gap numerator.
func GAPercent(yearly []models.YearlyFinancial, cfg *config.Config) *float64 {
	if len(yearly) == 0 {
		return nil
	}
	labels := roleLabels(cfg)
	latest := yearly[0]
	for _, role := range []string{config.RoleGA, config.RoleSGA} {
		for _, line := range latest.Expenses {
			if line.Category == labels[role] && line.PercentOfRevenue != nil {
				return line.PercentOfRevenue
			}
		}
	}
	return nil
}

// GADollars returns the most recent year's G&A (or SG&A) spend in dollars.
func GADollars(yearly []models.YearlyFinancial, cfg *config.Config) *float64 {
	if len(yearly) == 0 {
		return nil
	}
	labels := roleLabels(cfg)
	latest := yearly[0]
	for _, role := range []string{config.RoleGA, config.RoleSGA} {
		for _, line := range latest.Expenses {
			if line.Category == labels[role] {
				amount := line.Amount
				return &amount
			}
		}
	}
	return nil
}

func roleLabels(cfg *config.Config) map[string]string {
	labels := make(map[string]string, len(cfg.Concepts.Expenses))
	for _, e := range cfg.Concepts.Expenses {
		labels[e.Role] = e.Label
	}
	return labels
}
