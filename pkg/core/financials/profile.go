package financials

import (
	"fmt"

	"opsbench/pkg/core/config"
	"opsbench/pkg/core/edgar"
	"opsbench/pkg/models"
)

// BuildProfile assembles the full FinancialProfile for one company from its
// typed fact set. employeeCount comes from the calling workflow; no XBRL
// concept carries headcount reliably. Returns nil when no revenue data
// exists at all, which callers treat as "company unavailable".
func BuildProfile(cf *edgar.CompanyFacts, cfg *config.Config, employeeCount *int) *models.FinancialProfile {
	yearly := BuildYearlyFinancials(cf, cfg)
	if len(yearly) == 0 {
		return nil
	}

	balance := BuildBalanceSheet(cf, cfg)
	cogs := edgar.ExtractAnnualSeries(cf, cfg.Concepts.Namespace, cfg.Concepts.CostOfRevenue)

	profile := &models.FinancialProfile{
		YearlyData:    yearly,
		BalanceSheet:  balance,
		Derived:       DeriveMetrics(yearly, balance, cogs),
		EmployeeCount: employeeCount,
		RevenueScale:  revenueScale(yearly[0].Revenue),
		Source:        fmt.Sprintf("SEC EDGAR companyfacts, 10-K filings (CIK %d)", cf.CIK),
	}

	if employeeCount != nil && *employeeCount > 0 {
		rpe := yearly[0].Revenue / float64(*employeeCount)
		profile.RevenuePerEmployee = &rpe
	}

	profile.KeyInsight = keyInsight(profile, cfg)
	return profile
}

// revenueScale buckets annual revenue into the coarse label downstream
// consumers key on.
func revenueScale(revenue float64) string {
	switch {
	case revenue >= 10e9:
		return "enterprise"
	case revenue >= 1e9:
		return "large"
	case revenue >= 100e6:
		return "mid"
	case revenue >= 10e6:
		return "small"
	default:
		return "micro"
	}
}

// keyInsight picks the single most decision-relevant observation. This is a
// structured summary field, not generated narrative.
func keyInsight(p *models.FinancialProfile, cfg *config.Config) string {
	latest := p.YearlyData[0]
	if ga := GAPercent(p.YearlyData, cfg); ga != nil {
		return fmt.Sprintf("G&A spend is %.1f%% of revenue in %d", *ga, latest.Year)
	}
	if latest.RevenueGrowth != nil {
		return fmt.Sprintf("Revenue %s %.1f%% in %d", growthWord(*latest.RevenueGrowth), abs(*latest.RevenueGrowth), latest.Year)
	}
	return fmt.Sprintf("%d year(s) of disclosed financials through %d", len(p.YearlyData), latest.Year)
}

func growthWord(growth float64) string {
	if growth < 0 {
		return "declined"
	}
	return "grew"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
