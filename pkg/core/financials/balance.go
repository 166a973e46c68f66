package financials

import (
	"sort"

	"opsbench/pkg/core/config"
	"opsbench/pkg/core/edgar"
	"opsbench/pkg/models"
)

const daysPerYear = 365.0

// BuildBalanceSheet extracts point-in-time balance items for the most recent
// year ends, newest first. Equity is derived (assets - liabilities) when
// both sides are present; it is never read from a separate concept.
func BuildBalanceSheet(cf *edgar.CompanyFacts, cfg *config.Config) []models.BalanceSheetSnapshot {
	bc := cfg.Concepts.Balance
	ns := cfg.Concepts.Namespace

	cash := edgar.ExtractInstantSeries(cf, ns, bc.Cash)
	ar := edgar.ExtractInstantSeries(cf, ns, bc.AccountsReceivable)
	ap := edgar.ExtractInstantSeries(cf, ns, bc.AccountsPayable)
	inventory := edgar.ExtractInstantSeries(cf, ns, bc.Inventory)
	assets := edgar.ExtractInstantSeries(cf, ns, bc.TotalAssets)
	liabilities := edgar.ExtractInstantSeries(cf, ns, bc.TotalLiabilities)

	yearSet := make(map[int]struct{})
	for _, s := range []edgar.AnnualSeries{cash, ar, ap, inventory, assets, liabilities} {
		for y := range s {
			yearSet[y] = struct{}{}
		}
	}
	if len(yearSet) == 0 {
		return nil
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if len(years) > maxProfileYears {
		years = years[:maxProfileYears]
	}

	out := make([]models.BalanceSheetSnapshot, 0, len(years))
	for _, year := range years {
		snap := models.BalanceSheetSnapshot{
			Year:               year,
			Cash:               lookup(cash, year),
			AccountsReceivable: lookup(ar, year),
			AccountsPayable:    lookup(ap, year),
			InventoryNet:       lookup(inventory, year),
			TotalAssets:        lookup(assets, year),
			TotalLiabilities:   lookup(liabilities, year),
		}
		if snap.TotalAssets != nil && snap.TotalLiabilities != nil {
			equity := *snap.TotalAssets - *snap.TotalLiabilities
			snap.TotalEquity = &equity
		}
		out = append(out, snap)
	}
	return out
}

// DeriveMetrics computes working-capital and leverage ratios from the single
// most recent year that has both an income record and a balance snapshot.
// Each metric is independently omitted when an input is missing. cogs is the
// cost-of-revenue series extracted alongside the statement.
func DeriveMetrics(yearly []models.YearlyFinancial, balance []models.BalanceSheetSnapshot, cogs edgar.AnnualSeries) *models.DerivedMetrics {
	year, income, snap, ok := latestCommonYear(yearly, balance)
	if !ok {
		return nil
	}

	m := &models.DerivedMetrics{}
	populated := false

	if snap.AccountsReceivable != nil && income.Revenue > 0 {
		dso := *snap.AccountsReceivable / income.Revenue * daysPerYear
		m.DSO = &dso
		populated = true
	}
	if cogsVal, okCogs := cogs[year]; okCogs && cogsVal > 0 {
		if snap.AccountsPayable != nil {
			dpo := *snap.AccountsPayable / cogsVal * daysPerYear
			m.DPO = &dpo
			populated = true
		}
		if snap.InventoryNet != nil && *snap.InventoryNet > 0 {
			turns := cogsVal / *snap.InventoryNet
			m.InventoryTurns = &turns
			populated = true
		}
	}

	// Approximation: no current-liabilities concept is fetched, so accounts
	// payable stands in for the denominator. Preserved for output
	// compatibility with existing consumers of this ratio.
	if snap.AccountsPayable != nil && *snap.AccountsPayable > 0 && snap.Cash != nil {
		numerator := *snap.Cash
		if snap.AccountsReceivable != nil {
			numerator += *snap.AccountsReceivable
		}
		if snap.InventoryNet != nil {
			numerator += *snap.InventoryNet
		}
		ratio := numerator / *snap.AccountsPayable
		m.CurrentRatio = &ratio
		populated = true
	}

	if snap.TotalLiabilities != nil && snap.TotalEquity != nil && *snap.TotalEquity > 0 {
		d2e := *snap.TotalLiabilities / *snap.TotalEquity
		m.DebtToEquity = &d2e
		populated = true
	}

	if !populated {
		return nil
	}
	return m
}

// latestCommonYear finds the most recent year present in both statement
// types. Records arrive newest first.
func latestCommonYear(yearly []models.YearlyFinancial, balance []models.BalanceSheetSnapshot) (int, models.YearlyFinancial, models.BalanceSheetSnapshot, bool) {
	for _, yf := range yearly {
		for _, snap := range balance {
			if snap.Year == yf.Year {
				return yf.Year, yf, snap, true
			}
		}
	}
	return 0, models.YearlyFinancial{}, models.BalanceSheetSnapshot{}, false
}

func lookup(s edgar.AnnualSeries, year int) *float64 {
	v, ok := s[year]
	if !ok {
		return nil
	}
	return &v
}
