package scoring

import (
	"opsbench/pkg/core/config"
	"opsbench/pkg/core/financials"
	"opsbench/pkg/models"
)

// Ceiling and effort bounds. The estimator never emits values outside these
// regardless of input.
const (
	ceilingFloor = 0.25
	ceilingCap   = 0.85
	effortFloor  = 10.0
	effortCap    = 75.0
)

// Savings multipliers, documented so the downstream consumer can reproduce
// the bounds exactly:
//
//	with a positive G&A gap:   excessGA x effortMin% x 0.5 .. excessGA x effortMax% x 0.7
//	G&A dollars, no gap:       5% .. 15% of G&A spend
//	revenue only:              0.5% .. 2% of revenue
const (
	savingsMinScale    = 0.5
	savingsMaxScale    = 0.7
	gaOnlyMinFraction  = 0.05
	gaOnlyMaxFraction  = 0.15
	revOnlyMinFraction = 0.005
	revOnlyMaxFraction = 0.02
)

// Estimate is the bounded output of the ceiling/effort/savings estimator.
type Estimate struct {
	AutomationCeiling float64
	EffortAddressable models.Range
	CostSavingsRange  models.Range
}

// EstimateOpportunity turns the complexity score and peer gaps into bounded
// ranges. gaGapVsPeers is company G&A% minus peer median G&A% (positive =
// spending more than peers); nil when either side is unavailable.
func EstimateOpportunity(complexityScore float64, erpName string, gaGapVsPeers *float64, profile *models.FinancialProfile, cfg *config.Config) Estimate {
	_, class := cfg.ClassifyERP(erpName)

	return Estimate{
		AutomationCeiling: automationCeiling(complexityScore, class),
		EffortAddressable: effortAddressable(complexityScore, gaGapVsPeers, class),
		CostSavingsRange:  costSavingsRange(gaGapVsPeers, profile, complexityScore, class, cfg),
	}
}

// automationCeiling starts from the ERP-maturity base and trims it for
// organizational complexity: 10% off at score >= 80, 5% off at >= 60.
func automationCeiling(score float64, class config.ERPClass) float64 {
	ceiling := class.CeilingBase
	switch {
	case score >= 80:
		ceiling *= 0.90
	case score >= 60:
		ceiling *= 0.95
	}
	return clamp(ceiling, ceilingFloor, ceilingCap)
}

// effortAddressable shifts the ERP-tier base range by the G&A gap: the more
// a company outspends its peers on G&A, the more addressable waste exists.
// Spending materially less than peers shifts the range down.
func effortAddressable(score float64, gaGap *float64, class config.ERPClass) models.Range {
	min, max := class.EffortMin, class.EffortMax

	if gaGap != nil {
		switch g := *gaGap; {
		case g >= 8:
			min, max = min+12, max+15
		case g >= 5:
			min, max = min+8, max+10
		case g >= 2:
			min, max = min+4, max+6
		case g > 0:
			min, max = min+2, max+3
		case g < -3:
			// Already leaner than peers: less addressable waste.
			min, max = min-5, max-5
		}
	}

	// High complexity widens the upper bound: messier organizations have a
	// wider spread of plausible outcomes.
	if score >= 75 {
		max += 5
	}

	min = clamp(min, effortFloor, effortCap)
	max = clamp(max, effortFloor, effortCap)
	if min > max {
		min = max
	}
	return models.Range{Min: min, Max: max}
}

// costSavingsRange degrades gracefully through three data-availability
// tiers rather than failing on incomplete peer or expense data.
func costSavingsRange(gaGap *float64, profile *models.FinancialProfile, score float64, class config.ERPClass, cfg *config.Config) models.Range {
	var revenue float64
	if len(profile.YearlyData) > 0 {
		revenue = profile.YearlyData[0].Revenue
	}
	gaDollars := financials.GADollars(profile.YearlyData, cfg)
	effort := effortAddressable(score, gaGap, class)

	// (a) Anchor to the excess-G&A dollars implied by the peer gap.
	if gaGap != nil && *gaGap > 0 && revenue > 0 {
		excess := *gaGap / 100 * revenue
		return models.Range{
			Min: excess * (effort.Min / 100) * savingsMinScale,
			Max: excess * (effort.Max / 100) * savingsMaxScale,
		}
	}

	// (b) G&A spend is known but there is no peer gap to anchor on.
	if gaDollars != nil && *gaDollars > 0 {
		return models.Range{
			Min: *gaDollars * gaOnlyMinFraction,
			Max: *gaDollars * gaOnlyMaxFraction,
		}
	}

	// (c) Last resort: a conservative fraction of revenue.
	if revenue > 0 {
		return models.Range{
			Min: revenue * revOnlyMinFraction,
			Max: revenue * revOnlyMaxFraction,
		}
	}
	return models.Range{}
}
