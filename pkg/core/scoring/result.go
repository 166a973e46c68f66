package scoring

import (
	"fmt"

	"opsbench/pkg/core/config"
	"opsbench/pkg/core/financials"
	"opsbench/pkg/models"
)

// BuildScoringResult composes the scorer and estimator into the immutable
// record handed to the downstream constraint consumer.
func BuildScoringResult(profile *models.FinancialProfile, medians models.PeerMedians, erpName, companySize string, cfg *config.Config) models.ScoringResult {
	gaPercent := financials.GAPercent(profile.YearlyData, cfg)
	gaGap := gap(gaPercent, medians.GAPercent)

	var dsoGap, dpoGap *float64
	if profile.Derived != nil {
		dsoGap = gap(profile.Derived.DSO, medians.DSO)
		dpoGap = gap(profile.Derived.DPO, medians.DPO)
	}

	score := ComputeComplexityScore(profile, erpName, companySize, cfg)
	est := EstimateOpportunity(score, erpName, gaGap, profile, cfg)

	result := models.ScoringResult{
		ComplexityScore:              score,
		AutomationCeiling:            est.AutomationCeiling,
		EffortAddressable:            est.EffortAddressable,
		CostSavingsRange:             est.CostSavingsRange,
		GAGapVsPeers:                 gaGap,
		DSOGap:                       dsoGap,
		DPOGap:                       dpoGap,
		RevenuePerEmployee:           profile.RevenuePerEmployee,
		PeerMedianRevenuePerEmployee: medians.RevenuePerEmployee,
		PeerContext:                  peerContext(medians),
	}
	result.Constraints = constraints(result)
	return result
}

// gap returns company minus peer median, or nil when either side is absent.
func gap(company, peerMedian *float64) *float64 {
	if company == nil || peerMedian == nil {
		return nil
	}
	g := *company - *peerMedian
	return &g
}

// constraints renders the numeric results as the literal strings the
// downstream prompt embeds. Formatting is part of the contract.
func constraints(r models.ScoringResult) map[string]string {
	c := map[string]string{
		"complexity_score":   fmt.Sprintf("%.0f/100", r.ComplexityScore),
		"automation_ceiling": fmt.Sprintf("%.0f%%", r.AutomationCeiling*100),
		"effort_addressable": fmt.Sprintf("%.0f-%.0f%%", r.EffortAddressable.Min, r.EffortAddressable.Max),
		"cost_savings_range": fmt.Sprintf("%s-%s", money(r.CostSavingsRange.Min), money(r.CostSavingsRange.Max)),
	}
	if r.GAGapVsPeers != nil {
		c["ga_gap_vs_peers"] = fmt.Sprintf("%+.1f pts", *r.GAGapVsPeers)
	}
	return c
}

func peerContext(m models.PeerMedians) string {
	if m.PeerCount == 0 {
		return "no peer benchmark available"
	}
	if m.MedianRevenue != nil {
		return fmt.Sprintf("benchmarked against %d peers (median revenue %s)", m.PeerCount, money(*m.MedianRevenue))
	}
	return fmt.Sprintf("benchmarked against %d peers", m.PeerCount)
}

func money(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.0fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
