package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsbench/pkg/core/config"
	"opsbench/pkg/models"
)

// profileWithGA is the recurring fixture: $1000M revenue, $150M G&A (15%).
func profileWithGA(t *testing.T) *models.FinancialProfile {
	t.Helper()
	return &models.FinancialProfile{
		YearlyData: []models.YearlyFinancial{
			{
				Year:    2023,
				Revenue: 1000e6,
				Expenses: []models.ExpenseLine{
					{Category: "General & Administrative", Amount: 150e6, PercentOfRevenue: models.Float(15)},
				},
			},
		},
		RevenueScale: "large",
	}
}

func TestComplexityScoreWithinBounds(t *testing.T) {
	cfg := config.Default()

	score := ComputeComplexityScore(profileWithGA(t), "", "", cfg)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)

	// Revenue 1000M -> 20, employees nil -> 10 (neutral), G&A 15% -> 12,
	// one year of history -> 3.5, unknown ERP -> 7.5, unknown size -> 7.5.
	assert.InDelta(t, 60.5, score, 0.001)
}

func TestComplexityScoreMissingSignalsStayNeutral(t *testing.T) {
	cfg := config.Default()
	// Profile with revenue only: every other signal must land mid-budget
	// rather than at zero.
	p := &models.FinancialProfile{
		YearlyData: []models.YearlyFinancial{{Year: 2023, Revenue: 50e6}},
	}

	// Revenue 50M -> 8, employees -> 10, G&A -> 7.5, history 1yr -> 3.5,
	// ERP -> 7.5, size -> 7.5.
	score := ComputeComplexityScore(p, "", "", cfg)
	assert.InDelta(t, 44.0, score, 0.001)
}

func TestComplexityScoreLargeEnterprise(t *testing.T) {
	cfg := config.Default()
	p := profileWithGA(t)
	p.YearlyData[0].Revenue = 20e9
	p.YearlyData[0].Expenses[0].Amount = 4.2e9
	p.YearlyData[0].Expenses[0].PercentOfRevenue = models.Float(21)
	p.EmployeeCount = models.Int(25000)

	// 25 + 20 + 15 + 3.5 + 15 (legacy ERP) + 15 (enterprise) = 93.5
	score := ComputeComplexityScore(p, "SAP ECC 6.0", "enterprise", cfg)
	assert.InDelta(t, 93.5, score, 0.001)
}

func TestAutomationCeilingBoundsForAllInputs(t *testing.T) {
	cfg := config.Default()
	erpNames := []string{"", "NetSuite", "SAP ECC", "SAP S/4HANA", "SAP S/4HANA Cloud", "Homegrown AS/400 thing", "something nobody heard of"}

	p := profileWithGA(t)
	for _, erp := range erpNames {
		for score := 0.0; score <= 100.0; score += 5 {
			est := EstimateOpportunity(score, erp, nil, p, cfg)
			assert.GreaterOrEqual(t, est.AutomationCeiling, 0.25, "erp=%q score=%v", erp, score)
			assert.LessOrEqual(t, est.AutomationCeiling, 0.85, "erp=%q score=%v", erp, score)
		}
	}
}

func TestAutomationCeilingComplexityReductions(t *testing.T) {
	cfg := config.Default()
	p := profileWithGA(t)

	// Unknown ERP base 0.50: no reduction below 60, 5% at 60, 10% at 80.
	assert.InDelta(t, 0.50, EstimateOpportunity(59, "", nil, p, cfg).AutomationCeiling, 1e-9)
	assert.InDelta(t, 0.475, EstimateOpportunity(60, "", nil, p, cfg).AutomationCeiling, 1e-9)
	assert.InDelta(t, 0.45, EstimateOpportunity(80, "", nil, p, cfg).AutomationCeiling, 1e-9)
}

func TestEffortAddressableMinNeverExceedsMax(t *testing.T) {
	cfg := config.Default()
	p := profileWithGA(t)
	gaps := []*float64{nil, models.Float(-20), models.Float(-3.5), models.Float(-1), models.Float(0),
		models.Float(1), models.Float(2), models.Float(5), models.Float(8), models.Float(40)}

	for _, erp := range []string{"", "NetSuite", "SAP ECC", "Epicor"} {
		for _, gapVal := range gaps {
			for score := 0.0; score <= 100.0; score += 25 {
				est := EstimateOpportunity(score, erp, gapVal, p, cfg)
				assert.LessOrEqual(t, est.EffortAddressable.Min, est.EffortAddressable.Max)
				assert.GreaterOrEqual(t, est.EffortAddressable.Min, 10.0)
				assert.LessOrEqual(t, est.EffortAddressable.Max, 75.0)
			}
		}
	}
}

func TestEffortAddressableGapBands(t *testing.T) {
	cfg := config.Default()
	p := profileWithGA(t)

	// Unknown ERP base is 20-40.
	base := EstimateOpportunity(50, "", nil, p, cfg).EffortAddressable
	assert.Equal(t, models.Range{Min: 20, Max: 40}, base)

	// Gap of 5 points lands in the +8/+10 band.
	shifted := EstimateOpportunity(50, "", models.Float(5), p, cfg).EffortAddressable
	assert.Equal(t, models.Range{Min: 28, Max: 50}, shifted)

	// Spending 4 points less than peers shifts down 5/5.
	leaner := EstimateOpportunity(50, "", models.Float(-4), p, cfg).EffortAddressable
	assert.Equal(t, models.Range{Min: 15, Max: 35}, leaner)

	// Complexity >= 75 widens the upper bound.
	wide := EstimateOpportunity(75, "", models.Float(5), p, cfg).EffortAddressable
	assert.Equal(t, models.Range{Min: 28, Max: 55}, wide)
}

func TestCostSavingsAnchorsToExcessGA(t *testing.T) {
	cfg := config.Default()
	p := profileWithGA(t)

	// Gap 5pts on $1000M revenue -> excess G&A = $50M. Effort 28-50%.
	// Min = 50M x 0.28 x 0.5 = 7M; Max = 50M x 0.50 x 0.7 = 17.5M.
	est := EstimateOpportunity(50, "", models.Float(5), p, cfg)
	assert.InDelta(t, 7e6, est.CostSavingsRange.Min, 1)
	assert.InDelta(t, 17.5e6, est.CostSavingsRange.Max, 1)
}

func TestCostSavingsFallbackTiers(t *testing.T) {
	cfg := config.Default()

	// (b) G&A dollars known, no gap: 5-15% of $150M.
	est := EstimateOpportunity(50, "", nil, profileWithGA(t), cfg)
	assert.InDelta(t, 7.5e6, est.CostSavingsRange.Min, 1)
	assert.InDelta(t, 22.5e6, est.CostSavingsRange.Max, 1)

	// (c) Revenue only: 0.5-2% of $1000M.
	bare := &models.FinancialProfile{
		YearlyData: []models.YearlyFinancial{{Year: 2023, Revenue: 1000e6}},
	}
	est = EstimateOpportunity(50, "", nil, bare, cfg)
	assert.InDelta(t, 5e6, est.CostSavingsRange.Min, 1)
	assert.InDelta(t, 20e6, est.CostSavingsRange.Max, 1)
}

func TestBuildScoringResultEndToEnd(t *testing.T) {
	cfg := config.Default()
	p := profileWithGA(t)
	medians := models.PeerMedians{
		GAPercent:     models.Float(10),
		PeerCount:     7,
		MedianRevenue: models.Float(800e6),
	}

	r := BuildScoringResult(p, medians, "", "", cfg)

	require.NotNil(t, r.GAGapVsPeers)
	assert.InDelta(t, 5.0, *r.GAGapVsPeers, 1e-9)

	// Score 60.5 (see TestComplexityScoreWithinBounds); below the 75-point
	// widening, above the 60-point ceiling reduction.
	assert.InDelta(t, 60.5, r.ComplexityScore, 0.001)
	assert.InDelta(t, 0.475, r.AutomationCeiling, 1e-9)
	assert.Equal(t, models.Range{Min: 28, Max: 50}, r.EffortAddressable)
	assert.InDelta(t, 7e6, r.CostSavingsRange.Min, 1)
	assert.InDelta(t, 17.5e6, r.CostSavingsRange.Max, 1)

	// 60.5 renders as "60" under round-half-to-even.
	assert.Equal(t, "60/100", r.Constraints["complexity_score"])
	assert.Equal(t, "48%", r.Constraints["automation_ceiling"])
	assert.Equal(t, "28-50%", r.Constraints["effort_addressable"])
	assert.Equal(t, "$7.0M-$17.5M", r.Constraints["cost_savings_range"])
	assert.Equal(t, "+5.0 pts", r.Constraints["ga_gap_vs_peers"])
	assert.Contains(t, r.PeerContext, "7 peers")

	// Gaps with no peer data stay nil.
	assert.Nil(t, r.DSOGap)
	assert.Nil(t, r.DPOGap)
}

func TestGapNilPropagation(t *testing.T) {
	assert.Nil(t, gap(nil, models.Float(1)))
	assert.Nil(t, gap(models.Float(1), nil))
	g := gap(models.Float(15), models.Float(10))
	require.NotNil(t, g)
	assert.Equal(t, 5.0, *g)
}
