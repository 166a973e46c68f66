// Package scoring turns a FinancialProfile and peer benchmarks into the
// bounded numeric constraints the downstream narrative step consumes.
// Everything here is a pure function over its inputs.
package scoring

import (
	"opsbench/pkg/core/config"
	"opsbench/pkg/core/financials"
	"opsbench/pkg/models"
)

// Signal point budgets. The six budgets sum to 100; the final score is
// clipped to [0,100] anyway as a guard.
const (
	revenueBudget  = 25.0
	employeeBudget = 20.0
	gaBudget       = 15.0
	historyBudget  = 10.0
	erpBudget      = 15.0
	sizeBudget     = 15.0
)

// Neutral values for missing signals: half the signal's budget, so sparse
// data does not artificially depress the score.
const (
	revenueNeutral  = revenueBudget / 2
	employeeNeutral = employeeBudget / 2
	gaNeutral       = gaBudget / 2
	historyNeutral  = historyBudget / 2
)

// ComputeComplexityScore rates organizational complexity 0-100 from six
// independently weighted signals. Higher means a more complex organization
// and therefore a harder automation program.
func ComputeComplexityScore(profile *models.FinancialProfile, erpName, companySize string, cfg *config.Config) float64 {
	score := revenuePoints(profile) +
		employeePoints(profile) +
		gaPoints(financials.GAPercent(profile.YearlyData, cfg)) +
		historyPoints(len(profile.YearlyData)) +
		erpPoints(erpName, cfg) +
		cfg.SizePoints(companySize)

	return clamp(score, 0, 100)
}

// revenuePoints: 0-25 by revenue scale.
func revenuePoints(profile *models.FinancialProfile) float64 {
	if len(profile.YearlyData) == 0 {
		return revenueNeutral
	}
	revenue := profile.YearlyData[0].Revenue
	switch {
	case revenue >= 10e9:
		return 25
	case revenue >= 1e9:
		return 20
	case revenue >= 500e6:
		return 16
	case revenue >= 100e6:
		return 12
	case revenue >= 25e6:
		return 8
	case revenue > 0:
		return 5
	default:
		return revenueNeutral
	}
}

// employeePoints: 0-20 by headcount.
func employeePoints(profile *models.FinancialProfile) float64 {
	if profile.EmployeeCount == nil || *profile.EmployeeCount <= 0 {
		return employeeNeutral
	}
	n := *profile.EmployeeCount
	switch {
	case n >= 10000:
		return 20
	case n >= 5000:
		return 17
	case n >= 1000:
		return 14
	case n >= 250:
		return 10
	case n >= 50:
		return 7
	default:
		return 4
	}
}

// gaPoints: 0-15 by G&A burden as a percent of revenue. Heavier G&A means
// more manual administrative process.
func gaPoints(gaPercent *float64) float64 {
	if gaPercent == nil {
		return gaNeutral
	}
	switch ga := *gaPercent; {
	case ga >= 20:
		return 15
	case ga >= 15:
		return 12
	case ga >= 10:
		return 9
	case ga >= 5:
		return 6
	default:
		return 3
	}
}

// historyPoints: 0-10, 3.5 points per disclosed year, capped. Reporting
// history is a maturity proxy; zero years means unknown, not simple.
func historyPoints(years int) float64 {
	if years <= 0 {
		return historyNeutral
	}
	pts := float64(years) * 3.5
	if pts > historyBudget {
		return historyBudget
	}
	return pts
}

// erpPoints: 0-15 from the maturity table; unrecognized systems land on the
// neutral "unknown" class.
func erpPoints(erpName string, cfg *config.Config) float64 {
	_, class := cfg.ClassifyERP(erpName)
	return class.ComplexityPoints
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
