// Package models defines the value objects exchanged between the ingestion,
// benchmarking and scoring stages. Everything here is passed by copy; optional
// numerics are *float64 so that "absent" is distinguishable from zero.
package models

// =============================================================================
// COMPANY FINANCIALS
// =============================================================================

// ExpenseLine is a single operating-expense category for one fiscal year.
type ExpenseLine struct {
	Category         string   `json:"category"`
	Amount           float64  `json:"amount"`
	PercentOfRevenue *float64 `json:"percent_of_revenue,omitempty"`
}

// YearlyFinancial holds the income-statement view of one calendar year.
// Margin fields are nil when the underlying ratio failed the sanity bound
// [-200%, 100%] or when an input concept had no data.
type YearlyFinancial struct {
	Year            int           `json:"year"`
	Revenue         float64       `json:"revenue"`
	RevenueGrowth   *float64      `json:"revenue_growth,omitempty"`
	GrossMargin     *float64      `json:"gross_margin,omitempty"`
	OperatingMargin *float64      `json:"operating_margin,omitempty"`
	NetMargin       *float64      `json:"net_margin,omitempty"`
	Expenses        []ExpenseLine `json:"expenses,omitempty"`
}

// BalanceSheetSnapshot holds point-in-time balance items for one year end.
// TotalEquity is derived (assets - liabilities) when both are present.
type BalanceSheetSnapshot struct {
	Year               int      `json:"year"`
	Cash               *float64 `json:"cash,omitempty"`
	AccountsReceivable *float64 `json:"accounts_receivable,omitempty"`
	AccountsPayable    *float64 `json:"accounts_payable,omitempty"`
	InventoryNet       *float64 `json:"inventory_net,omitempty"`
	TotalAssets        *float64 `json:"total_assets,omitempty"`
	TotalLiabilities   *float64 `json:"total_liabilities,omitempty"`
	TotalEquity        *float64 `json:"total_equity,omitempty"`
}

// DerivedMetrics are working-capital and leverage ratios computed from the
// single most recent year that has both income and balance data. Each field
// is independently optional: a missing input omits the metric, never zeroes it.
type DerivedMetrics struct {
	DSO            *float64 `json:"dso,omitempty"`
	DPO            *float64 `json:"dpo,omitempty"`
	InventoryTurns *float64 `json:"inventory_turns,omitempty"`
	CurrentRatio   *float64 `json:"current_ratio,omitempty"`
	DebtToEquity   *float64 `json:"debt_to_equity,omitempty"`
}

// FinancialProfile is the aggregate the scoring stage consumes. It is built
// fresh per request and never persisted by this library.
type FinancialProfile struct {
	YearlyData         []YearlyFinancial      `json:"yearly_data"`
	BalanceSheet       []BalanceSheetSnapshot `json:"balance_sheet,omitempty"`
	Derived            *DerivedMetrics        `json:"derived_metrics,omitempty"`
	EmployeeCount      *int                   `json:"employee_count,omitempty"`
	RevenuePerEmployee *float64               `json:"revenue_per_employee,omitempty"`
	KeyInsight         string                 `json:"key_insight,omitempty"`
	RevenueScale       string                 `json:"revenue_scale,omitempty"`
	Source             string                 `json:"source"`
}

// =============================================================================
// PEER BENCHMARKING
// =============================================================================

// PeerFinancials is one peer company's pre-extracted metrics. Peers arrive in
// three separately sourced lists; the list a record sits in implies its tier.
type PeerFinancials struct {
	Ticker          string   `json:"ticker"`
	CompanyName     string   `json:"company_name"`
	Revenue         *float64 `json:"revenue,omitempty"`
	RevenueGrowth   *float64 `json:"revenue_growth,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	RDAsPercent     *float64 `json:"rd_as_percent,omitempty"`
	SMAsPercent     *float64 `json:"sm_as_percent,omitempty"`
	GAAsPercent     *float64 `json:"ga_as_percent,omitempty"`
	DSO             *float64 `json:"dso,omitempty"`
	DPO             *float64 `json:"dpo,omitempty"`
	RevPerEmployee  *float64 `json:"rev_per_employee,omitempty"`
}

// PeerMedians is the tier-weighted median of every benchmarkable metric.
// A metric is nil when no retained peer supplied it.
type PeerMedians struct {
	GAPercent          *float64 `json:"ga_percent,omitempty"`
	RDPercent          *float64 `json:"rd_percent,omitempty"`
	SMPercent          *float64 `json:"sm_percent,omitempty"`
	OperatingMargin    *float64 `json:"operating_margin,omitempty"`
	GrossMargin        *float64 `json:"gross_margin,omitempty"`
	DSO                *float64 `json:"dso,omitempty"`
	DPO                *float64 `json:"dpo,omitempty"`
	RevenuePerEmployee *float64 `json:"revenue_per_employee,omitempty"`
	PeerCount          int      `json:"peer_count"`
	MedianRevenue      *float64 `json:"median_revenue,omitempty"`
	Source             string   `json:"source"`
}

// =============================================================================
// SCORING OUTPUT
// =============================================================================

// Range is an inclusive numeric interval with Min <= Max.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ScoringResult is the immutable output of the scoring stage. The Constraints
// map carries the same numbers pre-rendered as strings for the downstream
// consumer that embeds them verbatim.
type ScoringResult struct {
	ComplexityScore              float64           `json:"complexity_score"`
	AutomationCeiling            float64           `json:"automation_ceiling"`
	EffortAddressable            Range             `json:"effort_addressable"`
	CostSavingsRange             Range             `json:"cost_savings_range"`
	GAGapVsPeers                 *float64          `json:"ga_gap_vs_peers,omitempty"`
	DSOGap                       *float64          `json:"dso_gap,omitempty"`
	DPOGap                       *float64          `json:"dpo_gap,omitempty"`
	RevenuePerEmployee           *float64          `json:"revenue_per_employee,omitempty"`
	PeerMedianRevenuePerEmployee *float64          `json:"peer_median_revenue_per_employee,omitempty"`
	Constraints                  map[string]string `json:"constraints"`
	PeerContext                  string            `json:"peer_context,omitempty"`
}

// Float returns a pointer to v. Convenience for building optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
