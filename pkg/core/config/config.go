// Package config carries the extraction concept lists and the ERP/company
// size lookup tables used by scoring. Defaults are embedded; the calling
// workflow may supply a modified document instead.
package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Expense roles. The aggregate SG&A role is dropped for a year whenever a
// granular S&M or G&A line covers it, preventing double counting.
const (
	RoleRD  = "rd"
	RoleSM  = "sm"
	RoleGA  = "ga"
	RoleSGA = "sga" // aggregate of sm+ga
)

// ExpenseConcept pairs an expense tag with its display category and role.
type ExpenseConcept struct {
	Concept string `yaml:"concept"`
	Label   string `yaml:"label"`
	Role    string `yaml:"role"`
}

// IsAggregate reports whether this concept rolls up granular categories.
func (e ExpenseConcept) IsAggregate() bool { return e.Role == RoleSGA }

// BalanceConcepts lists the instant-fact tags per balance item, each in
// priority order.
type BalanceConcepts struct {
	Cash               []string `yaml:"cash"`
	AccountsReceivable []string `yaml:"accounts_receivable"`
	AccountsPayable    []string `yaml:"accounts_payable"`
	Inventory          []string `yaml:"inventory"`
	TotalAssets        []string `yaml:"total_assets"`
	TotalLiabilities   []string `yaml:"total_liabilities"`
}

// ConceptConfig holds every tag list the extractor consults.
type ConceptConfig struct {
	Namespace       string           `yaml:"namespace"`
	Revenue         []string         `yaml:"revenue"`
	GrossProfit     []string         `yaml:"gross_profit"`
	OperatingIncome []string         `yaml:"operating_income"`
	NetIncome       []string         `yaml:"net_income"`
	CostOfRevenue   []string         `yaml:"cost_of_revenue"`
	Expenses        []ExpenseConcept `yaml:"expenses"`
	Balance         BalanceConcepts  `yaml:"balance"`
}

// ERPClass is one maturity tier of the ERP lookup table.
type ERPClass struct {
	CeilingBase      float64  `yaml:"ceiling_base"`
	EffortMin        float64  `yaml:"effort_min"`
	EffortMax        float64  `yaml:"effort_max"`
	ComplexityPoints float64  `yaml:"complexity_points"`
	Names            []string `yaml:"names"`
}

// ERPMaturity is the full four-tier table.
type ERPMaturity struct {
	Classes map[string]ERPClass `yaml:"classes"`
}

// CompanySize maps declared size buckets to complexity points.
type CompanySize struct {
	Buckets       map[string]float64 `yaml:"buckets"`
	UnknownPoints float64            `yaml:"unknown_points"`
}

// Config is the root document.
type Config struct {
	Concepts    ConceptConfig `yaml:"concepts"`
	ERPMaturity ERPMaturity   `yaml:"erp_maturity"`
	CompanySize CompanySize   `yaml:"company_size"`
}

// Load parses a configuration document.
func Load(doc []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Concepts.Namespace == "" {
		return nil, fmt.Errorf("config missing concepts.namespace")
	}
	if _, ok := cfg.ERPMaturity.Classes["unknown"]; !ok {
		return nil, fmt.Errorf("config missing erp_maturity fallback class %q", "unknown")
	}
	return &cfg, nil
}

// Default returns the embedded configuration. The embedded document is
// validated at build time by the package tests, so a parse failure here is
// a programming error.
func Default() *Config {
	cfg, err := Load(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults.yaml invalid: %v", err))
	}
	return cfg
}

// ClassifyERP resolves an ERP system name to its maturity class by
// case-insensitive substring match, falling back to "unknown". The longest
// matching candidate wins, so "SAP S/4HANA Cloud" resolves to the cloud
// tier rather than the shorter on-prem "sap s/4hana" entry.
func (c *Config) ClassifyERP(erpName string) (string, ERPClass) {
	name := strings.ToLower(strings.TrimSpace(erpName))
	bestClass := ""
	bestLen := 0
	if name != "" {
		for class, spec := range c.ERPMaturity.Classes {
			for _, candidate := range spec.Names {
				if len(candidate) > bestLen && strings.Contains(name, candidate) {
					bestClass, bestLen = class, len(candidate)
				}
			}
		}
	}
	if bestClass == "" {
		bestClass = "unknown"
	}
	return bestClass, c.ERPMaturity.Classes[bestClass]
}

// SizePoints returns the complexity points for a declared size bucket, or
// the neutral fallback when the bucket is unknown or empty.
func (c *Config) SizePoints(bucket string) float64 {
	if pts, ok := c.CompanySize.Buckets[strings.ToLower(strings.TrimSpace(bucket))]; ok {
		return pts
	}
	return c.CompanySize.UnknownPoints
}
