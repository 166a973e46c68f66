// Package pipeline composes the fetch, extraction, benchmarking and scoring
// stages into the single request-scoped run the calling layer invokes.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"opsbench/pkg/core/config"
	"opsbench/pkg/core/edgar"
	"opsbench/pkg/core/financials"
	"opsbench/pkg/core/peers"
	"opsbench/pkg/core/scoring"
	"opsbench/pkg/models"
)

// FactsSource provides the two EDGAR payloads a run needs. Implemented by
// edgar.Client; tests substitute a stub.
type FactsSource interface {
	FetchCompanyFacts(ctx context.Context, cik int64) (*edgar.CompanyFacts, error)
	FetchCompanyMeta(ctx context.Context, cik int64) (*edgar.CompanyMeta, error)
}

// Request carries everything the calling workflow supplies for one company.
// Peer lists arrive pre-tiered; employee count, ERP name and size bucket are
// static inputs this core does not derive.
type Request struct {
	CIK             int64
	ERPName         string
	CompanySize     string
	EmployeeCount   *int
	SICPeers        []models.PeerFinancials
	CompetitorPeers []models.PeerFinancials
	CuratedPeers    []models.PeerFinancials
}

// Result is one run's full output.
type Result struct {
	RunID       string                   `json:"run_id"`
	Company     *edgar.CompanyMeta       `json:"company,omitempty"`
	Profile     *models.FinancialProfile `json:"profile"`
	PeerMedians models.PeerMedians       `json:"peer_medians"`
	Scoring     models.ScoringResult     `json:"scoring"`
}

// Orchestrator wires the stages together. It holds no per-run state; every
// Run is independent.
type Orchestrator struct {
	source FactsSource
	cfg    *config.Config
	log    zerolog.Logger
}

// NewOrchestrator creates an orchestrator over the given facts source.
func NewOrchestrator(source FactsSource, cfg *config.Config, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		source: source,
		cfg:    cfg,
		log:    log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes the full flow for one company. Facts and metadata are fetched
// concurrently; both requests share the client's rate-limit gate. A facts
// failure aborts the run; a metadata failure only loses the company tag.
// Missing financial data degrades the outputs, it never errors.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	log := o.log.With().Str("run_id", runID).Int64("cik", req.CIK).Logger()

	var (
		facts *edgar.CompanyFacts
		meta  *edgar.CompanyMeta
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facts, err = o.source.FetchCompanyFacts(gctx, req.CIK)
		if err != nil {
			return fmt.Errorf("company facts for CIK %d: %w", req.CIK, err)
		}
		return nil
	})
	g.Go(func() error {
		m, err := o.source.FetchCompanyMeta(gctx, req.CIK)
		if err != nil {
			log.Warn().Err(err).Msg("company metadata unavailable, continuing without it")
			return nil
		}
		meta = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile := financials.BuildProfile(facts, o.cfg, req.EmployeeCount)
	if profile == nil {
		// No revenue data at all: scoring still runs on neutral signals.
		log.Warn().Msg("no annual revenue data, building minimal profile")
		profile = &models.FinancialProfile{
			EmployeeCount: req.EmployeeCount,
			Source:        fmt.Sprintf("SEC EDGAR companyfacts, 10-K filings (CIK %d)", req.CIK),
		}
	}

	medians := peers.ComputePeerMedians(req.SICPeers, req.CompetitorPeers, req.CuratedPeers)
	score := scoring.BuildScoringResult(profile, medians, req.ERPName, req.CompanySize, o.cfg)

	log.Info().
		Int("years", len(profile.YearlyData)).
		Int("peer_count", medians.PeerCount).
		Float64("complexity_score", score.ComplexityScore).
		Float64("automation_ceiling", score.AutomationCeiling).
		Msg("run complete")

	return &Result{
		RunID:       runID,
		Company:     meta,
		Profile:     profile,
		PeerMedians: medians,
		Scoring:     score,
	}, nil
}
