package peers

import (
	"fmt"

	hjson "github.com/hjson/hjson-go/v4"

	"opsbench/pkg/models"
)

// PeerLists is the already-assembled three-tier peer input. How each list is
// sourced (industry-code lookup, filing-text extraction, user curation) is a
// collaborator's concern; this package only decodes and aggregates.
type PeerLists struct {
	SIC         []models.PeerFinancials `json:"sic_peers"`
	Competitors []models.PeerFinancials `json:"competitor_peers"`
	Curated     []models.PeerFinancials `json:"curated_peers"`
}

// ParsePeerLists decodes a peer-list document. Hjson is accepted so
// hand-curated files with comments and trailing commas parse cleanly; strict
// JSON is a subset and works unchanged.
func ParsePeerLists(doc []byte) (*PeerLists, error) {
	var lists PeerLists
	if err := hjson.Unmarshal(doc, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse peer lists: %w", err)
	}
	return &lists, nil
}

// Medians is a convenience wrapper over ComputePeerMedians.
func (p *PeerLists) Medians() models.PeerMedians {
	return ComputePeerMedians(p.SIC, p.Competitors, p.Curated)
}
