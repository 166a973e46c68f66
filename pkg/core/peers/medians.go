// Package peers aggregates tiered peer-company metrics into single weighted
// benchmark medians.
package peers

import (
	"fmt"
	"sort"
	"strings"

	"opsbench/pkg/models"
)

// Tier weights express relative trust in each peer source: industry-code
// lookups are the weakest signal, user-curated peers the strongest.
const (
	WeightSIC        = 1.0
	WeightCompetitor = 1.5
	WeightCurated    = 2.0
)

type weightedPeer struct {
	peer   models.PeerFinancials
	weight float64
}

type observation struct {
	value  float64
	weight float64
}

// ComputePeerMedians combines the three tiers into one PeerMedians record.
// A ticker appearing in multiple tiers is retained only at its highest
// weight; values are never averaged across tiers. Every output metric is nil
// when no retained peer supplies it.
func ComputePeerMedians(sicPeers, competitorPeers, curatedPeers []models.PeerFinancials) models.PeerMedians {
	retained := dedupe(sicPeers, competitorPeers, curatedPeers)

	medians := models.PeerMedians{
		PeerCount: len(retained),
		Source: fmt.Sprintf("peer tiers: %d industry / %d competitor / %d curated, %d after dedup",
			len(sicPeers), len(competitorPeers), len(curatedPeers), len(retained)),
	}
	if len(retained) == 0 {
		return medians
	}

	medians.GAPercent = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.GAAsPercent }))
	medians.RDPercent = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.RDAsPercent }))
	medians.SMPercent = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.SMAsPercent }))
	medians.OperatingMargin = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.OperatingMargin }))
	medians.GrossMargin = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.GrossMargin }))
	medians.DSO = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.DSO }))
	medians.DPO = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.DPO }))
	medians.RevenuePerEmployee = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.RevPerEmployee }))
	medians.MedianRevenue = weightedMedian(collect(retained, func(p models.PeerFinancials) *float64 { return p.Revenue }))

	return medians
}

// dedupe keys peers by ticker and keeps only the highest-weight occurrence.
// Tiers are applied lowest weight first so later tiers overwrite.
func dedupe(sicPeers, competitorPeers, curatedPeers []models.PeerFinancials) []weightedPeer {
	byTicker := make(map[string]weightedPeer)
	absorb := func(list []models.PeerFinancials, weight float64) {
		for _, p := range list {
			key := strings.ToUpper(strings.TrimSpace(p.Ticker))
			if key == "" {
				key = strings.ToUpper(p.CompanyName)
			}
			if cur, ok := byTicker[key]; ok && cur.weight >= weight {
				continue
			}
			byTicker[key] = weightedPeer{peer: p, weight: weight}
		}
	}
	absorb(sicPeers, WeightSIC)
	absorb(competitorPeers, WeightCompetitor)
	absorb(curatedPeers, WeightCurated)

	keys := make([]string, 0, len(byTicker))
	for k := range byTicker {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]weightedPeer, 0, len(keys))
	for _, k := range keys {
		out = append(out, byTicker[k])
	}
	return out
}

func collect(retained []weightedPeer, field func(models.PeerFinancials) *float64) []observation {
	var obs []observation
	for _, wp := range retained {
		if v := field(wp.peer); v != nil {
			obs = append(obs, observation{value: *v, weight: wp.weight})
		}
	}
	return obs
}

// weightedMedian sorts observations by value and returns the first value
// whose cumulative weight strictly exceeds half the total weight. With
// weights {10:1, 20:1, 30:2} the cumulative weight only passes the midpoint
// of 2 at the heaviest item, so the median is 30.
func weightedMedian(obs []observation) *float64 {
	if len(obs) == 0 {
		return nil
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].value < obs[j].value })

	var total float64
	for _, o := range obs {
		total += o.weight
	}

	half := total / 2
	var cumulative float64
	for _, o := range obs {
		cumulative += o.weight
		if cumulative > half {
			v := o.value
			return &v
		}
	}
	v := obs[len(obs)-1].value
	return &v
}
