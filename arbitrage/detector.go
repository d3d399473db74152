// Package arbitrage implements negative-cycle detection over a fxgraph.Graph:
// a profitable round trip through the currency graph corresponds to a
// negative-weight cycle in the -ln(rate) weighted graph, which Bellman-Ford
// detects in O(V*E) per source. Grounded on the teacher's ledger/graph.go
// traversal style and telemetry instrumentation conventions.
package arbitrage

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/config"
	"github.com/cardops/backoffice/fxgraph"
	"github.com/cardops/backoffice/money"
	"github.com/cardops/backoffice/telemetry"
)

// defaultRelaxationSlack is the epsilon below which a relaxation is not
// considered an improvement, guarding against floating point noise
// producing spurious cycles on a graph with no real arbitrage (spec.md
// §4.2 edge cases). It is config.NewConfig's own default; callers that
// attach a config.Config to ctx (see config.WithContext) override it via
// Config.RelaxationEpsilon.
const defaultRelaxationSlack = 1e-8

// DetectionStatistics summarizes a full Detect run.
type DetectionStatistics struct {
	VertexCount      int
	EdgeCount        int
	SourcesProbed    int
	OpportunityCount int
}

// Detect runs Bellman-Ford from every vertex in the graph and returns every
// distinct negative-weight cycle found, sorted by descending profit
// percentage, with rotation- and direction-duplicates collapsed to a single
// Opportunity (spec.md §4.2 steps 1-6).
//
// Detect requires the graph to be connected (every vertex reachable from
// vertex 0); a disconnected graph is a precondition violation reported as
// cerrors.DisconnectedGraph, since an unreachable vertex can never be probed
// as a cycle source or destination.
func Detect(ctx context.Context, g *fxgraph.Graph) ([]Opportunity, error) {
	if g == nil {
		return nil, cerrors.InvalidArgumentf("graph must not be nil")
	}
	if !g.IsConnected() {
		return nil, cerrors.New(cerrors.DisconnectedGraph, "currency graph is not fully connected")
	}

	collector := telemetry.FromContext(ctx)
	timer := collector.Start("Detect")
	defer timer.End()
	epsilon := config.FromContext(ctx).RelaxationEpsilon

	seen := make(map[string]Opportunity)
	for _, source := range money.All {
		opp, err := detectFrom(g, source, timer, epsilon)
		if err != nil {
			return nil, err
		}
		if opp == nil {
			continue
		}
		key := canonicalKey(opp.Path)
		if _, dup := seen[key]; !dup {
			seen[key] = *opp
		}
	}

	opportunities := make([]Opportunity, 0, len(seen))
	for _, opp := range seen {
		opportunities = append(opportunities, opp)
	}
	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].ProfitPercent.GreaterThan(opportunities[j].ProfitPercent)
	})

	return opportunities, nil
}

// DetectFrom runs Bellman-Ford from a single source vertex and returns the
// first negative cycle reachable from it, or nil if none exists.
func DetectFrom(ctx context.Context, g *fxgraph.Graph, source money.Currency) (*Opportunity, error) {
	if g == nil {
		return nil, cerrors.InvalidArgumentf("graph must not be nil")
	}
	if !source.Valid() {
		return nil, cerrors.New(cerrors.UnsupportedCurrency, "unsupported source currency %s", source)
	}

	collector := telemetry.FromContext(ctx)
	timer := collector.Start("Detect")
	defer timer.End()

	return detectFrom(g, source, timer, config.FromContext(ctx).RelaxationEpsilon)
}

// Statistics runs Detect and reports aggregate counts alongside the result,
// for CLI reporting (SPEC_FULL.md §10).
func Statistics(ctx context.Context, g *fxgraph.Graph) (DetectionStatistics, error) {
	if g == nil {
		return DetectionStatistics{}, cerrors.InvalidArgumentf("graph must not be nil")
	}

	opportunities, err := Detect(ctx, g)
	if err != nil {
		return DetectionStatistics{}, err
	}

	return DetectionStatistics{
		VertexCount:      money.NumCurrencies(),
		EdgeCount:        len(g.AllEdges()),
		SourcesProbed:    money.NumCurrencies(),
		OpportunityCount: len(opportunities),
	}, nil
}

// detectFrom performs the Bellman-Ford relax/detect/reconstruct pipeline
// for a single source, instrumented as a child of timer. epsilon is the
// caller's config.Config.RelaxationEpsilon (config.FromContext falls back
// to config.NewConfig's 1e-8, the same value as defaultRelaxationSlack, when
// no Config was attached to the context).
func detectFrom(g *fxgraph.Graph, source money.Currency, timer telemetry.Timer, epsilon float64) (*Opportunity, error) {
	n := money.NumCurrencies()
	edges := g.AllEdges()

	dist := make([]float64, n)
	pred := make([]int, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		pred[i] = -1
	}
	dist[source.Index()] = 0

	relaxTimer := timer.Child(fmt.Sprintf("arbitrage.relax (%d edges)", len(edges)))
	for i := 0; i < n-1; i++ {
		changed := false
		for _, e := range edges {
			u, v := e.From.Index(), e.To.Index()
			if dist[u] == math.Inf(1) {
				continue
			}
			if cand := dist[u] + e.Weight; cand < dist[v]-epsilon {
				dist[v] = cand
				pred[v] = u
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	relaxTimer.End()

	flagged := -1
	for _, e := range edges {
		u, v := e.From.Index(), e.To.Index()
		if dist[u] == math.Inf(1) {
			continue
		}
		if dist[u]+e.Weight < dist[v]-epsilon {
			flagged = v
			break
		}
	}
	if flagged == -1 {
		return nil, nil
	}

	// Walk preds n times to guarantee landing inside the cycle, then walk
	// backward again collecting nodes until a repeat is found.
	node := flagged
	for i := 0; i < n; i++ {
		node = pred[node]
	}

	cycle := make([]int, 0, n)
	onCycle := make(map[int]int)
	for {
		if idx, ok := onCycle[node]; ok {
			cycle = cycle[idx:]
			break
		}
		onCycle[node] = len(cycle)
		cycle = append(cycle, node)
		node = pred[node]
	}

	// cycle was collected walking backward (via pred), so reverse it to get
	// forward traversal order.
	path := make([]money.Currency, len(cycle))
	for i, idx := range cycle {
		c, _ := money.CurrencyFromIndex(idx)
		path[len(cycle)-1-i] = c
	}

	opp, ok := buildOpportunity(g, path)
	if !ok {
		return nil, nil
	}
	return &opp, nil
}
