package fxgraph

import (
	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/money"
)

// Edge is a single directed rate quote placed on the graph's adjacency
// list: a vertex pair plus the log weight Bellman-Ford relaxes over, and a
// back-reference to the CurrencyPair it came from. The pairs are stored by
// value in the graph's own arena (Graph.pairs) and an Edge refers to its
// pair by index, the way the teacher's design notes (spec.md §9) recommend to avoid
// reference cycles in a memory-safe target.
type Edge struct {
	From   money.Currency
	To     money.Currency
	Weight float64
	pairID int
}

// Graph is the fixed five-vertex currency graph: an adjacency list of
// weighted edges over money.Currency, each carrying the CurrencyPair it was
// derived from. Adding a pair inserts the forward edge and, unless the
// reversal is degenerate, the reverse edge too.
//
// Graph is a mutable accumulator (spec.md §5): callers must serialize
// AddPair calls, but a frozen Graph supports concurrent pure queries
// (HasEdge, BestRate, AllEdges, IsConnected).
type Graph struct {
	adjacency [money.NumCurrencies()][]Edge
	pairs     []CurrencyPair
}

// NewGraph builds an empty graph over the fixed five-currency vertex set.
func NewGraph() *Graph {
	return &Graph{}
}

// AddPair inserts the forward edge for p (weight -ln(rate)) and, when the
// reversal is well-defined, the reverse edge (weight +ln(rate)). Returns
// the number of edges actually inserted (1 or 2).
func (g *Graph) AddPair(p CurrencyPair) (int, error) {
	if !p.From.Valid() || !p.To.Valid() {
		return 0, cerrors.New(cerrors.UnsupportedCurrency, "currency pair references unsupported currency %s->%s", p.From, p.To)
	}

	g.pairs = append(g.pairs, p)
	forwardID := len(g.pairs) - 1
	g.adjacency[p.From.Index()] = append(g.adjacency[p.From.Index()], Edge{
		From: p.From, To: p.To, Weight: p.LogWeight(), pairID: forwardID,
	})
	inserted := 1

	if rev, ok := p.Reversed(); ok {
		g.pairs = append(g.pairs, rev)
		reverseID := len(g.pairs) - 1
		g.adjacency[rev.From.Index()] = append(g.adjacency[rev.From.Index()], Edge{
			From: rev.From, To: rev.To, Weight: rev.LogWeight(), pairID: reverseID,
		})
		inserted = 2
	}

	return inserted, nil
}

// OutgoingEdges returns the edges leaving from, in insertion order.
func (g *Graph) OutgoingEdges(from money.Currency) []Edge {
	if !from.Valid() {
		return nil
	}
	return g.adjacency[from.Index()]
}

// HasEdge reports whether at least one edge exists from -> to.
func (g *Graph) HasEdge(from, to money.Currency) bool {
	for _, e := range g.OutgoingEdges(from) {
		if e.To == to {
			return true
		}
	}
	return false
}

// BestRate returns the pair backing the minimum-log-weight (= maximum
// rate) edge from -> to among any parallel edges, and false if none exists.
func (g *Graph) BestRate(from, to money.Currency) (CurrencyPair, bool) {
	var best *Edge
	for i, e := range g.OutgoingEdges(from) {
		if e.To != to {
			continue
		}
		if best == nil || e.Weight < best.Weight {
			edge := g.adjacency[from.Index()][i]
			best = &edge
		}
	}
	if best == nil {
		return CurrencyPair{}, false
	}
	return g.pairs[best.pairID], true
}

// AllEdges returns a snapshot of every edge currently in the graph, in
// vertex-index, then insertion, order.
func (g *Graph) AllEdges() []Edge {
	var all []Edge
	for _, c := range money.All {
		all = append(all, g.adjacency[c.Index()]...)
	}
	return all
}

// Pair resolves the CurrencyPair an Edge was derived from.
func (g *Graph) Pair(e Edge) CurrencyPair {
	return g.pairs[e.pairID]
}

// IsConnected reports whether a depth-first traversal of outgoing edges
// starting at vertex 0 (TRY) reaches every one of the five vertices.
func (g *Graph) IsConnected() bool {
	visited := make(map[money.Currency]bool, money.NumCurrencies())
	var dfs func(c money.Currency)
	dfs = func(c money.Currency) {
		if visited[c] {
			return
		}
		visited[c] = true
		for _, e := range g.OutgoingEdges(c) {
			dfs(e.To)
		}
	}
	dfs(money.All[0])
	return len(visited) == money.NumCurrencies()
}
