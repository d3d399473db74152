package arbitrage

import (
	"github.com/cardops/backoffice/fxgraph"
	"github.com/cardops/backoffice/money"
	"github.com/shopspring/decimal"
)

// profitPrecision is the number of decimal places the profit percentage is
// rounded to, per spec.md §4.2 step 5.
const profitPrecision = 10

// Opportunity is a detected profitable cycle: an ordered, non-repeating
// sequence of currencies (the first element is implicitly also the last,
// closing the cycle) together with the CurrencyPair used for each hop.
type Opportunity struct {
	// Path is the cycle's vertex sequence, length >= 2, without a
	// trailing repeat of the first element.
	Path []money.Currency
	// Pairs[i] is the edge used to go from Path[i] to Path[(i+1)%len(Path)].
	Pairs []fxgraph.CurrencyPair
	// TotalRate is the product of every Pairs[i].Rate around the cycle,
	// computed in arbitrary-precision decimal to avoid the log/exp
	// round-trip error a float accumulation would introduce.
	TotalRate decimal.Decimal
	// ProfitPercent is (TotalRate - 1) * 100, rounded to profitPrecision
	// decimal digits.
	ProfitPercent decimal.Decimal
}

// buildOpportunity assembles an Opportunity from a reconstructed cycle of
// currencies, resolving each hop's best (maximum-rate / minimum-log-weight)
// edge from the graph.
func buildOpportunity(g *fxgraph.Graph, cycle []money.Currency) (Opportunity, bool) {
	if len(cycle) < 2 {
		return Opportunity{}, false
	}

	pairs := make([]fxgraph.CurrencyPair, len(cycle))
	total := decimal.NewFromInt(1)

	for i := range cycle {
		from := cycle[i]
		to := cycle[(i+1)%len(cycle)]
		pair, ok := g.BestRate(from, to)
		if !ok {
			return Opportunity{}, false
		}
		pairs[i] = pair
		total = total.Mul(pair.Rate)
	}

	profit := total.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(profitPrecision)

	return Opportunity{
		Path:          cycle,
		Pairs:         pairs,
		TotalRate:     total,
		ProfitPercent: profit,
	}, true
}

// canonicalKey returns a rotation- and direction-invariant key for an
// opportunity's cycle, used for deduplication (spec.md §4.2 step 6): two
// opportunities are the same if one's path is a rotation of the other's,
// in either traversal direction.
func canonicalKey(path []money.Currency) string {
	n := len(path)
	best := ""
	consider := func(seq []money.Currency) {
		for start := 0; start < n; start++ {
			var b []byte
			for i := 0; i < n; i++ {
				c := seq[(start+i)%n]
				b = append(b, byte(c.Index()), ',')
			}
			candidate := string(b)
			if best == "" || candidate < best {
				best = candidate
			}
		}
	}

	consider(path)

	reversed := make([]money.Currency, n)
	for i, c := range path {
		reversed[n-1-i] = c
	}
	consider(reversed)

	return best
}
