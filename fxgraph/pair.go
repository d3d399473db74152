// Package fxgraph implements the currency graph: a fixed five-vertex
// adjacency structure over exchange-rate pairs, weighted by the negative
// natural log of the rate so that a profitable round trip becomes a
// negative-weight cycle (see the arbitrage package). Grounded on the
// teacher's ledger/graph.go and ledger/price_graph.go, which maintain an
// analogous bidirectional, temporally-aware price index.
package fxgraph

import (
	"math"
	"time"

	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/money"
	"github.com/shopspring/decimal"
)

// CurrencyPair is a directed exchange rate quote: 1 unit of From buys Rate
// units of To, observed at Timestamp.
type CurrencyPair struct {
	From      money.Currency
	To        money.Currency
	Rate      decimal.Decimal
	Timestamp time.Time
}

// NewCurrencyPair validates and builds a CurrencyPair. Rate must be
// strictly positive; From and To must be distinct supported currencies.
func NewCurrencyPair(from, to money.Currency, rate decimal.Decimal, timestamp time.Time) (CurrencyPair, error) {
	if !from.Valid() || !to.Valid() {
		return CurrencyPair{}, cerrors.New(cerrors.UnsupportedCurrency,
			"currency pair references unsupported currency %s->%s", from, to)
	}
	if from == to {
		return CurrencyPair{}, cerrors.New(cerrors.InvalidArgument, "currency pair from and to must differ")
	}
	if rate.Sign() <= 0 {
		return CurrencyPair{}, cerrors.New(cerrors.InvalidArgument, "currency pair rate must be strictly positive, got %s", rate)
	}
	return CurrencyPair{From: from, To: to, Rate: rate, Timestamp: timestamp}, nil
}

// LogWeight is -ln(Rate), the edge weight Bellman-Ford relaxes over: a
// profitable round trip (product of rates > 1) sums to a negative total.
func (p CurrencyPair) LogWeight() float64 {
	rate, _ := p.Rate.Float64()
	return -math.Log(rate)
}

// Reversed returns the inverse pair (To -> From at 1/Rate), and false if
// Rate is zero (defensive; construction already forbids this, but the
// reverse-edge numeric error in spec.md §7 is surfaced here too, as a
// suppressed reversal rather than a panic).
func (p CurrencyPair) Reversed() (CurrencyPair, bool) {
	if p.Rate.IsZero() {
		return CurrencyPair{}, false
	}
	inverse := decimal.NewFromInt(1).DivRound(p.Rate, 40)
	return CurrencyPair{From: p.To, To: p.From, Rate: inverse, Timestamp: p.Timestamp}, true
}

// IsStale reports whether the pair's Timestamp is more than threshold older
// than asOf.
func (p CurrencyPair) IsStale(asOf time.Time, threshold time.Duration) bool {
	return asOf.Sub(p.Timestamp) > threshold
}
