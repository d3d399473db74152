package fxgraph

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/cardops/backoffice/money"
	"github.com/shopspring/decimal"
)

func mustPair(t *testing.T, from, to money.Currency, rate string) CurrencyPair {
	t.Helper()
	d, err := decimal.NewFromString(rate)
	assert.NoError(t, err)
	p, err := NewCurrencyPair(from, to, d, time.Now())
	assert.NoError(t, err)
	return p
}

func TestNewCurrencyPair_RejectsZeroAndNegativeRate(t *testing.T) {
	_, err := NewCurrencyPair(money.USD, money.EUR, decimal.Zero, time.Now())
	assert.Error(t, err)

	_, err = NewCurrencyPair(money.USD, money.EUR, decimal.NewFromInt(-1), time.Now())
	assert.Error(t, err)
}

func TestNewCurrencyPair_RejectsSameCurrency(t *testing.T) {
	_, err := NewCurrencyPair(money.USD, money.USD, decimal.NewFromInt(1), time.Now())
	assert.Error(t, err)
}

func TestCurrencyPair_Reversed(t *testing.T) {
	p := mustPair(t, money.USD, money.EUR, "0.5")
	rev, ok := p.Reversed()
	assert.True(t, ok)
	assert.Equal(t, rev.From, money.EUR)
	assert.Equal(t, rev.To, money.USD)
	assert.Equal(t, rev.Rate.String(), "2")

	rev2, ok := rev.Reversed()
	assert.True(t, ok)
	assert.True(t, rev2.Rate.Sub(p.Rate).Abs().LessThan(decimal.NewFromFloat(1e-10)))
}

func TestGraph_AddPair_InsertsBothDirections(t *testing.T) {
	g := NewGraph()
	p := mustPair(t, money.USD, money.EUR, "0.9")

	n, err := g.AddPair(p)
	assert.NoError(t, err)
	assert.Equal(t, n, 2)

	assert.True(t, g.HasEdge(money.USD, money.EUR))
	assert.True(t, g.HasEdge(money.EUR, money.USD))
}

func TestGraph_BestRate_SelectsMinimumLogWeight(t *testing.T) {
	g := NewGraph()
	_, err := g.AddPair(mustPair(t, money.USD, money.EUR, "0.9"))
	assert.NoError(t, err)
	_, err = g.AddPair(mustPair(t, money.USD, money.EUR, "0.95"))
	assert.NoError(t, err)

	best, ok := g.BestRate(money.USD, money.EUR)
	assert.True(t, ok)
	// Minimum log weight (= -ln(rate)) corresponds to the maximum rate.
	assert.Equal(t, best.Rate.String(), "0.95")
}

func TestGraph_BestRate_Missing(t *testing.T) {
	g := NewGraph()
	_, ok := g.BestRate(money.USD, money.JPY)
	assert.True(t, !ok)
}

func TestGraph_IsConnected(t *testing.T) {
	g := NewGraph()
	_, err := g.AddPair(mustPair(t, money.TRY, money.USD, "0.03"))
	assert.NoError(t, err)
	assert.True(t, !g.IsConnected())

	_, err = g.AddPair(mustPair(t, money.USD, money.EUR, "0.9"))
	assert.NoError(t, err)
	_, err = g.AddPair(mustPair(t, money.USD, money.GBP, "0.8"))
	assert.NoError(t, err)
	_, err = g.AddPair(mustPair(t, money.USD, money.JPY, "150"))
	assert.NoError(t, err)

	assert.True(t, g.IsConnected())
}

func TestGraph_AllEdges_Snapshot(t *testing.T) {
	g := NewGraph()
	_, err := g.AddPair(mustPair(t, money.USD, money.EUR, "0.9"))
	assert.NoError(t, err)

	edges := g.AllEdges()
	assert.Equal(t, len(edges), 2)
}
