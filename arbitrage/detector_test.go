package arbitrage

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/cardops/backoffice/fxgraph"
	"github.com/cardops/backoffice/money"
	"github.com/shopspring/decimal"
)

func mustAddPair(t *testing.T, g *fxgraph.Graph, from, to money.Currency, rate string) {
	t.Helper()
	d, err := decimal.NewFromString(rate)
	assert.NoError(t, err)
	p, err := fxgraph.NewCurrencyPair(from, to, d, time.Now())
	assert.NoError(t, err)
	_, err = g.AddPair(p)
	assert.NoError(t, err)
}

// connectedGraph returns a graph where every vertex is reachable from TRY,
// with the given extra pairs layered on top.
func connectedGraph(t *testing.T) *fxgraph.Graph {
	t.Helper()
	g := fxgraph.NewGraph()
	mustAddPair(t, g, money.TRY, money.USD, "0.03")
	mustAddPair(t, g, money.USD, money.JPY, "150")
	return g
}

func TestDetect_TriangularArbitrage(t *testing.T) {
	g := connectedGraph(t)
	mustAddPair(t, g, money.USD, money.EUR, "0.9")
	mustAddPair(t, g, money.EUR, money.GBP, "0.9")
	mustAddPair(t, g, money.GBP, money.USD, "1.3")

	opportunities, err := Detect(context.Background(), g)
	assert.NoError(t, err)
	assert.True(t, len(opportunities) >= 1)

	best := opportunities[0]
	assert.True(t, best.ProfitPercent.Equal(decimal.NewFromFloat(5.3)))
}

func TestDetect_NoArbitrage_ReturnsEmpty(t *testing.T) {
	g := connectedGraph(t)
	mustAddPair(t, g, money.USD, money.EUR, "0.9")
	mustAddPair(t, g, money.EUR, money.GBP, "0.9")
	// 0.9 * 0.9 * 1.2345679012 ≈ 1, so the triangle is unprofitable in both
	// directions (AddPair also inserts each reverse edge).
	mustAddPair(t, g, money.GBP, money.USD, "1.2345679012")

	opportunities, err := Detect(context.Background(), g)
	assert.NoError(t, err)
	assert.Equal(t, len(opportunities), 0)
}

func TestDetect_DisconnectedGraph_ReturnsError(t *testing.T) {
	g := fxgraph.NewGraph()
	mustAddPair(t, g, money.USD, money.EUR, "0.9")

	_, err := Detect(context.Background(), g)
	assert.Error(t, err)
}

func TestDetect_NilGraph_ReturnsError(t *testing.T) {
	_, err := Detect(context.Background(), nil)
	assert.Error(t, err)
}

func TestDetectFrom_UnsupportedCurrency(t *testing.T) {
	g := connectedGraph(t)
	_, err := DetectFrom(context.Background(), g, money.Currency(99))
	assert.Error(t, err)
}

func TestStatistics_ReportsCounts(t *testing.T) {
	g := connectedGraph(t)
	mustAddPair(t, g, money.USD, money.EUR, "0.9")
	mustAddPair(t, g, money.EUR, money.GBP, "0.9")
	mustAddPair(t, g, money.GBP, money.USD, "1.3")

	stats, err := Statistics(context.Background(), g)
	assert.NoError(t, err)
	assert.Equal(t, stats.VertexCount, 5)
	assert.Equal(t, stats.SourcesProbed, 5)
	assert.True(t, stats.OpportunityCount >= 1)
	assert.Equal(t, stats.EdgeCount, len(g.AllEdges()))
}

func TestCanonicalKey_RotationAndDirectionInvariant(t *testing.T) {
	a := []money.Currency{money.USD, money.EUR, money.GBP}
	rotated := []money.Currency{money.EUR, money.GBP, money.USD}
	reversed := []money.Currency{money.USD, money.GBP, money.EUR}

	assert.Equal(t, canonicalKey(a), canonicalKey(rotated))
	assert.Equal(t, canonicalKey(a), canonicalKey(reversed))
}
