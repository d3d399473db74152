package cli

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/cardops/backoffice/arbitrage"
	"github.com/cardops/backoffice/money"
)

func TestPathString_ClosesTheCycle(t *testing.T) {
	opp := arbitrage.Opportunity{Path: []money.Currency{money.USD, money.EUR, money.GBP}}
	assert.Equal(t, pathString(opp), "USD -> EUR -> GBP -> USD")
}

func TestPathString_EmptyPath(t *testing.T) {
	assert.Equal(t, pathString(arbitrage.Opportunity{}), "")
}
