package money

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestDecimalAmount_AddSubMul(t *testing.T) {
	a := MustParseDecimalAmount("10.5")
	b := MustParseDecimalAmount("2.25")

	assert.Equal(t, a.Add(b).String(), "12.75")
	assert.Equal(t, a.Sub(b).String(), "8.25")
	assert.Equal(t, a.Mul(b).String(), "23.625")
}

func TestDecimalAmount_Div(t *testing.T) {
	a := MustParseDecimalAmount("10")
	b := MustParseDecimalAmount("4")

	result, err := a.Div(b)
	assert.NoError(t, err)
	assert.Equal(t, result.String(), "2.5")
}

func TestDecimalAmount_DivByZero(t *testing.T) {
	a := MustParseDecimalAmount("10")

	_, err := a.Div(Zero)
	assert.Error(t, err)
}

func TestDecimalAmount_RoundsToWorkingPrecision(t *testing.T) {
	// A value with far more than 19 significant digits should be rounded
	// down to 19, using round-half-to-even.
	raw := decimal.RequireFromString("1.23456789012345678950")
	amount := NewDecimalAmount(raw)

	assert.Equal(t, len(amount.Decimal().Coefficient().String()), WorkingPrecision)
}

func TestDecimalAmount_SmallValuesUnchanged(t *testing.T) {
	a := MustParseDecimalAmount("0.001")
	assert.Equal(t, a.String(), "0.001")
}

func TestDecimalAmount_Comparisons(t *testing.T) {
	a := MustParseDecimalAmount("5")
	b := MustParseDecimalAmount("7")

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, !a.Equal(b))
	assert.Equal(t, Min(a, b), a)
	assert.Equal(t, Max(a, b), b)
}

func TestDecimalAmount_RoundHalfUp(t *testing.T) {
	a := MustParseDecimalAmount("1191.6666666666667")
	assert.Equal(t, a.RoundHalfUp(6).String(), "1191.666667")
}
