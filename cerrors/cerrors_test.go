package cerrors

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestError_Error(t *testing.T) {
	err := New(DisconnectedGraph, "graph missing vertex %d", 3)
	assert.Equal(t, err.Error(), "DisconnectedGraph: graph missing vertex 3")
}

func TestError_Wrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ArithmeticOverflow, cause, "decimal exceeded working precision")
	assert.Equal(t, err.Unwrap(), cause)
	assert.True(t, errors.Is(err, cause))
}

func TestError_Is(t *testing.T) {
	a := New(InvalidArgument, "payment must be non-negative")
	b := New(InvalidArgument, "buckets must be non-empty")
	c := New(UnsupportedCurrency, "JPY not configured")

	assert.True(t, errors.Is(a, b))
	assert.True(t, !errors.Is(a, c))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, InvalidArgument.String(), "InvalidArgument")
	assert.Equal(t, StrategyNotApplicable.String(), "StrategyNotApplicable")
	assert.Equal(t, Kind(99).String(), "Unknown")
}
