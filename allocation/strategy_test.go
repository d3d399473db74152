package allocation

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestForKind_BuildsEachStrategy(t *testing.T) {
	for _, kind := range []Kind{BankRule, DPOptimal, Greedy, Manual} {
		strategy, err := ForKind(kind)
		assert.NoError(t, err)
		assert.True(t, strategy != nil)
	}
}

func TestForKind_UnknownKindRejected(t *testing.T) {
	_, err := ForKind(Kind(99))
	assert.Error(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, BankRule.String(), "BANK_RULE")
	assert.Equal(t, DPOptimal.String(), "DP_OPTIMAL")
	assert.Equal(t, Greedy.String(), "GREEDY")
	assert.Equal(t, Manual.String(), "MANUAL")
}
