package allocation

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
)

func TestManualStrategy_FiltersUnknownAndNonPositive(t *testing.T) {
	buckets := []debt.DebtBucket{
		bucket("a", debt.Purchase, 500, 0, "0"),
		bucket("b", debt.CashAdvance, 500, 0, "0"),
	}
	predefined := map[string]money.DecimalAmount{
		"a":       money.DecimalAmountFromInt(100),
		"unknown": money.DecimalAmountFromInt(50),
		"b":       money.DecimalAmountFromInt(-10),
	}

	strategy := NewManualStrategy(predefined)
	result, err := strategy.Allocate(context.Background(), buckets, money.DecimalAmountFromInt(200), "alloc-manual")
	assert.NoError(t, err)
	assert.True(t, result.Allocated("a").Equal(money.DecimalAmountFromInt(100)))
	assert.True(t, result.Allocated("b").IsZero())
	assert.True(t, result.Allocated("unknown").IsZero())
}

func TestManualStrategy_OverAllocationRejected(t *testing.T) {
	buckets := []debt.DebtBucket{bucket("a", debt.Purchase, 500, 0, "0")}
	strategy := NewManualStrategy(map[string]money.DecimalAmount{"a": money.DecimalAmountFromInt(300)})

	_, err := strategy.Allocate(context.Background(), buckets, money.DecimalAmountFromInt(100), "alloc")
	assert.Error(t, err)
}

func TestManualStrategy_IsApplicable(t *testing.T) {
	buckets := []debt.DebtBucket{bucket("a", debt.Purchase, 500, 0, "0")}
	empty := NewManualStrategy(nil)
	assert.True(t, !empty.IsApplicable(buckets, money.DecimalAmountFromInt(10)))

	nonEmpty := NewManualStrategy(map[string]money.DecimalAmount{"a": money.DecimalAmountFromInt(10)})
	assert.True(t, nonEmpty.IsApplicable(buckets, money.DecimalAmountFromInt(10)))
}
