package allocation

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/cardops/backoffice/money"
)

func TestPaymentAllocation_AllocatedAndTotal(t *testing.T) {
	a := newAllocation("alloc-1", money.DecimalAmountFromInt(100), BankRule)
	a.ByBucket["b1"] = money.DecimalAmountFromInt(40)
	a.ByBucket["b2"] = money.DecimalAmountFromInt(30)

	assert.True(t, a.Allocated("b1").Equal(money.DecimalAmountFromInt(40)))
	assert.True(t, a.Allocated("missing").IsZero())
	assert.True(t, a.Total().Equal(money.DecimalAmountFromInt(70)))
	assert.Equal(t, a.BucketIDs(), []string{"b1", "b2"})
}
