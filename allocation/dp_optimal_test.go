package allocation

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
)

func projectedInterest(t *testing.T, buckets []debt.DebtBucket, result PaymentAllocation) money.DecimalAmount {
	t.Helper()
	twelve := money.DecimalAmountFromInt(12)
	total := money.Zero
	for _, b := range buckets {
		remaining := b.CurrentBalance.Sub(result.Allocated(b.BucketID))
		monthly, err := remaining.Mul(b.AnnualRate).Div(twelve)
		assert.NoError(t, err)
		total = total.Add(monthly)
	}
	return total
}

func TestDPOptimalStrategy_IsApplicable(t *testing.T) {
	strategy := NewDPOptimalStrategy(DefaultDPConfig())

	tooFewBuckets := []debt.DebtBucket{bucket("a", debt.Purchase, 500, 0, "0.2")}
	assert.True(t, !strategy.IsApplicable(tooFewBuckets, money.DecimalAmountFromInt(100)))

	twoBuckets := []debt.DebtBucket{
		bucket("a", debt.Purchase, 500, 0, "0.2"),
		bucket("b", debt.CashAdvance, 400, 0, "0.3"),
	}
	assert.True(t, !strategy.IsApplicable(twoBuckets, money.DecimalAmountFromInt(10)))
	assert.True(t, strategy.IsApplicable(twoBuckets, money.DecimalAmountFromInt(11)))
}

func TestDPOptimalStrategy_NotApplicableReturnsStrategyNotApplicableError(t *testing.T) {
	strategy := NewDPOptimalStrategy(DefaultDPConfig())
	buckets := []debt.DebtBucket{bucket("a", debt.Purchase, 500, 0, "0.2")}

	_, err := strategy.Allocate(context.Background(), buckets, money.DecimalAmountFromInt(100), "alloc")
	assert.Error(t, err)
}

func TestDPOptimalStrategy_NeverExceedsBalanceOrPayment(t *testing.T) {
	strategy := NewDPOptimalStrategy(DefaultDPConfig())
	buckets := []debt.DebtBucket{
		bucket("a", debt.Purchase, 50, 0, "0.2"),
		bucket("b", debt.CashAdvance, 30, 0, "0.3"),
	}

	result, err := strategy.Allocate(context.Background(), buckets, money.DecimalAmountFromInt(60), "alloc")
	assert.NoError(t, err)
	assert.True(t, !result.Allocated("a").GreaterThan(money.DecimalAmountFromInt(50)))
	assert.True(t, !result.Allocated("b").GreaterThan(money.DecimalAmountFromInt(30)))
	assert.True(t, !result.Total().GreaterThan(money.DecimalAmountFromInt(60)))
}

func TestDPOptimalStrategy_AtLeastAsGoodAsGreedy(t *testing.T) {
	buckets := []debt.DebtBucket{
		bucket("purchase-1", debt.Purchase, 500, 0, "0.20"),
		bucket("cash-1", debt.CashAdvance, 400, 0, "0.30"),
		bucket("installment-1", debt.Installment, 200, 0, "0.10"),
	}
	payment := money.DecimalAmountFromInt(600)

	dpStrategy := NewDPOptimalStrategy(DefaultDPConfig())
	dpResult, err := dpStrategy.Allocate(context.Background(), buckets, payment, "alloc-dp")
	assert.NoError(t, err)

	greedyResult, err := GreedyStrategy{}.Allocate(context.Background(), buckets, payment, "alloc-greedy")
	assert.NoError(t, err)

	dpInterest := projectedInterest(t, buckets, dpResult)
	greedyInterest := projectedInterest(t, buckets, greedyResult)

	assert.True(t, !dpInterest.GreaterThan(greedyInterest))
}

func TestDPOptimalStrategy_AtLeastAsGoodAsBankRule(t *testing.T) {
	buckets := []debt.DebtBucket{
		bucket("overdue-1", debt.Overdue, 100, 50, "0.05"),
		bucket("purchase-1", debt.Purchase, 500, 25, "0.20"),
		bucket("cash-1", debt.CashAdvance, 400, 25, "0.30"),
	}
	payment := money.DecimalAmountFromInt(300)

	dpStrategy := NewDPOptimalStrategy(DefaultDPConfig())
	dpResult, err := dpStrategy.Allocate(context.Background(), buckets, payment, "alloc-dp")
	assert.NoError(t, err)

	bankResult, err := BankRuleStrategy{}.Allocate(context.Background(), buckets, payment, "alloc-bank")
	assert.NoError(t, err)

	dpInterest := projectedInterest(t, buckets, dpResult)
	bankInterest := projectedInterest(t, buckets, bankResult)

	assert.True(t, !dpInterest.GreaterThan(bankInterest))
}
