package allocation

import (
	"context"
	"sort"

	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
)

// GreedyStrategy allocates to the highest-annualRate bucket with remaining
// debt first, up to its balance, then moves to the next. Applicable
// whenever any bucket has a positive balance.
type GreedyStrategy struct{}

// Allocate implements Strategy.
func (GreedyStrategy) Allocate(_ context.Context, buckets []debt.DebtBucket, paymentAmount money.DecimalAmount, allocationID string) (PaymentAllocation, error) {
	if err := validateCommon(buckets, paymentAmount); err != nil {
		return PaymentAllocation{}, err
	}

	var withDebt []debt.DebtBucket
	for _, b := range buckets {
		if b.HasDebt() {
			withDebt = append(withDebt, b)
		}
	}
	sort.SliceStable(withDebt, func(i, j int) bool {
		if !withDebt[i].AnnualRate.Equal(withDebt[j].AnnualRate) {
			return withDebt[i].AnnualRate.GreaterThan(withDebt[j].AnnualRate)
		}
		return withDebt[i].CurrentBalance.GreaterThan(withDebt[j].CurrentBalance)
	})

	result := newAllocation(allocationID, paymentAmount, Greedy)
	remaining := paymentAmount

	for _, b := range withDebt {
		if remaining.IsZero() {
			break
		}
		allocated := money.Min(b.CurrentBalance, remaining)
		if allocated.IsPositive() {
			result.ByBucket[b.BucketID] = allocated
			remaining = remaining.Sub(allocated)
		}
	}

	return result, nil
}

// IsApplicable implements Strategy: applicable whenever any bucket carries
// a positive balance.
func (GreedyStrategy) IsApplicable(buckets []debt.DebtBucket, paymentAmount money.DecimalAmount) bool {
	if validateCommon(buckets, paymentAmount) != nil {
		return false
	}
	for _, b := range buckets {
		if b.HasDebt() {
			return true
		}
	}
	return false
}
