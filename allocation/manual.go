package allocation

import (
	"context"

	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
)

// ManualStrategy allocates a pre-supplied bucketId -> amount mapping
// directly, after filtering out entries whose bucketId isn't one of the
// input buckets or whose amount isn't strictly positive.
type ManualStrategy struct {
	predefined map[string]money.DecimalAmount
}

// NewManualStrategy builds a ManualStrategy from a predefined bucketId ->
// amount mapping.
func NewManualStrategy(predefined map[string]money.DecimalAmount) ManualStrategy {
	return ManualStrategy{predefined: predefined}
}

// Allocate implements Strategy.
func (m ManualStrategy) Allocate(_ context.Context, buckets []debt.DebtBucket, paymentAmount money.DecimalAmount, allocationID string) (PaymentAllocation, error) {
	if err := validateCommon(buckets, paymentAmount); err != nil {
		return PaymentAllocation{}, err
	}

	known := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		known[b.BucketID] = true
	}

	total := money.Zero
	for bucketID, amount := range m.predefined {
		if !known[bucketID] || !amount.IsPositive() {
			continue
		}
		total = total.Add(amount)
	}
	if total.GreaterThan(paymentAmount) {
		return PaymentAllocation{}, cerrors.New(cerrors.InvalidArgument,
			"manual allocation total %s exceeds payment amount %s", total, paymentAmount)
	}

	result := newAllocation(allocationID, paymentAmount, Manual)
	for bucketID, amount := range m.predefined {
		if !known[bucketID] || !amount.IsPositive() {
			continue
		}
		result.ByBucket[bucketID] = amount
	}

	return result, nil
}

// IsApplicable implements Strategy: applicable iff the predefined mapping
// is non-empty.
func (m ManualStrategy) IsApplicable(buckets []debt.DebtBucket, paymentAmount money.DecimalAmount) bool {
	if validateCommon(buckets, paymentAmount) != nil {
		return false
	}
	return len(m.predefined) > 0
}
