package allocation

import (
	"context"
	"sort"

	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
)

// BankRuleStrategy allocates in fixed priority order over bucket type
// (OVERDUE -> FEES_INTEREST -> CASH_ADVANCE -> PURCHASE -> INSTALLMENT,
// ties broken by ascending due date): each bucket first receives its
// minimum payment (capped at its balance), then any remaining surplus up to
// its balance.
// BankRuleStrategy is always applicable.
type BankRuleStrategy struct{}

// Allocate implements Strategy.
func (BankRuleStrategy) Allocate(_ context.Context, buckets []debt.DebtBucket, paymentAmount money.DecimalAmount, allocationID string) (PaymentAllocation, error) {
	if err := validateCommon(buckets, paymentAmount); err != nil {
		return PaymentAllocation{}, err
	}

	ordered := make([]debt.DebtBucket, len(buckets))
	copy(ordered, buckets)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Type.Priority(), ordered[j].Type.Priority()
		if pi != pj {
			return pi < pj
		}
		return ordered[i].DueDate.Before(ordered[j].DueDate)
	})

	result := newAllocation(allocationID, paymentAmount, BankRule)
	remaining := paymentAmount

	for _, b := range ordered {
		if remaining.IsZero() {
			break
		}

		minimum := money.Min(money.Min(b.MinimumPayment, b.CurrentBalance), remaining)
		allocated := minimum
		remainingAfterMinimum := remaining.Sub(minimum)

		surplusCap := b.CurrentBalance.Sub(b.MinimumPayment)
		if surplusCap.IsPositive() {
			surplus := money.Min(surplusCap, remainingAfterMinimum)
			allocated = allocated.Add(surplus)
		}

		if allocated.IsPositive() {
			result.ByBucket[b.BucketID] = allocated
			remaining = remaining.Sub(allocated)
		}
	}

	return result, nil
}

// IsApplicable implements Strategy: the bank-rule strategy is always
// applicable once the common preconditions hold.
func (BankRuleStrategy) IsApplicable(buckets []debt.DebtBucket, paymentAmount money.DecimalAmount) bool {
	return validateCommon(buckets, paymentAmount) == nil
}
