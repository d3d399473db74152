package allocation

import (
	"sort"

	"github.com/cardops/backoffice/money"
)

// PaymentAllocation is the immutable record every strategy produces: how
// much of totalPayment was allocated to each bucket, and which strategy
// produced it. Invariant: the sum of ByBucket is <= TotalPayment, and every
// key refers to a bucket that was actually passed to the strategy.
type PaymentAllocation struct {
	AllocationID string
	TotalPayment money.DecimalAmount
	ByBucket     map[string]money.DecimalAmount
	Strategy     Kind
}

// Allocated returns the amount allocated to bucketID, or zero if it
// received nothing.
func (p PaymentAllocation) Allocated(bucketID string) money.DecimalAmount {
	if p.ByBucket == nil {
		return money.Zero
	}
	return p.ByBucket[bucketID]
}

// Total sums every allocated amount.
func (p PaymentAllocation) Total() money.DecimalAmount {
	total := money.Zero
	for _, amount := range p.ByBucket {
		total = total.Add(amount)
	}
	return total
}

// BucketIDs returns the allocation's bucket ids in deterministic
// (lexicographic) order, for display and testing.
func (p PaymentAllocation) BucketIDs() []string {
	ids := make([]string, 0, len(p.ByBucket))
	for id := range p.ByBucket {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// newAllocation builds an empty PaymentAllocation for the given kind.
func newAllocation(allocationID string, totalPayment money.DecimalAmount, kind Kind) PaymentAllocation {
	return PaymentAllocation{
		AllocationID: allocationID,
		TotalPayment: totalPayment,
		ByBucket:     make(map[string]money.DecimalAmount),
		Strategy:     kind,
	}
}
