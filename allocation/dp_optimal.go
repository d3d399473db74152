package allocation

import (
	"context"
	"fmt"
	"sort"

	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
	"github.com/cardops/backoffice/telemetry"
)

// dpApplicabilityThresholdUnits is the fixed "payment > 10 units" threshold
// from spec.md §4.4.2, expressed in multiples of the configured granularity.
const dpApplicabilityThresholdUnits = 10

// DPConfig configures the dynamic-programming optimal strategy's payment
// discretisation. spec.md §15's Open Question fixes the interest horizon at
// one month and leaves discretisation granularity to configuration; this
// toolkit defaults it to one monetary unit.
type DPConfig struct {
	Granularity money.DecimalAmount
}

// DefaultDPConfig returns the one-monetary-unit granularity default.
func DefaultDPConfig() DPConfig {
	return DPConfig{Granularity: money.DecimalAmountFromInt(1)}
}

// DPOptimalStrategy minimises projected one-month interest cost by
// discretising the payment into integer units of Granularity and solving
// the resulting allocation via dynamic programming with back-pointer
// reconstruction (spec.md §4.4.2).
type DPOptimalStrategy struct {
	config DPConfig
}

// NewDPOptimalStrategy builds a DPOptimalStrategy with the given
// discretisation configuration.
func NewDPOptimalStrategy(config DPConfig) DPOptimalStrategy {
	if config.Granularity.IsZero() || config.Granularity.IsNegative() {
		config.Granularity = money.DecimalAmountFromInt(1)
	}
	return DPOptimalStrategy{config: config}
}

// activeBuckets returns the buckets with a positive balance, sorted by
// BucketID for deterministic DP enumeration order.
func activeBuckets(buckets []debt.DebtBucket) []debt.DebtBucket {
	var active []debt.DebtBucket
	for _, b := range buckets {
		if b.HasDebt() {
			active = append(active, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].BucketID < active[j].BucketID
	})
	return active
}

// IsApplicable implements Strategy: requires at least two buckets with
// positive balance and a payment exceeding ten granularity units.
func (s DPOptimalStrategy) IsApplicable(buckets []debt.DebtBucket, paymentAmount money.DecimalAmount) bool {
	if validateCommon(buckets, paymentAmount) != nil {
		return false
	}
	if len(activeBuckets(buckets)) < 2 {
		return false
	}
	threshold := s.config.Granularity.Mul(money.DecimalAmountFromInt(dpApplicabilityThresholdUnits))
	return paymentAmount.GreaterThan(threshold)
}

// Allocate implements Strategy.
func (s DPOptimalStrategy) Allocate(ctx context.Context, buckets []debt.DebtBucket, paymentAmount money.DecimalAmount, allocationID string) (PaymentAllocation, error) {
	if err := validateCommon(buckets, paymentAmount); err != nil {
		return PaymentAllocation{}, err
	}
	if !s.IsApplicable(buckets, paymentAmount) {
		return PaymentAllocation{}, cerrors.New(cerrors.StrategyNotApplicable,
			"dp-optimal strategy is not applicable to this bucket set / payment amount")
	}

	active := activeBuckets(buckets)
	n := len(active)

	totalUnits, err := unitsOf(paymentAmount, s.config.Granularity)
	if err != nil {
		return PaymentAllocation{}, err
	}

	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("allocation.dp (%d buckets)", n))
	defer timer.End()

	balanceUnits := make([]int, n)
	rates := make([]money.DecimalAmount, n)
	for i, b := range active {
		maxUnits, err := unitsOf(b.CurrentBalance, s.config.Granularity)
		if err != nil {
			return PaymentAllocation{}, err
		}
		balanceUnits[i] = maxUnits
		rates[i] = b.AnnualRate
	}

	// dp[i][u] is the minimum projected one-month interest cost from bucket
	// i onward, given u remaining payment units. alloc[i][u] is the unit
	// allocation bucket i makes to achieve that minimum (the back-pointer).
	dp := make([][]money.DecimalAmount, n+1)
	alloc := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]money.DecimalAmount, totalUnits+1)
		alloc[i] = make([]int, totalUnits+1)
	}

	twelve := money.DecimalAmountFromInt(12)
	for i := n - 1; i >= 0; i-- {
		for u := 0; u <= totalUnits; u++ {
			best := money.Zero
			bestA := 0
			maxA := balanceUnits[i]
			if u < maxA {
				maxA = u
			}
			for a := 0; a <= maxA; a++ {
				remainingBalanceUnits := balanceUnits[i] - a
				remainingBalance := s.config.Granularity.Mul(money.DecimalAmountFromInt(int64(remainingBalanceUnits)))
				monthlyRate, err := remainingBalance.Mul(rates[i]).Div(twelve)
				if err != nil {
					return PaymentAllocation{}, err
				}
				total := monthlyRate.Add(dp[i+1][u-a])
				if a == 0 || total.LessThan(best) {
					best = total
					bestA = a
				}
			}
			dp[i][u] = best
			alloc[i][u] = bestA
		}
	}

	result := newAllocation(allocationID, paymentAmount, DPOptimal)
	remainingUnits := totalUnits
	for i := 0; i < n; i++ {
		a := alloc[i][remainingUnits]
		if a > 0 {
			result.ByBucket[active[i].BucketID] = s.config.Granularity.Mul(money.DecimalAmountFromInt(int64(a)))
		}
		remainingUnits -= a
	}

	return result, nil
}

// unitsOf discretises amount into an integer count of granularity-sized
// units, truncating any remainder below one unit.
func unitsOf(amount, granularity money.DecimalAmount) (int, error) {
	if amount.IsNegative() {
		return 0, cerrors.New(cerrors.InvalidArgument, "cannot discretise negative amount %s", amount)
	}
	quotient, err := amount.Div(granularity)
	if err != nil {
		return 0, err
	}
	whole := quotient.Decimal().IntPart()
	if whole < 0 {
		whole = 0
	}
	return int(whole), nil
}
