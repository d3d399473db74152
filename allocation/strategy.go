package allocation

import (
	"context"

	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
)

// Strategy is the common contract every allocation strategy implements
// (spec.md §4.4): allocate distributes paymentAmount across buckets, and
// IsApplicable reports whether the strategy can run on the given input
// without violating its own precondition (e.g. the DP strategy's
// two-buckets/payment>10 units rule).
type Strategy interface {
	Allocate(ctx context.Context, buckets []debt.DebtBucket, paymentAmount money.DecimalAmount, allocationID string) (PaymentAllocation, error)
	IsApplicable(buckets []debt.DebtBucket, paymentAmount money.DecimalAmount) bool
}

// validateCommon enforces the shared precondition every strategy requires:
// a non-negative payment and a non-empty bucket set.
func validateCommon(buckets []debt.DebtBucket, paymentAmount money.DecimalAmount) error {
	if paymentAmount.IsNegative() {
		return cerrors.New(cerrors.InvalidArgument, "payment amount must not be negative, got %s", paymentAmount)
	}
	if len(buckets) == 0 {
		return cerrors.New(cerrors.InvalidArgument, "debt buckets must be non-empty")
	}
	for _, b := range buckets {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ForKind builds the default strategy instance for kind. DPOptimal uses
// DefaultDPConfig; Manual is built with an empty predefined map (callers
// needing a populated manual allocation should construct ManualStrategy
// directly).
func ForKind(kind Kind) (Strategy, error) {
	switch kind {
	case BankRule:
		return BankRuleStrategy{}, nil
	case DPOptimal:
		return NewDPOptimalStrategy(DefaultDPConfig()), nil
	case Greedy:
		return GreedyStrategy{}, nil
	case Manual:
		return NewManualStrategy(nil), nil
	default:
		return nil, cerrors.New(cerrors.InvalidArgument, "unknown allocation strategy kind %s", kind)
	}
}
