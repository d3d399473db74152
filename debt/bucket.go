// Package debt defines DebtBucket, the payment allocation engine's input
// record: a single debt obligation with a type, balance, minimum payment,
// interest rate and due date. Grounded on the teacher's ledger/account.go,
// which similarly pairs a closed type enumeration with per-instance
// numeric state.
package debt

import (
	"fmt"

	"github.com/cardops/backoffice/calendar"
	"github.com/cardops/backoffice/cerrors"
	"github.com/cardops/backoffice/money"
)

// BucketType is a member of the closed five-type enumeration a DebtBucket
// can carry. It extends sweep.BalanceBucket with an OVERDUE type, which the
// sweep-line calculator has no analog for since overdue status is a
// payment-engine concept, not a balance-accrual one.
type BucketType int

const (
	Overdue BucketType = iota
	FeesInterest
	CashAdvance
	Purchase
	Installment
)

func (t BucketType) String() string {
	switch t {
	case Overdue:
		return "OVERDUE"
	case FeesInterest:
		return "FEES_INTEREST"
	case CashAdvance:
		return "CASH_ADVANCE"
	case Purchase:
		return "PURCHASE"
	case Installment:
		return "INSTALLMENT"
	default:
		return fmt.Sprintf("BucketType(%d)", int(t))
	}
}

// Valid reports whether t is one of the five supported types.
func (t BucketType) Valid() bool {
	return t >= Overdue && t <= Installment
}

// priority is t's position in the bank-rule strategy's fixed type
// ordering: OVERDUE -> FEES_INTEREST -> CASH_ADVANCE -> PURCHASE -> INSTALLMENT.
func (t BucketType) priority() int {
	switch t {
	case Overdue:
		return 0
	case FeesInterest:
		return 1
	case CashAdvance:
		return 2
	case Purchase:
		return 3
	case Installment:
		return 4
	default:
		return 5
	}
}

// Priority exposes t's bank-rule ordering position for callers outside
// this package (the allocation package's bank-rule strategy).
func (t BucketType) Priority() int {
	return t.priority()
}

// DebtBucket is a single debt obligation the payment allocation engine can
// allocate money to.
type DebtBucket struct {
	BucketID       string
	Type           BucketType
	CurrentBalance money.DecimalAmount
	MinimumPayment money.DecimalAmount
	AnnualRate     money.DecimalAmount
	DueDate        calendar.Date
}

// HasDebt reports whether the bucket currently carries a positive balance.
func (b DebtBucket) HasDebt() bool {
	return b.CurrentBalance.IsPositive()
}

// Validate checks the bucket's invariants: non-negative balance, minimum
// payment and rate, and a known type.
func (b DebtBucket) Validate() error {
	if !b.Type.Valid() {
		return cerrors.New(cerrors.InvalidArgument, "debt bucket %s has unsupported type %s", b.BucketID, b.Type)
	}
	if b.CurrentBalance.IsNegative() {
		return cerrors.New(cerrors.InvalidArgument, "debt bucket %s has negative currentBalance", b.BucketID)
	}
	if b.MinimumPayment.IsNegative() {
		return cerrors.New(cerrors.InvalidArgument, "debt bucket %s has negative minimumPayment", b.BucketID)
	}
	if b.AnnualRate.IsNegative() {
		return cerrors.New(cerrors.InvalidArgument, "debt bucket %s has negative annualRate", b.BucketID)
	}
	return nil
}
