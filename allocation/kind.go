// Package allocation implements the payment allocation engine: four
// interchangeable strategies sharing a common allocate/isApplicable
// contract over a set of debt.DebtBucket values, grounded on the
// teacher's command-dispatch style in cli/commands.go (a closed set of
// named operations resolved through a factory) generalized to a strategy
// interface.
package allocation

import "fmt"

// Kind identifies which of the four strategies produced (or should
// produce) a PaymentAllocation.
type Kind int

const (
	BankRule Kind = iota
	DPOptimal
	Greedy
	Manual
)

func (k Kind) String() string {
	switch k {
	case BankRule:
		return "BANK_RULE"
	case DPOptimal:
		return "DP_OPTIMAL"
	case Greedy:
		return "GREEDY"
	case Manual:
		return "MANUAL"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
