package money

import (
	"github.com/cardops/backoffice/cerrors"
	"github.com/shopspring/decimal"
)

// WorkingPrecision is the number of significant decimal digits every
// DecimalAmount arithmetic operation is rounded to, using round-half-to-even
// (banker's rounding), per spec.
const WorkingPrecision = 19

// divisionSlack is the number of extra decimal places kept during division
// before the result is rounded down to WorkingPrecision significant digits.
// It exists so that rounding happens once, at the end, at working precision,
// rather than being truncated early by shopspring/decimal's global
// DivisionPrecision setting.
const divisionSlack = 40

// DecimalAmount is an arbitrary-precision signed decimal at a fixed working
// precision. It wraps shopspring/decimal.Decimal the way the teacher wraps
// it in ledger/amount.go, adding the explicit rounding-mode and
// precision policy this toolkit requires.
type DecimalAmount struct {
	d decimal.Decimal
}

// NewDecimalAmount builds a DecimalAmount from a shopspring decimal value,
// rounding it to working precision immediately.
func NewDecimalAmount(d decimal.Decimal) DecimalAmount {
	return DecimalAmount{d: roundToWorkingPrecision(d)}
}

// ParseDecimalAmount parses a numeric string into a DecimalAmount.
func ParseDecimalAmount(s string) (DecimalAmount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return DecimalAmount{}, cerrors.Wrap(cerrors.InvalidArgument, err, "invalid decimal amount %q", s)
	}
	return NewDecimalAmount(d), nil
}

// MustParseDecimalAmount parses s and panics on failure. Use only in tests
// or call sites that have already validated s.
func MustParseDecimalAmount(s string) DecimalAmount {
	a, err := ParseDecimalAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// DecimalAmountFromInt builds an exact integer-valued amount.
func DecimalAmountFromInt(v int64) DecimalAmount {
	return NewDecimalAmount(decimal.NewFromInt(v))
}

// DecimalAmountFromFloat builds an amount from a float64. Reserved for
// callers bridging from the arbitrage detector's double-precision distance
// arithmetic (see arbitrage package) into exact decimal profit figures.
func DecimalAmountFromFloat(v float64) DecimalAmount {
	return NewDecimalAmount(decimal.NewFromFloat(v))
}

// Zero is the additive identity at working precision.
var Zero = DecimalAmount{d: decimal.Zero}

// Decimal exposes the underlying shopspring value for callers that need to
// interoperate with other decimal-aware code (e.g. formatting, CLI output).
func (a DecimalAmount) Decimal() decimal.Decimal {
	return a.d
}

// Add returns a + b, rounded to working precision.
func (a DecimalAmount) Add(b DecimalAmount) DecimalAmount {
	return NewDecimalAmount(a.d.Add(b.d))
}

// Sub returns a - b, rounded to working precision.
func (a DecimalAmount) Sub(b DecimalAmount) DecimalAmount {
	return NewDecimalAmount(a.d.Sub(b.d))
}

// Mul returns a * b, rounded to working precision.
func (a DecimalAmount) Mul(b DecimalAmount) DecimalAmount {
	return NewDecimalAmount(a.d.Mul(b.d))
}

// Div returns a / b, rounded to working precision. Division by zero is a
// domain-precondition error (ArithmeticOverflow), never a panic or an
// implicit infinity.
func (a DecimalAmount) Div(b DecimalAmount) (DecimalAmount, error) {
	if b.IsZero() {
		return DecimalAmount{}, cerrors.New(cerrors.ArithmeticOverflow, "division by zero")
	}
	return NewDecimalAmount(a.d.DivRound(b.d, divisionSlack)), nil
}

// Neg returns -a.
func (a DecimalAmount) Neg() DecimalAmount {
	return DecimalAmount{d: a.d.Neg()}
}

// Abs returns |a|.
func (a DecimalAmount) Abs() DecimalAmount {
	return DecimalAmount{d: a.d.Abs()}
}

// IsZero reports whether a is exactly zero.
func (a DecimalAmount) IsZero() bool {
	return a.d.IsZero()
}

// IsNegative reports whether a is strictly less than zero.
func (a DecimalAmount) IsNegative() bool {
	return a.d.IsNegative()
}

// IsPositive reports whether a is strictly greater than zero.
func (a DecimalAmount) IsPositive() bool {
	return a.d.IsPositive()
}

// Cmp compares a and b numerically at full precision: -1, 0 or 1.
func (a DecimalAmount) Cmp(b DecimalAmount) int {
	return a.d.Cmp(b.d)
}

// Equal reports numeric equality at full precision (not exponent-sensitive).
func (a DecimalAmount) Equal(b DecimalAmount) bool {
	return a.d.Equal(b.d)
}

// LessThan reports whether a < b.
func (a DecimalAmount) LessThan(b DecimalAmount) bool {
	return a.d.LessThan(b.d)
}

// GreaterThan reports whether a > b.
func (a DecimalAmount) GreaterThan(b DecimalAmount) bool {
	return a.d.GreaterThan(b.d)
}

// Min returns whichever of a, b is numerically smaller.
func Min(a, b DecimalAmount) DecimalAmount {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns whichever of a, b is numerically larger.
func Max(a, b DecimalAmount) DecimalAmount {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// RoundHalfUp rounds a to the given number of decimal places using
// round-half-up, used by the sweep-line calculator's averageBalances query
// (spec: 6 decimal digits, half-up), distinct from the working-precision
// half-even policy used elsewhere.
func (a DecimalAmount) RoundHalfUp(places int32) DecimalAmount {
	return DecimalAmount{d: a.d.Round(places)}
}

// String renders the amount at its current (already working-precision)
// representation.
func (a DecimalAmount) String() string {
	return a.d.String()
}

// roundToWorkingPrecision rounds d to WorkingPrecision significant digits
// using round-half-to-even. Values already within precision are returned
// unchanged so exact small amounts (the overwhelming majority in practice)
// never pay a rounding pass.
func roundToWorkingPrecision(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	digits := d.NumDigits()
	if digits <= WorkingPrecision {
		return d
	}
	excess := digits - WorkingPrecision
	places := -d.Exponent() - int32(excess)
	if places < 0 {
		places = 0
	}
	return d.RoundBank(places)
}
