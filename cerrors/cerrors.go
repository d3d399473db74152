// Package cerrors defines the design-level error kinds shared by the three
// back-office engines (currency graph / arbitrage detector, sweep-line
// balance calculator, payment allocation engine). Every error raised by
// those packages is one of the five kinds below, carried as a concrete
// struct so callers can recover structured fields with errors.As instead of
// parsing messages.
package cerrors

import "fmt"

// Kind discriminates the five design-level error categories. It exists so
// callers can switch on e.Kind() without a type switch over every struct.
type Kind int

const (
	// InvalidArgument covers null/empty/out-of-range inputs: negative
	// payments, empty bucket lists, malformed manual allocations.
	InvalidArgument Kind = iota
	// UnsupportedCurrency is raised when a currency pair references a code
	// outside the closed five-currency enumeration.
	UnsupportedCurrency
	// DisconnectedGraph is raised when an operation requires the currency
	// graph to reach every vertex from vertex 0 and it does not.
	DisconnectedGraph
	// StrategyNotApplicable is raised when a caller invokes Allocate on a
	// strategy whose IsApplicable precondition does not hold.
	StrategyNotApplicable
	// ArithmeticOverflow is raised when a decimal operation has no finite
	// result: money.DecimalAmount.Div raises it on division by zero.
	// Rounding to working precision never raises it.
	ArithmeticOverflow
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case UnsupportedCurrency:
		return "UnsupportedCurrency"
	case DisconnectedGraph:
		return "DisconnectedGraph"
	case StrategyNotApplicable:
		return "StrategyNotApplicable"
	case ArithmeticOverflow:
		return "ArithmeticOverflow"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type raised by cardback engines. Message
// carries a human-readable description; Underlying carries a wrapped cause
// when one exists (e.g. a decimal parse failure).
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As can traverse it.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is a *Error with the same Kind, enabling
// errors.Is(err, cerrors.New(cerrors.DisconnectedGraph, "")) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind, chaining an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Underlying: cause}
}

// InvalidArgumentf is a convenience constructor for the most common kind.
func InvalidArgumentf(format string, args ...any) *Error {
	return New(InvalidArgument, format, args...)
}
