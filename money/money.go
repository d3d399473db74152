package money

import "github.com/cardops/backoffice/cerrors"

// Money pairs a DecimalAmount with the Currency it is denominated in. All
// binary operations require identical currencies; a mismatch is a
// deterministic InvalidArgument failure, never a silent conversion (currency
// conversion is the arbitrage/graph package's job, not Money's).
type Money struct {
	Amount   DecimalAmount
	Currency Currency
}

// New builds a Money value.
func New(amount DecimalAmount, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// ZeroIn builds a zero-valued Money in the given currency.
func ZeroIn(currency Currency) Money {
	return Money{Amount: Zero, Currency: currency}
}

func (m Money) requireSameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return cerrors.New(cerrors.InvalidArgument,
			"currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	return nil
}

// Add returns m + other. Fails if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other. Fails if the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// MulScalar returns m scaled by a unitless DecimalAmount factor (e.g. a
// rate or a percentage), preserving currency.
func (m Money) MulScalar(factor DecimalAmount) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Cmp compares m and other numerically. Fails if the currencies differ.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(other.Amount), nil
}

// IsZero reports whether the amount is exactly zero, regardless of currency.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency.String()
}
