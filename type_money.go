package twfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// TWD is the default currency for holdings: the tracked securities are
// listed on the Taiwan Stock Exchange.
const TWD = "TWD"

// Money represents a monetary value, typically a per-share price or a
// per-share dividend. Dividends per share are fractional, so the value
// is kept exact and never rounded during computation.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the money's currency, defaulting to TWD.
func (m Money) currency() money.Currency {
	cur := m.cur
	if cur == "" {
		cur = TWD
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, cur).Currency()
}

// String returns the string representation of the money value, formatted
// for its currency.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string             { return m.currency().Code }
func (m Money) Amount() decimal.Decimal      { return m.value }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// MulShares scales a per-share value by a share count.
func (m Money) MulShares(shares int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(shares)), cur: m.cur}
}

// FloorZero returns m, or zero when m is negative. The adjusted cost
// basis never goes below zero however large the cumulative dividends.
func (m Money) FloorZero() Money {
	if m.value.IsNegative() {
		return Money{value: decimal.Zero, cur: m.cur}
	}
	return m
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// MarshalJSON persists the bare amount; the currency is carried by the
// enclosing holding record.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

func (m *Money) UnmarshalJSON(bytes []byte) error {
	return m.value.UnmarshalJSON(bytes)
}
