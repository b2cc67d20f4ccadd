package splitpot

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
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
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Weight is a non-negative share weight used in creditor/debitor shares,
// position usages, and clearing share tables.
type Weight struct {
	value decimal.Decimal
}

func W[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Weight {
	return Weight{value: newDecimal(value)}
}

func (w Weight) Equal(x Weight) bool    { return w.value.Equal(x.value) }
func (w Weight) LessThan(x Weight) bool { return w.value.LessThan(x.value) }
func (w Weight) Add(x Weight) Weight    { return Weight{value: w.value.Add(x.value)} }
func (w Weight) IsNegative() bool       { return w.value.IsNegative() }
func (w Weight) IsPositive() bool       { return w.value.IsPositive() }
func (w Weight) IsZero() bool           { return w.value.IsZero() }
func (w Weight) String() string         { return w.value.String() }

// MarshalJSON implements the json.Marshaler interface.
func (w Weight) MarshalJSON() ([]byte, error) {
	return w.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (w *Weight) UnmarshalJSON(data []byte) error {
	return w.value.UnmarshalJSON(data)
}
