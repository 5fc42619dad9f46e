package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit represents the physical unit of a component value
type Unit int

const (
	UnitNone Unit = iota
	UnitOhm
	UnitFarad
	UnitVolt
)

// String method for Unit enum
func (u Unit) String() string {
	switch u {
	case UnitOhm:
		return "Ω"
	case UnitFarad:
		return "F"
	case UnitVolt:
		return "V"
	default:
		return ""
	}
}

// ComponentValue is a normalized component magnitude in base units
// (ohms, farads, volts) paired with its unit tag. Magnitudes are exact
// decimals: two spellings of the same physical quantity always carry
// byte-identical canonical forms.
type ComponentValue struct {
	Magnitude decimal.Decimal
	Unit      Unit
}

// NewComponentValue builds a value with a canonicalized magnitude.
func NewComponentValue(magnitude decimal.Decimal, unit Unit) ComponentValue {
	return ComponentValue{Magnitude: CanonicalDecimal(magnitude), Unit: unit}
}

// Equal reports whether two values denote the same physical quantity.
func (v ComponentValue) Equal(o ComponentValue) bool {
	return v.Unit == o.Unit && v.Magnitude.Equal(o.Magnitude)
}

// IsZero reports whether the value is the zero value.
func (v ComponentValue) IsZero() bool {
	return v.Unit == UnitNone && v.Magnitude.IsZero()
}

// String renders the base-unit magnitude plus unit tag, e.g. "4700Ω".
func (v ComponentValue) String() string {
	return v.Magnitude.String() + v.Unit.String()
}

// CanonicalDecimal strips insignificant trailing fraction zeros so that
// equal quantities render byte-for-byte identically ("4.70k" and "4k7"
// both become 4700).
func CanonicalDecimal(d decimal.Decimal) decimal.Decimal {
	s := d.String()
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return decimal.RequireFromString(s)
}
