package valuenorm

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
)

// renderStep is one engineering-notation reduction tier. Milli is
// deliberately absent: sub-unit values reduce straight to micro
// (0.0047F -> "4700u"), matching supplier catalog conventions.
type renderStep struct {
	exp    int32
	suffix string
}

var renderLarge = []renderStep{
	{exp: 6, suffix: "M"},
	{exp: 3, suffix: "k"},
}

var renderSmall = []renderStep{
	{exp: -6, suffix: "u"},
	{exp: -9, suffix: "n"},
	{exp: -12, suffix: "p"},
}

// Render converts a canonical value back to the engineering string used
// for part identity keys and supplier searches, e.g. 4700 -> "4.7k",
// 1e-7 -> "100n". The reduction is exact, so Render followed by
// Normalize returns the original canonical value.
func (n *Normalizer) Render(v entities.ComponentValue) string {
	mag := v.Magnitude
	if mag.IsZero() {
		return "0"
	}
	for _, step := range renderLarge {
		if mag.Cmp(decimal.New(1, step.exp)) >= 0 {
			return reduce(mag, step)
		}
	}
	if mag.Cmp(decimal.New(1, 0)) < 0 {
		for _, step := range renderSmall {
			if mag.Cmp(decimal.New(1, step.exp)) >= 0 {
				return reduce(mag, step)
			}
		}
	}
	return entities.CanonicalDecimal(mag).String()
}

// RenderWithUnit appends the unit tag, e.g. "4.7kΩ".
func (n *Normalizer) RenderWithUnit(v entities.ComponentValue) string {
	return n.Render(v) + v.Unit.String()
}

// Display converts a canonical value to BS 1852 sandwich form ("4k7"),
// preferred on printed checklists because it has no decimal point to
// misread.
func (n *Normalizer) Display(v entities.ComponentValue) string {
	base := n.Render(v)
	dot := strings.IndexByte(base, '.')
	if dot < 0 || len(base) == 0 {
		return base
	}
	last := base[len(base)-1]
	if last < 'A' || (last > 'Z' && last < 'a') || last > 'z' {
		return base
	}
	whole := base[:dot]
	frac := base[dot+1 : len(base)-1]
	return whole + string(last) + frac
}

func reduce(mag decimal.Decimal, step renderStep) string {
	return entities.CanonicalDecimal(mag.Shift(-step.exp)).String() + step.suffix
}
