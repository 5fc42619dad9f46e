// Package valuenorm parses free-form component value strings into exact
// canonical magnitudes and renders them back to engineering notation.
//
// The parser tolerates the notations found in human-authored BOMs:
// trailing SI prefixes ("4.7k"), BS 1852 sandwich notation ("4k7"),
// thousands separators ("4,700") and unit suffixes ("uF", "4700R").
// Equal physical quantities always normalize byte-for-byte identically.
package valuenorm

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// NormalizationError reports a value string that could not be parsed.
// The owning line item is demoted to the residual report; the error
// never aborts a run.
type NormalizationError struct {
	Raw    string
	Token  string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize %q: %s at %q", e.Raw, e.Reason, e.Token)
}

// Normalizer converts raw value strings to ComponentValues. It is a
// pure function object: the only state is the immutable prefix table.
type Normalizer struct {
	tables *config.Tables
}

// New creates a normalizer backed by the given lookup tables.
func New(tables *config.Tables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Normalize parses a raw value string into an exact magnitude in base
// units plus a unit tag. The unit is UnitNone when the string carries no
// unit suffix; NormalizeFor applies category-implied units.
func (n *Normalizer) Normalize(raw string) (entities.ComponentValue, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: raw, Reason: "empty value"}
	}
	s = stripThousandsSeparators(s)

	runes := []rune(s)
	i := 0

	// Leading digit group, with at most one interior decimal point.
	numStart := i
	sawDot := false
	for i < len(runes) {
		r := runes[i]
		if r >= '0' && r <= '9' {
			i++
			continue
		}
		if r == '.' && !sawDot && i > numStart {
			sawDot = true
			i++
			continue
		}
		break
	}
	if i == numStart {
		return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: string(runes[0]), Reason: "non-numeric leading character"}
	}
	numStr := string(runes[numStart:i])
	if strings.HasSuffix(numStr, ".") {
		return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: numStr, Reason: "empty fractional digit group"}
	}

	exp := int32(0)
	unit := entities.UnitNone

	// Optional SI prefix, possibly sandwiched between digit groups
	// (4k7 = 4.7e3). "R" sandwiched the same way is an ohm decimal
	// point (4R7 = 4.7 ohms).
	if i < len(runes) {
		prefix := string(runes[i])
		prefixExp, isPrefix := n.tables.SIPrefixes[prefix]
		isOhmPoint := prefix == "R" && sawDot == false && i+1 < len(runes) && isDigit(runes[i+1])

		if isPrefix || isOhmPoint {
			if isOhmPoint {
				unit = entities.UnitOhm
			} else {
				exp = prefixExp
			}
			i++

			// Sandwich fraction digits, if any.
			fracStart := i
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			if frac := string(runes[fracStart:i]); frac != "" {
				if sawDot {
					return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: frac, Reason: "mixed decimal point and sandwich notation"}
				}
				numStr = numStr + "." + frac
			}
		}
	}

	// Trailing unit suffix.
	rest := strings.TrimSpace(string(runes[i:]))
	if rest != "" {
		u, ok := parseUnitSuffix(rest)
		if !ok {
			if n.containsPrefixLetter(rest) {
				return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: rest, Reason: "more than one SI prefix"}
			}
			return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: rest, Reason: "unrecognized suffix"}
		}
		if unit != entities.UnitNone && u != unit {
			return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: rest, Reason: "conflicting unit suffixes"}
		}
		unit = u
	}

	mag, err := decimal.NewFromString(numStr)
	if err != nil {
		return entities.ComponentValue{}, &NormalizationError{Raw: raw, Token: numStr, Reason: "invalid digit group"}
	}
	return entities.NewComponentValue(mag.Shift(exp), unit), nil
}

// NormalizeFor parses a value and applies the unit implied by the
// component category when the string itself carries none: resistors and
// potentiometers are ohms, capacitors are farads.
func (n *Normalizer) NormalizeFor(raw string, category entities.Category) (entities.ComponentValue, error) {
	v, err := n.Normalize(raw)
	if err != nil {
		return v, err
	}
	if v.Unit == entities.UnitNone {
		switch category {
		case entities.Resistor, entities.Potentiometer:
			v.Unit = entities.UnitOhm
		case entities.Capacitor:
			v.Unit = entities.UnitFarad
		}
	}
	return v, nil
}

func (n *Normalizer) containsPrefixLetter(s string) bool {
	for _, r := range s {
		if _, ok := n.tables.SIPrefixes[string(r)]; ok {
			return true
		}
	}
	return false
}

func parseUnitSuffix(s string) (entities.Unit, bool) {
	switch strings.ToUpper(s) {
	case "F":
		return entities.UnitFarad, true
	case "V":
		return entities.UnitVolt, true
	case "R", "Ω", "OHM", "OHMS":
		return entities.UnitOhm, true
	default:
		return entities.UnitNone, false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// stripThousandsSeparators removes commas that sit between two digits.
func stripThousandsSeparators(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		if r == ',' && i > 0 && i+1 < len(runes) && isDigit(runes[i-1]) && isDigit(runes[i+1]) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
