package entities

// Quantity represents an integer quantity value for discrete component counts
type Quantity int64

// Category represents the classification of a component
type Category int

const (
	Unknown Category = iota
	PCB
	IC
	Crystal
	Optoelectronic
	Transistor
	Diode
	Potentiometer
	Switch
	Capacitor
	Resistor
	Hardware
)

// String method for Category enum
func (c Category) String() string {
	switch c {
	case PCB:
		return "PCB"
	case IC:
		return "ICs"
	case Crystal:
		return "Crystals/Oscillators"
	case Optoelectronic:
		return "Optoelectronics"
	case Transistor:
		return "Transistors"
	case Diode:
		return "Diodes"
	case Potentiometer:
		return "Potentiometers"
	case Switch:
		return "Switches"
	case Capacitor:
		return "Capacitors"
	case Resistor:
		return "Resistors"
	case Hardware:
		return "Hardware/Misc"
	default:
		return "Unknown"
	}
}

// ParseCategory maps a category name back to its enum value.
// Accepts both the display names used in rendered reports and a few
// common shorthands found in user-authored inventory files.
func ParseCategory(s string) (Category, bool) {
	switch normalizeCategoryName(s) {
	case "PCB":
		return PCB, true
	case "IC", "ICS":
		return IC, true
	case "CRYSTAL", "CRYSTALS", "CRYSTALS/OSCILLATORS", "OSCILLATORS":
		return Crystal, true
	case "OPTO", "OPTOELECTRONIC", "OPTOELECTRONICS":
		return Optoelectronic, true
	case "TRANSISTOR", "TRANSISTORS":
		return Transistor, true
	case "DIODE", "DIODES":
		return Diode, true
	case "POT", "POTS", "POTENTIOMETER", "POTENTIOMETERS":
		return Potentiometer, true
	case "SWITCH", "SWITCHES":
		return Switch, true
	case "CAP", "CAPS", "CAPACITOR", "CAPACITORS":
		return Capacitor, true
	case "RESISTOR", "RESISTORS":
		return Resistor, true
	case "HARDWARE", "HARDWARE/MISC", "MISC":
		return Hardware, true
	case "UNKNOWN":
		return Unknown, true
	default:
		return Unknown, false
	}
}

func normalizeCategoryName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 'a' && b <= 'z' {
			b -= 32
		}
		if b == ' ' || b == '\t' {
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

// displayRanks defines the fixed category ordering used for all
// human-facing reports. PCBs first, bulk passives near the end.
var displayRanks = map[Category]int{
	PCB:            0,
	IC:             1,
	Crystal:        2,
	Optoelectronic: 3,
	Transistor:     4,
	Diode:          5,
	Potentiometer:  6,
	Switch:         7,
	Capacitor:      8,
	Resistor:       9,
	Hardware:       10,
}

// DisplayRank returns the sort rank of the category in rendered output.
// Unknown categories sort last.
func (c Category) DisplayRank() int {
	if r, ok := displayRanks[c]; ok {
		return r
	}
	return 999
}

// IsPassive reports whether the category is a cheap bulk passive
// (resistors and capacitors) whose values are numerically normalized.
func (c Category) IsPassive() bool {
	return c == Resistor || c == Capacitor
}

// IsDiscreteSilicon reports whether the category is a discrete
// semiconductor subject to soldering-loss purchase buffers.
func (c Category) IsDiscreteSilicon() bool {
	return c == Transistor || c == Diode
}
