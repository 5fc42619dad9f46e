package entities

import "testing"

func TestParseCategory_RoundTrip(t *testing.T) {
	categories := []Category{
		PCB, IC, Crystal, Optoelectronic, Transistor, Diode,
		Potentiometer, Switch, Capacitor, Resistor, Hardware,
	}
	for _, c := range categories {
		got, ok := ParseCategory(c.String())
		if !ok {
			t.Errorf("Expected ParseCategory to accept display name %q", c.String())
		}
		if got != c {
			t.Errorf("Expected %v to round-trip, got %v", c, got)
		}
	}
}

func TestParseCategory_Shorthands(t *testing.T) {
	testCases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"resistors", Resistor, true},
		{"CAP", Capacitor, true},
		{"pots", Potentiometer, true},
		{"misc", Hardware, true},
		{"  Diodes ", Diode, true},
		{"widget", Unknown, false},
	}
	for _, tc := range testCases {
		got, ok := ParseCategory(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseCategory(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCategory_DisplayRank(t *testing.T) {
	if PCB.DisplayRank() >= Resistor.DisplayRank() {
		t.Errorf("Expected PCBs to rank before resistors in reports")
	}
	if Unknown.DisplayRank() != 999 {
		t.Errorf("Expected unknown category to sort last, got rank %d", Unknown.DisplayRank())
	}
}

func TestCategory_Predicates(t *testing.T) {
	if !Resistor.IsPassive() || !Capacitor.IsPassive() {
		t.Errorf("Expected resistors and capacitors to be passive")
	}
	if Potentiometer.IsPassive() {
		t.Errorf("Expected potentiometers not to be passive")
	}
	if !Transistor.IsDiscreteSilicon() || !Diode.IsDiscreteSilicon() {
		t.Errorf("Expected transistors and diodes to be discrete silicon")
	}
	if IC.IsDiscreteSilicon() {
		t.Errorf("Expected ICs not to be discrete silicon")
	}
}
