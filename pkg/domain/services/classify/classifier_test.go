package classify

import (
	"testing"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return New(config.Default(), nil)
}

func TestClassify(t *testing.T) {
	c := newTestClassifier(t)

	testCases := []struct {
		name       string
		ref        string
		val        string
		want       entities.Category
		confidence float64
	}{
		{"resistor prefix", "R1", "10k", entities.Resistor, 1.0},
		{"capacitor prefix", "C3", "100n", entities.Capacitor, 1.0},
		{"ic prefix", "IC1", "TL072", entities.IC, 1.0},
		{"opamp prefix", "U2", "NE5532", entities.IC, 1.0},
		{"diode prefix", "D1", "1N4148", entities.Diode, 1.0},
		{"led prefix", "LED1", "RED 3MM", entities.Diode, 1.0},
		{"ldr prefix", "LDR1", "GL5539", entities.Optoelectronic, 1.0},
		{"transistor prefix", "Q1", "2N5457", entities.Transistor, 1.0},
		{"crystal prefix", "X1", "4MHz", entities.Crystal, 1.0},
		{"switch prefix", "SW1", "DPDT", entities.Switch, 1.0},
		{"jack prefix", "J1", "6.35mm", entities.Hardware, 1.0},
		{"pcb", "PCB", "Aion Andromeda", entities.PCB, 1.0},
		{"clr label", "CLR", "3.3k", entities.Resistor, 1.0},
		{"trim pot", "TRIM1", "10k", entities.Potentiometer, 1.0},
		{"pot control label", "VOLUME", "A100K", entities.Potentiometer, 1.0},
		{"pot label with suffix", "GAIN2", "B100K", entities.Potentiometer, 1.0},
		{"switch label with switch value", "MODE", "ON-ON", entities.Switch, 1.0},
		{"switch label with pot value", "MODE", "B100K", entities.Potentiometer, 0.75},
		{"taper signature only", "", "B100K", entities.Potentiometer, 0.4},
		{"unclassifiable", "FOO", "BAR", entities.Unknown, 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(entities.LineItem{Designator: tc.ref, RawValue: tc.val})
			if got.Category != tc.want {
				t.Errorf("Expected category %v, got %v", tc.want, got.Category)
			}
			if got.Confidence != tc.confidence {
				t.Errorf("Expected confidence %.2f, got %.2f", tc.confidence, got.Confidence)
			}
		})
	}
}

func TestClassify_PrefixBeatsValueSignature(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify(entities.LineItem{Designator: "R5", RawValue: "B100K"})
	if got.Category != entities.Resistor {
		t.Errorf("Expected designator prefix to win, got %v", got.Category)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Expected full confidence on prefix match, got %.2f", got.Confidence)
	}
	if got.Conflict == "" {
		t.Errorf("Expected a conflict diagnostic when value signature disagrees")
	}
}

func TestCleanPotValue(t *testing.T) {
	c := newTestClassifier(t)

	testCases := []struct {
		raw  string
		want string
	}{
		{"B100K", "100K"},
		{"A100K", "100K"},
		{"100k-A", "100K"},
		{"100K", "100K"},
		{"10k B", "10K"},
	}

	for _, tc := range testCases {
		if got := c.CleanPotValue(tc.raw); got != tc.want {
			t.Errorf("CleanPotValue(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTaperName(t *testing.T) {
	c := newTestClassifier(t)

	testCases := []struct {
		raw  string
		want string
	}{
		{"B100K", "Linear"},
		{"A100K", "Logarithmic"},
		{"100K-C", "Reverse Log"},
		{"W100K", "W Taper"},
		{"100", "Linear"},
	}

	for _, tc := range testCases {
		if got := c.TaperName(tc.raw); got != tc.want {
			t.Errorf("TaperName(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
