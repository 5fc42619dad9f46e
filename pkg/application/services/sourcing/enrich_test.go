package sourcing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
)

func passivePart(cat entities.Category, keyValue string, mag string, unit entities.Unit) *entities.PartRecord {
	rec := entities.NewPartRecord(entities.PartKey{Category: cat, Value: keyValue})
	rec.Display = keyValue
	rec.Value = entities.NewComponentValue(decimal.RequireFromString(mag), unit)
	return rec
}

func TestEnrich_FillsBuyAndRationale(t *testing.T) {
	e := newTestEngine(t)

	resistor := passivePart(entities.Resistor, "100k", "100000", entities.UnitOhm)
	results := e.Enrich([]entities.NetNeedsResult{
		{Part: resistor, Required: 1, Deficit: 1, BuyQuantity: 1},
	})

	r := results[0]
	if r.BuyQuantity != 10 {
		t.Errorf("Expected buffered buy of 10, got %d", r.BuyQuantity)
	}
	if !strings.Contains(r.Rationale, "Bulk passive") {
		t.Errorf("Expected the buffer rationale, got %q", r.Rationale)
	}
	if r.SearchTerm != "100k ohm 1/4w metal film" {
		t.Errorf("Expected a resistor search term, got %q", r.SearchTerm)
	}
	if !strings.Contains(r.SupplierURL, "taydaelectronics.com") {
		t.Errorf("Expected a supplier link, got %q", r.SupplierURL)
	}
}

func TestEnrich_ZeroDeficitBuysZero(t *testing.T) {
	e := newTestEngine(t)

	resistor := passivePart(entities.Resistor, "10k", "10000", entities.UnitOhm)
	results := e.Enrich([]entities.NetNeedsResult{
		{Part: resistor, Required: 2, OnHand: 5, Deficit: 0},
	})
	if results[0].BuyQuantity != 0 {
		t.Errorf("Expected no purchase when fully stocked, got %d", results[0].BuyQuantity)
	}
	if strings.Contains(results[0].Rationale, "Bulk passive") {
		t.Errorf("Expected no buffer rationale for a zero deficit, got %q", results[0].Rationale)
	}
}

func TestEnrich_ICNotes(t *testing.T) {
	e := newTestEngine(t)

	ic := sourcePart(entities.IC, "TL072", "TL072", "IC1")
	results := e.Enrich([]entities.NetNeedsResult{
		{Part: ic, Required: 1, Deficit: 1},
	})

	r := results[0]
	if r.BuyQuantity != 2 {
		t.Errorf("Expected +1 backup, got buy %d", r.BuyQuantity)
	}
	if !strings.Contains(r.Rationale, "Socket recommended") {
		t.Errorf("Expected socket advice, got %q", r.Rationale)
	}
	if !strings.Contains(r.Rationale, "TRY: OPA2134") {
		t.Errorf("Expected substitution suggestions, got %q", r.Rationale)
	}
}

func TestEnrich_ICPackageSuffixStripped(t *testing.T) {
	e := newTestEngine(t)

	ic := sourcePart(entities.IC, "TL072CP", "TL072CP", "IC1")
	results := e.Enrich([]entities.NetNeedsResult{{Part: ic, Deficit: 1}})
	if !strings.Contains(results[0].Rationale, "TRY: OPA2134") {
		t.Errorf("Expected package suffix to be stripped before lookup, got %q", results[0].Rationale)
	}
}

func TestEnrich_DiodeSubstitutionsAndLEDTerm(t *testing.T) {
	e := newTestEngine(t)

	diode := sourcePart(entities.Diode, "1N4148", "1N4148", "D1")
	led := sourcePart(entities.Diode, "LED", "LED", "D2")
	results := e.Enrich([]entities.NetNeedsResult{
		{Part: diode, Deficit: 1},
		{Part: led, Deficit: 1},
	})

	if !strings.Contains(results[0].Rationale, "TRY: 1N4001") {
		t.Errorf("Expected diode substitutions, got %q", results[0].Rationale)
	}
	if results[1].SearchTerm != "LED 3mm" {
		t.Errorf("Expected LED search term, got %q", results[1].SearchTerm)
	}
}

func TestEnrich_ObsoleteWarnings(t *testing.T) {
	e := newTestEngine(t)

	q := sourcePart(entities.Transistor, "2N5457", "2N5457", "Q1")
	results := e.Enrich([]entities.NetNeedsResult{{Part: q, Deficit: 1}})
	if !strings.Contains(results[0].Rationale, "Obsolete part") {
		t.Errorf("Expected obsolete warning, got %q", results[0].Rationale)
	}
}

func TestEnrich_SuspiciousValues(t *testing.T) {
	e := newTestEngine(t)

	subOhm := passivePart(entities.Resistor, "500000u", "0.5", entities.UnitOhm)
	bigCap := passivePart(entities.Capacitor, "47000u", "0.047", entities.UnitFarad)
	results := e.Enrich([]entities.NetNeedsResult{
		{Part: subOhm, Deficit: 1},
		{Part: bigCap, Deficit: 1},
	})

	if !strings.Contains(results[0].Rationale, "< 1Ω") {
		t.Errorf("Expected sub-ohm warning, got %q", results[0].Rationale)
	}
	if !strings.Contains(results[1].Rationale, "> 10mF") {
		t.Errorf("Expected oversized capacitor warning, got %q", results[1].Rationale)
	}
}

func TestEnrich_PCBUsesBoardLink(t *testing.T) {
	e := newTestEngine(t)

	board := sourcePart(entities.PCB, "Fuzz Face", "Fuzz Face", "PCB")
	results := e.Enrich([]entities.NetNeedsResult{{Part: board, Deficit: 1}})
	if !strings.Contains(results[0].SupplierURL, "pedalpcb.com") {
		t.Errorf("Expected a board-shop link for PCBs, got %q", results[0].SupplierURL)
	}
	if !strings.Contains(results[0].Rationale, "Main board") {
		t.Errorf("Expected board rationale, got %q", results[0].Rationale)
	}
}

func TestSearchTerm_Capacitors(t *testing.T) {
	e := newTestEngine(t)

	testCases := []struct {
		keyValue string
		mag      string
		want     string
	}{
		{"47p", "0.000000000047", "47pF multilayer"},
		{"100n", "0.0000001", "100nF Box Film"},
		{"10u", "0.00001", "10uF Electrolytic"},
	}
	for _, tc := range testCases {
		rec := passivePart(entities.Capacitor, tc.keyValue, tc.mag, entities.UnitFarad)
		if got := e.SearchTerm(rec); got != tc.want {
			t.Errorf("Expected %q for %s, got %q", tc.want, tc.keyValue, got)
		}
	}
}

func TestSearchTerm_Potentiometer(t *testing.T) {
	e := newTestEngine(t)

	rec := entities.NewPartRecord(entities.PartKey{
		Category: entities.Potentiometer, Value: "100k", Token: "Logarithmic",
	})
	rec.Display = "A100K"
	rec.Value = entities.NewComponentValue(decimal.RequireFromString("100000"), entities.UnitOhm)

	if got := e.SearchTerm(rec); got != "100k ohm Logarithmic potentiometer" {
		t.Errorf("Expected taper-aware pot term, got %q", got)
	}
}

func TestDielectric(t *testing.T) {
	e := newTestEngine(t)

	testCases := []struct {
		mag  string
		unit entities.Unit
		want string
	}{
		{"0.000000000047", entities.UnitFarad, "MLCC"},
		{"0.0000001", entities.UnitFarad, "Box Film"},
		{"0.000001", entities.UnitFarad, "Box Film"},
		{"0.00001", entities.UnitFarad, "Electrolytic"},
		{"100000", entities.UnitOhm, ""},
	}
	for _, tc := range testCases {
		v := entities.NewComponentValue(decimal.RequireFromString(tc.mag), tc.unit)
		if got := e.Dielectric(v); got != tc.want {
			t.Errorf("Dielectric(%s%v) = %q, want %q", tc.mag, tc.unit, got, tc.want)
		}
	}
}
