package sourcing

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(config.Default(), nil)
}

func sourcePart(cat entities.Category, value, display string, refs ...string) *entities.PartRecord {
	rec := entities.NewPartRecord(entities.PartKey{Category: cat, Value: value})
	rec.Display = display
	for _, ref := range refs {
		rec.Add("doc", ref)
	}
	return rec
}

func TestApplyBuffer(t *testing.T) {
	e := newTestEngine(t)

	testCases := []struct {
		name     string
		category entities.Category
		deficit  entities.Quantity
		wantBuy  entities.Quantity
	}{
		{"resistor rounds up to 10", entities.Resistor, 1, 10},
		{"resistor at boundary", entities.Resistor, 10, 10},
		{"resistor past boundary", entities.Resistor, 11, 20},
		{"capacitor rounds up to 10", entities.Capacitor, 3, 10},
		{"diode adds one spare", entities.Diode, 1, 2},
		{"transistor adds one spare", entities.Transistor, 4, 5},
		{"ic adds one backup", entities.IC, 1, 2},
		{"pot buys exactly", entities.Potentiometer, 3, 3},
		{"switch buys exactly", entities.Switch, 2, 2},
		{"zero deficit buys zero", entities.Resistor, 0, 0},
		{"negative deficit buys zero", entities.IC, -5, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buy, _ := e.ApplyBuffer(tc.category, tc.deficit)
			if buy != tc.wantBuy {
				t.Errorf("Expected buy %d for deficit %d, got %d", tc.wantBuy, tc.deficit, buy)
			}
		})
	}
}

func TestApplyBuffer_NeverBelowDeficit(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))

	categories := []entities.Category{
		entities.Resistor, entities.Capacitor, entities.Diode, entities.Transistor,
		entities.IC, entities.Potentiometer, entities.Switch, entities.Hardware,
		entities.Crystal, entities.Optoelectronic, entities.PCB,
	}
	for trial := 0; trial < 200; trial++ {
		cat := categories[rng.Intn(len(categories))]
		deficit := entities.Quantity(rng.Intn(60))
		buy, _ := e.ApplyBuffer(cat, deficit)
		if deficit == 0 && buy != 0 {
			t.Fatalf("Expected zero deficit to buy zero for %v, got %d", cat, buy)
		}
		if buy < deficit {
			t.Fatalf("Buy %d fell below deficit %d for %v", buy, deficit, cat)
		}
	}
}

func TestInject_SocketPerIC(t *testing.T) {
	e := newTestEngine(t)

	parts := []*entities.PartRecord{
		sourcePart(entities.IC, "TL072", "TL072", "IC1", "IC2"),
		sourcePart(entities.IC, "L78L05 REGULATOR", "L78L05 Regulator", "IC3"),
		sourcePart(entities.Resistor, "10k", "10k", "R1"),
	}

	injected := e.Inject(parts)
	if len(injected) != 1 {
		t.Fatalf("Expected one injected record, got %d", len(injected))
	}
	socket := injected[0]
	if socket.Key.Value != "8 PIN DIP SOCKET" || socket.Key.Category != entities.Hardware {
		t.Errorf("Expected a DIP socket record, got %s", socket.Key)
	}
	if socket.Quantity != 2 {
		t.Errorf("Expected one socket per DIP chip, got %d", socket.Quantity)
	}
	if socket.Origin != entities.SystemGenerated {
		t.Errorf("Expected system-generated origin")
	}
	if got := socket.Sources[AutoInjectSource]; len(got) != 2 {
		t.Errorf("Expected Auto-Inject provenance refs, got %v", got)
	}
	if socket.Refs[0] != "IC1 (Inj)" {
		t.Errorf("Expected injection-tagged refs, got %v", socket.Refs)
	}
}

func TestInject_SMDAdapter(t *testing.T) {
	e := newTestEngine(t)

	parts := []*entities.PartRecord{
		sourcePart(entities.Transistor, "MMBF5457", "MMBF5457", "Q1"),
		sourcePart(entities.Transistor, "2N3904", "2N3904", "Q2"),
	}

	injected := e.Inject(parts)
	if len(injected) != 1 {
		t.Fatalf("Expected one adapter record, got %d", len(injected))
	}
	if injected[0].Key.Value != "SMD ADAPTER BOARD" {
		t.Errorf("Expected an SMD adapter, got %s", injected[0].Key)
	}
	if injected[0].Quantity != 1 {
		t.Errorf("Expected one adapter for one SMD part, got %d", injected[0].Quantity)
	}
}

func TestInject_IgnoresSystemGenerated(t *testing.T) {
	e := newTestEngine(t)

	prior := sourcePart(entities.IC, "TL072", "TL072", "IC1")
	prior.Origin = entities.SystemGenerated

	if injected := e.Inject([]*entities.PartRecord{prior}); len(injected) != 0 {
		t.Errorf("Expected injected records not to trigger further injection, got %d", len(injected))
	}
}

func TestStandardHardware(t *testing.T) {
	e := newTestEngine(t)

	pots := sourcePart(entities.Potentiometer, "100k", "A100K", "VOLUME", "TONE")
	out := e.StandardHardware([]*entities.PartRecord{pots}, 1)

	byValue := make(map[string]*entities.PartRecord)
	for _, rec := range out {
		byValue[rec.Key.Value] = rec
		if rec.Origin != entities.SystemGenerated {
			t.Errorf("Expected %s to be system-generated", rec.Key)
		}
	}

	if knob := byValue["KNOB"]; knob == nil || knob.Quantity != 2 {
		t.Errorf("Expected one knob per pot, got %+v", knob)
	}
	if seal := byValue["DUST SEAL COVER"]; seal == nil || seal.Quantity != 2 {
		t.Errorf("Expected one dust seal per pot, got %+v", seal)
	}
	if clr := byValue["3.3k"]; clr == nil {
		t.Fatalf("Expected the LED resistor keyed by normalized value, got %v", byValue)
	}
	if feet := byValue["RUBBER FEET (BLACK)"]; feet == nil || feet.Quantity != 4 {
		t.Errorf("Expected 4 feet per build, got %+v", feet)
	}
}

func TestStandardHardware_ScalesWithBuilds(t *testing.T) {
	e := newTestEngine(t)

	out := e.StandardHardware(nil, 3)
	for _, rec := range out {
		if rec.Key.Value == "RUBBER FEET (BLACK)" && rec.Quantity != 12 {
			t.Errorf("Expected 12 feet for 3 builds, got %d", rec.Quantity)
		}
		if rec.Key.Value == "KNOB" {
			t.Errorf("Expected no knobs without pots")
		}
	}
}

func TestSupplierAndBoardURLs(t *testing.T) {
	e := newTestEngine(t)

	u := e.SupplierURL("100k ohm 1/4w")
	if !strings.Contains(u, "taydaelectronics.com") {
		t.Errorf("Expected a supplier search link, got %q", u)
	}
	if !strings.Contains(u, "100k+ohm") {
		t.Errorf("Expected the term to be query-escaped, got %q", u)
	}

	b := e.BoardURL("Fuzz Face PCB")
	if !strings.Contains(b, "pedalpcb.com") || !strings.Contains(b, "Fuzz+Face") {
		t.Errorf("Expected a board search link without the PCB suffix, got %q", b)
	}

	if e.SupplierURL("") != "" || e.BoardURL("") != "" {
		t.Errorf("Expected empty terms to produce no link")
	}
}
