package aggregate

import (
	"strings"
	"testing"

	"github.com/pedalbuild/bomkit/pkg/application/services/extract"
	"github.com/pedalbuild/bomkit/pkg/application/services/sourcing"
	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// TestPipeline_EndToEnd runs the whole flow for a small build: ingest,
// inject, net against empty inventory, enrich.
func TestPipeline_EndToEnd(t *testing.T) {
	tables := config.Default()
	s := NewSession(tables, nil)
	engine := sourcing.New(tables, nil)

	ingestText(t, s, "layout", "R1 100k\nC1 10uF\nR2 47k 1/4W\nIC1 TL072")

	s.MergeInjected(engine.Inject(s.Parts()))

	results := engine.Enrich(s.ComputeNetNeeds(entities.NewInventorySnapshot(nil)))
	if len(results) != 5 {
		t.Fatalf("Expected 4 parts plus an injected socket, got %d results", len(results))
	}

	byKey := make(map[entities.PartKey]entities.NetNeedsResult)
	for _, r := range results {
		byKey[r.Part.Key] = r
		if r.Deficit != r.Required {
			t.Errorf("Expected full deficit with empty inventory for %s", r.Part.Key)
		}
	}

	checks := []struct {
		key entities.PartKey
		buy entities.Quantity
	}{
		{entities.PartKey{Category: entities.Resistor, Value: "100k"}, 10},
		{entities.PartKey{Category: entities.Resistor, Value: "47k", Token: "1/4W"}, 10},
		{entities.PartKey{Category: entities.Capacitor, Value: "10u"}, 10},
		{entities.PartKey{Category: entities.IC, Value: "TL072"}, 2},
		{entities.PartKey{Category: entities.Hardware, Value: "8 PIN DIP SOCKET"}, 1},
	}
	for _, c := range checks {
		r, ok := byKey[c.key]
		if !ok {
			t.Errorf("Expected a result for %s", c.key)
			continue
		}
		if r.BuyQuantity != c.buy {
			t.Errorf("Expected buy %d for %s, got %d", c.buy, c.key, r.BuyQuantity)
		}
	}

	socket := byKey[entities.PartKey{Category: entities.Hardware, Value: "8 PIN DIP SOCKET"}]
	if socket.Part.Origin != entities.SystemGenerated {
		t.Errorf("Expected the socket to be system-generated")
	}
	if !strings.Contains(socket.Rationale, "[AUTO]") {
		t.Errorf("Expected auto-injection to be visible in the rationale, got %q", socket.Rationale)
	}
}

// TestPipeline_StockReducesBuys nets the same build against stock that
// fully covers one part and partially covers another.
func TestPipeline_StockReducesBuys(t *testing.T) {
	tables := config.Default()
	s := NewSession(tables, nil)
	engine := sourcing.New(tables, nil)

	ingestText(t, s, "layout", "R1-R4 10k\nIC1 TL072")

	snapshot := entities.NewInventorySnapshot([]entities.InventoryRecord{
		{Key: entities.PartKey{Category: entities.Resistor, Value: "10k"}, OnHand: 3},
		{Key: entities.PartKey{Category: entities.IC, Value: "TL072"}, OnHand: 9},
	})
	results := engine.Enrich(s.ComputeNetNeeds(snapshot))

	for _, r := range results {
		switch r.Part.Key.Category {
		case entities.Resistor:
			if r.Deficit != 1 {
				t.Errorf("Expected deficit 1 for partially stocked resistor, got %d", r.Deficit)
			}
			if r.BuyQuantity != 10 {
				t.Errorf("Expected floor purchase of 10, got %d", r.BuyQuantity)
			}
		case entities.IC:
			if r.Deficit != 0 || r.BuyQuantity != 0 {
				t.Errorf("Expected fully stocked IC to buy nothing, got deficit %d buy %d",
					r.Deficit, r.BuyQuantity)
			}
		}
	}
}

// TestPipeline_GarbageInputNeverFails feeds pathological text through
// the full pipeline; everything unparseable must land in residuals, not
// in errors or panics.
func TestPipeline_GarbageInputNeverFails(t *testing.T) {
	tables := config.Default()
	s := NewSession(tables, nil)
	engine := sourcing.New(tables, nil)

	garbage := strings.Join([]string{
		"!!!",
		"12345",
		"€€€ nonsense",
		"R1",
		"R2 ",
		strings.Repeat("x", 500),
		"R3 1.2.3.4k",
		"\t\t",
		",,,,,",
	}, "\n")

	if _, err := s.IngestSource(extract.NewTextSource("garbage", garbage)); err != nil {
		t.Fatalf("Expected garbage to divert to residuals, got error: %v", err)
	}

	results := engine.Enrich(s.ComputeNetNeeds(entities.NewInventorySnapshot(nil)))
	for _, r := range results {
		if r.Deficit < 0 || r.BuyQuantity < r.Deficit {
			t.Errorf("Invariant violated for %s: deficit %d buy %d", r.Part.Key, r.Deficit, r.BuyQuantity)
		}
	}
	if len(s.Residuals()) == 0 {
		t.Errorf("Expected garbage lines to produce residuals")
	}
}
