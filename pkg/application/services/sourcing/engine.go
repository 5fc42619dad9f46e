// Package sourcing applies purchase-buffer rules to computed deficits
// and injects derived hardware (sockets, adapters, enclosure parts)
// based on detected components.
package sourcing

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/domain/services/classify"
	"github.com/pedalbuild/bomkit/pkg/domain/services/valuenorm"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// AutoInjectSource is the provenance label carried by every
// system-generated record.
const AutoInjectSource = "Auto-Inject"

// Engine holds the purchasing rules. Pure like the rest of the core:
// it never mutates the part records it scans.
type Engine struct {
	tables     *config.Tables
	normalizer *valuenorm.Normalizer
	classifier *classify.Classifier
	log        *zap.Logger
}

// New creates a sourcing engine over the lookup tables.
func New(tables *config.Tables, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		tables:     tables,
		normalizer: valuenorm.New(tables),
		classifier: classify.New(tables, log),
		log:        log,
	}
}

// ApplyBuffer transforms a purchasing deficit into a buy quantity plus
// a human-readable rationale. Buffers apply only to the deficit, never
// to on-hand stock, and the result is always >= the deficit. A zero
// deficit always buys zero.
func (e *Engine) ApplyBuffer(category entities.Category, deficit entities.Quantity) (entities.Quantity, string) {
	if deficit <= 0 {
		return 0, ""
	}
	rule := e.tables.BufferFor(category)
	buy := deficit + entities.Quantity(rule.Add)
	if rule.RoundTo > 0 {
		step := entities.Quantity(rule.RoundTo)
		buy = (buy + step - 1) / step * step
	}
	if floor := entities.Quantity(rule.Floor); buy < floor {
		buy = floor
	}
	return buy, rule.Note
}

// Inject scans the merged part map and derives auxiliary hardware
// records from the configured injection rules (a DIP socket per
// detected IC, an SMD adapter per obsolete discrete part). Injected
// records are marked system-generated; that provenance survives into
// every downstream report.
func (e *Engine) Inject(parts []*entities.PartRecord) []*entities.PartRecord {
	var out []*entities.PartRecord
	for _, rule := range e.tables.Injections {
		matchCat, ok := entities.ParseCategory(rule.MatchCategory)
		if !ok {
			continue
		}
		injectCat, ok := entities.ParseCategory(rule.InjectCategory)
		if !ok {
			continue
		}

		var qty entities.Quantity
		var refs []string
		for _, rec := range parts {
			if rec.Key.Category != matchCat || rec.Origin == entities.SystemGenerated {
				continue
			}
			valUp := strings.ToUpper(rec.Display)
			if !matchesAny(valUp, rule.MatchValueAny) {
				continue
			}
			if containsAnyOf(valUp, rule.SkipValueContains) {
				continue
			}
			if rule.PerMatchedUnit {
				qty += rec.Quantity
			} else {
				qty++
			}
			for _, ref := range rec.Refs {
				refs = append(refs, ref+" (Inj)")
			}
		}
		if qty == 0 {
			continue
		}

		rec := entities.NewPartRecord(entities.PartKey{Category: injectCat, Value: strings.ToUpper(rule.InjectValue)})
		rec.Display = rule.InjectValue
		rec.Origin = entities.SystemGenerated
		rec.Note = rule.Note
		rec.Quantity = qty
		rec.Refs = refs
		rec.Sources[AutoInjectSource] = append([]string(nil), refs...)
		out = append(out, rec)

		e.log.Debug("hardware injected",
			zap.String("value", rule.InjectValue),
			zap.Int64("qty", int64(qty)),
		)
	}
	return out
}

// StandardHardware derives the enclosure hardware a build needs but no
// PCB BOM ever lists: jacks, footswitch, DC jack, knobs per detected
// potentiometer. Quantities scale with the number of builds.
func (e *Engine) StandardHardware(parts []*entities.PartRecord, builds int) []*entities.PartRecord {
	if builds <= 0 {
		builds = 1
	}
	var totalPots entities.Quantity
	for _, rec := range parts {
		if rec.Key.Category == entities.Potentiometer {
			totalPots += rec.Quantity
		}
	}

	var out []*entities.PartRecord
	for _, item := range e.tables.StandardHardware {
		cat, ok := entities.ParseCategory(item.Category)
		if !ok {
			continue
		}
		var qty entities.Quantity
		if item.PerPot {
			qty = totalPots
		} else {
			qty = entities.Quantity(item.QtyPerBuild) * entities.Quantity(builds)
		}
		if qty == 0 {
			continue
		}

		key := entities.PartKey{Category: cat, Value: item.Value}
		if cat.IsPassive() {
			// Normalize so hardware adds merge with source-derived
			// passives of the same value ("3.3k" folds into 3k3).
			if v, err := e.normalizer.NormalizeFor(item.Value, cat); err == nil {
				key.Value = e.normalizer.Render(v)
			}
		} else {
			key.Value = strings.ToUpper(item.Value)
		}

		rec := entities.NewPartRecord(key)
		rec.Display = item.Value
		rec.Origin = entities.SystemGenerated
		rec.Note = item.Note
		rec.AddQuantity(AutoInjectSource, qty)
		rec.Refs = append(rec.Refs, "HW")
		out = append(out, rec)
	}
	return out
}

func matchesAny(val string, fragments []string) bool {
	if len(fragments) == 0 {
		return true
	}
	return containsAnyOf(val, fragments)
}

func containsAnyOf(val string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(val, strings.ToUpper(f)) {
			return true
		}
	}
	return false
}

// SupplierURL builds a clickable supplier search link for a term.
func (e *Engine) SupplierURL(term string) string {
	if term == "" {
		return ""
	}
	return fmt.Sprintf(e.tables.SupplierSearchURL, url.QueryEscape(term))
}

// BoardURL builds a board-shop search link for a PCB name.
func (e *Engine) BoardURL(name string) string {
	if name == "" {
		return ""
	}
	clean := strings.TrimSpace(strings.ReplaceAll(name, " PCB", ""))
	return fmt.Sprintf(e.tables.BoardSearchURL, url.QueryEscape(clean))
}
