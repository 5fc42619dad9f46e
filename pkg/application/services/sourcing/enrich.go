package sourcing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// icPackageSuffix strips package designators (TL072CP -> TL072) before
// substitution lookup.
var icPackageSuffix = regexp.MustCompile(`(CP|CN|P|N)$`)

// Enrich fills the buy quantity, rationale, search term and supplier
// URL of each net-needs result in place. Deficits are never reduced.
func (e *Engine) Enrich(results []entities.NetNeedsResult) []entities.NetNeedsResult {
	for i := range results {
		r := &results[i]
		cat := r.Part.Key.Category

		buy, note := e.ApplyBuffer(cat, r.Deficit)
		r.BuyQuantity = buy

		notes := make([]string, 0, 3)
		if r.Deficit > 0 && note != "" {
			notes = append(notes, note)
		}
		notes = append(notes, e.advisoryNotes(r.Part)...)
		r.Rationale = strings.Join(notes, " | ")

		term := e.SearchTerm(r.Part)
		r.SearchTerm = term
		if cat == entities.PCB {
			r.SupplierURL = e.BoardURL(r.Part.Display)
		} else {
			r.SupplierURL = e.SupplierURL(term)
		}
	}
	return results
}

// advisoryNotes collects warnings and substitution suggestions that
// apply regardless of the deficit.
func (e *Engine) advisoryNotes(rec *entities.PartRecord) []string {
	var notes []string
	valUp := strings.ToUpper(rec.Display)

	fragments := make([]string, 0, len(e.tables.ObsoletePartWarnings))
	for fragment := range e.tables.ObsoletePartWarnings {
		fragments = append(fragments, fragment)
	}
	sort.Strings(fragments)
	for _, fragment := range fragments {
		if strings.Contains(valUp, strings.ToUpper(fragment)) {
			notes = append(notes, e.tables.ObsoletePartWarnings[fragment])
		}
	}

	switch rec.Key.Category {
	case entities.IC:
		notes = append(notes, "Socket recommended")
		clean := icPackageSuffix.ReplaceAllString(strings.TrimSpace(rec.Display), "")
		if subs, ok := e.tables.ICSubs[clean]; ok {
			notes = append(notes, "TRY: "+formatSubs(subs))
		}
	case entities.Diode:
		if subs, ok := e.tables.DiodeSubs[strings.TrimSpace(rec.Display)]; ok {
			notes = append(notes, "TRY: "+formatSubs(subs))
		}
	case entities.Resistor:
		if !rec.Value.IsZero() && rec.Value.Magnitude.Cmp(decimal.New(1, 0)) < 0 {
			notes = append(notes, "Suspicious value (< 1Ω), verify BOM")
		}
	case entities.Capacitor:
		if !rec.Value.IsZero() && rec.Value.Magnitude.Cmp(decimal.New(1, -2)) > 0 {
			notes = append(notes, "Suspicious value (> 10mF), verify BOM")
		}
	case entities.Hardware:
		if rec.Origin == entities.SystemGenerated && rec.Note != "" {
			notes = append(notes, "[AUTO] "+rec.Note)
		}
	case entities.PCB:
		notes = append(notes, "Main board")
	}
	return notes
}

func formatSubs(subs []config.Substitute) string {
	parts := make([]string, 0, len(subs))
	for _, s := range subs {
		entry := s.Name + " (" + s.Profile
		if s.Reason != "" {
			entry += ": " + s.Reason
		}
		parts = append(parts, entry+")")
	}
	return strings.Join(parts, ", ")
}

// SearchTerm builds a supplier-optimized search string for a part.
func (e *Engine) SearchTerm(rec *entities.PartRecord) string {
	display := strings.TrimSpace(rec.Display)

	switch rec.Key.Category {
	case entities.Resistor:
		return rec.Key.Value + " ohm 1/4w metal film"

	case entities.Capacitor:
		val := rec.Key.Value
		if val != "" && strings.ContainsRune("pnu", rune(val[len(val)-1])) {
			val += "F"
		}
		switch e.Dielectric(rec.Value) {
		case "MLCC":
			return val + " multilayer"
		case "":
			return val
		default:
			return val + " " + e.Dielectric(rec.Value)
		}

	case entities.Potentiometer:
		taper := e.classifier.TaperName(display)
		val := rec.Key.Value
		if rec.Value.IsZero() {
			val = display
		}
		term := val + " ohm " + taper + " potentiometer"
		up := strings.ToUpper(display)
		if strings.Contains(up, "DUAL") || strings.Contains(up, "STEREO") {
			return "Dual Gang " + term
		}
		return term

	case entities.Diode:
		if strings.EqualFold(display, "LED") {
			return "LED 3mm"
		}
		return display

	case entities.Hardware:
		if strings.Contains(strings.ToUpper(display), "DIP SOCKET") {
			return "8 pin DIP IC Socket Adaptor Solder Type"
		}
		return display

	case entities.IC:
		if strings.Contains(strings.ToUpper(display), "JRC4558") {
			return "NJM4558D"
		}
		return display

	default:
		return display
	}
}

// Dielectric infers the capacitor construction from its value:
// MLCC below 1nF, film between 1nF and 1uF inclusive, electrolytic
// above. Non-capacitor or non-numeric values yield "".
func (e *Engine) Dielectric(v entities.ComponentValue) string {
	if v.Unit != entities.UnitFarad || v.Magnitude.IsZero() {
		return ""
	}
	nano := decimal.New(1, -9)
	micro := decimal.New(1, -6)
	switch {
	case v.Magnitude.Cmp(nano) < 0:
		return "MLCC"
	case v.Magnitude.Cmp(micro) <= 0:
		return "Box Film"
	default:
		return "Electrolytic"
	}
}
