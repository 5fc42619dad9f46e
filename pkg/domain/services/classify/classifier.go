// Package classify assigns component categories to extracted line
// items from designator prefixes and value signatures.
package classify

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// Result is the outcome of classifying one line item. Classification
// always resolves to some category; uncertainty is the confidence
// score, never an error.
type Result struct {
	Category   entities.Category
	Confidence float64
	// Conflict carries a diagnostic when a value-signature heuristic
	// disagreed with an authoritative designator-prefix match.
	Conflict string
}

// Classifier is a pure rules engine over the immutable lookup tables.
type Classifier struct {
	tables *config.Tables
	log    *zap.Logger
}

// New creates a classifier. A nil logger disables diagnostics.
func New(tables *config.Tables, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{tables: tables, log: log}
}

// Classify determines the category of a line item.
//
// Rule precedence: strict designator-prefix and control-label matches
// carry confidence 1.0; value-signature heuristics (pot taper markings
// like "B100k") stay below 0.5; everything else is Unknown at 0.0.
// When a prefix match and a value signature disagree, the prefix is
// authoritative and the conflict is reported for triage.
func (c *Classifier) Classify(item entities.LineItem) Result {
	ref := strings.ToUpper(strings.TrimSpace(item.Designator))
	val := strings.ToUpper(strings.TrimSpace(item.RawValue))

	potSignature := c.hasPotValueSignature(ref, val)

	// Named potentiometer controls (VOLUME, GAIN, ...).
	if c.matchesLabel(ref, c.tables.PotLabels) {
		return Result{Category: entities.Potentiometer, Confidence: 1.0}
	}

	// Switch function labels; some double as pot names, so the value
	// text breaks the tie.
	for _, label := range c.tables.SwitchLabels {
		if ref == label {
			if containsAny(val, "ON", "SW", "SP", "DP") {
				return Result{Category: entities.Switch, Confidence: 1.0}
			}
			return Result{Category: entities.Potentiometer, Confidence: 0.75}
		}
	}

	// Designator prefix table, longest prefix first.
	if cat, ok := c.matchPrefix(ref); ok {
		res := Result{Category: cat, Confidence: 1.0}
		if potSignature && cat != entities.Potentiometer {
			res.Conflict = "value looks like a potentiometer taper but designator prefix says " + cat.String()
			c.log.Debug("classification conflict",
				zap.String("designator", item.Designator),
				zap.String("value", item.RawValue),
				zap.String("prefix_category", cat.String()),
			)
		}
		return res
	}

	// Value-signature fallback: taper-marked values imply a pot when
	// the designator is absent or generic.
	if potSignature {
		return Result{Category: entities.Potentiometer, Confidence: 0.4}
	}

	return Result{Category: entities.Unknown, Confidence: 0.0}
}

// CleanPotValue strips taper codes and separators from a pot value so
// "B100K" and "100k-A" both reduce to a parseable "100K".
func (c *Classifier) CleanPotValue(raw string) string {
	up := strings.ToUpper(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range up {
		s := string(r)
		if _, isTaper := c.tables.PotTapers[s]; isTaper {
			continue
		}
		if r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return strings.TrimSpace(raw)
	}
	return b.String()
}

// TaperName returns the taper curve name encoded in a pot value,
// defaulting to Linear.
func (c *Classifier) TaperName(raw string) string {
	up := strings.ToUpper(raw)
	codes := make([]string, 0, len(c.tables.PotTapers))
	for code := range c.tables.PotTapers {
		if code != "B" {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		if strings.Contains(up, code) {
			return c.tables.PotTapers[code]
		}
	}
	if strings.Contains(up, "B") {
		return c.tables.PotTapers["B"]
	}
	return "Linear"
}

func (c *Classifier) matchPrefix(ref string) (entities.Category, bool) {
	best := -1
	var bestCat entities.Category
	for _, rule := range c.tables.Prefixes {
		if !strings.HasPrefix(ref, rule.Prefix) {
			continue
		}
		if rule.RequireDigit && !containsDigit(ref) {
			continue
		}
		if len(rule.Prefix) > best {
			if cat, ok := entities.ParseCategory(rule.Category); ok {
				best = len(rule.Prefix)
				bestCat = cat
			}
		}
	}
	return bestCat, best >= 0
}

func (c *Classifier) matchesLabel(ref string, labels []string) bool {
	for _, label := range labels {
		if ref == label || (len(ref) > len(label) && strings.HasPrefix(ref, label)) {
			return true
		}
	}
	return false
}

// hasPotValueSignature detects taper-style values ("B100K", "100K-A")
// unless the designator is obviously a chip.
func (c *Classifier) hasPotValueSignature(ref, val string) bool {
	if val == "" {
		return false
	}
	for _, chip := range []string{"IC", "U", "Q", "OP", "TL"} {
		if strings.HasPrefix(ref, chip) {
			return false
		}
	}
	runes := []rune(val)
	if _, ok := c.tables.PotTapers[string(runes[0])]; ok && len(runes) > 1 && isDigit(runes[1]) {
		return true
	}
	last := string(runes[len(runes)-1])
	if _, ok := c.tables.PotTapers[last]; ok && containsDigit(val) {
		// Trailing taper letter after a digit sequence, but not an SI
		// prefix reading: "100K-A" yes, "100K" handled above via map.
		if len(runes) >= 2 && (isDigit(runes[len(runes)-2]) || runes[len(runes)-2] == '-') {
			return last != "K" && last != "G" || runes[len(runes)-2] == '-'
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
