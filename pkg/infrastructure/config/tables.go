package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
)

// Tables is the static knowledge base loaded once at process start and
// treated as immutable for the lifetime of a run: SI prefixes,
// designator classification rules, purchasing buffers, injection rules,
// and substitution suggestions. Components receive a *Tables explicitly;
// nothing in the engine reads ambient state.
type Tables struct {
	// SIPrefixes maps prefix letters to decimal exponents.
	SIPrefixes map[string]int32 `yaml:"si_prefixes"`

	// Prefixes maps designator prefixes to categories. Matching is
	// longest-prefix-first, so "LED" wins over "L" and "IC" over "I".
	Prefixes []PrefixRule `yaml:"prefixes"`

	// PotTapers maps taper code letters to taper curve names.
	PotTapers map[string]string `yaml:"pot_tapers"`

	// PotLabels are control names that identify potentiometers even
	// without a conventional designator (VOLUME, GAIN, ...).
	PotLabels []string `yaml:"pot_labels"`

	// SwitchLabels are control names that usually identify switches but
	// may resolve to potentiometers depending on the value text.
	SwitchLabels []string `yaml:"switch_labels"`

	// IgnoreTokens flag manufacturing artifacts and non-purchasable
	// rows (test points, fiducials, DNP flags).
	IgnoreTokens []string `yaml:"ignore_tokens"`

	// ResidualHeaderWords are section headings that make an unparsed
	// line uninteresting for triage.
	ResidualHeaderWords []string `yaml:"residual_header_words"`

	// Buffers holds per-category purchase buffer rules keyed by
	// category display name.
	Buffers map[string]BufferRule `yaml:"buffers"`

	// Injections derive auxiliary hardware from detected parts.
	Injections []InjectionRule `yaml:"injections"`

	// StandardHardware is enclosure hardware required per build but
	// absent from every PCB BOM.
	StandardHardware []HardwareItem `yaml:"standard_hardware"`

	// ICSubs and DiodeSubs map generic part names to suggested
	// alternatives with a profile and justification.
	ICSubs   map[string][]Substitute `yaml:"ic_subs"`
	DiodeSubs map[string][]Substitute `yaml:"diode_subs"`

	// ObsoletePartWarnings maps part-name fragments to sourcing
	// warnings surfaced in purchase rationales.
	ObsoletePartWarnings map[string]string `yaml:"obsolete_part_warnings"`

	// RangeExpansionLimit caps designator range explosion so a stray
	// "1990-2000" date never becomes eleven parts.
	RangeExpansionLimit int `yaml:"range_expansion_limit"`

	// SupplierSearchURL and BoardSearchURL are templates for clickable
	// sourcing links; %s receives the query-escaped search term.
	SupplierSearchURL string `yaml:"supplier_search_url"`
	BoardSearchURL    string `yaml:"board_search_url"`
}

// PrefixRule binds one designator prefix to a category
type PrefixRule struct {
	Prefix   string `yaml:"prefix"`
	Category string `yaml:"category"`
	// RequireDigit demands a trailing digit (R1 yes, RANGE no).
	RequireDigit bool `yaml:"require_digit"`
}

// BufferRule describes how a deficit is transformed into a buy quantity
type BufferRule struct {
	// RoundTo rounds the deficit up to the nearest multiple.
	RoundTo int64 `yaml:"round_to"`
	// Floor is the minimum buy when the deficit is positive.
	Floor int64 `yaml:"floor"`
	// Add is a flat buffer added to a positive deficit.
	Add int64 `yaml:"add"`
	// Note is the human-readable buffer rationale.
	Note string `yaml:"note"`
}

// InjectionRule creates a system-generated part when a matching part is
// present in the merged part map.
type InjectionRule struct {
	MatchCategory     string   `yaml:"match_category"`
	MatchValueAny     []string `yaml:"match_value_any"`     // empty = any value
	SkipValueContains []string `yaml:"skip_value_contains"` // suppresses the injection
	InjectCategory    string   `yaml:"inject_category"`
	InjectValue       string   `yaml:"inject_value"`
	PerMatchedUnit    bool     `yaml:"per_matched_unit"` // one injected unit per matched unit
	Note              string   `yaml:"note"`
}

// HardwareItem is one standard-hardware injection line
type HardwareItem struct {
	Category    string `yaml:"category"`
	Value       string `yaml:"value"`
	QtyPerBuild int64  `yaml:"qty_per_build"`
	PerPot      bool   `yaml:"per_pot"` // quantity scales with detected pot count instead
	Note        string `yaml:"note"`
}

// Substitute is one suggested alternative part
type Substitute struct {
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`
	Reason  string `yaml:"reason"`
}

// Load returns the default tables overlaid with an optional YAML file.
// An empty path returns the defaults unchanged.
func Load(path string) (*Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tables file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tables file %s: %w", path, err)
	}
	return t, nil
}

// Validate checks referential integrity of category names.
func (t *Tables) Validate() error {
	for _, p := range t.Prefixes {
		if _, ok := entities.ParseCategory(p.Category); !ok {
			return fmt.Errorf("prefix %q references unknown category %q", p.Prefix, p.Category)
		}
	}
	for name := range t.Buffers {
		if _, ok := entities.ParseCategory(name); !ok {
			return fmt.Errorf("buffer rule references unknown category %q", name)
		}
	}
	for _, inj := range t.Injections {
		if _, ok := entities.ParseCategory(inj.MatchCategory); !ok {
			return fmt.Errorf("injection references unknown match category %q", inj.MatchCategory)
		}
		if _, ok := entities.ParseCategory(inj.InjectCategory); !ok {
			return fmt.Errorf("injection references unknown inject category %q", inj.InjectCategory)
		}
	}
	if t.RangeExpansionLimit <= 0 {
		return fmt.Errorf("range_expansion_limit must be positive, got %d", t.RangeExpansionLimit)
	}
	return nil
}

// BufferFor returns the buffer rule for a category, zero rule if none.
func (t *Tables) BufferFor(c entities.Category) BufferRule {
	return t.Buffers[c.String()]
}
