package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// AmbiguityError reports a duplicate designator within one source.
// Unlike a residual, this indicates a corrupt or ambiguous input file
// and is fatal to that source's ingestion.
type AmbiguityError struct {
	Source     string
	Designator string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous BOM: duplicate designator %s in source %q", e.Designator, e.Source)
}

// Result is the outcome of extracting one source document.
type Result struct {
	Source    string
	Items     []entities.LineItem
	Residuals []entities.Residual
	Stats     entities.SourceStats
}

// linePattern splits a raw line into designator, value candidate and
// trailing description, tolerant of arbitrary spacing and commas.
var linePattern = regexp.MustCompile(`^([A-Za-z0-9_\-]+)[\s,]+([0-9A-Za-z\.\,\-\/µΩ]+)\s*(.*)$`)

// rangePattern matches designator ranges like "R1-R5" or "R1-5".
var rangePattern = regexp.MustCompile(`^([A-Za-z]+)(\d+)-(?:[A-Za-z]+)?(\d+)$`)

// designatorPattern is the canonical designator shape: letters then digits.
var designatorPattern = regexp.MustCompile(`^[A-Za-z]+\d+$`)

// Extractor turns source rows into line items. Lines that fail
// designator detection are emitted as residuals, never dropped.
type Extractor struct {
	tables *config.Tables
	log    *zap.Logger
}

// New creates an extractor. A nil logger disables diagnostics.
func New(tables *config.Tables, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{tables: tables, log: log}
}

// Extract processes every row of a source. A duplicate designator
// returns an *AmbiguityError and no items; all other per-line failures
// divert to the residual list and never abort the source.
func (e *Extractor) Extract(src Source) (*Result, error) {
	res := &Result{Source: src.Name()}
	res.Stats.Source = src.Name()
	seen := make(map[string]struct{})

	for _, row := range src.Rows() {
		if strings.TrimSpace(row.Raw) == "" && !row.Structured {
			continue
		}
		res.Stats.LinesRead++

		ref, val, desc, ok := e.splitRow(row)
		if !ok {
			e.emitResidual(res, row.Raw, "no designator detected")
			continue
		}

		refUp := strings.ToUpper(strings.TrimSpace(ref))

		// Board definition lines: "PCB Fuzz Face" names the build.
		if refUp == "PCB" {
			if strings.TrimSpace(val) == "" {
				continue // bare "PCB" header
			}
			name := strings.TrimSpace(strings.TrimSpace(val) + " " + desc)
			res.Items = append(res.Items, entities.LineItem{
				Designator: "PCB",
				RawValue:   name,
				Source:     src.Name(),
			})
			res.Stats.PartsFound++
			continue
		}

		if e.isExcluded(refUp, val, desc) {
			e.emitResidual(res, row.Raw, "excluded token")
			continue
		}

		refs, expanded := e.expandRefs(refUp)
		if !expanded && !e.looksLikeDesignator(refUp) {
			e.emitResidual(res, row.Raw, "no designator detected")
			continue
		}

		for _, r := range refs {
			if _, dup := seen[r]; dup {
				return nil, &AmbiguityError{Source: src.Name(), Designator: r}
			}
			seen[r] = struct{}{}
			res.Items = append(res.Items, entities.LineItem{
				Designator:  r,
				RawValue:    strings.TrimSpace(val),
				Description: strings.TrimSpace(desc),
				Source:      src.Name(),
			})
			res.Stats.PartsFound++
		}
	}

	e.log.Debug("source extracted",
		zap.String("source", src.Name()),
		zap.Int("lines", res.Stats.LinesRead),
		zap.Int("items", len(res.Items)),
		zap.Int("residuals", len(res.Residuals)),
	)
	return res, nil
}

func (e *Extractor) splitRow(row Row) (ref, val, desc string, ok bool) {
	if row.Structured {
		if row.Ref == "" || row.Value == "" {
			return "", "", "", false
		}
		return row.Ref, row.Value, row.Desc, true
	}
	line := strings.TrimSpace(row.Raw)

	// "PCB <name>" has a free-text value the line pattern would split.
	if fields := strings.Fields(line); len(fields) > 0 && strings.EqualFold(fields[0], "PCB") {
		return "PCB", strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, fields[0]), " ")), "", true
	}

	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// expandRefs explodes range designators ("R1-R5" -> R1..R5). The
// expansion cap keeps stray date-like tokens from exploding into
// dozens of phantom parts.
func (e *Extractor) expandRefs(ref string) ([]string, bool) {
	m := rangePattern.FindStringSubmatch(ref)
	if m == nil {
		return []string{ref}, false
	}
	start, err1 := strconv.Atoi(m[2])
	end, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || end < start || end-start >= e.tables.RangeExpansionLimit {
		return []string{ref}, false
	}
	refs := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		refs = append(refs, fmt.Sprintf("%s%d", m[1], i))
	}
	return refs, true
}

// looksLikeDesignator accepts the canonical letters+digits shape plus
// the control-label vocabularies (VOLUME, MODE, ...).
func (e *Extractor) looksLikeDesignator(ref string) bool {
	if designatorPattern.MatchString(ref) {
		return true
	}
	for _, label := range e.tables.PotLabels {
		if ref == label || strings.HasPrefix(ref, label) {
			return true
		}
	}
	for _, label := range e.tables.SwitchLabels {
		if ref == label {
			return true
		}
	}
	// CLR is the conventional current-limiting-resistor label.
	return ref == "CLR"
}

func (e *Extractor) isExcluded(ref, val, desc string) bool {
	valUp := strings.ToUpper(strings.TrimSpace(val))
	descUp := strings.ToUpper(desc)
	for _, tok := range e.tables.IgnoreTokens {
		if ref == tok || valUp == tok {
			return true
		}
		if strings.ContainsRune(tok, ' ') && (strings.Contains(descUp, tok) || strings.Contains(valUp, tok)) {
			return true
		}
	}
	return false
}

func (e *Extractor) emitResidual(res *Result, line, reason string) {
	res.Residuals = append(res.Residuals, entities.Residual{
		Source:     res.Source,
		Line:       line,
		Reason:     reason,
		Suspicious: e.IsSuspicious(line),
	})
	res.Stats.Residuals++
}

// IsSuspicious flags residual lines that may be missed parts: anything
// with digits or unit keywords that is not a known section heading.
func (e *Extractor) IsSuspicious(line string) bool {
	up := strings.ToUpper(line)
	for _, w := range e.tables.ResidualHeaderWords {
		if strings.Contains(up, w) {
			return false
		}
	}
	for _, r := range up {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	for _, kw := range []string{"OHM", "FARAD", "UF", "NF", "PF"} {
		if strings.Contains(up, kw) {
			return true
		}
	}
	return false
}
