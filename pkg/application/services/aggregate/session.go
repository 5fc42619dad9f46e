// Package aggregate merges classified line items from any number of
// source documents into a unified part map and computes purchasing
// deficits against an inventory snapshot.
package aggregate

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pedalbuild/bomkit/pkg/application/services/extract"
	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/domain/services/classify"
	"github.com/pedalbuild/bomkit/pkg/domain/services/valuenorm"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// Session owns one build's part map. Sessions are independent: nothing
// is shared between concurrently running sessions, so no locking is
// required anywhere in the pipeline.
type Session struct {
	id         string
	tables     *config.Tables
	normalizer *valuenorm.Normalizer
	classifier *classify.Classifier
	extractor  *extract.Extractor
	log        *zap.Logger

	parts     []*entities.PartRecord // insertion order
	index     map[entities.PartKey]*entities.PartRecord
	residuals []entities.Residual
	stats     []entities.SourceStats
}

// NewSession creates an empty session over the given lookup tables.
// A nil logger disables diagnostics.
func NewSession(tables *config.Tables, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	log = log.With(zap.String("session", id))
	return &Session{
		id:         id,
		tables:     tables,
		normalizer: valuenorm.New(tables),
		classifier: classify.New(tables, log),
		extractor:  extract.New(tables, log),
		log:        log,
		index:      make(map[entities.PartKey]*entities.PartRecord),
	}
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// Normalizer exposes the session's value normalizer for render reuse.
func (s *Session) Normalizer() *valuenorm.Normalizer { return s.normalizer }

// IngestSource extracts, classifies and merges one source document.
// A duplicate designator inside the source returns an
// *extract.AmbiguityError and leaves the part map untouched by that
// source; other sources in a multi-source merge may still proceed.
func (s *Session) IngestSource(src extract.Source) (*entities.SourceStats, error) {
	res, err := s.extractor.Extract(src)
	if err != nil {
		return nil, err
	}
	s.residuals = append(s.residuals, res.Residuals...)
	s.Merge(res.Items, src.Name())
	s.stats = append(s.stats, res.Stats)
	return &res.Stats, nil
}

// Merge folds classified line items into the part map. Merging is
// commutative with respect to source order for all quantities; only
// insertion-order bookkeeping differs.
func (s *Session) Merge(items []entities.LineItem, sourceID string) {
	for _, item := range items {
		s.mergeItem(item, sourceID)
	}
}

func (s *Session) mergeItem(item entities.LineItem, sourceID string) {
	cls := s.classifier.Classify(item)

	if cls.Conflict != "" {
		s.residuals = append(s.residuals, entities.Residual{
			Source:     sourceID,
			Line:       item.Designator + " " + item.RawValue,
			Reason:     "classification conflict: " + cls.Conflict,
			Suspicious: true,
		})
	}

	if cls.Category == entities.Unknown {
		s.residuals = append(s.residuals, entities.Residual{
			Source:     sourceID,
			Line:       strings.TrimSpace(item.Designator + " " + item.RawValue + " " + item.Description),
			Reason:     "unclassified line",
			Suspicious: s.extractor.IsSuspicious(item.RawValue),
		})
		return
	}

	key, value, display, ok := s.identity(item, cls.Category)
	if !ok {
		return // a residual has already been recorded
	}

	rec, exists := s.index[key]
	if !exists {
		rec = entities.NewPartRecord(key)
		rec.Value = value
		rec.Display = display
		s.index[key] = rec
		s.parts = append(s.parts, rec)
	}
	rec.Add(sourceID, item.Designator)
}

// identity computes the designator-independent part key for an item,
// normalizing passive values so that "4k7" and "4.7k" fold together.
func (s *Session) identity(item entities.LineItem, cat entities.Category) (entities.PartKey, entities.ComponentValue, string, bool) {
	raw := strings.TrimSpace(item.RawValue)

	switch {
	case cat == entities.PCB:
		return entities.PartKey{Category: cat, Value: raw}, entities.ComponentValue{}, raw, true

	case cat.IsPassive():
		// Physical dimensions ("5mm") are not electrical values.
		if strings.Contains(strings.ToLower(raw), "mm") {
			return entities.PartKey{Category: cat, Value: strings.ToUpper(raw)}, entities.ComponentValue{}, raw, true
		}
		v, err := s.normalizer.NormalizeFor(raw, cat)
		if err != nil {
			s.residuals = append(s.residuals, entities.Residual{
				Source:     item.Source,
				Line:       strings.TrimSpace(item.Designator + " " + item.RawValue),
				Reason:     err.Error(),
				Suspicious: true,
			})
			return entities.PartKey{}, entities.ComponentValue{}, "", false
		}
		rendered := s.normalizer.Render(v)
		return entities.PartKey{
			Category: cat,
			Value:    rendered,
			Token:    qualifierToken(item.Description),
		}, v, rendered, true

	case cat == entities.Potentiometer:
		clean := s.classifier.CleanPotValue(raw)
		v, err := s.normalizer.NormalizeFor(clean, cat)
		if err != nil {
			// Named controls often carry no resistance value; keep the
			// raw text as the identity token.
			return entities.PartKey{Category: cat, Value: strings.ToUpper(raw)}, entities.ComponentValue{}, raw, true
		}
		return entities.PartKey{
			Category: cat,
			Value:    s.normalizer.Render(v),
			Token:    s.classifier.TaperName(raw),
		}, v, raw, true

	default:
		return entities.PartKey{Category: cat, Value: strings.ToUpper(raw)}, entities.ComponentValue{}, raw, true
	}
}

// MergeInjected folds system-generated records into the part map.
// Records that collide with an existing source-derived part keep that
// part's origin; the Auto-Inject provenance entry preserves the
// distinction all the way to the reports.
func (s *Session) MergeInjected(records []*entities.PartRecord) {
	for _, inj := range records {
		rec, exists := s.index[inj.Key]
		if !exists {
			s.index[inj.Key] = inj
			s.parts = append(s.parts, inj)
			continue
		}
		rec.Quantity += inj.Quantity
		rec.Refs = append(rec.Refs, inj.Refs...)
		for src, refs := range inj.Sources {
			rec.Sources[src] = append(rec.Sources[src], refs...)
		}
	}
}

// Parts returns the part map in deterministic display order: category
// rank, then numeric value, then value text. The ordering is
// independent of merge order.
func (s *Session) Parts() []*entities.PartRecord {
	out := make([]*entities.PartRecord, len(s.parts))
	copy(out, s.parts)
	sort.SliceStable(out, func(i, j int) bool {
		return partLess(out[i], out[j])
	})
	return out
}

// Residuals returns every diverted line in ingestion order.
func (s *Session) Residuals() []entities.Residual {
	out := make([]entities.Residual, len(s.residuals))
	copy(out, s.residuals)
	return out
}

// Stats returns per-source ingestion statistics.
func (s *Session) Stats() []entities.SourceStats {
	out := make([]entities.SourceStats, len(s.stats))
	copy(out, s.stats)
	return out
}

// RenameSource retags a source label across all provenance maps.
func (s *Session) RenameSource(oldName, newName string) {
	if oldName == newName {
		return
	}
	for _, rec := range s.parts {
		if refs, ok := rec.Sources[oldName]; ok {
			rec.Sources[newName] = append(rec.Sources[newName], refs...)
			delete(rec.Sources, oldName)
		}
	}
	for i := range s.stats {
		if s.stats[i].Source == oldName {
			s.stats[i].Source = newName
		}
	}
	for i := range s.residuals {
		if s.residuals[i].Source == oldName {
			s.residuals[i].Source = newName
		}
	}
}

func partLess(a, b *entities.PartRecord) bool {
	ra, rb := a.Key.Category.DisplayRank(), b.Key.Category.DisplayRank()
	if ra != rb {
		return ra < rb
	}
	if !a.Value.Magnitude.Equal(b.Value.Magnitude) {
		return a.Value.Magnitude.Cmp(b.Value.Magnitude) < 0
	}
	if a.Key.Value != b.Key.Value {
		return a.Key.Value < b.Key.Value
	}
	return a.Key.Token < b.Key.Token
}

// qualifierToken extracts a distinguishing description qualifier such
// as a wattage ("1/4W") or voltage rating ("50V") so that otherwise
// identical values with different ratings stay separate parts.
func qualifierToken(desc string) string {
	for _, field := range strings.Fields(strings.ToUpper(desc)) {
		if isWattage(field) || isVoltage(field) {
			return field
		}
	}
	return ""
}

func isWattage(s string) bool {
	if !strings.HasSuffix(s, "W") {
		return false
	}
	body := strings.TrimSuffix(s, "W")
	for _, r := range body {
		if (r < '0' || r > '9') && r != '/' && r != '.' {
			return false
		}
	}
	return body != ""
}

func isVoltage(s string) bool {
	if !strings.HasSuffix(s, "V") {
		return false
	}
	body := strings.TrimSuffix(s, "V")
	for _, r := range body {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return body != ""
}
