package entities

// Origin represents how a part record entered the part map
type Origin int

const (
	// FromSource marks records derived from an ingested document.
	FromSource Origin = iota
	// SystemGenerated marks records injected by sourcing rules (sockets,
	// adapters, enclosure hardware) that appear in no input document.
	SystemGenerated
)

// String method for Origin enum
func (o Origin) String() string {
	switch o {
	case SystemGenerated:
		return "System-Generated"
	default:
		return "Source"
	}
}

// PartKey is the designator-independent identity of a logical part.
// Two line items with the same key fold into one PartRecord regardless
// of which source contributed them.
type PartKey struct {
	Category Category
	Value    string // canonical value rendering, e.g. "4.7k"
	Token    string // distinguishing description qualifier, e.g. "1/4W"
}

// String renders the key in the "Category | Value" report form.
func (k PartKey) String() string {
	s := k.Category.String() + " | " + k.Value
	if k.Token != "" {
		s += " " + k.Token
	}
	return s
}

// PartRecord is the canonical aggregate for one logical part across all
// ingested sources.
//
// Invariant: Quantity == len(Refs) + unreferenced stock adds, and equals
// the sum of per-source provenance counts for source-derived records.
type PartRecord struct {
	Key      PartKey
	Value    ComponentValue // zero value for non-numeric parts (e.g. "TL072")
	Display  string         // human-facing value string, original casing preserved
	Quantity Quantity
	Refs     []string            // global designator list, insertion order
	Sources  map[string][]string // source document -> designators it contributed
	Origin   Origin
	Note     string // injection rationale for system-generated records
}

// NewPartRecord creates an empty record for a key.
func NewPartRecord(key PartKey) *PartRecord {
	return &PartRecord{
		Key:     key,
		Display: key.Value,
		Sources: make(map[string][]string),
	}
}

// Add records one designator instance contributed by a source.
func (p *PartRecord) Add(source, ref string) {
	p.Quantity++
	if ref != "" {
		p.Refs = append(p.Refs, ref)
		p.Sources[source] = append(p.Sources[source], ref)
	}
}

// AddQuantity records an unreferenced quantity (stock rows, hardware
// multiples) against a source.
func (p *PartRecord) AddQuantity(source string, qty Quantity) {
	p.Quantity += qty
	if _, ok := p.Sources[source]; !ok {
		p.Sources[source] = nil
	}
}
