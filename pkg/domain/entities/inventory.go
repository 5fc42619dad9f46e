package entities

// InventoryRecord represents user-supplied stock for one identity key
type InventoryRecord struct {
	Key    PartKey
	OnHand Quantity
}

// InventorySnapshot is a read-only view of on-hand stock keyed by part
// identity. Absent keys imply zero stock. The core never mutates a
// snapshot; each session receives its own copy.
type InventorySnapshot struct {
	onHand map[PartKey]Quantity
}

// NewInventorySnapshot builds a snapshot from stock records. Repeated
// keys accumulate.
func NewInventorySnapshot(records []InventoryRecord) *InventorySnapshot {
	s := &InventorySnapshot{onHand: make(map[PartKey]Quantity, len(records))}
	for _, r := range records {
		s.onHand[r.Key] += r.OnHand
	}
	return s
}

// OnHand returns the stock quantity for a key, zero when absent.
func (s *InventorySnapshot) OnHand(key PartKey) Quantity {
	if s == nil {
		return 0
	}
	return s.onHand[key]
}

// Len returns the number of distinct stocked keys.
func (s *InventorySnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.onHand)
}
