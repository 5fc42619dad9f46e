package entities

// NetNeedsResult represents the purchasing outcome for one part record.
//
// Invariants: Deficit = max(0, Required-OnHand) and is never negative;
// BuyQuantity >= Deficit always (buffers never reduce quantity).
type NetNeedsResult struct {
	Part        *PartRecord
	Required    Quantity
	OnHand      Quantity
	Deficit     Quantity
	BuyQuantity Quantity
	Rationale   string
	SearchTerm  string
	SupplierURL string
}
