package aggregate

import (
	"github.com/pedalbuild/bomkit/pkg/domain/entities"
)

// ComputeNetNeeds projects the part map against an inventory snapshot.
// It is a pure projection: the snapshot is never mutated, absent keys
// imply zero stock, and the deficit is never negative no matter how
// large on-hand is relative to required. BuyQuantity starts equal to
// the deficit; the sourcing engine may only raise it.
func (s *Session) ComputeNetNeeds(snapshot *entities.InventorySnapshot) []entities.NetNeedsResult {
	parts := s.Parts()
	results := make([]entities.NetNeedsResult, 0, len(parts))

	for _, rec := range parts {
		required := rec.Quantity
		onHand := snapshot.OnHand(rec.Key)
		deficit := required - onHand
		if deficit < 0 {
			deficit = 0
		}
		results = append(results, entities.NetNeedsResult{
			Part:        rec,
			Required:    required,
			OnHand:      onHand,
			Deficit:     deficit,
			BuyQuantity: deficit,
		})
	}
	return results
}
