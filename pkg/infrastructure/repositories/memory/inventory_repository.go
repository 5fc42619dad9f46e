package memory

import (
	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/domain/repositories"
)

// InventoryRepository provides in-memory stock storage
type InventoryRepository struct {
	onHand map[entities.PartKey]entities.Quantity
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		onHand: make(map[entities.PartKey]entities.Quantity),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadRecords loads stock records into the repository. Repeated keys
// accumulate.
func (r *InventoryRepository) LoadRecords(records []entities.InventoryRecord) error {
	for _, rec := range records {
		r.onHand[rec.Key] += rec.OnHand
	}
	return nil
}

// AddStock adds on-hand quantity for one key.
func (r *InventoryRepository) AddStock(key entities.PartKey, qty entities.Quantity) {
	r.onHand[key] += qty
}

// GetOnHand returns the stock quantity for a key, zero when absent.
func (r *InventoryRepository) GetOnHand(key entities.PartKey) (entities.Quantity, error) {
	return r.onHand[key], nil
}

// Snapshot returns an immutable point-in-time view of the stock. The
// snapshot is detached: later loads do not affect it.
func (r *InventoryRepository) Snapshot() (*entities.InventorySnapshot, error) {
	records := make([]entities.InventoryRecord, 0, len(r.onHand))
	for key, qty := range r.onHand {
		records = append(records, entities.InventoryRecord{Key: key, OnHand: qty})
	}
	return entities.NewInventorySnapshot(records), nil
}
