package repositories

import "github.com/pedalbuild/bomkit/pkg/domain/entities"

// InventoryRepository provides access to user stock data. The engine
// only ever reads a point-in-time snapshot; implementations own all
// persistence concerns.
type InventoryRepository interface {
	LoadRecords(records []entities.InventoryRecord) error
	GetOnHand(key entities.PartKey) (entities.Quantity, error)
	Snapshot() (*entities.InventorySnapshot, error)
}
