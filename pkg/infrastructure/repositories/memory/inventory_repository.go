package memory

import (
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// InventoryRepository provides in-memory stock level storage
type InventoryRepository struct {
	levels map[entities.ProductID]repositories.StockLevel
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		levels: make(map[entities.ProductID]repositories.StockLevel),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadStockLevels loads stock records into the repository
func (r *InventoryRepository) LoadStockLevels(levels []repositories.StockLevel) error {
	for _, level := range levels {
		r.levels[level.ProductID] = level
	}
	return nil
}

// GetCurrentStock returns the stock record for a product
func (r *InventoryRepository) GetCurrentStock(
	id entities.ProductID,
) (repositories.StockLevel, bool, error) {
	level, exists := r.levels[id]
	return level, exists, nil
}
