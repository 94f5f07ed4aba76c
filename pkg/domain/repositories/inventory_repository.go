package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// StockLevel is one product's inventory record
type StockLevel struct {
	ProductID    entities.ProductID
	Count        decimal.Decimal // units for discrete products, kilograms for weight products
	MinimumStock decimal.Decimal
}

// InventoryRepository provides access to current stock levels
type InventoryRepository interface {
	// GetCurrentStock returns the stock record for a product. found is false
	// when no record exists; callers treat that as zero stock.
	GetCurrentStock(id entities.ProductID) (StockLevel, bool, error)
	LoadStockLevels(levels []StockLevel) error
}
