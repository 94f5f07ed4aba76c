package procurement

import (
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// StockAnalyzer compares aggregated demand against current inventory
type StockAnalyzer struct {
	inventory repositories.InventoryRepository
}

// NewStockAnalyzer creates a new stock analyzer
func NewStockAnalyzer(inventory repositories.InventoryRepository) *StockAnalyzer {
	return &StockAnalyzer{inventory: inventory}
}

// Analyze builds the stock snapshot for one product requirement. A missing
// inventory record is zero stock, flagged out-of-stock.
func (s *StockAnalyzer) Analyze(
	product *entities.Product,
	requirement *entities.ProductRequirement,
) (entities.StockSnapshot, error) {
	level, found, err := s.inventory.GetCurrentStock(product.ID)
	if err != nil {
		return entities.StockSnapshot{}, err
	}
	if !found {
		return entities.NewStockSnapshot(
			product.ID, decimal.Zero, decimal.Zero, requirement.TotalNeeded,
		), nil
	}

	return entities.NewStockSnapshot(
		product.ID,
		s.availableQuantity(product, level.Count),
		level.MinimumStock,
		requirement.TotalNeeded,
	), nil
}

// availableQuantity resolves a raw inventory count into the unit the
// requirement is expressed in: weight products are stocked in kilograms
// already, and discrete products with an encoded pack size convert to a
// kilogram equivalent (count times pack size). Plain discrete products
// stay a unit count.
func (s *StockAnalyzer) availableQuantity(
	product *entities.Product,
	count decimal.Decimal,
) decimal.Decimal {
	if packKG, ok := product.PackSizeKG(); ok {
		return count.Mul(packKG)
	}
	return count
}
