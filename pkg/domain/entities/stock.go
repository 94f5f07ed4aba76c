package entities

import "github.com/shopspring/decimal"

// StockSnapshot is a point-in-time view of one product's inventory against
// its aggregated demand. Reads are not locked against concurrent stock
// movement; two overlapping runs may see the same availability.
type StockSnapshot struct {
	ProductID    ProductID
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	IsLowStock   bool
	IsOutOfStock bool
	NetNeeded    decimal.Decimal // max(0, total needed - current stock)
}

// NewStockSnapshot derives the snapshot flags and net requirement for a
// product. Missing inventory records are passed in as zero current stock.
func NewStockSnapshot(
	productID ProductID,
	currentStock, minimumStock, totalNeeded decimal.Decimal,
) StockSnapshot {
	netNeeded := totalNeeded.Sub(currentStock)
	if netNeeded.IsNegative() {
		netNeeded = decimal.Zero
	}

	return StockSnapshot{
		ProductID:    productID,
		CurrentStock: currentStock,
		MinimumStock: minimumStock,
		IsLowStock:   currentStock.LessThanOrEqual(minimumStock),
		IsOutOfStock: currentStock.LessThanOrEqual(decimal.Zero),
		NetNeeded:    netNeeded,
	}
}
