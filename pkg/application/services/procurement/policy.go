package procurement

import (
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// BufferDefaults are department-level waste settings applied when a product
// has no stored buffer profile
type BufferDefaults struct {
	SpoilageRate         decimal.Decimal
	CuttingWasteRate     decimal.Decimal
	QualityRejectionRate decimal.Decimal
	MarketPackSize       decimal.Decimal
	MarketPackUnit       entities.Unit
}

// Policy holds the procurement knobs the engine is constructed with. The
// internal supplier identity is injected here rather than looked up
// globally, so tests stay deterministic.
type Policy struct {
	InternalSupplierName  string
	WholesaleDiscount     decimal.Decimal
	HeuristicPrices       map[entities.Department]decimal.Decimal
	DefaultHeuristicPrice decimal.Decimal
	BufferDefaults        map[entities.Department]BufferDefaults
	DefaultBufferSettings BufferDefaults
}

// DefaultPolicy returns the policy used when no configuration is supplied
func DefaultPolicy() Policy {
	kg5 := decimal.NewFromInt(5)
	return Policy{
		InternalSupplierName: "Fambri Farms Internal",
		WholesaleDiscount:    decimal.RequireFromString("0.7"),
		HeuristicPrices: map[entities.Department]decimal.Decimal{
			entities.DeptVegetables: decimal.NewFromInt(12),
			entities.DeptFruits:     decimal.NewFromInt(18),
			entities.DeptHerbs:      decimal.NewFromInt(25),
			entities.DeptSpices:     decimal.NewFromInt(25),
			entities.DeptMushrooms:  decimal.NewFromInt(35),
		},
		DefaultHeuristicPrice: decimal.NewFromInt(15),
		BufferDefaults:        map[entities.Department]BufferDefaults{},
		DefaultBufferSettings: BufferDefaults{
			SpoilageRate:         decimal.RequireFromString("0.10"),
			CuttingWasteRate:     decimal.RequireFromString("0.05"),
			QualityRejectionRate: decimal.RequireFromString("0.05"),
			MarketPackSize:       kg5,
			MarketPackUnit:       entities.UnitKG,
		},
	}
}

// HeuristicPrice returns the department fallback unit price
func (p Policy) HeuristicPrice(dept entities.Department) decimal.Decimal {
	if price, ok := p.HeuristicPrices[dept]; ok {
		return price
	}
	return p.DefaultHeuristicPrice
}

// IsInternal reports whether an offer comes from the farm's own supply
func (p Policy) IsInternal(offer *entities.SupplierOffer) bool {
	return offer.SupplierName == p.InternalSupplierName
}

// DefaultProfile builds a department-defaulted buffer profile for a product
// with none stored
func (p Policy) DefaultProfile(product *entities.Product) (*entities.BufferProfile, error) {
	defaults, ok := p.BufferDefaults[product.Department]
	if !ok {
		defaults = p.DefaultBufferSettings
	}
	return entities.NewBufferProfile(
		product.ID,
		defaults.SpoilageRate,
		defaults.CuttingWasteRate,
		defaults.QualityRejectionRate,
		defaults.MarketPackSize,
		defaults.MarketPackUnit,
		false, nil, decimal.NewFromInt(1),
	)
}
