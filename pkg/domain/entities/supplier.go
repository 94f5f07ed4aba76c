package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SupplierID uniquely identifies a supplier
type SupplierID string

// SupplierType distinguishes the farm's own production from market
// suppliers. An offer's type is not stored: the engine classifies offers by
// matching the supplier name against the configured internal supplier.
type SupplierType int

const (
	InternalSupplier SupplierType = iota
	ExternalSupplier
)

// String method for SupplierType enum
func (t SupplierType) String() string {
	switch t {
	case InternalSupplier:
		return "internal"
	case ExternalSupplier:
		return "external"
	default:
		return "unknown"
	}
}

// SupplierOffer is one supplier's standing offer for one product
type SupplierOffer struct {
	SupplierID      SupplierID
	SupplierName    string
	ProductID       ProductID
	UnitPrice       decimal.Decimal // > 0
	AvailableQty    decimal.Decimal // >= 0
	LeadTimeDays    int
	QualityRating   decimal.Decimal // 0..5
	MinimumOrderQty decimal.Decimal
	Available       bool
}

// NewSupplierOffer creates a validated SupplierOffer
func NewSupplierOffer(
	supplierID SupplierID,
	supplierName string,
	productID ProductID,
	unitPrice, availableQty decimal.Decimal,
	leadTimeDays int,
	qualityRating, minimumOrderQty decimal.Decimal,
	available bool,
) (*SupplierOffer, error) {
	if string(supplierID) == "" {
		return nil, fmt.Errorf("supplier id cannot be empty")
	}
	if supplierName == "" {
		return nil, fmt.Errorf("supplier name cannot be empty")
	}
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("unit price must be positive, got %s", unitPrice)
	}
	if availableQty.IsNegative() {
		return nil, fmt.Errorf("available quantity cannot be negative, got %s", availableQty)
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeDays)
	}
	five := decimal.NewFromInt(5)
	if qualityRating.IsNegative() || qualityRating.GreaterThan(five) {
		return nil, fmt.Errorf("quality rating must be in [0,5], got %s", qualityRating)
	}
	if minimumOrderQty.IsNegative() {
		return nil, fmt.Errorf("minimum order quantity cannot be negative, got %s", minimumOrderQty)
	}

	return &SupplierOffer{
		SupplierID:      supplierID,
		SupplierName:    supplierName,
		ProductID:       productID,
		UnitPrice:       unitPrice,
		AvailableQty:    availableQty,
		LeadTimeDays:    leadTimeDays,
		QualityRating:   qualityRating,
		MinimumOrderQty: minimumOrderQty,
		Available:       available,
	}, nil
}
