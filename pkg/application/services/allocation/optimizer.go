package allocation

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// Policy holds the allocation thresholds the optimizer is constructed with
type Policy struct {
	InternalSupplierName     string
	BulkDiscountThreshold    decimal.Decimal
	LowInternalSharePct      decimal.Decimal
	HighInternalSharePct     decimal.Decimal
	MaxSuppliersBeforeNotice int
}

// DefaultPolicy returns the allocation policy used when no configuration
// is supplied
func DefaultPolicy() Policy {
	return Policy{
		InternalSupplierName:     "Fambri Farms Internal",
		BulkDiscountThreshold:    decimal.NewFromInt(1000),
		LowInternalSharePct:      decimal.NewFromInt(70),
		HighInternalSharePct:     decimal.NewFromInt(90),
		MaxSuppliersBeforeNotice: 3,
	}
}

// IsInternal reports whether an offer comes from the farm's own supply
func (p Policy) IsInternal(offer *entities.SupplierOffer) bool {
	return offer.SupplierName == p.InternalSupplierName
}

// Optimizer selects suppliers for required quantities: a single supplier
// when one can cover the full quantity, otherwise a prioritized greedy
// split. The internal supplier always ranks first; the split is a
// heuristic, not a provably minimal-cost solution.
type Optimizer struct {
	suppliers repositories.SupplierRepository
	policy    Policy
}

// NewOptimizer creates a new allocation optimizer
func NewOptimizer(suppliers repositories.SupplierRepository, policy Policy) *Optimizer {
	return &Optimizer{suppliers: suppliers, policy: policy}
}

// Allocate sources one product requirement. An empty supplier list is a
// failure-shaped result, not an error; only repository faults return one.
func (o *Optimizer) Allocate(
	ctx context.Context,
	productID entities.ProductID,
	quantityNeeded decimal.Decimal,
) (*entities.AllocationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !quantityNeeded.IsPositive() {
		return nil, fmt.Errorf("quantity needed must be positive, got %s", quantityNeeded)
	}

	offers, err := o.suppliers.ListSupplierOffers(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier offers for %s: %w", productID, err)
	}

	ranked := o.rankOffers(offers)
	if len(ranked) == 0 {
		return &entities.AllocationResult{
			ProductID:         productID,
			RequestedQty:      quantityNeeded,
			Strategy:          entities.NoAllocation,
			FailureReason:     "no suppliers available for this product",
			QuantityShortfall: quantityNeeded,
		}, nil
	}

	// Single-supplier path: only when the top-ranked offer covers the whole
	// quantity. A cheaper-but-external full cover never preempts drawing
	// down internal stock first.
	if ranked[0].AvailableQty.GreaterThanOrEqual(quantityNeeded) {
		return o.buildResult(
			productID, quantityNeeded, entities.SingleSupplier,
			[]take{{offer: ranked[0], quantity: quantityNeeded}},
		), nil
	}

	// Greedy multi-supplier split down the ranked list.
	var takes []take
	remaining := quantityNeeded
	for _, offer := range ranked {
		if remaining.IsZero() {
			break
		}
		quantity := decimal.Min(remaining, offer.AvailableQty)
		takes = append(takes, take{offer: offer, quantity: quantity})
		remaining = remaining.Sub(quantity)
	}

	return o.buildResult(productID, quantityNeeded, entities.MultiSupplier, takes), nil
}

// take pairs a ranked offer with the quantity drawn from it
type take struct {
	offer    *entities.SupplierOffer
	quantity decimal.Decimal
}

// rankOffers filters to usable offers and orders them internal-first, then
// by ascending price; name breaks ties so runs are deterministic
func (o *Optimizer) rankOffers(offers []*entities.SupplierOffer) []*entities.SupplierOffer {
	ranked := make([]*entities.SupplierOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Available && offer.AvailableQty.IsPositive() {
			ranked = append(ranked, offer)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		internalI, internalJ := o.policy.IsInternal(ranked[i]), o.policy.IsInternal(ranked[j])
		if internalI != internalJ {
			return internalI
		}
		if !ranked[i].UnitPrice.Equal(ranked[j].UnitPrice) {
			return ranked[i].UnitPrice.LessThan(ranked[j].UnitPrice)
		}
		return ranked[i].SupplierName < ranked[j].SupplierName
	})
	return ranked
}

// buildResult computes the totals, fulfillment rate, quantity-weighted lead
// time and quality, and the cost split by supplier type
func (o *Optimizer) buildResult(
	productID entities.ProductID,
	quantityNeeded decimal.Decimal,
	strategy entities.AllocationStrategy,
	takes []take,
) *entities.AllocationResult {
	hundred := decimal.NewFromInt(100)

	result := &entities.AllocationResult{
		ProductID:    productID,
		RequestedQty: quantityNeeded,
		Strategy:     strategy,
		Allocations:  make([]entities.SupplierAllocation, 0, len(takes)),
	}

	allocated := decimal.Zero
	weightedLead := decimal.Zero
	weightedQuality := decimal.Zero
	internalCost := decimal.Zero
	externalCost := decimal.Zero

	for _, t := range takes {
		cost := t.quantity.Mul(t.offer.UnitPrice)
		supplierType := entities.ExternalSupplier
		if o.policy.IsInternal(t.offer) {
			supplierType = entities.InternalSupplier
			internalCost = internalCost.Add(cost)
		} else {
			externalCost = externalCost.Add(cost)
		}

		result.Allocations = append(result.Allocations, entities.SupplierAllocation{
			SupplierID:      t.offer.SupplierID,
			SupplierName:    t.offer.SupplierName,
			Type:            supplierType,
			Quantity:        t.quantity,
			UnitPrice:       t.offer.UnitPrice,
			Cost:            cost,
			PercentOfOrder:  t.quantity.Div(quantityNeeded).Mul(hundred),
			MinimumOrderQty: t.offer.MinimumOrderQty,
		})

		result.TotalCost = result.TotalCost.Add(cost)
		allocated = allocated.Add(t.quantity)
		weightedLead = weightedLead.Add(t.quantity.Mul(decimal.NewFromInt(int64(t.offer.LeadTimeDays))))
		weightedQuality = weightedQuality.Add(t.quantity.Mul(t.offer.QualityRating))
	}

	result.FulfillmentRate = allocated.Div(quantityNeeded).Mul(hundred)
	result.QuantityShortfall = quantityNeeded.Sub(allocated)
	result.Fulfilled = result.QuantityShortfall.IsZero()
	if !result.Fulfilled {
		result.FailureReason = fmt.Sprintf("short %s of %s requested",
			result.QuantityShortfall, quantityNeeded)
	}

	if allocated.IsPositive() {
		result.AvgLeadTimeDays = weightedLead.Div(allocated)
		result.AvgQualityRating = weightedQuality.Div(allocated)
	}
	if result.TotalCost.IsPositive() {
		result.InternalCostShare = internalCost.Div(result.TotalCost).Mul(hundred)
		result.ExternalCostShare = externalCost.Div(result.TotalCost).Mul(hundred)
	}

	return result
}
