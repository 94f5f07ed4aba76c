package entities

import "github.com/shopspring/decimal"

// AllocationStrategy describes how a required quantity was sourced
type AllocationStrategy int

const (
	NoAllocation AllocationStrategy = iota
	SingleSupplier
	MultiSupplier
)

// String method for AllocationStrategy enum
func (s AllocationStrategy) String() string {
	switch s {
	case NoAllocation:
		return "none"
	case SingleSupplier:
		return "single_supplier"
	case MultiSupplier:
		return "multi_supplier"
	default:
		return "Unknown"
	}
}

// SupplierAllocation is the quantity taken from one supplier
type SupplierAllocation struct {
	SupplierID      SupplierID
	SupplierName    string
	Type            SupplierType
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	Cost            decimal.Decimal
	PercentOfOrder  decimal.Decimal // share of the requested quantity, 0..100
	MinimumOrderQty decimal.Decimal // the offer's minimum, carried for advisories
}

// BelowMinimumOrder reports whether the take is under the supplier's minimum
func (a SupplierAllocation) BelowMinimumOrder() bool {
	return a.MinimumOrderQty.IsPositive() && a.Quantity.LessThan(a.MinimumOrderQty)
}

// AllocationResult is the outcome of sourcing one product requirement.
// Fulfilled is false either when no supplier covers the full quantity
// (partial fill) or when no supplier is available at all; FailureReason is
// set in the latter case instead of returning an error, so batch callers
// keep processing.
type AllocationResult struct {
	ProductID          ProductID
	RequestedQty       decimal.Decimal
	Strategy           AllocationStrategy
	Allocations        []SupplierAllocation // ranked order, internal first
	TotalCost          decimal.Decimal
	FulfillmentRate    decimal.Decimal // 0..100
	QuantityShortfall  decimal.Decimal
	Fulfilled          bool
	FailureReason      string
	AvgLeadTimeDays    decimal.Decimal // weighted by allocated quantity
	AvgQualityRating   decimal.Decimal // weighted by allocated quantity
	InternalCostShare  decimal.Decimal // percent of cost from the internal supplier
	ExternalCostShare  decimal.Decimal
}

// AllocatedQty is the total quantity covered across suppliers
func (r *AllocationResult) AllocatedQty() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Allocations {
		total = total.Add(a.Quantity)
	}
	return total
}

// SupplierSet returns the distinct suppliers touched by this allocation
func (r *AllocationResult) SupplierSet() map[SupplierID]bool {
	set := make(map[SupplierID]bool, len(r.Allocations))
	for _, a := range r.Allocations {
		set[a.SupplierID] = true
	}
	return set
}
