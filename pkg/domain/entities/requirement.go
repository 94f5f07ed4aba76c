package entities

import "github.com/shopspring/decimal"

// RecipeContribution records how a composite parent contributed to a raw
// product requirement, for traceability on the recommendation
type RecipeContribution struct {
	ParentID  ProductID
	RecipeQty decimal.Decimal // quantity per one unit of the parent
	OrderQty  decimal.Decimal // units of the parent ordered
}

// ProductRequirement is the aggregated demand for one raw product across
// all orders in a run. Transient: built fresh per aggregation, never stored.
type ProductRequirement struct {
	ProductID       ProductID
	TotalNeeded     decimal.Decimal
	SourceOrders    []OrderID // duplicates preserved for traceability
	RecipeBreakdown []RecipeContribution
}

// Add accumulates a direct order contribution
func (r *ProductRequirement) Add(qty decimal.Decimal, orderID OrderID) {
	r.TotalNeeded = r.TotalNeeded.Add(qty)
	r.SourceOrders = append(r.SourceOrders, orderID)
}

// AddFromRecipe accumulates a contribution decomposed from a composite parent
func (r *ProductRequirement) AddFromRecipe(
	qty decimal.Decimal,
	orderID OrderID,
	contribution RecipeContribution,
) {
	r.Add(qty, orderID)
	r.RecipeBreakdown = append(r.RecipeBreakdown, contribution)
}

// RequirementMap maps raw products to their aggregated requirement
type RequirementMap map[ProductID]*ProductRequirement
