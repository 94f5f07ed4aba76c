package allocation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/application/dto"
	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// ItemRequest is one (product, quantity) pair of an order-level batch
type ItemRequest struct {
	ProductID entities.ProductID
	Quantity  decimal.Decimal
}

// OrderOptimizer runs the allocation optimizer across a batch of items and
// aggregates the results into an order-level plan with advisories
type OrderOptimizer struct {
	optimizer *Optimizer
	policy    Policy
	logger    *slog.Logger
}

// NewOrderOptimizer creates a new order-level optimizer
func NewOrderOptimizer(optimizer *Optimizer, policy Policy, logger *slog.Logger) *OrderOptimizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OrderOptimizer{optimizer: optimizer, policy: policy, logger: logger}
}

// OptimizeOrder allocates every item of the batch. A failing item is
// captured as a failed result and the rest of the batch keeps processing.
func (o *OrderOptimizer) OptimizeOrder(
	ctx context.Context,
	items []ItemRequest,
) (*dto.OrderAllocationPlan, error) {
	plan := &dto.OrderAllocationPlan{
		Items:        make([]*entities.AllocationResult, 0, len(items)),
		TotalCost:    decimal.Zero,
		InternalCost: decimal.Zero,
		ExternalCost: decimal.Zero,
	}
	summaries := make(map[entities.SupplierID]*dto.SupplierSummary)
	suppliersTouched := make(map[entities.SupplierID]bool)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := o.optimizer.Allocate(ctx, item.ProductID, item.Quantity)
		if err != nil {
			o.logger.Warn("allocation failed for item",
				"product_id", item.ProductID, "error", err)
			result = &entities.AllocationResult{
				ProductID:         item.ProductID,
				RequestedQty:      item.Quantity,
				Strategy:          entities.NoAllocation,
				FailureReason:     err.Error(),
				QuantityShortfall: item.Quantity,
			}
		}
		plan.Items = append(plan.Items, result)

		switch {
		case result.Fulfilled:
			plan.FullyFulfilled++
		case len(result.Allocations) > 0:
			plan.PartiallyFulfilled++
		default:
			plan.Unfulfilled++
		}

		plan.TotalCost = plan.TotalCost.Add(result.TotalCost)
		for _, alloc := range result.Allocations {
			suppliersTouched[alloc.SupplierID] = true
			if alloc.Type == entities.InternalSupplier {
				plan.InternalCost = plan.InternalCost.Add(alloc.Cost)
			} else {
				plan.ExternalCost = plan.ExternalCost.Add(alloc.Cost)
			}
			o.accumulateSummary(summaries, alloc, result)
		}
	}

	hundred := decimal.NewFromInt(100)
	if plan.TotalCost.IsPositive() {
		plan.InternalSharePct = plan.InternalCost.Div(plan.TotalCost).Mul(hundred)
	}
	plan.DistinctSuppliers = len(suppliersTouched)
	plan.SupplierSummaries = sortedSummaries(summaries)
	plan.Advisories = o.advise(plan)

	return plan, nil
}

// accumulateSummary folds one allocation into its supplier's cumulative
// summary, rolling the quality and lead-time averages over items
func (o *OrderOptimizer) accumulateSummary(
	summaries map[entities.SupplierID]*dto.SupplierSummary,
	alloc entities.SupplierAllocation,
	result *entities.AllocationResult,
) {
	summary, exists := summaries[alloc.SupplierID]
	if !exists {
		summary = &dto.SupplierSummary{
			SupplierID:   alloc.SupplierID,
			SupplierName: alloc.SupplierName,
			Type:         alloc.Type,
		}
		summaries[alloc.SupplierID] = summary
	}

	summary.TotalCost = summary.TotalCost.Add(alloc.Cost)
	summary.TotalQuantity = summary.TotalQuantity.Add(alloc.Quantity)
	summary.ItemCount++

	// Rolling average: avg += (value - avg) / n
	n := decimal.NewFromInt(int64(summary.ItemCount))
	summary.AvgQualityRating = summary.AvgQualityRating.Add(
		result.AvgQualityRating.Sub(summary.AvgQualityRating).Div(n))
	summary.AvgLeadTimeDays = summary.AvgLeadTimeDays.Add(
		result.AvgLeadTimeDays.Sub(summary.AvgLeadTimeDays).Div(n))
}

// advise derives the human-readable advisory list from the finished plan
func (o *OrderOptimizer) advise(plan *dto.OrderAllocationPlan) []dto.Advisory {
	var advisories []dto.Advisory

	if plan.TotalCost.IsPositive() {
		switch {
		case plan.InternalSharePct.LessThan(o.policy.LowInternalSharePct):
			advisories = append(advisories, dto.Advisory{
				Severity: dto.AdvisoryWarning,
				Message: fmt.Sprintf(
					"internal supply covers only %s%% of cost; review farm production planning",
					plan.InternalSharePct.Round(1)),
			})
		case plan.InternalSharePct.GreaterThan(o.policy.HighInternalSharePct):
			advisories = append(advisories, dto.Advisory{
				Severity: dto.AdvisoryInfo,
				Message: fmt.Sprintf(
					"internal supply covers %s%% of cost; external dependency is minimal",
					plan.InternalSharePct.Round(1)),
			})
		}
	}

	for _, item := range plan.Items {
		for _, alloc := range item.Allocations {
			if alloc.BelowMinimumOrder() {
				advisories = append(advisories, dto.Advisory{
					Severity: dto.AdvisoryWarning,
					Message: fmt.Sprintf(
						"%s from %s for %s is below its minimum order of %s; expect rejection or surcharges",
						alloc.Quantity, alloc.SupplierName, item.ProductID, alloc.MinimumOrderQty),
				})
			}
		}
	}

	if plan.Unfulfilled > 0 {
		advisories = append(advisories, dto.Advisory{
			Severity: dto.AdvisoryWarning,
			Message: fmt.Sprintf(
				"%d item(s) cannot be fulfilled by any supplier", plan.Unfulfilled),
		})
	}

	if plan.DistinctSuppliers > o.policy.MaxSuppliersBeforeNotice {
		advisories = append(advisories, dto.Advisory{
			Severity: dto.AdvisoryInfo,
			Message: fmt.Sprintf(
				"order spans %d suppliers; consider consolidating deliveries",
				plan.DistinctSuppliers),
		})
	}

	if plan.TotalCost.GreaterThan(o.policy.BulkDiscountThreshold) {
		advisories = append(advisories, dto.Advisory{
			Severity: dto.AdvisoryInfo,
			Message: fmt.Sprintf(
				"order cost %s exceeds %s; negotiate bulk discounts",
				plan.TotalCost.Round(2), o.policy.BulkDiscountThreshold),
		})
	}

	return advisories
}

// sortedSummaries orders supplier summaries by descending cost for stable
// output
func sortedSummaries(
	summaries map[entities.SupplierID]*dto.SupplierSummary,
) []dto.SupplierSummary {
	sorted := make([]dto.SupplierSummary, 0, len(summaries))
	for _, summary := range summaries {
		sorted = append(sorted, *summary)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].TotalCost.Equal(sorted[j].TotalCost) {
			return sorted[i].TotalCost.GreaterThan(sorted[j].TotalCost)
		}
		return sorted[i].SupplierName < sorted[j].SupplierName
	})
	return sorted
}
