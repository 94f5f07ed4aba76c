package procurement

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/application/dto"
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// Service compiles market procurement recommendations from outstanding
// orders. One invocation processes a point-in-time snapshot; the caller is
// responsible for persisting the result.
type Service struct {
	orders     repositories.OrderRepository
	products   repositories.ProductRepository
	policy     Policy
	logger     *slog.Logger
	aggregator *Aggregator
	analyzer   *StockAnalyzer
	buffering  *BufferCalculator
	oracle     *PriceOracle
}

// NewService creates a procurement service wired to its collaborators
func NewService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	inventory repositories.InventoryRepository,
	buffers repositories.BufferProfileRepository,
	suppliers repositories.SupplierRepository,
	policy Policy,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		orders:     orders,
		products:   products,
		policy:     policy,
		logger:     logger,
		aggregator: NewAggregator(products, logger),
		analyzer:   NewStockAnalyzer(inventory),
		buffering:  NewBufferCalculator(buffers, policy),
		oracle:     NewPriceOracle(suppliers, policy, logger),
	}
}

// GenerateRecommendation runs the full pipeline for orders dated within
// [from, to]: aggregate demand, net against stock, buffer, price, and
// compile recommendation items. forDate of the recommendation (and the
// month used for seasonal buffering) is the "to" date.
func (s *Service) GenerateRecommendation(
	ctx context.Context,
	from, to time.Time,
) (*dto.ProcurementRun, error) {
	orders, err := s.orders.ListOrdersNeedingProcurement(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	requirements, warnings, err := s.aggregator.Aggregate(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate demand: %w", err)
	}

	run := &dto.ProcurementRun{
		Requirements:     requirements,
		Snapshots:        make(map[entities.ProductID]entities.StockSnapshot, len(requirements)),
		Buffered:         make(map[entities.ProductID]entities.BufferedQuantity, len(requirements)),
		Warnings:         warnings,
		OrdersConsidered: len(orders),
	}

	var items []entities.RecommendationItem
	totalCost := decimal.Zero

	for _, requirement := range sortedRequirements(requirements) {
		product, err := s.products.GetProduct(requirement.ProductID)
		if err != nil {
			run.Warnings = append(run.Warnings, dto.RunWarning{
				ProductID: requirement.ProductID,
				Message:   err.Error(),
			})
			continue
		}

		snapshot, err := s.analyzer.Analyze(product, requirement)
		if err != nil {
			return nil, fmt.Errorf("failed to read stock for %s: %w", product.ID, err)
		}
		run.Snapshots[product.ID] = snapshot
		if snapshot.NetNeeded.IsZero() {
			// Stock covers the demand; no purchase action for this product
			continue
		}

		buffered, err := s.buffering.Calculate(product, snapshot.NetNeeded, to)
		if err != nil {
			// Configuration faults disqualify only this product
			s.logger.Warn("buffer calculation failed",
				"product_id", product.ID, "error", err)
			run.Warnings = append(run.Warnings, dto.RunWarning{
				ProductID: product.ID,
				Message:   err.Error(),
			})
			continue
		}
		run.Buffered[product.ID] = buffered
		if !buffered.MarketQuantity.IsPositive() {
			continue
		}

		unitPrice := s.oracle.EstimateUnitPrice(product)
		item := s.buildItem(product, requirement, snapshot, buffered, unitPrice)
		items = append(items, item)
		totalCost = totalCost.Add(item.EstimatedTotalCost)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].ProductName < items[j].ProductName
	})

	run.Recommendation = &entities.MarketProcurementRecommendation{
		ID:                 uuid.NewString(),
		ForDate:            to,
		Status:             entities.StatusPending,
		Items:              items,
		TotalEstimatedCost: totalCost,
	}
	return run, nil
}

// buildItem combines the pipeline stages for one product into a
// recommendation item with priority and reasoning
func (s *Service) buildItem(
	product *entities.Product,
	requirement *entities.ProductRequirement,
	snapshot entities.StockSnapshot,
	buffered entities.BufferedQuantity,
	unitPrice decimal.Decimal,
) entities.RecommendationItem {
	return entities.RecommendationItem{
		ProductID:           product.ID,
		ProductName:         product.Name,
		NeededQuantity:      snapshot.NetNeeded,
		RecommendedQuantity: buffered.MarketQuantity,
		EstimatedUnitPrice:  unitPrice,
		EstimatedTotalCost:  buffered.MarketQuantity.Mul(unitPrice),
		Reasoning:           buildReasoning(product, requirement, snapshot, buffered),
		Priority:            classifyPriority(snapshot),
		SourceOrders:        requirement.SourceOrders,
	}
}

// classifyPriority ranks urgency from the stock position
func classifyPriority(snapshot entities.StockSnapshot) entities.Priority {
	switch {
	case snapshot.IsOutOfStock:
		return entities.CriticalPriority
	case snapshot.CurrentStock.LessThan(snapshot.NetNeeded):
		return entities.HighPriority
	case snapshot.IsLowStock:
		return entities.MediumPriority
	default:
		return entities.LowPriority
	}
}

// buildReasoning produces the deterministic, ordered explanation attached
// to an item: stock status, contributing demand, buffer rate, pack count,
// and the seasonal multiplier when it is not 1.
func buildReasoning(
	product *entities.Product,
	requirement *entities.ProductRequirement,
	snapshot entities.StockSnapshot,
	buffered entities.BufferedQuantity,
) string {
	var parts []string

	switch {
	case snapshot.IsOutOfStock:
		parts = append(parts, "out of stock")
	case snapshot.IsLowStock:
		parts = append(parts, fmt.Sprintf("stock %s below minimum %s",
			snapshot.CurrentStock, snapshot.MinimumStock))
	default:
		parts = append(parts, fmt.Sprintf("stock on hand %s", snapshot.CurrentStock))
	}

	parts = append(parts, fmt.Sprintf("%d order(s) need %s %s",
		len(requirement.SourceOrders), requirement.TotalNeeded, product.Unit))

	if buffered.TotalBufferRate.IsPositive() {
		parts = append(parts, fmt.Sprintf("%s%% waste buffer applied",
			buffered.TotalBufferRate.Mul(decimal.NewFromInt(100))))
	}

	parts = append(parts, fmt.Sprintf("%d market pack(s)", buffered.MarketPacks))

	if !buffered.SeasonalMultiplier.Equal(decimal.NewFromInt(1)) {
		parts = append(parts, fmt.Sprintf("seasonal multiplier %s",
			buffered.SeasonalMultiplier))
	}

	return strings.Join(parts, "; ")
}

// sortedRequirements orders the requirement map by product id so a run's
// output is stable
func sortedRequirements(requirements entities.RequirementMap) []*entities.ProductRequirement {
	sorted := make([]*entities.ProductRequirement, 0, len(requirements))
	for _, requirement := range requirements {
		sorted = append(sorted, requirement)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ProductID < sorted[j].ProductID
	})
	return sorted
}
