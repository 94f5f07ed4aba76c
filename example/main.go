package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/application/services/allocation"
	"github.com/fambrifarms/procure/pkg/application/services/procurement"
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
	"github.com/fambrifarms/procure/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	inventory := memory.NewInventoryRepository()
	buffers := memory.NewBufferProfileRepository()
	suppliers := memory.NewSupplierRepository()

	// Set up a small week of restaurant demand
	setupWeeklyScenario(products, orders, inventory, suppliers)

	policy := procurement.DefaultPolicy()
	service := procurement.NewService(
		orders, products, inventory, buffers, suppliers, policy, nil)

	from := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

	fmt.Println("🥕 Generating market procurement recommendation...")
	fmt.Printf("Order window: %s to %s\n\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	run, err := service.GenerateRecommendation(ctx, from, to)
	if err != nil {
		fmt.Printf("❌ Recommendation failed: %v\n", err)
		return
	}

	rec := run.Recommendation
	fmt.Println("📊 Recommendation:")
	fmt.Printf("  Orders considered: %d\n", run.OrdersConsidered)
	fmt.Printf("  Items to buy: %d\n", len(rec.Items))
	fmt.Printf("  Total estimated cost: %s\n\n", rec.TotalEstimatedCost.Round(2))

	for _, item := range rec.Items {
		fmt.Printf("  [%s] %s: buy %s (need %s) at ~%s each\n",
			item.Priority, item.ProductName,
			item.RecommendedQuantity.Round(2), item.NeededQuantity.Round(2),
			item.EstimatedUnitPrice.Round(2))
		fmt.Printf("        %s\n", item.Reasoning)
	}
	fmt.Println()

	// Allocate the recommended quantities across suppliers
	allocationPolicy := allocation.DefaultPolicy()
	optimizer := allocation.NewOrderOptimizer(
		allocation.NewOptimizer(suppliers, allocationPolicy), allocationPolicy, nil)

	requests := make([]allocation.ItemRequest, 0, len(rec.Items))
	for _, item := range rec.Items {
		requests = append(requests, allocation.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.RecommendedQuantity,
		})
	}

	plan, err := optimizer.OptimizeOrder(ctx, requests)
	if err != nil {
		fmt.Printf("❌ Allocation failed: %v\n", err)
		return
	}

	fmt.Println("🚚 Supplier allocation:")
	fmt.Printf("  Fulfilled: %d, partial: %d, unfulfilled: %d\n",
		plan.FullyFulfilled, plan.PartiallyFulfilled, plan.Unfulfilled)
	fmt.Printf("  Total cost: %s (internal share %s%%)\n",
		plan.TotalCost.Round(2), plan.InternalSharePct.Round(1))
	for _, result := range plan.Items {
		for _, alloc := range result.Allocations {
			fmt.Printf("    %s: %s x %s from %s\n",
				result.ProductID, alloc.Quantity.Round(2),
				alloc.UnitPrice.Round(2), alloc.SupplierName)
		}
	}
	for _, advisory := range plan.Advisories {
		fmt.Printf("  [%s] %s\n", advisory.Severity, advisory.Message)
	}
}

func setupWeeklyScenario(
	products *memory.ProductRepository,
	orders *memory.OrderRepository,
	inventory *memory.InventoryRepository,
	suppliers *memory.SupplierRepository,
) {
	dec := decimal.RequireFromString

	carrots, _ := entities.NewProduct("CARROTS", "Carrots", entities.DeptVegetables, entities.UnitKG, nil, false)
	lemons, _ := entities.NewProduct("LEMONS", "Lemons", entities.DeptFruits, entities.UnitKG, nil, false)
	box, _ := entities.NewProduct("BOX-SMALL", "Small Veg Box", entities.DeptBoxes, entities.UnitEach, nil, true)
	_ = products.LoadProducts([]*entities.Product{carrots, lemons, box})

	carrotsPerBox, _ := entities.NewRecipeIngredient("CARROTS", dec("2"))
	lemonsPerBox, _ := entities.NewRecipeIngredient("LEMONS", dec("0.5"))
	_ = products.LoadRecipe("BOX-SMALL", []entities.RecipeIngredient{*carrotsPerBox, *lemonsPerBox})

	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	restaurantOrder, _ := entities.NewOrder("ORD-1", entities.SegmentRestaurant, monday,
		[]entities.OrderItem{
			{ProductID: "CARROTS", Quantity: dec("10")},
			{ProductID: "BOX-SMALL", Quantity: dec("5")},
		})
	retailOrder, _ := entities.NewOrder("ORD-2", entities.SegmentRetail, monday.AddDate(0, 0, 2),
		[]entities.OrderItem{
			{ProductID: "LEMONS", Quantity: dec("30")},
		})
	_ = orders.LoadOrders([]*entities.Order{restaurantOrder, retailOrder})

	_ = inventory.LoadStockLevels([]repositories.StockLevel{
		{ProductID: "CARROTS", Count: dec("8"), MinimumStock: dec("5")},
	})

	internal, _ := entities.NewSupplierOffer("SUP-INT", "Fambri Farms Internal",
		"LEMONS", dec("8"), dec("20"), 0, dec("5"), decimal.Zero, true)
	joburg, _ := entities.NewSupplierOffer("SUP-JHB", "Joburg Market",
		"LEMONS", dec("9"), dec("1000"), 2, dec("4"), decimal.Zero, true)
	carrotSupply, _ := entities.NewSupplierOffer("SUP-JHB", "Joburg Market",
		"CARROTS", dec("5"), dec("500"), 2, dec("4"), decimal.Zero, true)
	_ = suppliers.LoadSupplierOffers([]*entities.SupplierOffer{internal, joburg, carrotSupply})
}
