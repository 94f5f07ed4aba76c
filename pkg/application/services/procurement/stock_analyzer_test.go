package procurement

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	svctesting "github.com/fambrifarms/procure/pkg/application/services/testing"
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
	"github.com/fambrifarms/procure/pkg/infrastructure/repositories/memory"
)

func TestStockAnalyzer_NetNeeded(t *testing.T) {
	inventory := memory.NewInventoryRepository()
	if err := inventory.LoadStockLevels([]repositories.StockLevel{
		{ProductID: "CARROTS", Count: svctesting.Dec("12"), MinimumStock: svctesting.Dec("5")},
		{ProductID: "ONIONS", Count: svctesting.Dec("40"), MinimumStock: svctesting.Dec("10")},
	}); err != nil {
		t.Fatalf("Failed to load stock: %v", err)
	}
	analyzer := NewStockAnalyzer(inventory)
	carrots := svctesting.MustProduct("CARROTS", "Carrots", entities.DeptVegetables, entities.UnitKG, "", false)
	onions := svctesting.MustProduct("ONIONS", "Onions", entities.DeptVegetables, entities.UnitKG, "", false)

	short, err := analyzer.Analyze(carrots, &entities.ProductRequirement{
		ProductID: "CARROTS", TotalNeeded: svctesting.Dec("30"),
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !short.NetNeeded.Equal(svctesting.Dec("18")) {
		t.Errorf("Expected net needed 18, got %s", short.NetNeeded)
	}

	covered, err := analyzer.Analyze(onions, &entities.ProductRequirement{
		ProductID: "ONIONS", TotalNeeded: svctesting.Dec("25"),
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !covered.NetNeeded.IsZero() {
		t.Errorf("Expected zero net needed when stock covers demand, got %s", covered.NetNeeded)
	}
	if covered.IsOutOfStock || covered.IsLowStock {
		t.Errorf("Expected healthy stock flags, got %+v", covered)
	}
}

func TestStockAnalyzer_MissingRecordIsZeroStock(t *testing.T) {
	analyzer := NewStockAnalyzer(memory.NewInventoryRepository())
	lemons := svctesting.MustProduct("LEMONS", "Lemons", entities.DeptFruits, entities.UnitKG, "", false)

	snapshot, err := analyzer.Analyze(lemons, &entities.ProductRequirement{
		ProductID: "LEMONS", TotalNeeded: svctesting.Dec("10"),
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !snapshot.IsOutOfStock {
		t.Errorf("Expected out-of-stock flag for missing inventory record")
	}
	if !snapshot.NetNeeded.Equal(svctesting.Dec("10")) {
		t.Errorf("Expected full demand as net needed, got %s", snapshot.NetNeeded)
	}
}

func TestStockAnalyzer_DirectPackagedDemandNetsInKilograms(t *testing.T) {
	products := seedProducts(t)
	inventory := memory.NewInventoryRepository()
	// 10 packets of 250g on hand = 2.5 kg equivalent
	if err := inventory.LoadStockLevels([]repositories.StockLevel{
		{ProductID: "SPINACH-PKT", Count: svctesting.Dec("10"), MinimumStock: decimal.Zero},
	}); err != nil {
		t.Fatalf("Failed to load stock: %v", err)
	}

	// 5 packets ordered directly aggregate to 1.25 kg, so the on-hand
	// packs fully cover the demand.
	orders := []*entities.Order{
		svctesting.MustOrder("ORD-1", entities.SegmentRestaurant, aggregationDate,
			svctesting.Item("SPINACH-PKT", "5")),
	}
	requirements, _, err := NewAggregator(products, nil).Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Aggregation failed: %v", err)
	}

	spinach, err := products.GetProduct("SPINACH-PKT")
	if err != nil {
		t.Fatalf("Failed to fetch product: %v", err)
	}
	snapshot, err := NewStockAnalyzer(inventory).Analyze(spinach, requirements["SPINACH-PKT"])
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !snapshot.NetNeeded.IsZero() {
		t.Errorf("Expected stock to cover direct packaged demand, net needed %s", snapshot.NetNeeded)
	}
}

func TestStockAnalyzer_DiscretePackKilogramEquivalent(t *testing.T) {
	inventory := memory.NewInventoryRepository()
	// 8 packets of 250g on hand = 2 kg equivalent
	if err := inventory.LoadStockLevels([]repositories.StockLevel{
		{ProductID: "SPINACH-PKT", Count: svctesting.Dec("8"), MinimumStock: decimal.Zero},
	}); err != nil {
		t.Fatalf("Failed to load stock: %v", err)
	}
	analyzer := NewStockAnalyzer(inventory)
	spinach := svctesting.MustProduct(
		"SPINACH-PKT", "Baby Spinach (250g packet)",
		entities.DeptVegetables, entities.UnitPacket, "", false,
	)

	snapshot, err := analyzer.Analyze(spinach, &entities.ProductRequirement{
		ProductID: "SPINACH-PKT", TotalNeeded: svctesting.Dec("3"),
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !snapshot.CurrentStock.Equal(svctesting.Dec("2")) {
		t.Errorf("Expected 2 kg equivalent stock, got %s", snapshot.CurrentStock)
	}
	if !snapshot.NetNeeded.Equal(svctesting.Dec("1")) {
		t.Errorf("Expected net needed 1 kg, got %s", snapshot.NetNeeded)
	}
}
