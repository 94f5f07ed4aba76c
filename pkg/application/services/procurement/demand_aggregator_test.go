package procurement

import (
	"context"
	"reflect"
	"testing"
	"time"

	svctesting "github.com/fambrifarms/procure/pkg/application/services/testing"
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/infrastructure/repositories/memory"
)

var aggregationDate = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

func seedProducts(t *testing.T) *memory.ProductRepository {
	t.Helper()
	repo := memory.NewProductRepository()

	err := repo.LoadProducts([]*entities.Product{
		svctesting.MustProduct("CARROTS", "Carrots", entities.DeptVegetables, entities.UnitKG, "", false),
		svctesting.MustProduct("ONIONS", "Onions", entities.DeptVegetables, entities.UnitKG, "", false),
		svctesting.MustProduct("SPINACH-PKT", "Baby Spinach (250g packet)", entities.DeptVegetables, entities.UnitPacket, "", false),
		svctesting.MustProduct("BOX-SMALL", "Small Veggie Box", entities.DeptBoxes, entities.UnitBox, "", true),
		svctesting.MustProduct("BOX-LARGE", "Large Veggie Box", entities.DeptBoxes, entities.UnitBox, "", true),
	})
	if err != nil {
		t.Fatalf("Failed to load products: %v", err)
	}

	if err := repo.LoadRecipe("BOX-SMALL", []entities.RecipeIngredient{
		svctesting.MustIngredient("CARROTS", "0.5"),
		svctesting.MustIngredient("SPINACH-PKT", "2"), // packs, converts via 250g
	}); err != nil {
		t.Fatalf("Failed to load recipe: %v", err)
	}
	if err := repo.LoadRecipe("BOX-LARGE", []entities.RecipeIngredient{
		svctesting.MustIngredient("CARROTS", "1"),
		svctesting.MustIngredient("ONIONS", "0.5"),
	}); err != nil {
		t.Fatalf("Failed to load recipe: %v", err)
	}

	return repo
}

func TestAggregator_DirectItems(t *testing.T) {
	aggregator := NewAggregator(seedProducts(t), nil)

	orders := []*entities.Order{
		svctesting.MustOrder("ORD-1", entities.SegmentRestaurant, aggregationDate,
			svctesting.Item("CARROTS", "10")),
		svctesting.MustOrder("ORD-2", entities.SegmentRetail, aggregationDate,
			svctesting.Item("CARROTS", "5"), svctesting.Item("ONIONS", "3")),
	}

	requirements, warnings, err := aggregator.Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Aggregation failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	carrots := requirements["CARROTS"]
	if carrots == nil || !carrots.TotalNeeded.Equal(svctesting.Dec("15")) {
		t.Fatalf("Expected 15 kg carrots, got %+v", carrots)
	}
	if len(carrots.SourceOrders) != 2 {
		t.Errorf("Expected 2 source orders, got %v", carrots.SourceOrders)
	}
}

func TestAggregator_RecipeDecompositionIsAdditive(t *testing.T) {
	aggregator := NewAggregator(seedProducts(t), nil)

	// One order holding both composites; shared carrots must sum:
	// 4 small boxes x 0.5 + 2 large boxes x 1 = 4 kg
	orders := []*entities.Order{
		svctesting.MustOrder("ORD-1", entities.SegmentRestaurant, aggregationDate,
			svctesting.Item("BOX-SMALL", "4"), svctesting.Item("BOX-LARGE", "2")),
	}

	requirements, _, err := aggregator.Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Aggregation failed: %v", err)
	}

	carrots := requirements["CARROTS"]
	if carrots == nil || !carrots.TotalNeeded.Equal(svctesting.Dec("4")) {
		t.Fatalf("Expected 4 kg carrots from both recipes, got %+v", carrots)
	}
	if len(carrots.RecipeBreakdown) != 2 {
		t.Errorf("Expected 2 recipe contributions, got %d", len(carrots.RecipeBreakdown))
	}

	onions := requirements["ONIONS"]
	if onions == nil || !onions.TotalNeeded.Equal(svctesting.Dec("1")) {
		t.Fatalf("Expected 1 kg onions, got %+v", onions)
	}
}

func TestAggregator_DiscretePackConversion(t *testing.T) {
	aggregator := NewAggregator(seedProducts(t), nil)

	// 3 small boxes, each carrying 2 spinach packets of 250g: 3 x 2 x 0.25 = 1.5 kg
	orders := []*entities.Order{
		svctesting.MustOrder("ORD-1", entities.SegmentRestaurant, aggregationDate,
			svctesting.Item("BOX-SMALL", "3")),
	}

	requirements, _, err := aggregator.Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Aggregation failed: %v", err)
	}

	spinach := requirements["SPINACH-PKT"]
	if spinach == nil || !spinach.TotalNeeded.Equal(svctesting.Dec("1.5")) {
		t.Fatalf("Expected 1.5 kg spinach, got %+v", spinach)
	}
}

func TestAggregator_DirectOrderOfPackagedProduct(t *testing.T) {
	aggregator := NewAggregator(seedProducts(t), nil)

	// 5 spinach packets ordered directly, 250g each: 5 x 0.25 = 1.25 kg,
	// the same unit the stock snapshot reports packaged products in.
	orders := []*entities.Order{
		svctesting.MustOrder("ORD-1", entities.SegmentRestaurant, aggregationDate,
			svctesting.Item("SPINACH-PKT", "5")),
	}

	requirements, _, err := aggregator.Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Aggregation failed: %v", err)
	}

	spinach := requirements["SPINACH-PKT"]
	if spinach == nil || !spinach.TotalNeeded.Equal(svctesting.Dec("1.25")) {
		t.Fatalf("Expected 1.25 kg spinach, got %+v", spinach)
	}
}

func TestAggregator_MissingProductSkippedWithWarning(t *testing.T) {
	aggregator := NewAggregator(seedProducts(t), nil)

	orders := []*entities.Order{
		svctesting.MustOrder("ORD-1", entities.SegmentRestaurant, aggregationDate,
			svctesting.Item("GHOST", "10"), svctesting.Item("CARROTS", "5")),
	}

	requirements, warnings, err := aggregator.Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Expected partial aggregation to continue: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].ProductID != "GHOST" || warnings[0].OrderID != "ORD-1" {
		t.Errorf("Warning missing provenance: %+v", warnings[0])
	}
	if requirements["CARROTS"] == nil {
		t.Errorf("Expected resolvable items to still aggregate")
	}
}

func TestAggregator_Idempotence(t *testing.T) {
	aggregator := NewAggregator(seedProducts(t), nil)

	orders := []*entities.Order{
		svctesting.MustOrder("ORD-1", entities.SegmentRestaurant, aggregationDate,
			svctesting.Item("BOX-SMALL", "4"), svctesting.Item("CARROTS", "2")),
	}

	first, _, err := aggregator.Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Aggregation failed: %v", err)
	}
	second, _, err := aggregator.Aggregate(context.Background(), orders)
	if err != nil {
		t.Fatalf("Aggregation failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical requirement maps for identical input")
	}
}

func BenchmarkAggregator(b *testing.B) {
	repo := memory.NewProductRepository()
	_ = repo.LoadProducts([]*entities.Product{
		svctesting.MustProduct("CARROTS", "Carrots", entities.DeptVegetables, entities.UnitKG, "", false),
		svctesting.MustProduct("BOX", "Veggie Box", entities.DeptBoxes, entities.UnitBox, "", true),
	})
	_ = repo.LoadRecipe("BOX", []entities.RecipeIngredient{
		svctesting.MustIngredient("CARROTS", "0.5"),
	})
	aggregator := NewAggregator(repo, nil)

	orders := make([]*entities.Order, 0, 500)
	for i := 0; i < 500; i++ {
		orders = append(orders, svctesting.MustOrder("ORD", entities.SegmentRestaurant,
			aggregationDate, svctesting.Item("BOX", "3"), svctesting.Item("CARROTS", "1")))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := aggregator.Aggregate(context.Background(), orders); err != nil {
			b.Fatal(err)
		}
	}
}
