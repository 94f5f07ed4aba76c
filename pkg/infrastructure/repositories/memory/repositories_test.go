package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

func TestProductRepository_MissingProduct(t *testing.T) {
	repo := NewProductRepository()

	product, err := entities.NewProduct(
		"LEMONS", "Lemons", entities.DeptFruits, entities.UnitKG, nil, false,
	)
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if err := repo.LoadProducts([]*entities.Product{product}); err != nil {
		t.Fatalf("Failed to load products: %v", err)
	}

	if _, err := repo.GetProduct("LEMONS"); err != nil {
		t.Errorf("Expected loaded product to be found: %v", err)
	}

	_, err = repo.GetProduct("MISSING")
	if err == nil {
		t.Fatalf("Expected error for missing product")
	}
	var missing *entities.MissingReferenceError
	if !errors.As(err, &missing) {
		t.Errorf("Expected MissingReferenceError, got %T", err)
	}
}

func TestOrderRepository_DateRangeFilter(t *testing.T) {
	repo := NewOrderRepository()
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	for _, spec := range []struct {
		id  entities.OrderID
		day int
	}{
		{"ORD-1", 10}, {"ORD-2", 15}, {"ORD-3", 20},
	} {
		order, err := entities.NewOrder(spec.id, entities.SegmentRestaurant, day(spec.day), nil)
		if err != nil {
			t.Fatalf("Failed to create order: %v", err)
		}
		if err := repo.LoadOrders([]*entities.Order{order}); err != nil {
			t.Fatalf("Failed to load order: %v", err)
		}
	}

	orders, err := repo.ListOrdersNeedingProcurement(day(12), day(20))
	if err != nil {
		t.Fatalf("Failed to list orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders in range, got %d", len(orders))
	}
}

func TestInventoryRepository_MissingRecord(t *testing.T) {
	repo := NewInventoryRepository()
	if err := repo.LoadStockLevels([]repositories.StockLevel{
		{ProductID: "LEMONS", Count: decimal.NewFromInt(50), MinimumStock: decimal.NewFromInt(10)},
	}); err != nil {
		t.Fatalf("Failed to load stock: %v", err)
	}

	level, found, err := repo.GetCurrentStock("LEMONS")
	if err != nil || !found {
		t.Fatalf("Expected stock record to be found, err=%v", err)
	}
	if !level.Count.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected count 50, got %s", level.Count)
	}

	_, found, err = repo.GetCurrentStock("MISSING")
	if err != nil {
		t.Fatalf("Missing record must not be an error: %v", err)
	}
	if found {
		t.Errorf("Expected found=false for missing record")
	}
}

func TestPricingRuleRepository_EffectiveLookup(t *testing.T) {
	repo := NewPricingRuleRepository()

	until := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	expired, err := entities.NewPricingRule(
		entities.SegmentRetail,
		decimal.NewFromInt(40), decimal.Zero, nil,
		decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(20),
		nil, &until, true,
	)
	if err != nil {
		t.Fatalf("Failed to create rule: %v", err)
	}
	current, err := entities.NewPricingRule(
		entities.SegmentRetail,
		decimal.NewFromInt(35), decimal.Zero, nil,
		decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(20),
		nil, nil, true,
	)
	if err != nil {
		t.Fatalf("Failed to create rule: %v", err)
	}
	if err := repo.LoadPricingRules([]*entities.PricingRule{expired, current}); err != nil {
		t.Fatalf("Failed to load rules: %v", err)
	}

	rule, found, err := repo.GetPricingRule(
		entities.SegmentRetail, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil || !found {
		t.Fatalf("Expected an effective rule, err=%v", err)
	}
	if !rule.BaseMarkupPct.Equal(decimal.NewFromInt(35)) {
		t.Errorf("Expected the unexpired rule, got markup %s", rule.BaseMarkupPct)
	}

	_, found, _ = repo.GetPricingRule(
		entities.SegmentWholesale, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	)
	if found {
		t.Errorf("Expected no rule for an unconfigured segment")
	}
}
