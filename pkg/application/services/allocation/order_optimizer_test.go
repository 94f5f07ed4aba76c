package allocation

import (
	"context"
	"strings"
	"testing"

	"github.com/fambrifarms/procure/pkg/application/dto"
	svctesting "github.com/fambrifarms/procure/pkg/application/services/testing"
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/infrastructure/repositories/memory"
)

func hasAdvisory(advisories []dto.Advisory, severity dto.AdvisorySeverity, fragment string) bool {
	for _, advisory := range advisories {
		if advisory.Severity == severity && strings.Contains(advisory.Message, fragment) {
			return true
		}
	}
	return false
}

func newBatchOptimizer(t *testing.T, offers ...*entities.SupplierOffer) *OrderOptimizer {
	t.Helper()
	suppliers := memory.NewSupplierRepository()
	if err := suppliers.LoadSupplierOffers(offers); err != nil {
		t.Fatalf("Failed to load offers: %v", err)
	}
	policy := DefaultPolicy()
	return NewOrderOptimizer(NewOptimizer(suppliers, policy), policy, nil)
}

func TestOrderOptimizer_BatchCountsAndCostSplit(t *testing.T) {
	optimizer := newBatchOptimizer(t,
		svctesting.MustOffer("SUP-INT", internalName, "LEMONS", "8", "50", 0, "5", true),
		svctesting.MustOffer("SUP-INT", internalName, "CARROTS", "5", "10", 0, "5", true),
		svctesting.MustOffer("SUP-EXT", "Joburg Market", "CARROTS", "6", "100", 2, "4", true),
	)

	plan, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
		{ProductID: "LEMONS", Quantity: svctesting.Dec("30")},  // internal single
		{ProductID: "CARROTS", Quantity: svctesting.Dec("25")}, // 10 internal + 15 external
		{ProductID: "GHOST", Quantity: svctesting.Dec("5")},    // nobody sells this
	})
	if err != nil {
		t.Fatalf("OptimizeOrder failed: %v", err)
	}

	if plan.FullyFulfilled != 2 || plan.PartiallyFulfilled != 0 || plan.Unfulfilled != 1 {
		t.Errorf("Expected 2 fulfilled / 0 partial / 1 unfulfilled, got %d/%d/%d",
			plan.FullyFulfilled, plan.PartiallyFulfilled, plan.Unfulfilled)
	}
	if len(plan.Items) != 3 {
		t.Fatalf("Expected a result per item, got %d", len(plan.Items))
	}
	if plan.Items[2].Strategy != entities.NoAllocation || plan.Items[2].FailureReason == "" {
		t.Errorf("Expected the unsourceable item to carry a failure result, got %+v", plan.Items[2])
	}

	// Lemons 30x8 = 240; carrots 10x5 internal + 15x6 external = 140
	if !plan.TotalCost.Equal(svctesting.Dec("380")) {
		t.Errorf("Expected total cost 380, got %s", plan.TotalCost)
	}
	if !plan.InternalCost.Equal(svctesting.Dec("290")) {
		t.Errorf("Expected internal cost 290, got %s", plan.InternalCost)
	}
	if !plan.ExternalCost.Equal(svctesting.Dec("90")) {
		t.Errorf("Expected external cost 90, got %s", plan.ExternalCost)
	}
	if plan.DistinctSuppliers != 2 {
		t.Errorf("Expected 2 distinct suppliers, got %d", plan.DistinctSuppliers)
	}
}

func TestOrderOptimizer_BelowMinimumOrderAdvisory(t *testing.T) {
	small := svctesting.MustOffer("SUP-EXT", "Joburg Market", "LEMONS", "9", "100", 2, "4", true)
	small.MinimumOrderQty = svctesting.Dec("25")
	optimizer := newBatchOptimizer(t, small)

	plan, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
		{ProductID: "LEMONS", Quantity: svctesting.Dec("10")},
	})
	if err != nil {
		t.Fatalf("OptimizeOrder failed: %v", err)
	}

	// The take goes through regardless; the shortfall against the
	// supplier's minimum is surfaced, not enforced.
	if plan.FullyFulfilled != 1 {
		t.Fatalf("Expected the item to allocate despite the minimum, got %+v", plan)
	}
	if !hasAdvisory(plan.Advisories, dto.AdvisoryWarning, "below its minimum order of 25") {
		t.Errorf("Expected a below-minimum advisory, got %v", plan.Advisories)
	}

	enough, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
		{ProductID: "LEMONS", Quantity: svctesting.Dec("30")},
	})
	if err != nil {
		t.Fatalf("OptimizeOrder failed: %v", err)
	}
	if hasAdvisory(enough.Advisories, dto.AdvisoryWarning, "below its minimum order") {
		t.Errorf("Expected no advisory when the take meets the minimum, got %v", enough.Advisories)
	}
}

func TestOrderOptimizer_SummariesSortedByCost(t *testing.T) {
	optimizer := newBatchOptimizer(t,
		svctesting.MustOffer("SUP-INT", internalName, "LEMONS", "8", "50", 0, "5", true),
		svctesting.MustOffer("SUP-EXT", "Joburg Market", "CARROTS", "6", "100", 2, "4", true),
	)

	plan, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
		{ProductID: "LEMONS", Quantity: svctesting.Dec("10")},  // 80 internal
		{ProductID: "CARROTS", Quantity: svctesting.Dec("50")}, // 300 external
	})
	if err != nil {
		t.Fatalf("OptimizeOrder failed: %v", err)
	}

	if len(plan.SupplierSummaries) != 2 {
		t.Fatalf("Expected 2 supplier summaries, got %d", len(plan.SupplierSummaries))
	}
	if plan.SupplierSummaries[0].SupplierID != "SUP-EXT" {
		t.Errorf("Expected the costliest supplier first, got %s",
			plan.SupplierSummaries[0].SupplierID)
	}
	external := plan.SupplierSummaries[0]
	if !external.TotalCost.Equal(svctesting.Dec("300")) || external.ItemCount != 1 {
		t.Errorf("Unexpected external summary: %+v", external)
	}
	if external.Type != entities.ExternalSupplier {
		t.Errorf("Expected external supplier type, got %s", external.Type)
	}
}

func TestOrderOptimizer_Advisories(t *testing.T) {
	t.Run("low internal share and unfulfilled items", func(t *testing.T) {
		optimizer := newBatchOptimizer(t,
			svctesting.MustOffer("SUP-EXT", "Joburg Market", "CARROTS", "6", "100", 2, "4", true),
		)
		plan, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
			{ProductID: "CARROTS", Quantity: svctesting.Dec("10")},
			{ProductID: "GHOST", Quantity: svctesting.Dec("5")},
		})
		if err != nil {
			t.Fatalf("OptimizeOrder failed: %v", err)
		}
		if !hasAdvisory(plan.Advisories, dto.AdvisoryWarning, "internal supply covers only") {
			t.Errorf("Expected a low internal share warning, got %+v", plan.Advisories)
		}
		if !hasAdvisory(plan.Advisories, dto.AdvisoryWarning, "cannot be fulfilled") {
			t.Errorf("Expected an unfulfilled items warning, got %+v", plan.Advisories)
		}
	})

	t.Run("high internal share is informational", func(t *testing.T) {
		optimizer := newBatchOptimizer(t,
			svctesting.MustOffer("SUP-INT", internalName, "LEMONS", "8", "100", 0, "5", true),
		)
		plan, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
			{ProductID: "LEMONS", Quantity: svctesting.Dec("10")},
		})
		if err != nil {
			t.Fatalf("OptimizeOrder failed: %v", err)
		}
		if !hasAdvisory(plan.Advisories, dto.AdvisoryInfo, "external dependency is minimal") {
			t.Errorf("Expected a high internal share notice, got %+v", plan.Advisories)
		}
	})

	t.Run("bulk discount threshold", func(t *testing.T) {
		optimizer := newBatchOptimizer(t,
			svctesting.MustOffer("SUP-INT", internalName, "LEMONS", "8", "500", 0, "5", true),
		)
		// 200 kg x 8 = 1600, above the 1000 threshold
		plan, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
			{ProductID: "LEMONS", Quantity: svctesting.Dec("200")},
		})
		if err != nil {
			t.Fatalf("OptimizeOrder failed: %v", err)
		}
		if !hasAdvisory(plan.Advisories, dto.AdvisoryInfo, "negotiate bulk discounts") {
			t.Errorf("Expected a bulk discount notice, got %+v", plan.Advisories)
		}
	})

	t.Run("supplier sprawl", func(t *testing.T) {
		optimizer := newBatchOptimizer(t,
			svctesting.MustOffer("SUP-1", "Market A", "P1", "5", "100", 1, "4", true),
			svctesting.MustOffer("SUP-2", "Market B", "P2", "5", "100", 1, "4", true),
			svctesting.MustOffer("SUP-3", "Market C", "P3", "5", "100", 1, "4", true),
			svctesting.MustOffer("SUP-4", "Market D", "P4", "5", "100", 1, "4", true),
		)
		plan, err := optimizer.OptimizeOrder(context.Background(), []ItemRequest{
			{ProductID: "P1", Quantity: svctesting.Dec("1")},
			{ProductID: "P2", Quantity: svctesting.Dec("1")},
			{ProductID: "P3", Quantity: svctesting.Dec("1")},
			{ProductID: "P4", Quantity: svctesting.Dec("1")},
		})
		if err != nil {
			t.Fatalf("OptimizeOrder failed: %v", err)
		}
		if !hasAdvisory(plan.Advisories, dto.AdvisoryInfo, "consider consolidating deliveries") {
			t.Errorf("Expected a consolidation notice, got %+v", plan.Advisories)
		}
	})
}
