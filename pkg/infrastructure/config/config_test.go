package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Procurement.InternalSupplierName == "" {
		t.Errorf("Expected a default internal supplier name")
	}
	if !cfg.HeuristicPrice(entities.DeptMushrooms).Equal(decimal.NewFromInt(35)) {
		t.Errorf("Expected mushrooms heuristic price 35, got %s",
			cfg.HeuristicPrice(entities.DeptMushrooms))
	}
	// Unknown departments fall through to the default price
	if !cfg.HeuristicPrice(entities.DeptBoxes).Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected default heuristic price 15, got %s",
			cfg.HeuristicPrice(entities.DeptBoxes))
	}

	defaults := cfg.BufferDefaultsFor(entities.Department("unheard-of"))
	if defaults.MarketPackSize != 5 {
		t.Errorf("Expected default pack size 5, got %v", defaults.MarketPackSize)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Expected missing file to fall back to defaults: %v", err)
	}
	if cfg.Procurement.WholesaleDiscount != 0.7 {
		t.Errorf("Expected default wholesale discount 0.7, got %v",
			cfg.Procurement.WholesaleDiscount)
	}
}

func TestLoad_OverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[procurement]
internal_supplier_name = "Karsten Boerdery"
bulk_discount_threshold = 2500.0

[heuristic_prices]
vegetables = 14.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Procurement.InternalSupplierName != "Karsten Boerdery" {
		t.Errorf("Expected overlaid supplier name, got %s", cfg.Procurement.InternalSupplierName)
	}
	if cfg.Procurement.BulkDiscountThreshold != 2500 {
		t.Errorf("Expected overlaid threshold 2500, got %v", cfg.Procurement.BulkDiscountThreshold)
	}
	if !cfg.HeuristicPrice(entities.DeptVegetables).Equal(decimal.RequireFromString("14.5")) {
		t.Errorf("Expected overlaid vegetables price 14.5, got %s",
			cfg.HeuristicPrice(entities.DeptVegetables))
	}
	// Untouched defaults survive the overlay
	if cfg.Procurement.WholesaleDiscount != 0.7 {
		t.Errorf("Expected wholesale discount default to survive, got %v",
			cfg.Procurement.WholesaleDiscount)
	}
}
