package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// ProcurementConfig holds the engine-wide procurement policy knobs
type ProcurementConfig struct {
	// Name of the farm's own supplier record; offers from this supplier
	// get top allocation priority
	InternalSupplierName string `toml:"internal_supplier_name"`
	// Factor applied to a product's retail price when no supplier offer
	// exists (wholesale estimate)
	WholesaleDiscount float64 `toml:"wholesale_discount"`
	// Order cost above which a bulk-discount negotiation is suggested
	BulkDiscountThreshold float64 `toml:"bulk_discount_threshold"`
	// Internal cost-share bounds that trigger utilization advisories
	LowInternalSharePct  float64 `toml:"low_internal_share_pct"`
	HighInternalSharePct float64 `toml:"high_internal_share_pct"`
	// Distinct supplier count above which a complexity notice is raised
	MaxSuppliersBeforeNotice int `toml:"max_suppliers_before_notice"`
}

// BufferDefaults are the waste settings applied to products without a
// stored buffer profile, keyed by department
type BufferDefaults struct {
	SpoilageRate         float64 `toml:"spoilage_rate"`
	CuttingWasteRate     float64 `toml:"cutting_waste_rate"`
	QualityRejectionRate float64 `toml:"quality_rejection_rate"`
	MarketPackSize       float64 `toml:"market_pack_size"`
	MarketPackUnit       string  `toml:"market_pack_unit"`
}

// Config is the full engine configuration
type Config struct {
	Procurement     ProcurementConfig         `toml:"procurement"`
	HeuristicPrices map[string]float64        `toml:"heuristic_prices"`
	BufferDefaults  map[string]BufferDefaults `toml:"buffer_defaults"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Procurement: ProcurementConfig{
			InternalSupplierName:     "Fambri Farms Internal",
			WholesaleDiscount:        0.7,
			BulkDiscountThreshold:    1000,
			LowInternalSharePct:      70,
			HighInternalSharePct:     90,
			MaxSuppliersBeforeNotice: 3,
		},
		HeuristicPrices: map[string]float64{
			string(entities.DeptVegetables): 12,
			string(entities.DeptFruits):     18,
			string(entities.DeptHerbs):      25,
			string(entities.DeptSpices):     25,
			string(entities.DeptMushrooms):  35,
			"default":                       15,
		},
		BufferDefaults: map[string]BufferDefaults{
			string(entities.DeptVegetables): {
				SpoilageRate:         0.10,
				CuttingWasteRate:     0.05,
				QualityRejectionRate: 0.05,
				MarketPackSize:       5,
				MarketPackUnit:       string(entities.UnitKG),
			},
			string(entities.DeptFruits): {
				SpoilageRate:         0.12,
				CuttingWasteRate:     0.03,
				QualityRejectionRate: 0.05,
				MarketPackSize:       5,
				MarketPackUnit:       string(entities.UnitKG),
			},
			string(entities.DeptHerbs): {
				SpoilageRate:         0.15,
				CuttingWasteRate:     0.02,
				QualityRejectionRate: 0.08,
				MarketPackSize:       1,
				MarketPackUnit:       string(entities.UnitKG),
			},
			string(entities.DeptMushrooms): {
				SpoilageRate:         0.15,
				CuttingWasteRate:     0.02,
				QualityRejectionRate: 0.08,
				MarketPackSize:       2,
				MarketPackUnit:       string(entities.UnitKG),
			},
			"default": {
				SpoilageRate:         0.10,
				CuttingWasteRate:     0.05,
				QualityRejectionRate: 0.05,
				MarketPackSize:       5,
				MarketPackUnit:       string(entities.UnitKG),
			},
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// HeuristicPrice returns the department fallback price as a decimal
func (c *Config) HeuristicPrice(dept entities.Department) decimal.Decimal {
	if price, ok := c.HeuristicPrices[string(dept)]; ok {
		return decimal.NewFromFloat(price)
	}
	return decimal.NewFromFloat(c.HeuristicPrices["default"])
}

// BufferDefaultsFor returns the buffer defaults for a department
func (c *Config) BufferDefaultsFor(dept entities.Department) BufferDefaults {
	if defaults, ok := c.BufferDefaults[string(dept)]; ok {
		return defaults
	}
	return c.BufferDefaults["default"]
}

// DefaultBufferProfile builds a department-defaulted profile for a product
// that has none stored
func (c *Config) DefaultBufferProfile(product *entities.Product) (*entities.BufferProfile, error) {
	defaults := c.BufferDefaultsFor(product.Department)
	return entities.NewBufferProfile(
		product.ID,
		decimal.NewFromFloat(defaults.SpoilageRate),
		decimal.NewFromFloat(defaults.CuttingWasteRate),
		decimal.NewFromFloat(defaults.QualityRejectionRate),
		decimal.NewFromFloat(defaults.MarketPackSize),
		entities.Unit(defaults.MarketPackUnit),
		false, nil, decimal.NewFromInt(1),
	)
}
