package config

import (
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/application/services/allocation"
	"github.com/fambrifarms/procure/pkg/application/services/procurement"
	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// ProcurementPolicy converts the file configuration into the procurement
// service's policy object
func (c *Config) ProcurementPolicy() procurement.Policy {
	policy := procurement.Policy{
		InternalSupplierName:  c.Procurement.InternalSupplierName,
		WholesaleDiscount:     decimal.NewFromFloat(c.Procurement.WholesaleDiscount),
		HeuristicPrices:       make(map[entities.Department]decimal.Decimal, len(c.HeuristicPrices)),
		DefaultHeuristicPrice: decimal.NewFromFloat(c.HeuristicPrices["default"]),
		BufferDefaults:        make(map[entities.Department]procurement.BufferDefaults, len(c.BufferDefaults)),
	}

	for dept, price := range c.HeuristicPrices {
		if dept == "default" {
			continue
		}
		policy.HeuristicPrices[entities.Department(dept)] = decimal.NewFromFloat(price)
	}
	for dept, defaults := range c.BufferDefaults {
		converted := bufferDefaults(defaults)
		if dept == "default" {
			policy.DefaultBufferSettings = converted
			continue
		}
		policy.BufferDefaults[entities.Department(dept)] = converted
	}

	return policy
}

// AllocationPolicy converts the file configuration into the allocation
// optimizer's policy object
func (c *Config) AllocationPolicy() allocation.Policy {
	return allocation.Policy{
		InternalSupplierName:     c.Procurement.InternalSupplierName,
		BulkDiscountThreshold:    decimal.NewFromFloat(c.Procurement.BulkDiscountThreshold),
		LowInternalSharePct:      decimal.NewFromFloat(c.Procurement.LowInternalSharePct),
		HighInternalSharePct:     decimal.NewFromFloat(c.Procurement.HighInternalSharePct),
		MaxSuppliersBeforeNotice: c.Procurement.MaxSuppliersBeforeNotice,
	}
}

func bufferDefaults(d BufferDefaults) procurement.BufferDefaults {
	return procurement.BufferDefaults{
		SpoilageRate:         decimal.NewFromFloat(d.SpoilageRate),
		CuttingWasteRate:     decimal.NewFromFloat(d.CuttingWasteRate),
		QualityRejectionRate: decimal.NewFromFloat(d.QualityRejectionRate),
		MarketPackSize:       decimal.NewFromFloat(d.MarketPackSize),
		MarketPackUnit:       entities.Unit(d.MarketPackUnit),
	}
}
