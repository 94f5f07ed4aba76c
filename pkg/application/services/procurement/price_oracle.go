package procurement

import (
	"io"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// PriceOracle estimates a unit price for a product through an
// internal-supplier-first priority chain. It never fails: there is always a
// heuristic price to fall back to.
type PriceOracle struct {
	suppliers repositories.SupplierRepository
	policy    Policy
	logger    *slog.Logger
}

// NewPriceOracle creates a new supplier price oracle
func NewPriceOracle(
	suppliers repositories.SupplierRepository,
	policy Policy,
	logger *slog.Logger,
) *PriceOracle {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PriceOracle{suppliers: suppliers, policy: policy, logger: logger}
}

// EstimateUnitPrice resolves the best price estimate for a product:
// internal supplier price, else cheapest available external offer, else a
// wholesale-discounted retail price, else the department heuristic.
func (o *PriceOracle) EstimateUnitPrice(product *entities.Product) decimal.Decimal {
	offers, err := o.suppliers.ListSupplierOffers(product.ID)
	if err != nil {
		o.logger.Warn("falling back to heuristic pricing; supplier lookup failed",
			"product_id", product.ID, "error", err)
		offers = nil
	}

	var externalPrices []decimal.Decimal
	for _, offer := range offers {
		if !offer.Available || !offer.AvailableQty.IsPositive() {
			continue
		}
		if o.policy.IsInternal(offer) {
			return offer.UnitPrice
		}
		externalPrices = append(externalPrices, offer.UnitPrice)
	}
	if len(externalPrices) > 0 {
		sort.Slice(externalPrices, func(i, j int) bool {
			return externalPrices[i].LessThan(externalPrices[j])
		})
		return externalPrices[0]
	}

	if product.BaseRetailPrice != nil {
		return product.BaseRetailPrice.Mul(o.policy.WholesaleDiscount)
	}

	return o.policy.HeuristicPrice(product.Department)
}
