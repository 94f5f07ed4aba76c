package procurement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// BufferCalculator converts a net shortfall into a buffered, pack-rounded
// market purchase quantity
type BufferCalculator struct {
	buffers repositories.BufferProfileRepository
	policy  Policy
}

// NewBufferCalculator creates a new buffer calculator
func NewBufferCalculator(
	buffers repositories.BufferProfileRepository,
	policy Policy,
) *BufferCalculator {
	return &BufferCalculator{buffers: buffers, policy: policy}
}

// Calculate applies the product's buffer profile (or department defaults)
// to a net shortfall. The result always satisfies
// MarketQuantity >= netNeeded and MarketQuantity mod pack size == 0.
func (c *BufferCalculator) Calculate(
	product *entities.Product,
	netNeeded decimal.Decimal,
	asOf time.Time,
) (entities.BufferedQuantity, error) {
	profile, found, err := c.buffers.GetBufferProfile(product.ID)
	if err != nil {
		return entities.BufferedQuantity{}, err
	}
	if !found {
		profile, err = c.policy.DefaultProfile(product)
		if err != nil {
			return entities.BufferedQuantity{}, err
		}
	}

	one := decimal.NewFromInt(1)
	bufferRate := profile.TotalBufferRate()
	multiplier := profile.SeasonalMultiplier(asOf.Month())

	raw := netNeeded.Mul(one.Add(bufferRate)).Mul(multiplier)

	packs := raw.Div(profile.MarketPackSize).Ceil().IntPart()
	marketQuantity := profile.MarketPackSize.Mul(decimal.NewFromInt(packs))

	return entities.BufferedQuantity{
		ProductID:          product.ID,
		NetNeeded:          netNeeded,
		RawQuantity:        raw,
		MarketQuantity:     marketQuantity,
		MarketPacks:        packs,
		TotalBufferRate:    bufferRate,
		SeasonalMultiplier: multiplier,
	}, nil
}
