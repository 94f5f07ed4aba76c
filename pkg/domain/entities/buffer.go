package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BufferProfile holds the per-product waste and seasonality settings used
// to convert a net shortfall into a market purchase quantity
type BufferProfile struct {
	ProductID            ProductID
	SpoilageRate         decimal.Decimal // fraction in [0,1)
	CuttingWasteRate     decimal.Decimal // fraction in [0,1)
	QualityRejectionRate decimal.Decimal // fraction in [0,1)
	MarketPackSize       decimal.Decimal // minimum purchasable unit, > 0
	MarketPackUnit       Unit
	IsSeasonal           bool
	PeakSeasonMonths     map[time.Month]bool
	PeakSeasonMultiplier decimal.Decimal // >= 1
}

// NewBufferProfile creates a validated BufferProfile. Validation failures
// are InvalidConfigurationError and disqualify only this product.
func NewBufferProfile(
	productID ProductID,
	spoilageRate, cuttingWasteRate, qualityRejectionRate decimal.Decimal,
	marketPackSize decimal.Decimal,
	marketPackUnit Unit,
	isSeasonal bool,
	peakSeasonMonths []time.Month,
	peakSeasonMultiplier decimal.Decimal,
) (*BufferProfile, error) {
	if string(productID) == "" {
		return nil, &InvalidConfigurationError{ProductID: productID, Field: "product_id", Reason: "cannot be empty"}
	}
	one := decimal.NewFromInt(1)
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"spoilage_rate", spoilageRate},
		{"cutting_waste_rate", cuttingWasteRate},
		{"quality_rejection_rate", qualityRejectionRate},
	}
	for _, rate := range rates {
		if rate.value.IsNegative() || rate.value.GreaterThanOrEqual(one) {
			return nil, &InvalidConfigurationError{
				ProductID: productID,
				Field:     rate.name,
				Reason:    "must be in [0,1), got " + rate.value.String(),
			}
		}
	}
	if marketPackSize.LessThanOrEqual(decimal.Zero) {
		return nil, &InvalidConfigurationError{
			ProductID: productID,
			Field:     "market_pack_size",
			Reason:    "must be positive, got " + marketPackSize.String(),
		}
	}
	if peakSeasonMultiplier.LessThan(one) {
		return nil, &InvalidConfigurationError{
			ProductID: productID,
			Field:     "peak_season_buffer_multiplier",
			Reason:    "must be at least 1, got " + peakSeasonMultiplier.String(),
		}
	}
	months := make(map[time.Month]bool, len(peakSeasonMonths))
	for _, m := range peakSeasonMonths {
		if m < time.January || m > time.December {
			return nil, &InvalidConfigurationError{
				ProductID: productID,
				Field:     "peak_season_months",
				Reason:    "month out of range",
			}
		}
		months[m] = true
	}

	return &BufferProfile{
		ProductID:            productID,
		SpoilageRate:         spoilageRate,
		CuttingWasteRate:     cuttingWasteRate,
		QualityRejectionRate: qualityRejectionRate,
		MarketPackSize:       marketPackSize,
		MarketPackUnit:       marketPackUnit,
		IsSeasonal:           isSeasonal,
		PeakSeasonMonths:     months,
		PeakSeasonMultiplier: peakSeasonMultiplier,
	}, nil
}

// TotalBufferRate is the additive combination of the three waste rates.
// Additive rather than compounding: this understates combined waste for
// large rates but matches long-standing purchasing practice here.
func (p *BufferProfile) TotalBufferRate() decimal.Decimal {
	return p.SpoilageRate.Add(p.CuttingWasteRate).Add(p.QualityRejectionRate)
}

// SeasonalMultiplier returns the peak multiplier when the given month is in
// season for a seasonal product, else 1
func (p *BufferProfile) SeasonalMultiplier(month time.Month) decimal.Decimal {
	if p.IsSeasonal && p.PeakSeasonMonths[month] {
		return p.PeakSeasonMultiplier
	}
	return decimal.NewFromInt(1)
}

// BufferedQuantity is the result of applying a buffer profile to a net
// shortfall
type BufferedQuantity struct {
	ProductID          ProductID
	NetNeeded          decimal.Decimal
	RawQuantity        decimal.Decimal // before pack rounding
	MarketQuantity     decimal.Decimal // rounded up to whole packs, >= NetNeeded
	MarketPacks        int64
	TotalBufferRate    decimal.Decimal
	SeasonalMultiplier decimal.Decimal
}
