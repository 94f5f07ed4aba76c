package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MarketCondition describes the state of the market a price was taken in
type MarketCondition int

const (
	StableMarket MarketCondition = iota
	VolatileMarket
)

// String method for MarketCondition enum
func (c MarketCondition) String() string {
	switch c {
	case StableMarket:
		return "stable"
	case VolatileMarket:
		return "volatile"
	default:
		return "Unknown"
	}
}

// PricingRule holds the markup parameters for one customer segment.
// Rules are authored by an operator and read-only to the engine.
type PricingRule struct {
	CustomerSegment      CustomerSegment
	BaseMarkupPct        decimal.Decimal
	VolatilityAdjustment decimal.Decimal
	CategoryAdjustments  map[Department]decimal.Decimal
	TrendMultiplier      decimal.Decimal // > 0
	SeasonalAdjustment   decimal.Decimal
	MinimumMarginPct     decimal.Decimal
	EffectiveFrom        *time.Time
	EffectiveUntil       *time.Time
	IsActive             bool
}

// NewPricingRule creates a validated PricingRule
func NewPricingRule(
	segment CustomerSegment,
	baseMarkupPct, volatilityAdjustment decimal.Decimal,
	categoryAdjustments map[Department]decimal.Decimal,
	trendMultiplier, seasonalAdjustment, minimumMarginPct decimal.Decimal,
	effectiveFrom, effectiveUntil *time.Time,
	isActive bool,
) (*PricingRule, error) {
	if segment == "" {
		return nil, fmt.Errorf("customer segment cannot be empty")
	}
	if trendMultiplier.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("trend multiplier must be positive, got %s", trendMultiplier)
	}
	if minimumMarginPct.IsNegative() {
		return nil, fmt.Errorf("minimum margin cannot be negative, got %s", minimumMarginPct)
	}
	if effectiveFrom != nil && effectiveUntil != nil && effectiveUntil.Before(*effectiveFrom) {
		return nil, fmt.Errorf("effective until cannot precede effective from")
	}
	if categoryAdjustments == nil {
		categoryAdjustments = map[Department]decimal.Decimal{}
	}

	return &PricingRule{
		CustomerSegment:      segment,
		BaseMarkupPct:        baseMarkupPct,
		VolatilityAdjustment: volatilityAdjustment,
		CategoryAdjustments:  categoryAdjustments,
		TrendMultiplier:      trendMultiplier,
		SeasonalAdjustment:   seasonalAdjustment,
		MinimumMarginPct:     minimumMarginPct,
		EffectiveFrom:        effectiveFrom,
		EffectiveUntil:       effectiveUntil,
		IsActive:             isActive,
	}, nil
}

// IsEffective reports whether the rule applies on the given date
func (r *PricingRule) IsEffective(date time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.EffectiveFrom != nil && date.Before(*r.EffectiveFrom) {
		return false
	}
	if r.EffectiveUntil != nil && date.After(*r.EffectiveUntil) {
		return false
	}
	return true
}
