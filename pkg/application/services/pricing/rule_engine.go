package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// RuleEngine computes customer-segment markups over volatile market prices.
// It is independent of the procurement pipeline and invoked per
// (product, customer, market price).
type RuleEngine struct {
	rules repositories.PricingRuleRepository
}

// NewRuleEngine creates a new pricing rule engine
func NewRuleEngine(rules repositories.PricingRuleRepository) *RuleEngine {
	return &RuleEngine{rules: rules}
}

// CalculateMarkup applies a rule's adjustments to the base markup:
// volatility adjustment when the market is volatile, the department
// category adjustment, the trend multiplier, then the flat seasonal
// adjustment. The result is clamped to the rule's minimum margin.
func (e *RuleEngine) CalculateMarkup(
	rule *entities.PricingRule,
	product *entities.Product,
	condition entities.MarketCondition,
) decimal.Decimal {
	markup := rule.BaseMarkupPct

	if condition == entities.VolatileMarket {
		markup = markup.Add(rule.VolatilityAdjustment)
	}
	if adjustment, ok := rule.CategoryAdjustments[product.Department]; ok {
		markup = markup.Add(adjustment)
	}

	markup = markup.Mul(rule.TrendMultiplier)
	markup = markup.Add(rule.SeasonalAdjustment)

	if markup.LessThan(rule.MinimumMarginPct) {
		markup = rule.MinimumMarginPct
	}
	return markup
}

// CustomerPrice converts a market price into the sell price for a rule:
// marketPrice * (1 + markup/100). VAT is the caller's concern.
func (e *RuleEngine) CustomerPrice(
	rule *entities.PricingRule,
	product *entities.Product,
	marketPrice decimal.Decimal,
	condition entities.MarketCondition,
) decimal.Decimal {
	markup := e.CalculateMarkup(rule, product, condition)
	hundred := decimal.NewFromInt(100)
	return marketPrice.Mul(decimal.NewFromInt(1).Add(markup.Div(hundred)))
}

// PriceForSegment resolves the effective rule for a segment and prices the
// product with it. Returns an error when no rule is effective on the date.
func (e *RuleEngine) PriceForSegment(
	segment entities.CustomerSegment,
	product *entities.Product,
	marketPrice decimal.Decimal,
	condition entities.MarketCondition,
	date time.Time,
) (decimal.Decimal, error) {
	rule, found, err := e.rules.GetPricingRule(segment, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve pricing rule: %w", err)
	}
	if !found {
		return decimal.Zero, fmt.Errorf("no pricing rule effective for segment %s on %s",
			segment, date.Format("2006-01-02"))
	}
	return e.CustomerPrice(rule, product, marketPrice, condition), nil
}
