package repositories

import (
	"time"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// PricingRuleRepository provides access to customer-segment pricing rules
type PricingRuleRepository interface {
	// GetPricingRule returns the rule effective for a segment on a date.
	// found is false when no effective rule exists.
	GetPricingRule(segment entities.CustomerSegment, date time.Time) (*entities.PricingRule, bool, error)
	LoadPricingRules(rules []*entities.PricingRule) error
}
