package memory

import (
	"time"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// PricingRuleRepository provides in-memory pricing rule storage
type PricingRuleRepository struct {
	rules []*entities.PricingRule
}

// NewPricingRuleRepository creates a new in-memory pricing rule repository
func NewPricingRuleRepository() *PricingRuleRepository {
	return &PricingRuleRepository{}
}

// Verify interface compliance
var _ repositories.PricingRuleRepository = (*PricingRuleRepository)(nil)

// LoadPricingRules loads rules into the repository
func (r *PricingRuleRepository) LoadPricingRules(rules []*entities.PricingRule) error {
	r.rules = append(r.rules, rules...)
	return nil
}

// GetPricingRule returns the first rule effective for a segment on a date
func (r *PricingRuleRepository) GetPricingRule(
	segment entities.CustomerSegment,
	date time.Time,
) (*entities.PricingRule, bool, error) {
	for _, rule := range r.rules {
		if rule.CustomerSegment == segment && rule.IsEffective(date) {
			return rule, true, nil
		}
	}
	return nil, false, nil
}
