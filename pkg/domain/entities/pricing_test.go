package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPricingRule_Validation(t *testing.T) {
	_, err := NewPricingRule(
		SegmentRestaurant,
		mustDecimal("35"), mustDecimal("5"),
		map[Department]decimal.Decimal{DeptVegetables: mustDecimal("10")},
		mustDecimal("1.2"), mustDecimal("2.5"), mustDecimal("25"),
		nil, nil, true,
	)
	if err != nil {
		t.Fatalf("Expected valid rule creation to succeed: %v", err)
	}

	_, err = NewPricingRule(
		SegmentRestaurant,
		mustDecimal("35"), mustDecimal("5"), nil,
		mustDecimal("0"), mustDecimal("2.5"), mustDecimal("25"),
		nil, nil, true,
	)
	if err == nil {
		t.Errorf("Expected error for zero trend multiplier")
	}

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err = NewPricingRule(
		SegmentRestaurant,
		mustDecimal("35"), mustDecimal("0"), nil,
		mustDecimal("1"), mustDecimal("0"), mustDecimal("0"),
		&from, &until, true,
	)
	if err == nil {
		t.Errorf("Expected error for inverted effective window")
	}
}

func TestPricingRule_IsEffective(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	rule, err := NewPricingRule(
		SegmentRetail,
		mustDecimal("40"), mustDecimal("0"), nil,
		mustDecimal("1"), mustDecimal("0"), mustDecimal("20"),
		&from, &until, true,
	)
	if err != nil {
		t.Fatalf("Failed to create rule: %v", err)
	}

	testCases := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{"inside window", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"on start date", from, true},
		{"on end date", until, true},
		{"before window", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"after window", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rule.IsEffective(tc.date); got != tc.expected {
				t.Errorf("Expected IsEffective=%v for %s, got %v", tc.expected, tc.name, got)
			}
		})
	}

	rule.IsActive = false
	if rule.IsEffective(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected inactive rule to never be effective")
	}

	// Open-ended rules apply from any date once active
	openEnded, err := NewPricingRule(
		SegmentWholesale,
		mustDecimal("25"), mustDecimal("0"), nil,
		mustDecimal("1"), mustDecimal("0"), mustDecimal("15"),
		nil, nil, true,
	)
	if err != nil {
		t.Fatalf("Failed to create rule: %v", err)
	}
	if !openEnded.IsEffective(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected open-ended active rule to be effective")
	}
}
