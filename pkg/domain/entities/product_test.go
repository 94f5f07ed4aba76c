package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProduct_Validation(t *testing.T) {
	price := decimal.NewFromInt(20)
	validProduct, err := NewProduct("PROD-1", "Lemons", DeptFruits, UnitKG, &price, false)
	if err != nil {
		t.Fatalf("Expected valid product creation to succeed: %v", err)
	}
	if validProduct.ID != "PROD-1" {
		t.Errorf("Expected product id PROD-1, got %s", validProduct.ID)
	}

	negative := decimal.NewFromInt(-1)
	testCases := []struct {
		name       string
		id         ProductID
		prodName   string
		unit       Unit
		price      *decimal.Decimal
		expectFail bool
	}{
		{"empty id", "", "Lemons", UnitKG, nil, true},
		{"empty name", "PROD-1", "", UnitKG, nil, true},
		{"empty unit", "PROD-1", "Lemons", "", nil, true},
		{"negative price", "PROD-1", "Lemons", UnitKG, &negative, true},
		{"no price is fine", "PROD-1", "Lemons", UnitKG, nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct(tc.id, tc.prodName, DeptFruits, tc.unit, tc.price, false)
			if tc.expectFail && err == nil {
				t.Errorf("Expected error for %s, got nil", tc.name)
			}
			if !tc.expectFail && err != nil {
				t.Errorf("Expected success for %s, got %v", tc.name, err)
			}
		})
	}
}

func TestProduct_PackSizeKG(t *testing.T) {
	testCases := []struct {
		name       string
		prodName   string
		unit       Unit
		expectOK   bool
		expectSize string
	}{
		{"grams in packet name", "Carrots (250g packet)", UnitPacket, true, "0.25"},
		{"kilograms in bag name", "Potatoes (2kg bag)", UnitBag, true, "2"},
		{"fractional kilograms", "Baby Spinach (0.5kg box)", UnitBox, true, "0.5"},
		{"space before unit", "Cherry Tomatoes (200 g punnet)", UnitPunnet, true, "0.2"},
		{"no size encoded", "Lemons", UnitEach, false, "0"},
		{"weight product ignores name", "Onions (10kg sack)", UnitKG, false, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			product, err := NewProduct("P", tc.prodName, DeptVegetables, tc.unit, nil, false)
			if err != nil {
				t.Fatalf("Failed to create product: %v", err)
			}
			size, ok := product.PackSizeKG()
			if ok != tc.expectOK {
				t.Fatalf("Expected ok=%v for %q, got %v", tc.expectOK, tc.prodName, ok)
			}
			if ok {
				expected := decimal.RequireFromString(tc.expectSize)
				if !size.Equal(expected) {
					t.Errorf("Expected pack size %s kg, got %s", expected, size)
				}
			}
		})
	}
}

func TestUnit_Class(t *testing.T) {
	if UnitKG.Class() != WeightUnit {
		t.Errorf("Expected kg to be a weight unit")
	}
	if UnitPacket.Class() != DiscreteUnit {
		t.Errorf("Expected packet to be a discrete unit")
	}
	if Unit("crate").Class() != DiscreteUnit {
		t.Errorf("Expected unknown units to default to discrete")
	}
}
