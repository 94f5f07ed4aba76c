// Package testing provides shared fixture helpers for service tests.
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// Dec parses a decimal literal, panicking on malformed test data
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// MustProduct builds a product, panicking on validation error
func MustProduct(
	id, name string,
	dept entities.Department,
	unit entities.Unit,
	retailPrice string,
	composite bool,
) *entities.Product {
	var price *decimal.Decimal
	if retailPrice != "" {
		parsed := Dec(retailPrice)
		price = &parsed
	}
	product, err := entities.NewProduct(
		entities.ProductID(id), name, dept, unit, price, composite,
	)
	if err != nil {
		panic(err)
	}
	return product
}

// MustIngredient builds a recipe ingredient, panicking on validation error
func MustIngredient(id, qty string) entities.RecipeIngredient {
	ingredient, err := entities.NewRecipeIngredient(entities.ProductID(id), Dec(qty))
	if err != nil {
		panic(err)
	}
	return *ingredient
}

// MustOrder builds an order, panicking on validation error
func MustOrder(
	id string,
	segment entities.CustomerSegment,
	date time.Time,
	items ...entities.OrderItem,
) *entities.Order {
	order, err := entities.NewOrder(entities.OrderID(id), segment, date, items)
	if err != nil {
		panic(err)
	}
	return order
}

// Item builds an order line
func Item(productID, qty string) entities.OrderItem {
	return entities.OrderItem{
		ProductID: entities.ProductID(productID),
		Quantity:  Dec(qty),
	}
}

// MustOffer builds a supplier offer, panicking on validation error
func MustOffer(
	supplierID, supplierName, productID string,
	unitPrice, availableQty string,
	leadTimeDays int,
	qualityRating string,
	available bool,
) *entities.SupplierOffer {
	offer, err := entities.NewSupplierOffer(
		entities.SupplierID(supplierID),
		supplierName,
		entities.ProductID(productID),
		Dec(unitPrice), Dec(availableQty),
		leadTimeDays,
		Dec(qualityRating), decimal.Zero,
		available,
	)
	if err != nil {
		panic(err)
	}
	return offer
}

// MustProfile builds a buffer profile, panicking on validation error
func MustProfile(
	productID string,
	spoilage, cutting, rejection, packSize string,
	seasonal bool,
	months []time.Month,
	multiplier string,
) *entities.BufferProfile {
	profile, err := entities.NewBufferProfile(
		entities.ProductID(productID),
		Dec(spoilage), Dec(cutting), Dec(rejection),
		Dec(packSize), entities.UnitKG,
		seasonal, months, Dec(multiplier),
	)
	if err != nil {
		panic(err)
	}
	return profile
}

// MustRule builds a pricing rule, panicking on validation error
func MustRule(
	segment entities.CustomerSegment,
	baseMarkup, volatility string,
	categoryAdjustments map[entities.Department]string,
	trendMultiplier, seasonalAdjustment, minimumMargin string,
) *entities.PricingRule {
	adjustments := make(map[entities.Department]decimal.Decimal, len(categoryAdjustments))
	for dept, value := range categoryAdjustments {
		adjustments[dept] = Dec(value)
	}
	rule, err := entities.NewPricingRule(
		segment,
		Dec(baseMarkup), Dec(volatility), adjustments,
		Dec(trendMultiplier), Dec(seasonalAdjustment), Dec(minimumMargin),
		nil, nil, true,
	)
	if err != nil {
		panic(err)
	}
	return rule
}
