package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID uniquely identifies a product
type ProductID string

// Department groups products for pricing and buffer defaults
type Department string

const (
	DeptVegetables Department = "vegetables"
	DeptFruits     Department = "fruits"
	DeptHerbs      Department = "herbs"
	DeptSpices     Department = "spices"
	DeptMushrooms  Department = "mushrooms"
	DeptBoxes      Department = "boxes"
	DeptOther      Department = "other"
)

// Unit is the unit a product is ordered and stocked in
type Unit string

const (
	UnitKG     Unit = "kg"
	UnitGram   Unit = "g"
	UnitEach   Unit = "each"
	UnitPacket Unit = "packet"
	UnitBag    Unit = "bag"
	UnitBox    Unit = "box"
	UnitPunnet Unit = "punnet"
	UnitBunch  Unit = "bunch"
	UnitHead   Unit = "head"
)

// UnitClass distinguishes weight-measured products from discrete-count ones
type UnitClass int

const (
	WeightUnit UnitClass = iota
	DiscreteUnit
)

// String method for UnitClass enum
func (c UnitClass) String() string {
	switch c {
	case WeightUnit:
		return "Weight"
	case DiscreteUnit:
		return "Discrete"
	default:
		return "Unknown"
	}
}

// Class returns the unit class for a unit. Unknown units are treated as
// discrete, matching how they are counted in inventory.
func (u Unit) Class() UnitClass {
	switch u {
	case UnitKG, UnitGram:
		return WeightUnit
	default:
		return DiscreteUnit
	}
}

// Product represents a sellable or raw product
type Product struct {
	ID              ProductID
	Name            string
	Department      Department
	Unit            Unit
	BaseRetailPrice *decimal.Decimal // nil when no retail price is maintained
	IsComposite     bool             // has a recipe that decomposes into raw products
}

// NewProduct creates a validated Product
func NewProduct(
	id ProductID,
	name string,
	department Department,
	unit Unit,
	baseRetailPrice *decimal.Decimal,
	isComposite bool,
) (*Product, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if unit == "" {
		return nil, fmt.Errorf("product unit cannot be empty")
	}
	if baseRetailPrice != nil && baseRetailPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("base retail price must be positive, got %s", baseRetailPrice)
	}

	return &Product{
		ID:              id,
		Name:            name,
		Department:      department,
		Unit:            unit,
		BaseRetailPrice: baseRetailPrice,
		IsComposite:     isComposite,
	}, nil
}

// RecipeIngredient is one line of a composite product's recipe.
// Quantity is per one unit of the composite product.
type RecipeIngredient struct {
	IngredientID ProductID
	Quantity     decimal.Decimal
}

// NewRecipeIngredient creates a validated RecipeIngredient
func NewRecipeIngredient(ingredientID ProductID, quantity decimal.Decimal) (*RecipeIngredient, error) {
	if string(ingredientID) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("ingredient quantity must be positive, got %s", quantity)
	}

	return &RecipeIngredient{
		IngredientID: ingredientID,
		Quantity:     quantity,
	}, nil
}

// packSizePattern matches a package size embedded in a product name,
// e.g. "Carrots (250g packet)" or "Potatoes (2kg bag)".
var packSizePattern = regexp.MustCompile(`\((\d+(?:\.\d+)?)\s*(kg|g)\b`)

// PackSizeKG parses a discrete package size out of the product name and
// normalizes it to kilograms. The second return is false when the name does
// not encode a size, or the product is not sold in discrete packages.
func (p *Product) PackSizeKG() (decimal.Decimal, bool) {
	if p.Unit.Class() != DiscreteUnit {
		return decimal.Zero, false
	}
	match := packSizePattern.FindStringSubmatch(strings.ToLower(p.Name))
	if match == nil {
		return decimal.Zero, false
	}
	size, err := decimal.NewFromString(match[1])
	if err != nil || size.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	if match[2] == "g" {
		size = size.Div(decimal.NewFromInt(1000))
	}
	return size, true
}
