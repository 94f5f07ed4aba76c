package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// Loader handles loading procurement fixtures from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProducts loads the product catalog from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readRecords(filename, "products",
		[]string{"product_id", "name", "department", "unit", "base_retail_price", "is_composite"})
	if err != nil {
		return nil, err
	}

	var products []*entities.Product
	for i, record := range records {
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}

	return products, nil
}

// LoadRecipes loads recipe lines from a CSV file, grouped by parent product
func (l *Loader) LoadRecipes(filename string) (map[entities.ProductID][]entities.RecipeIngredient, error) {
	records, err := readRecords(filename, "recipes",
		[]string{"parent_id", "ingredient_id", "quantity"})
	if err != nil {
		return nil, err
	}

	recipes := make(map[entities.ProductID][]entities.RecipeIngredient)
	for i, record := range records {
		parentID := entities.ProductID(record[0])

		quantity, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("recipes CSV row %d: invalid quantity: %s", i+2, record[2])
		}
		ingredient, err := entities.NewRecipeIngredient(entities.ProductID(record[1]), quantity)
		if err != nil {
			return nil, fmt.Errorf("recipes CSV row %d: %w", i+2, err)
		}

		recipes[parentID] = append(recipes[parentID], *ingredient)
	}

	return recipes, nil
}

// LoadOrders loads orders from a CSV file. Each row is one order line; rows
// sharing an order_id are grouped into a single order and must agree on
// segment and date.
func (l *Loader) LoadOrders(filename string) ([]*entities.Order, error) {
	records, err := readRecords(filename, "orders",
		[]string{"order_id", "customer_segment", "order_date", "product_id", "quantity"})
	if err != nil {
		return nil, err
	}

	type orderDraft struct {
		segment entities.CustomerSegment
		date    time.Time
		items   []entities.OrderItem
	}
	drafts := make(map[entities.OrderID]*orderDraft)
	var orderIDs []entities.OrderID // first-seen order, preserved

	for i, record := range records {
		orderID := entities.OrderID(record[0])

		segment, err := parseSegment(record[1])
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		date, err := time.Parse("2006-01-02", record[2])
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: invalid order_date: %s (expected YYYY-MM-DD)", i+2, record[2])
		}
		quantity, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: invalid quantity: %s", i+2, record[4])
		}

		draft, exists := drafts[orderID]
		if !exists {
			draft = &orderDraft{segment: segment, date: date}
			drafts[orderID] = draft
			orderIDs = append(orderIDs, orderID)
		} else if draft.segment != segment || !draft.date.Equal(date) {
			return nil, fmt.Errorf("orders CSV row %d: order %s lines disagree on segment or date", i+2, orderID)
		}

		draft.items = append(draft.items, entities.OrderItem{
			ProductID: entities.ProductID(record[3]),
			Quantity:  quantity,
		})
	}

	orders := make([]*entities.Order, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		draft := drafts[orderID]
		order, err := entities.NewOrder(orderID, draft.segment, draft.date, draft.items)
		if err != nil {
			return nil, fmt.Errorf("orders CSV: order %s: %w", orderID, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// LoadInventory loads stock levels from a CSV file
func (l *Loader) LoadInventory(filename string) ([]repositories.StockLevel, error) {
	records, err := readRecords(filename, "inventory",
		[]string{"product_id", "current_stock", "minimum_stock"})
	if err != nil {
		return nil, err
	}

	var levels []repositories.StockLevel
	for i, record := range records {
		current, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid current_stock: %s", i+2, record[1])
		}
		minimum, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid minimum_stock: %s", i+2, record[2])
		}

		levels = append(levels, repositories.StockLevel{
			ProductID:    entities.ProductID(record[0]),
			Count:        current,
			MinimumStock: minimum,
		})
	}

	return levels, nil
}

// LoadSupplierOffers loads supplier offers from a CSV file
func (l *Loader) LoadSupplierOffers(filename string) ([]*entities.SupplierOffer, error) {
	records, err := readRecords(filename, "suppliers",
		[]string{"supplier_id", "supplier_name", "product_id", "unit_price",
			"available_qty", "lead_time_days", "quality_rating", "min_order_qty", "available"})
	if err != nil {
		return nil, err
	}

	var offers []*entities.SupplierOffer
	for i, record := range records {
		offer, err := parseSupplierOffer(record)
		if err != nil {
			return nil, fmt.Errorf("suppliers CSV row %d: %w", i+2, err)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

// LoadPricingRules loads pricing rules from a CSV file
func (l *Loader) LoadPricingRules(filename string) ([]*entities.PricingRule, error) {
	records, err := readRecords(filename, "pricing rules",
		[]string{"customer_segment", "base_markup_pct", "volatility_adjustment",
			"category_adjustments", "trend_multiplier", "seasonal_adjustment",
			"minimum_margin_pct", "effective_from", "effective_until", "active"})
	if err != nil {
		return nil, err
	}

	var rules []*entities.PricingRule
	for i, record := range records {
		rule, err := parsePricingRule(record)
		if err != nil {
			return nil, fmt.Errorf("pricing rules CSV row %d: %w", i+2, err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// readRecords opens a CSV file, validates its header, and returns the data
// rows with per-row column counts checked
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v",
			kind, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d",
				kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	department, err := parseDepartment(record[2])
	if err != nil {
		return nil, err
	}
	unit, err := parseUnit(record[3])
	if err != nil {
		return nil, err
	}

	var retailPrice *decimal.Decimal
	if record[4] != "" {
		price, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid base_retail_price: %s", record[4])
		}
		retailPrice = &price
	}

	isComposite, err := strconv.ParseBool(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid is_composite: %s", record[5])
	}

	return entities.NewProduct(
		entities.ProductID(record[0]), record[1], department, unit, retailPrice, isComposite)
}

func parseSupplierOffer(record []string) (*entities.SupplierOffer, error) {
	unitPrice, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid unit_price: %s", record[3])
	}
	availableQty, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid available_qty: %s", record[4])
	}
	leadTimeDays, err := strconv.Atoi(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %s", record[5])
	}
	qualityRating, err := decimal.NewFromString(record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid quality_rating: %s", record[6])
	}
	minOrderQty, err := decimal.NewFromString(record[7])
	if err != nil {
		return nil, fmt.Errorf("invalid min_order_qty: %s", record[7])
	}
	available, err := strconv.ParseBool(record[8])
	if err != nil {
		return nil, fmt.Errorf("invalid available: %s", record[8])
	}

	return entities.NewSupplierOffer(
		entities.SupplierID(record[0]), record[1], entities.ProductID(record[2]),
		unitPrice, availableQty, leadTimeDays, qualityRating, minOrderQty, available)
}

func parsePricingRule(record []string) (*entities.PricingRule, error) {
	segment, err := parseSegment(record[0])
	if err != nil {
		return nil, err
	}
	baseMarkup, err := decimal.NewFromString(record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid base_markup_pct: %s", record[1])
	}
	volatility, err := decimal.NewFromString(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid volatility_adjustment: %s", record[2])
	}
	adjustments, err := parseCategoryAdjustments(record[3])
	if err != nil {
		return nil, err
	}
	trendMultiplier, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid trend_multiplier: %s", record[4])
	}
	seasonal, err := decimal.NewFromString(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid seasonal_adjustment: %s", record[5])
	}
	minimumMargin, err := decimal.NewFromString(record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid minimum_margin_pct: %s", record[6])
	}
	effectiveFrom, err := parseOptionalDate(record[7], "effective_from")
	if err != nil {
		return nil, err
	}
	effectiveUntil, err := parseOptionalDate(record[8], "effective_until")
	if err != nil {
		return nil, err
	}
	active, err := strconv.ParseBool(record[9])
	if err != nil {
		return nil, fmt.Errorf("invalid active: %s", record[9])
	}

	return entities.NewPricingRule(
		segment, baseMarkup, volatility, adjustments,
		trendMultiplier, seasonal, minimumMargin,
		effectiveFrom, effectiveUntil, active)
}

// parseCategoryAdjustments parses "dept:value|dept:value" pairs; an empty
// field means no adjustments
func parseCategoryAdjustments(s string) (map[entities.Department]decimal.Decimal, error) {
	adjustments := make(map[entities.Department]decimal.Decimal)
	if strings.TrimSpace(s) == "" {
		return adjustments, nil
	}

	for _, pair := range strings.Split(s, "|") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid category adjustment %q (expected dept:value)", pair)
		}
		department, err := parseDepartment(parts[0])
		if err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid category adjustment value: %s", parts[1])
		}
		adjustments[department] = value
	}

	return adjustments, nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s (expected YYYY-MM-DD)", field, s)
	}
	return &date, nil
}

func parseDepartment(s string) (entities.Department, error) {
	switch entities.Department(strings.ToLower(strings.TrimSpace(s))) {
	case entities.DeptVegetables:
		return entities.DeptVegetables, nil
	case entities.DeptFruits:
		return entities.DeptFruits, nil
	case entities.DeptHerbs:
		return entities.DeptHerbs, nil
	case entities.DeptSpices:
		return entities.DeptSpices, nil
	case entities.DeptMushrooms:
		return entities.DeptMushrooms, nil
	case entities.DeptBoxes:
		return entities.DeptBoxes, nil
	case entities.DeptOther:
		return entities.DeptOther, nil
	default:
		return "", fmt.Errorf("invalid department: %s", s)
	}
}

func parseUnit(s string) (entities.Unit, error) {
	switch entities.Unit(strings.ToLower(strings.TrimSpace(s))) {
	case entities.UnitKG:
		return entities.UnitKG, nil
	case entities.UnitGram:
		return entities.UnitGram, nil
	case entities.UnitEach:
		return entities.UnitEach, nil
	case entities.UnitPacket:
		return entities.UnitPacket, nil
	case entities.UnitBag:
		return entities.UnitBag, nil
	case entities.UnitBox:
		return entities.UnitBox, nil
	case entities.UnitPunnet:
		return entities.UnitPunnet, nil
	case entities.UnitBunch:
		return entities.UnitBunch, nil
	case entities.UnitHead:
		return entities.UnitHead, nil
	default:
		return "", fmt.Errorf("invalid unit: %s", s)
	}
}

func parseSegment(s string) (entities.CustomerSegment, error) {
	switch entities.CustomerSegment(strings.ToLower(strings.TrimSpace(s))) {
	case entities.SegmentRestaurant:
		return entities.SegmentRestaurant, nil
	case entities.SegmentRetail:
		return entities.SegmentRetail, nil
	case entities.SegmentWholesale:
		return entities.SegmentWholesale, nil
	case entities.SegmentPrivate:
		return entities.SegmentPrivate, nil
	default:
		return "", fmt.Errorf("invalid customer_segment: %s (expected restaurant, retail, wholesale, or private)", s)
	}
}
