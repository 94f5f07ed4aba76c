package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fambrifarms/procure/pkg/application/dto"
	"github.com/fambrifarms/procure/pkg/application/services/allocation"
	"github.com/fambrifarms/procure/pkg/application/services/pricing"
	"github.com/fambrifarms/procure/pkg/application/services/procurement"
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/services"
	"github.com/fambrifarms/procure/pkg/infrastructure/config"
	"github.com/fambrifarms/procure/pkg/infrastructure/events"
	"github.com/fambrifarms/procure/pkg/infrastructure/repositories/csv"
	"github.com/fambrifarms/procure/pkg/infrastructure/repositories/memory"
	"github.com/fambrifarms/procure/pkg/interfaces/cli/output"
)

// Config holds configuration for the procure command
type Config struct {
	ScenarioDir   string
	ProductsFile  string
	RecipesFile   string
	OrdersFile    string
	InventoryFile string
	SuppliersFile string
	PricingFile   string
	ConfigFile    string
	Date          string
	WindowDays    int
	Format        string
	Verbose       bool
	Help          bool
}

// ProcureCommand runs the procurement pipeline end to end: load fixtures,
// generate a recommendation, allocate suppliers, and render the result
type ProcureCommand struct {
	config Config
}

// NewProcureCommand creates a new procure command with the given configuration
func NewProcureCommand(config Config) *ProcureCommand {
	return &ProcureCommand{config: config}
}

// Execute runs the procure command
func (c *ProcureCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	forDate, err := c.resolveDate()
	if err != nil {
		return err
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.config.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	if c.config.Verbose {
		c.printHeader(files, forDate)
	}

	repos, pricingRules, err := c.loadRepositories(files)
	if err != nil {
		return err
	}

	// Recipe integrity check before any aggregation
	validation := services.NewRecipeValidator().ValidateRecipes(
		repos.products.ProductMap(), repos.products.RecipeMap())
	if !validation.Valid() {
		return fmt.Errorf("recipe validation failed: %v", validation.Errors)
	}
	if c.config.Verbose {
		fmt.Println("✅ Recipe validation passed")
	}

	service := procurement.NewService(
		repos.orders, repos.products, repos.inventory, repos.buffers, repos.suppliers,
		cfg.ProcurementPolicy(), logger,
	)

	from := forDate.AddDate(0, 0, -c.config.WindowDays)
	startTime := time.Now()
	run, err := service.GenerateRecommendation(ctx, from, forDate)
	if err != nil {
		return fmt.Errorf("error generating recommendation: %w", err)
	}

	auditTrail := events.NewInMemoryEventStore()
	recID := run.Recommendation.ID
	_ = auditTrail.AppendEvent(recID, events.NewEvent(
		events.RecommendationGeneratedEvent, recID,
		events.RecommendationGenerated{
			RecommendationID:   recID,
			ItemCount:          len(run.Recommendation.Items),
			OrdersConsidered:   run.OrdersConsidered,
			WarningCount:       len(run.Warnings),
			TotalEstimatedCost: run.Recommendation.TotalEstimatedCost,
		}))

	// Allocate suppliers for the recommended quantities
	allocationPolicy := cfg.AllocationPolicy()
	orderOptimizer := allocation.NewOrderOptimizer(
		allocation.NewOptimizer(repos.suppliers, allocationPolicy),
		allocationPolicy, logger,
	)
	requests := make([]allocation.ItemRequest, 0, len(run.Recommendation.Items))
	for _, item := range run.Recommendation.Items {
		requests = append(requests, allocation.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.RecommendedQuantity,
		})
	}

	var plan *dto.OrderAllocationPlan
	if len(requests) > 0 {
		allocated, err := orderOptimizer.OptimizeOrder(ctx, requests)
		if err != nil {
			return fmt.Errorf("error allocating suppliers: %w", err)
		}
		plan = allocated

		_ = auditTrail.AppendEvent(recID, events.NewEvent(
			events.AllocationPlannedEvent, recID,
			events.AllocationPlanned{
				RecommendationID:  recID,
				FullyFulfilled:    plan.FullyFulfilled,
				Unfulfilled:       plan.Unfulfilled,
				DistinctSuppliers: plan.DistinctSuppliers,
				TotalCost:         plan.TotalCost,
			}))
		for _, result := range plan.Items {
			if len(result.Allocations) == 0 {
				_ = auditTrail.AppendEvent(recID, events.NewEvent(
					events.AllocationFailedEvent, recID,
					events.AllocationFailed{
						RecommendationID: recID,
						ProductID:        result.ProductID,
						Reason:           result.FailureReason,
					}))
			}
		}
	}
	runTime := time.Since(startTime)

	if c.config.Verbose {
		if trail, err := auditTrail.ReadEvents(recID, 0); err == nil {
			fmt.Printf("🧾 Audit trail: %d event(s) for recommendation %s\n\n", len(trail), recID)
		}
	}

	report := &output.Report{Run: run, Plan: plan}

	if pricingRules != nil {
		report.Pricing, err = c.segmentPrices(run, repos, pricingRules, forDate)
		if err != nil {
			return fmt.Errorf("error pricing segments: %w", err)
		}
	}

	return output.Generate(report, output.Config{
		Format:  c.config.Format,
		Verbose: c.config.Verbose,
		RunTime: runTime,
	})
}

type repoSet struct {
	products  *memory.ProductRepository
	orders    *memory.OrderRepository
	inventory *memory.InventoryRepository
	buffers   *memory.BufferProfileRepository
	suppliers *memory.SupplierRepository
}

// loadRepositories loads all CSV fixtures into in-memory repositories. The
// pricing repository is returned separately and is nil when no pricing file
// was supplied.
func (c *ProcureCommand) loadRepositories(
	files map[string]string,
) (*repoSet, *memory.PricingRuleRepository, error) {
	loader := csv.NewLoader()
	repos := &repoSet{
		products:  memory.NewProductRepository(),
		orders:    memory.NewOrderRepository(),
		inventory: memory.NewInventoryRepository(),
		buffers:   memory.NewBufferProfileRepository(),
		suppliers: memory.NewSupplierRepository(),
	}

	products, err := loader.LoadProducts(files["Products"])
	if err != nil {
		return nil, nil, fmt.Errorf("error loading products: %w", err)
	}
	if err := repos.products.LoadProducts(products); err != nil {
		return nil, nil, fmt.Errorf("failed to load products into repository: %w", err)
	}

	if path, ok := files["Recipes"]; ok {
		recipes, err := loader.LoadRecipes(path)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading recipes: %w", err)
		}
		for parentID, ingredients := range recipes {
			if err := repos.products.LoadRecipe(parentID, ingredients); err != nil {
				return nil, nil, fmt.Errorf("failed to load recipe for %s: %w", parentID, err)
			}
		}
	}

	orders, err := loader.LoadOrders(files["Orders"])
	if err != nil {
		return nil, nil, fmt.Errorf("error loading orders: %w", err)
	}
	if err := repos.orders.LoadOrders(orders); err != nil {
		return nil, nil, fmt.Errorf("failed to load orders into repository: %w", err)
	}

	if path, ok := files["Inventory"]; ok {
		levels, err := loader.LoadInventory(path)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading inventory: %w", err)
		}
		if err := repos.inventory.LoadStockLevels(levels); err != nil {
			return nil, nil, fmt.Errorf("failed to load stock levels into repository: %w", err)
		}
	}

	if path, ok := files["Suppliers"]; ok {
		offers, err := loader.LoadSupplierOffers(path)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading supplier offers: %w", err)
		}
		if err := repos.suppliers.LoadSupplierOffers(offers); err != nil {
			return nil, nil, fmt.Errorf("failed to load offers into repository: %w", err)
		}
	}

	var pricingRules *memory.PricingRuleRepository
	if path, ok := files["Pricing"]; ok {
		rules, err := loader.LoadPricingRules(path)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading pricing rules: %w", err)
		}
		pricingRules = memory.NewPricingRuleRepository()
		if err := pricingRules.LoadPricingRules(rules); err != nil {
			return nil, nil, fmt.Errorf("failed to load pricing rules into repository: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Products: %d\n", len(products))
		fmt.Printf("  Orders: %d\n", len(orders))
		fmt.Println()
	}

	return repos, pricingRules, nil
}

// segmentPrices computes the sell price of each recommended product for every
// customer segment with an effective rule on the recommendation date
func (c *ProcureCommand) segmentPrices(
	run *dto.ProcurementRun,
	repos *repoSet,
	rules *memory.PricingRuleRepository,
	forDate time.Time,
) ([]output.SegmentPrice, error) {
	engine := pricing.NewRuleEngine(rules)
	segments := []entities.CustomerSegment{
		entities.SegmentRestaurant, entities.SegmentRetail,
		entities.SegmentWholesale, entities.SegmentPrivate,
	}

	var prices []output.SegmentPrice
	for _, item := range run.Recommendation.Items {
		product, err := repos.products.GetProduct(item.ProductID)
		if err != nil {
			return nil, err
		}
		for _, segment := range segments {
			sellPrice, err := engine.PriceForSegment(
				segment, product, item.EstimatedUnitPrice, entities.StableMarket, forDate)
			if err != nil {
				// Segments without an effective rule are simply omitted
				continue
			}
			prices = append(prices, output.SegmentPrice{
				ProductID:   string(item.ProductID),
				ProductName: item.ProductName,
				Segment:     string(segment),
				MarketPrice: item.EstimatedUnitPrice.Round(2).String(),
				SellPrice:   sellPrice.Round(2).String(),
			})
		}
	}

	return prices, nil
}

// validateInputs validates the command configuration
func (c *ProcureCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.ProductsFile == "" || c.config.OrdersFile == "") {
		return fmt.Errorf("must specify either -scenario directory or at least -products and -orders files")
	}
	if c.config.Format != "text" && c.config.Format != "json" {
		return fmt.Errorf("unsupported format: %s (expected text or json)", c.config.Format)
	}
	if c.config.WindowDays < 0 {
		return fmt.Errorf("window days cannot be negative")
	}
	return nil
}

// resolveDate parses the -date flag, defaulting to today
func (c *ProcureCommand) resolveDate() (time.Time, error) {
	if c.config.Date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", c.config.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", c.config.Date)
	}
	return date, nil
}

// resolveInputFiles determines the actual file paths to use. Products and
// orders are required; the rest are optional and omitted when absent.
func (c *ProcureCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{}

	if c.config.ScenarioDir != "" {
		required := map[string]string{
			"Products": filepath.Join(c.config.ScenarioDir, "products.csv"),
			"Orders":   filepath.Join(c.config.ScenarioDir, "orders.csv"),
		}
		optional := map[string]string{
			"Recipes":   filepath.Join(c.config.ScenarioDir, "recipes.csv"),
			"Inventory": filepath.Join(c.config.ScenarioDir, "inventory.csv"),
			"Suppliers": filepath.Join(c.config.ScenarioDir, "suppliers.csv"),
			"Pricing":   filepath.Join(c.config.ScenarioDir, "pricing_rules.csv"),
		}
		for name, path := range required {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return nil, fmt.Errorf("%s file not found: %s", name, path)
			}
			files[name] = path
		}
		for name, path := range optional {
			if _, err := os.Stat(path); err == nil {
				files[name] = path
			}
		}
		return files, nil
	}

	files["Products"] = c.config.ProductsFile
	files["Orders"] = c.config.OrdersFile
	for name, path := range map[string]string{
		"Recipes":   c.config.RecipesFile,
		"Inventory": c.config.InventoryFile,
		"Suppliers": c.config.SuppliersFile,
		"Pricing":   c.config.PricingFile,
	} {
		if path != "" {
			files[name] = path
		}
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *ProcureCommand) printHeader(files map[string]string, forDate time.Time) {
	fmt.Printf("🥕 Procurement Engine CLI\n")
	fmt.Printf("Input files:\n")
	for _, name := range []string{"Products", "Recipes", "Orders", "Inventory", "Suppliers", "Pricing"} {
		if path, ok := files[name]; ok {
			fmt.Printf("  %s: %s\n", name, path)
		}
	}
	fmt.Printf("For date: %s (orders since %s)\n",
		forDate.Format("2006-01-02"),
		forDate.AddDate(0, 0, -c.config.WindowDays).Format("2006-01-02"))
	fmt.Printf("Output format: %s\n", c.config.Format)
	fmt.Println()
}

// showHelp displays the help message
func (c *ProcureCommand) showHelp() {
	fmt.Printf(`Procurement Engine CLI - Market Buying Recommendations for Fresh Produce

USAGE:
    procure -scenario <directory>               # Use scenario directory with CSV files
    procure -products <file> -orders <file> ... # Use individual CSV files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -products <file>    Path to products CSV file
    -recipes <file>     Path to recipes CSV file (optional)
    -orders <file>      Path to orders CSV file
    -inventory <file>   Path to inventory CSV file (optional)
    -suppliers <file>   Path to supplier offers CSV file (optional)
    -pricing <file>     Path to pricing rules CSV file (optional)
    -config <file>      Path to TOML configuration file (optional)
    -date <YYYY-MM-DD>  Recommendation date (default: today)
    -window <days>      Days of orders before the date to consider (default: 7)
    -format <fmt>       Output format: text, json (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── products.csv       # Product catalog
    ├── recipes.csv        # Box recipes (optional)
    ├── orders.csv         # Customer orders
    ├── inventory.csv      # Current stock levels (optional)
    ├── suppliers.csv      # Supplier offers (optional)
    └── pricing_rules.csv  # Segment pricing rules (optional)

CSV FILE FORMATS:

products.csv:
    product_id,name,department,unit,base_retail_price,is_composite
    CARROTS,Carrots,vegetables,kg,20,false
    BOX-SMALL,Small Veg Box,boxes,each,,true

recipes.csv:
    parent_id,ingredient_id,quantity
    BOX-SMALL,CARROTS,2

orders.csv:
    order_id,customer_segment,order_date,product_id,quantity
    ORD-1,restaurant,2025-06-09,CARROTS,10

inventory.csv:
    product_id,current_stock,minimum_stock
    CARROTS,12.5,5

suppliers.csv:
    supplier_id,supplier_name,product_id,unit_price,available_qty,lead_time_days,quality_rating,min_order_qty,available
    SUP-INT,Fambri Farms Internal,CARROTS,5,50,0,5,0,true

pricing_rules.csv:
    customer_segment,base_markup_pct,volatility_adjustment,category_adjustments,trend_multiplier,seasonal_adjustment,minimum_margin_pct,effective_from,effective_until,active
    restaurant,35,5,herbs:10,1.2,2.5,20,,,true

EXAMPLES:
    # Run a full scenario
    procure -scenario examples/winter_week -verbose

    # Run for a specific date with JSON output
    procure -scenario examples/winter_week -date 2025-06-13 -format json

    # Run with individual files and a config override
    procure -products data/products.csv -orders data/orders.csv -config procure.toml
`)
}
