package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fambrifarms/procure/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		productsFile  = flag.String("products", "", "Path to products CSV file")
		recipesFile   = flag.String("recipes", "", "Path to recipes CSV file")
		ordersFile    = flag.String("orders", "", "Path to orders CSV file")
		inventoryFile = flag.String("inventory", "", "Path to inventory CSV file")
		suppliersFile = flag.String("suppliers", "", "Path to supplier offers CSV file")
		pricingFile   = flag.String("pricing", "", "Path to pricing rules CSV file")
		configFile    = flag.String("config", "", "Path to TOML configuration file")
		date          = flag.String("date", "", "Recommendation date YYYY-MM-DD (default: today)")
		windowDays    = flag.Int("window", 7, "Days of orders before the date to consider")
		format        = flag.String("format", "text", "Output format: text, json")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:   *scenarioDir,
		ProductsFile:  *productsFile,
		RecipesFile:   *recipesFile,
		OrdersFile:    *ordersFile,
		InventoryFile: *inventoryFile,
		SuppliersFile: *suppliersFile,
		PricingFile:   *pricingFile,
		ConfigFile:    *configFile,
		Date:          *date,
		WindowDays:    *windowDays,
		Format:        *format,
		Verbose:       *verbose,
		Help:          *help,
	}

	// Create and execute command
	cmd := commands.NewProcureCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
