package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fambrifarms/procure/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
	RunTime time.Duration
}

// Report bundles everything one invocation produced for rendering
type Report struct {
	Run     *dto.ProcurementRun      `json:"run"`
	Plan    *dto.OrderAllocationPlan `json:"allocation_plan,omitempty"`
	Pricing []SegmentPrice           `json:"segment_prices,omitempty"`
}

// SegmentPrice is one customer-segment sell price for a recommended product
type SegmentPrice struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Segment     string `json:"segment"`
	MarketPrice string `json:"market_price"`
	SellPrice   string `json:"sell_price"`
}

// Generate renders the report in the specified format
func Generate(report *Report, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *Report, config Config) error {
	run := report.Run
	rec := run.Recommendation

	fmt.Printf("📊 Procurement Recommendation\n")
	fmt.Printf("=============================\n\n")
	fmt.Printf("Recommendation: %s\n", rec.ID)
	fmt.Printf("For Date: %s\n", rec.ForDate.Format("2006-01-02"))
	fmt.Printf("Status: %s\n", rec.Status)
	fmt.Printf("Orders Considered: %d\n", run.OrdersConsidered)
	fmt.Printf("Items: %d\n", len(rec.Items))
	fmt.Printf("Total Estimated Cost: %s\n", rec.TotalEstimatedCost.Round(2))
	if config.RunTime > 0 {
		fmt.Printf("Run Time: %v\n", config.RunTime)
	}
	fmt.Println()

	if len(run.Warnings) > 0 {
		fmt.Printf("⚠️  Warnings:\n")
		for _, warning := range run.Warnings {
			if warning.OrderID != "" {
				fmt.Printf("  %s (order %s): %s\n", warning.ProductID, warning.OrderID, warning.Message)
			} else {
				fmt.Printf("  %s: %s\n", warning.ProductID, warning.Message)
			}
		}
		fmt.Println()
	}

	if len(rec.Items) > 0 {
		fmt.Printf("📋 Recommended Purchases:\n")
		fmt.Printf("%-15s %-25s %-10s %-10s %-12s %-12s %-10s\n",
			"Product", "Name", "Needed", "Buy", "Unit Price", "Total", "Priority")
		fmt.Printf("%-15s %-25s %-10s %-10s %-12s %-12s %-10s\n",
			"---------------", "-------------------------", "----------", "----------",
			"------------", "------------", "----------")
		for _, item := range rec.Items {
			fmt.Printf("%-15s %-25s %-10s %-10s %-12s %-12s %-10s\n",
				item.ProductID,
				truncate(item.ProductName, 25),
				item.NeededQuantity.Round(2),
				item.RecommendedQuantity.Round(2),
				item.EstimatedUnitPrice.Round(2),
				item.EstimatedTotalCost.Round(2),
				item.Priority)
		}
		fmt.Println()

		if config.Verbose {
			fmt.Printf("💬 Reasoning:\n")
			for _, item := range rec.Items {
				fmt.Printf("  %s: %s\n", item.ProductID, item.Reasoning)
			}
			fmt.Println()
		}
	}

	if report.Plan != nil {
		printAllocationPlan(report.Plan)
	}

	if len(report.Pricing) > 0 {
		fmt.Printf("💰 Segment Prices:\n")
		fmt.Printf("%-15s %-12s %-14s %-12s\n", "Product", "Segment", "Market Price", "Sell Price")
		fmt.Printf("%-15s %-12s %-14s %-12s\n",
			"---------------", "------------", "--------------", "------------")
		for _, price := range report.Pricing {
			fmt.Printf("%-15s %-12s %-14s %-12s\n",
				price.ProductID, price.Segment, price.MarketPrice, price.SellPrice)
		}
		fmt.Println()
	}

	return nil
}

// printAllocationPlan renders the supplier allocation section
func printAllocationPlan(plan *dto.OrderAllocationPlan) {
	fmt.Printf("🚚 Supplier Allocation:\n")
	fmt.Printf("Fulfilled: %d  Partial: %d  Unfulfilled: %d\n",
		plan.FullyFulfilled, plan.PartiallyFulfilled, plan.Unfulfilled)
	fmt.Printf("Total Cost: %s (internal %s / external %s)\n",
		plan.TotalCost.Round(2), plan.InternalCost.Round(2), plan.ExternalCost.Round(2))
	if plan.TotalCost.IsPositive() {
		fmt.Printf("Internal Cost Share: %s%%\n", plan.InternalSharePct.Round(1))
	}
	fmt.Println()

	for _, result := range plan.Items {
		fmt.Printf("  %s (%s, %s requested):\n",
			result.ProductID, result.Strategy, result.RequestedQty.Round(2))
		for _, alloc := range result.Allocations {
			fmt.Printf("    %-25s %-8s %8s @ %-8s = %-10s (%s%%)\n",
				truncate(alloc.SupplierName, 25),
				alloc.Type,
				alloc.Quantity.Round(2),
				alloc.UnitPrice.Round(2),
				alloc.Cost.Round(2),
				alloc.PercentOfOrder.Round(1))
		}
		if result.FailureReason != "" {
			fmt.Printf("    ❌ %s\n", result.FailureReason)
		}
	}
	fmt.Println()

	if len(plan.SupplierSummaries) > 0 {
		fmt.Printf("🏭 Supplier Summary:\n")
		fmt.Printf("%-25s %-10s %-8s %-12s %-10s %-10s\n",
			"Supplier", "Type", "Items", "Quantity", "Cost", "Quality")
		fmt.Printf("%-25s %-10s %-8s %-12s %-10s %-10s\n",
			"-------------------------", "----------", "--------", "------------",
			"----------", "----------")
		for _, summary := range plan.SupplierSummaries {
			fmt.Printf("%-25s %-10s %-8d %-12s %-10s %-10s\n",
				truncate(summary.SupplierName, 25),
				summary.Type,
				summary.ItemCount,
				summary.TotalQuantity.Round(2),
				summary.TotalCost.Round(2),
				summary.AvgQualityRating.Round(1))
		}
		fmt.Println()
	}

	if len(plan.Advisories) > 0 {
		fmt.Printf("📣 Advisories:\n")
		for _, advisory := range plan.Advisories {
			fmt.Printf("  [%s] %s\n", advisory.Severity, advisory.Message)
		}
		fmt.Println()
	}
}

// generateJSONOutput writes the full report as JSON to stdout
func generateJSONOutput(report *Report) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
