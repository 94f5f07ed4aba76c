package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// RunWarning records a non-fatal problem encountered during a run, such as
// an order line referencing an unknown product
type RunWarning struct {
	ProductID entities.ProductID
	OrderID   entities.OrderID
	Message   string
}

// ProcurementRun contains the complete output of one aggregation run
type ProcurementRun struct {
	Recommendation   *entities.MarketProcurementRecommendation
	Requirements     entities.RequirementMap
	Snapshots        map[entities.ProductID]entities.StockSnapshot
	Buffered         map[entities.ProductID]entities.BufferedQuantity
	Warnings         []RunWarning
	OrdersConsidered int
}

// SupplierSummary is the cumulative position of one supplier across an
// order-level allocation batch
type SupplierSummary struct {
	SupplierID       entities.SupplierID
	SupplierName     string
	Type             entities.SupplierType
	TotalCost        decimal.Decimal
	TotalQuantity    decimal.Decimal
	AvgQualityRating decimal.Decimal // rolling average across allocated items
	AvgLeadTimeDays  decimal.Decimal // rolling average across allocated items
	ItemCount        int
}

// AdvisorySeverity classifies batch advisories
type AdvisorySeverity string

const (
	AdvisoryInfo    AdvisorySeverity = "info"
	AdvisoryWarning AdvisorySeverity = "warning"
)

// Advisory is a human-readable notice derived from an allocation batch
type Advisory struct {
	Severity AdvisorySeverity
	Message  string
}

// OrderAllocationPlan aggregates per-item allocations for a batch of
// (product, quantity) requirements. Item failures are carried inside the
// item results, never as an error for the whole batch.
type OrderAllocationPlan struct {
	Items              []*entities.AllocationResult
	FullyFulfilled     int
	PartiallyFulfilled int
	Unfulfilled        int
	TotalCost          decimal.Decimal
	InternalCost       decimal.Decimal
	ExternalCost       decimal.Decimal
	InternalSharePct   decimal.Decimal // internal share of total cost, 0..100
	DistinctSuppliers  int
	SupplierSummaries  []SupplierSummary
	Advisories         []Advisory
}
