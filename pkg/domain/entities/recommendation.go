package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Priority ranks how urgently a recommendation item should be acted on
type Priority int

const (
	LowPriority Priority = iota
	MediumPriority
	HighPriority
	CriticalPriority
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case CriticalPriority:
		return "critical"
	case HighPriority:
		return "high"
	case MediumPriority:
		return "medium"
	case LowPriority:
		return "low"
	default:
		return "Unknown"
	}
}

// RecommendationStatus tracks the lifecycle of a procurement recommendation
type RecommendationStatus string

const (
	StatusPending   RecommendationStatus = "pending"
	StatusApproved  RecommendationStatus = "approved"
	StatusPurchased RecommendationStatus = "purchased"
	StatusCancelled RecommendationStatus = "cancelled"
)

// RecommendationItem is the buy recommendation for one product
type RecommendationItem struct {
	ProductID           ProductID
	ProductName         string
	NeededQuantity      decimal.Decimal // net shortfall before buffering
	RecommendedQuantity decimal.Decimal // buffered, pack-rounded market quantity
	EstimatedUnitPrice  decimal.Decimal
	EstimatedTotalCost  decimal.Decimal
	Reasoning           string
	Priority            Priority
	SourceOrders        []OrderID
}

// MarketProcurementRecommendation is the compiled output of one aggregation
// run. Status transitions after creation belong to the persisting caller.
type MarketProcurementRecommendation struct {
	ID                 string
	ForDate            time.Time
	Status             RecommendationStatus
	Items              []RecommendationItem
	TotalEstimatedCost decimal.Decimal
}
