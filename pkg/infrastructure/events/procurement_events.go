package events

import (
	"github.com/shopspring/decimal"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

const (
	RecommendationGeneratedEvent     = "recommendation.generated"
	RecommendationStatusChangedEvent = "recommendation.status.changed"

	AllocationPlannedEvent = "allocation.planned"
	AllocationFailedEvent  = "allocation.failed"
)

// RecommendationGenerated records the outcome of one pipeline run
type RecommendationGenerated struct {
	RecommendationID   string          `json:"recommendation_id"`
	ItemCount          int             `json:"item_count"`
	OrdersConsidered   int             `json:"orders_considered"`
	WarningCount       int             `json:"warning_count"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
}

// RecommendationStatusChanged records a lifecycle transition
type RecommendationStatusChanged struct {
	RecommendationID string                        `json:"recommendation_id"`
	From             entities.RecommendationStatus `json:"from"`
	To               entities.RecommendationStatus `json:"to"`
}

// AllocationPlanned records a completed supplier allocation batch
type AllocationPlanned struct {
	RecommendationID  string          `json:"recommendation_id"`
	FullyFulfilled    int             `json:"fully_fulfilled"`
	Unfulfilled       int             `json:"unfulfilled"`
	DistinctSuppliers int             `json:"distinct_suppliers"`
	TotalCost         decimal.Decimal `json:"total_cost"`
}

// AllocationFailed records a product no supplier could serve
type AllocationFailed struct {
	RecommendationID string             `json:"recommendation_id"`
	ProductID        entities.ProductID `json:"product_id"`
	Reason           string             `json:"reason"`
}
