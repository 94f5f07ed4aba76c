package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderID uniquely identifies a customer order
type OrderID string

// CustomerSegment classifies a customer for pricing purposes
type CustomerSegment string

const (
	SegmentRestaurant CustomerSegment = "restaurant"
	SegmentRetail     CustomerSegment = "retail"
	SegmentWholesale  CustomerSegment = "wholesale"
	SegmentPrivate    CustomerSegment = "private"
)

// OrderItem is a single line of a customer order
type OrderItem struct {
	ProductID ProductID
	Quantity  decimal.Decimal
}

// Order represents a customer order needing procurement
type Order struct {
	ID              OrderID
	CustomerSegment CustomerSegment
	Date            time.Time
	Items           []OrderItem
}

// NewOrder creates a validated Order
func NewOrder(
	id OrderID,
	segment CustomerSegment,
	date time.Time,
	items []OrderItem,
) (*Order, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	for i, item := range items {
		if string(item.ProductID) == "" {
			return nil, fmt.Errorf("order %s item %d: product id cannot be empty", id, i)
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf(
				"order %s item %d: quantity must be positive, got %s",
				id, i, item.Quantity,
			)
		}
	}

	return &Order{
		ID:              id,
		CustomerSegment: segment,
		Date:            date,
		Items:           items,
	}, nil
}
