package memory

import (
	"time"

	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage
type OrderRepository struct {
	orders []*entities.Order
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads orders into the repository
func (r *OrderRepository) LoadOrders(orders []*entities.Order) error {
	r.orders = append(r.orders, orders...)
	return nil
}

// ListOrdersNeedingProcurement returns orders dated within [from, to]
func (r *OrderRepository) ListOrdersNeedingProcurement(
	from, to time.Time,
) ([]*entities.Order, error) {
	var matched []*entities.Order
	for _, order := range r.orders {
		if order.Date.Before(from) || order.Date.After(to) {
			continue
		}
		matched = append(matched, order)
	}
	return matched, nil
}
