package repositories

import (
	"time"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// OrderRepository provides access to outstanding customer orders
type OrderRepository interface {
	ListOrdersNeedingProcurement(from, to time.Time) ([]*entities.Order, error)
	LoadOrders(orders []*entities.Order) error
}
