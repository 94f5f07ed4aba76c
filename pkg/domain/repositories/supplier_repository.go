package repositories

import "github.com/fambrifarms/procure/pkg/domain/entities"

// SupplierRepository provides access to supplier offers
type SupplierRepository interface {
	// ListSupplierOffers returns every standing offer for a product,
	// including unavailable ones; callers filter on availability.
	ListSupplierOffers(id entities.ProductID) ([]*entities.SupplierOffer, error)
	LoadSupplierOffers(offers []*entities.SupplierOffer) error
}
