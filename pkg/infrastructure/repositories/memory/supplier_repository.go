package memory

import (
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// SupplierRepository provides in-memory supplier offer storage
type SupplierRepository struct {
	offersByProduct map[entities.ProductID][]*entities.SupplierOffer
}

// NewSupplierRepository creates a new in-memory supplier repository
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{
		offersByProduct: make(map[entities.ProductID][]*entities.SupplierOffer),
	}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// LoadSupplierOffers loads offers into the repository
func (r *SupplierRepository) LoadSupplierOffers(offers []*entities.SupplierOffer) error {
	for _, offer := range offers {
		r.AddOffer(offer)
	}
	return nil
}

// AddOffer adds a single offer to the repository
func (r *SupplierRepository) AddOffer(offer *entities.SupplierOffer) {
	r.offersByProduct[offer.ProductID] = append(r.offersByProduct[offer.ProductID], offer)
}

// ListSupplierOffers returns every standing offer for a product
func (r *SupplierRepository) ListSupplierOffers(
	id entities.ProductID,
) ([]*entities.SupplierOffer, error) {
	return r.offersByProduct[id], nil
}
