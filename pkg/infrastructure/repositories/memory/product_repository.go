package memory

import (
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// ProductRepository provides in-memory product and recipe storage
type ProductRepository struct {
	products map[entities.ProductID]*entities.Product
	recipes  map[entities.ProductID][]entities.RecipeIngredient
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[entities.ProductID]*entities.Product),
		recipes:  make(map[entities.ProductID][]entities.RecipeIngredient),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	for _, product := range products {
		r.AddProduct(product)
	}
	return nil
}

// AddProduct adds a product to the repository
func (r *ProductRepository) AddProduct(product *entities.Product) {
	r.products[product.ID] = product
}

// LoadRecipe stores a composite product's recipe
func (r *ProductRepository) LoadRecipe(
	id entities.ProductID,
	ingredients []entities.RecipeIngredient,
) error {
	r.recipes[id] = ingredients
	return nil
}

// GetProduct returns the product for an id
func (r *ProductRepository) GetProduct(id entities.ProductID) (*entities.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return nil, &entities.MissingReferenceError{Kind: "product", ProductID: id}
	}
	return product, nil
}

// GetRecipe returns the recipe for a composite product, empty for raw products
func (r *ProductRepository) GetRecipe(id entities.ProductID) ([]entities.RecipeIngredient, error) {
	return r.recipes[id], nil
}

// GetAllProducts returns all products
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	products := make([]*entities.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	return products, nil
}

// ProductMap returns the product set keyed by id, for recipe validation
func (r *ProductRepository) ProductMap() map[entities.ProductID]*entities.Product {
	return r.products
}

// RecipeMap returns every stored recipe keyed by parent id
func (r *ProductRepository) RecipeMap() map[entities.ProductID][]entities.RecipeIngredient {
	return r.recipes
}
