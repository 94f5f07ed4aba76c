package repositories

import "github.com/fambrifarms/procure/pkg/domain/entities"

// ProductRepository provides access to product master data
type ProductRepository interface {
	GetProduct(id entities.ProductID) (*entities.Product, error)
	// GetRecipe returns the recipe for a composite product. Non-composite
	// products return an empty slice.
	GetRecipe(id entities.ProductID) ([]entities.RecipeIngredient, error)
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
	LoadRecipe(id entities.ProductID, ingredients []entities.RecipeIngredient) error
}
