package services

import (
	"fmt"

	"github.com/fambrifarms/procure/pkg/domain/entities"
)

// RecipeValidator checks recipe integrity before a dataset is used for
// aggregation
type RecipeValidator struct{}

// NewRecipeValidator creates a new recipe validator
func NewRecipeValidator() *RecipeValidator {
	return &RecipeValidator{}
}

// ValidationResult contains the results of recipe validation
type ValidationResult struct {
	MissingIngredients []entities.ProductID
	NestedComposites   []entities.ProductID
	SelfReferences     []entities.ProductID
	Errors             []string
}

// Valid reports whether the recipe set passed every check
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateRecipes validates every composite product's recipe against the
// product set. Recipes are one level deep: an ingredient must never itself
// be a composite product.
func (v *RecipeValidator) ValidateRecipes(
	products map[entities.ProductID]*entities.Product,
	recipes map[entities.ProductID][]entities.RecipeIngredient,
) *ValidationResult {
	result := &ValidationResult{
		MissingIngredients: make([]entities.ProductID, 0),
		NestedComposites:   make([]entities.ProductID, 0),
		SelfReferences:     make([]entities.ProductID, 0),
		Errors:             make([]string, 0),
	}

	for parentID, ingredients := range recipes {
		parent, exists := products[parentID]
		if !exists {
			result.MissingIngredients = append(result.MissingIngredients, parentID)
			result.Errors = append(result.Errors,
				fmt.Sprintf("recipe parent %s is not a known product", parentID))
			continue
		}
		if !parent.IsComposite {
			result.Errors = append(result.Errors,
				fmt.Sprintf("product %s has a recipe but is not marked composite", parentID))
		}

		for _, ingredient := range ingredients {
			if ingredient.IngredientID == parentID {
				result.SelfReferences = append(result.SelfReferences, parentID)
				result.Errors = append(result.Errors,
					fmt.Sprintf("recipe for %s references itself", parentID))
				continue
			}

			child, exists := products[ingredient.IngredientID]
			if !exists {
				result.MissingIngredients = append(result.MissingIngredients, ingredient.IngredientID)
				result.Errors = append(result.Errors,
					fmt.Sprintf("recipe for %s references unknown product %s",
						parentID, ingredient.IngredientID))
				continue
			}
			if child.IsComposite {
				result.NestedComposites = append(result.NestedComposites, ingredient.IngredientID)
				result.Errors = append(result.Errors,
					fmt.Sprintf("recipe for %s nests composite product %s",
						parentID, ingredient.IngredientID))
			}
			if !ingredient.Quantity.IsPositive() {
				result.Errors = append(result.Errors,
					fmt.Sprintf("recipe for %s has non-positive quantity for %s",
						parentID, ingredient.IngredientID))
			}
		}
	}

	return result
}
