package procurement

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/fambrifarms/procure/pkg/application/dto"
	"github.com/fambrifarms/procure/pkg/domain/entities"
	"github.com/fambrifarms/procure/pkg/domain/repositories"
)

// Aggregator expands order line items into a flat map of raw-product
// requirements. Composite products decompose through their recipe; all
// contributions for the same raw product are summed across orders.
type Aggregator struct {
	products repositories.ProductRepository
	logger   *slog.Logger
}

// NewAggregator creates a new demand aggregator
func NewAggregator(products repositories.ProductRepository, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{products: products, logger: logger}
}

// Aggregate builds the requirement map for a set of orders. Missing product
// references are skipped with a warning; aggregation always continues.
// Given an identical order snapshot the output is identical.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	orders []*entities.Order,
) (entities.RequirementMap, []dto.RunWarning, error) {
	requirements := make(entities.RequirementMap)
	var warnings []dto.RunWarning

	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for _, item := range order.Items {
			product, err := a.products.GetProduct(item.ProductID)
			if err != nil {
				warnings = append(warnings, a.warnMissing(err, item.ProductID, order.ID))
				continue
			}

			recipe, err := a.products.GetRecipe(product.ID)
			if err != nil {
				return nil, nil, err
			}
			if !product.IsComposite || len(recipe) == 0 {
				// A direct order line for a discrete-packaged product is a
				// pack count; convert it to kilograms so netting against
				// kg-equivalent stock stays in one unit.
				quantity := item.Quantity
				if packKG, ok := product.PackSizeKG(); ok {
					quantity = quantity.Mul(packKG)
				}
				a.require(requirements, product.ID).Add(quantity, order.ID)
				continue
			}

			for _, ingredient := range recipe {
				ingredientProduct, err := a.products.GetProduct(ingredient.IngredientID)
				if err != nil {
					warnings = append(warnings, a.warnMissing(err, ingredient.IngredientID, order.ID))
					continue
				}

				// A discrete-packaged ingredient's recipe quantity is a
				// pack count; convert it to kilograms via the parsed size.
				recipeQty := ingredient.Quantity
				if packKG, ok := ingredientProduct.PackSizeKG(); ok {
					recipeQty = recipeQty.Mul(packKG)
				}

				contribution := recipeQty.Mul(item.Quantity)
				a.require(requirements, ingredientProduct.ID).AddFromRecipe(
					contribution,
					order.ID,
					entities.RecipeContribution{
						ParentID:  product.ID,
						RecipeQty: ingredient.Quantity,
						OrderQty:  item.Quantity,
					},
				)
			}
		}
	}

	return requirements, warnings, nil
}

// require returns the accumulating requirement for a product, creating it
// on first contribution
func (a *Aggregator) require(
	requirements entities.RequirementMap,
	id entities.ProductID,
) *entities.ProductRequirement {
	req, exists := requirements[id]
	if !exists {
		req = &entities.ProductRequirement{ProductID: id}
		requirements[id] = req
	}
	return req
}

func (a *Aggregator) warnMissing(
	err error,
	productID entities.ProductID,
	orderID entities.OrderID,
) dto.RunWarning {
	var missing *entities.MissingReferenceError
	message := err.Error()
	if errors.As(err, &missing) {
		missing.OrderID = orderID
		message = missing.Error()
	}
	a.logger.Warn("skipping unresolvable product reference",
		"product_id", productID,
		"order_id", orderID,
		"reason", message,
	)
	return dto.RunWarning{ProductID: productID, OrderID: orderID, Message: message}
}
