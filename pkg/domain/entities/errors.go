package entities

import "fmt"

// MissingReferenceError reports a product or ingredient that could not be
// resolved during demand decomposition. Callers skip the reference and
// continue; it is never fatal for a run.
type MissingReferenceError struct {
	Kind      string // "product" or "ingredient"
	ProductID ProductID
	OrderID   OrderID
}

func (e *MissingReferenceError) Error() string {
	if e.OrderID != "" {
		return fmt.Sprintf("%s %s referenced by order %s not found", e.Kind, e.ProductID, e.OrderID)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ProductID)
}

// InvalidConfigurationError reports a buffer profile or rule that fails
// construction-time validation. Fatal for that product only.
type InvalidConfigurationError struct {
	ProductID ProductID
	Field     string
	Reason    string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf(
		"invalid configuration for product %s: %s %s",
		e.ProductID, e.Field, e.Reason,
	)
}
