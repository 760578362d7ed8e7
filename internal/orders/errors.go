package orders

import (
	"errors"
	"fmt"
)

// The domain errors below propagate to the boundary layer unchanged; anything
// else is logged inside the service and collapsed into ErrOperationFailed so
// no internal detail leaks to the caller.

type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return "product ID not found: " + e.ProductID
}

type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return "not enough stock for product: " + e.ProductName
}

type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order with id %s not found", e.OrderID)
}

var (
	// ErrInvalidQuantity guards against non-positive quantities reaching the
	// reservation step. The HTTP layer validates this upstream.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	ErrOperationFailed = errors.New("an unexpected error occurred")
)

// isDomainError reports whether err is one of the caller-facing error kinds.
func isDomainError(err error) bool {
	var pnf *ProductNotFoundError
	var ins *InsufficientStockError
	var onf *OrderNotFoundError
	return errors.As(err, &pnf) || errors.As(err, &ins) || errors.As(err, &onf) ||
		errors.Is(err, ErrInvalidQuantity)
}
