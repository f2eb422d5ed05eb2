package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound means the referenced product id matches no row.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductUnavailable means the product exists but is not active.
	ErrProductUnavailable = errors.New("product is not available")
	// ErrCartItemNotFound means no cart item with that id belongs to the user.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrNoActiveCart means the user has no cart with status 'active'.
	ErrNoActiveCart = errors.New("no active cart found")
)

// InsufficientStockError reports a stock check failure. InCart is non-zero
// only when the request would grow an existing line past available stock.
type InsufficientStockError struct {
	Available int
	InCart    int
}

func (e *InsufficientStockError) Error() string {
	if e.InCart > 0 {
		return fmt.Sprintf("Insufficient stock available. Only %d items in stock. You already have %d in cart.", e.Available, e.InCart)
	}
	return fmt.Sprintf("Insufficient stock available. Only %d items in stock.", e.Available)
}
