package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by ledger operations.
var (
	ErrNotFound          = errors.New("ledger: product not found")
	ErrDuplicateName     = errors.New("ledger: product already registered")
	ErrInvalidQuantity   = errors.New("ledger: quantity must be positive")
	ErrInsufficientStock = errors.New("ledger: insufficient stock")
)

// InsufficientStockError reports a rejected issue together with the quantity
// still available.
type InsufficientStockError struct {
	Name      string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("ledger: insufficient stock for %q: available %d, requested %d", e.Name, e.Available, e.Requested)
}

// Is lets errors.Is(err, ErrInsufficientStock) match wrapped instances.
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
