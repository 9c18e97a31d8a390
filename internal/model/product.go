// Package model defines domain types used by the service.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is returned when product attributes fail validation.
var ErrInvalidProduct = errors.New("model: invalid product")

// Product represents a beverage tracked by the ledger. Monetary amounts are
// decimals; HoldingCost is the cost of keeping one unit in stock for one
// month.
type Product struct {
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	HoldingCost decimal.Decimal `json:"holding_cost"`
	OrderCost   decimal.Decimal `json:"order_cost"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int64           `json:"stock"`
}

// NewProduct validates the attributes and returns a product with zero stock.
// Costs and price may be zero but never negative.
func NewProduct(name string, category Category, holdingCost, orderCost, unitPrice decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, string(category))
	}
	if holdingCost.IsNegative() {
		return nil, fmt.Errorf("%w: holding cost must be >= 0", ErrInvalidProduct)
	}
	if orderCost.IsNegative() {
		return nil, fmt.Errorf("%w: order cost must be >= 0", ErrInvalidProduct)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must be >= 0", ErrInvalidProduct)
	}
	return &Product{
		Name:        name,
		Category:    category,
		HoldingCost: holdingCost,
		OrderCost:   orderCost,
		UnitPrice:   unitPrice,
	}, nil
}

// String renders a short one-line description of the product.
func (p *Product) String() string {
	return fmt.Sprintf("%s (%s) - stock: %d", p.Name, p.Category, p.Stock)
}
