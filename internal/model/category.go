package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category value is not one of the
// known constants.
var ErrUnknownCategory = errors.New("model: unknown category")

// Category classifies a beverage product.
type Category string

const (
	CategoryBeer Category = "BEER"
	CategorySoda Category = "SODA"
)

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBeer, CategorySoda:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory converts a raw string into a Category. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}
