// Package planning implements stock planning calculations: safety stock,
// reorder point, and economic order quantity.
package planning

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidArgument is returned when a planning input is out of range.
	ErrInvalidArgument = errors.New("planning: invalid argument")
	// ErrZeroHoldingCost is returned by EconomicOrderQuantity when the
	// holding cost is zero and the formula would divide by it.
	ErrZeroHoldingCost = errors.New("planning: holding cost cannot be zero")
)

var two = decimal.NewFromInt(2)

// ceilUnits rounds v up to a whole unit count, rejecting NaN and values that
// do not fit in an int64. float64 cannot represent MaxInt64 exactly, so
// anything at or above 1<<63 overflows the conversion.
func ceilUnits(v float64) (int64, error) {
	v = math.Ceil(v)
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: result is not a number", ErrInvalidArgument)
	}
	if v >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: result overflows a unit count", ErrInvalidArgument)
	}
	return int64(v), nil
}

// SafetyStock returns the number of units to keep as a buffer against demand
// variability, rounded up to a whole unit.
func SafetyStock(demandStdDev float64, serviceDays int, avgDailyDemand float64) (int64, error) {
	if demandStdDev < 0 {
		return 0, fmt.Errorf("%w: demand standard deviation must be >= 0", ErrInvalidArgument)
	}
	if serviceDays < 0 {
		return 0, fmt.Errorf("%w: service days must be >= 0", ErrInvalidArgument)
	}
	if avgDailyDemand < 0 {
		return 0, fmt.Errorf("%w: average daily demand must be >= 0", ErrInvalidArgument)
	}
	return ceilUnits(demandStdDev * float64(serviceDays) * avgDailyDemand)
}

// ReorderPoint returns the stock level at which a replenishment order should
// be placed: expected demand over the lead time plus the safety stock,
// rounded up to a whole unit.
func ReorderPoint(leadTimeDays int, avgDailyDemand float64, safetyStock int64) (int64, error) {
	if leadTimeDays < 0 {
		return 0, fmt.Errorf("%w: lead time must be >= 0", ErrInvalidArgument)
	}
	if avgDailyDemand < 0 {
		return 0, fmt.Errorf("%w: average daily demand must be >= 0", ErrInvalidArgument)
	}
	if safetyStock < 0 {
		return 0, fmt.Errorf("%w: safety stock must be >= 0", ErrInvalidArgument)
	}
	return ceilUnits(float64(leadTimeDays)*avgDailyDemand + float64(safetyStock))
}

// EconomicOrderQuantity returns the order size that minimizes the combined
// ordering and holding cost (the Wilson formula), rounded up to a whole
// unit. The holding cost must cover the same period as the demand figure,
// normally one year.
func EconomicOrderQuantity(annualDemand float64, orderCost, holdingCost decimal.Decimal) (int64, error) {
	// decimal.NewFromFloat panics on NaN and infinities.
	if math.IsNaN(annualDemand) || math.IsInf(annualDemand, 0) {
		return 0, fmt.Errorf("%w: annual demand must be finite", ErrInvalidArgument)
	}
	if annualDemand < 0 {
		return 0, fmt.Errorf("%w: annual demand must be >= 0", ErrInvalidArgument)
	}
	if orderCost.IsNegative() {
		return 0, fmt.Errorf("%w: order cost must be >= 0", ErrInvalidArgument)
	}
	if holdingCost.IsZero() {
		return 0, ErrZeroHoldingCost
	}
	if holdingCost.IsNegative() {
		return 0, fmt.Errorf("%w: holding cost must be > 0", ErrInvalidArgument)
	}
	ratio := two.Mul(decimal.NewFromFloat(annualDemand)).Mul(orderCost).Div(holdingCost)
	return ceilUnits(math.Sqrt(ratio.InexactFloat64()))
}
