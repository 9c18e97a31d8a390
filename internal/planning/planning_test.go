package planning

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafetyStock(t *testing.T) {
	cases := []struct {
		name   string
		stdDev float64
		days   int
		daily  float64
		want   int64
	}{
		{"typical", 0.2, 7, 50, 70},
		{"rounds_up", 0.3, 7, 33, 70},
		{"zero_std_dev", 0, 7, 50, 0},
		{"zero_days", 0.2, 0, 50, 0},
		{"fractional_demand", 0.5, 10, 12.3, 62},
		{"large_demand", 1e9, 365, 1e6, 365000000000000000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SafetyStock(tc.stdDev, tc.days, tc.daily)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("SafetyStock(%v, %d, %v) = %d, want %d", tc.stdDev, tc.days, tc.daily, got, tc.want)
			}
		})
	}
}

func TestSafetyStockInvalidArguments(t *testing.T) {
	cases := []struct {
		name   string
		stdDev float64
		days   int
		daily  float64
	}{
		{"negative_std_dev", -0.1, 7, 50},
		{"negative_days", 0.2, -1, 50},
		{"negative_demand", 0.2, 7, -50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := SafetyStock(tc.stdDev, tc.days, tc.daily); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestReorderPoint(t *testing.T) {
	cases := []struct {
		name   string
		lead   int
		daily  float64
		safety int64
		want   int64
	}{
		{"typical", 5, 50, 70, 320},
		{"rounds_up", 3, 10.5, 20, 52},
		{"zero_lead_time", 0, 50, 70, 70},
		{"zero_safety", 2, 25, 0, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReorderPoint(tc.lead, tc.daily, tc.safety)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ReorderPoint(%d, %v, %d) = %d, want %d", tc.lead, tc.daily, tc.safety, got, tc.want)
			}
		})
	}
}

func TestReorderPointInvalidArguments(t *testing.T) {
	if _, err := ReorderPoint(-1, 50, 70); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ReorderPoint(5, -1, 70); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ReorderPoint(5, 50, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestEconomicOrderQuantity(t *testing.T) {
	cases := []struct {
		name    string
		annual  float64
		order   string
		holding string
		want    int64
	}{
		{"typical", 18000, "150", "6", 949},
		{"exact_root", 200, "25", "4", 50},
		{"small_demand", 100, "10", "2", 32},
		{"zero_demand", 0, "150", "6", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EconomicOrderQuantity(tc.annual, decimal.RequireFromString(tc.order), decimal.RequireFromString(tc.holding))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("EconomicOrderQuantity(%v, %s, %s) = %d, want %d", tc.annual, tc.order, tc.holding, got, tc.want)
			}
		})
	}
}

func TestEconomicOrderQuantityZeroHoldingCost(t *testing.T) {
	_, err := EconomicOrderQuantity(18000, decimal.NewFromInt(150), decimal.Zero)
	if !errors.Is(err, ErrZeroHoldingCost) {
		t.Fatalf("expected ErrZeroHoldingCost, got %v", err)
	}
}

func TestEconomicOrderQuantityInvalidArguments(t *testing.T) {
	if _, err := EconomicOrderQuantity(-1, decimal.NewFromInt(150), decimal.NewFromInt(6)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := EconomicOrderQuantity(18000, decimal.NewFromInt(-150), decimal.NewFromInt(6)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := EconomicOrderQuantity(18000, decimal.NewFromInt(150), decimal.NewFromInt(-6)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

// Results that do not fit an int64 must surface as errors, never as a
// negative count from the float conversion wrapping around.
func TestPlanningOverflowRejected(t *testing.T) {
	if got, err := SafetyStock(1e308, 7, 50); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SafetyStock = %d, %v; expected ErrInvalidArgument", got, err)
	}
	if got, err := ReorderPoint(7, 1e308, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("ReorderPoint = %d, %v; expected ErrInvalidArgument", got, err)
	}
	if got, err := EconomicOrderQuantity(1e308, decimal.NewFromInt(150), decimal.NewFromInt(6)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("EconomicOrderQuantity = %d, %v; expected ErrInvalidArgument", got, err)
	}
}

func TestPlanningNonFiniteInputsRejected(t *testing.T) {
	if _, err := SafetyStock(math.NaN(), 7, 50); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for NaN std dev, got %v", err)
	}
	if _, err := ReorderPoint(5, math.Inf(1), 70); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for infinite demand, got %v", err)
	}
	if _, err := EconomicOrderQuantity(math.NaN(), decimal.NewFromInt(150), decimal.NewFromInt(6)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for NaN annual demand, got %v", err)
	}
	if _, err := EconomicOrderQuantity(math.Inf(1), decimal.NewFromInt(150), decimal.NewFromInt(6)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for infinite annual demand, got %v", err)
	}
}
