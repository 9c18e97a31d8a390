// Package ledger tracks beverage products and their stock levels.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fairyhunter13/beverage-stock-service/internal/alert"
	"github.com/fairyhunter13/beverage-stock-service/internal/model"
	"github.com/fairyhunter13/beverage-stock-service/internal/planning"
	"github.com/shopspring/decimal"
)

var errNilProduct = errors.New("ledger: nil product")

var monthsPerYear = decimal.NewFromInt(12)

// Ledger is an in-memory product registry. Products are indexed by name and
// kept in registration order for listings and reports. All operations are
// safe for concurrent use.
type Ledger struct {
	name string
	log  *slog.Logger
	sink alert.Sink

	mu     sync.RWMutex
	byName map[string]*model.Product
	order  []string
}

// New creates an empty ledger. A nil logger discards log output; a nil sink
// disables reorder alert delivery.
func New(name string, log *slog.Logger, sink alert.Sink) *Ledger {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ledger{
		name:   name,
		log:    log,
		sink:   sink,
		byName: make(map[string]*model.Product),
	}
}

// Name returns the ledger name.
func (l *Ledger) Name() string { return l.name }

// Register adds a product to the ledger. Names are unique; registering a
// name twice fails with ErrDuplicateName. The ledger keeps its own copy of
// the product.
func (l *Ledger) Register(p *model.Product) error {
	if p == nil {
		return errNilProduct
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byName[p.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
	}
	cp := *p
	l.byName[cp.Name] = &cp
	l.order = append(l.order, cp.Name)
	l.log.Info("product_registered", "ledger", l.name, "product", cp.Name, "category", cp.Category)
	return nil
}

// Receive adds qty units to the named product and returns the new stock
// level. The quantity must be positive.
func (l *Ledger) Receive(name string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	p.Stock += qty
	l.log.Info("stock_received", "ledger", l.name, "product", name, "quantity", qty, "stock", p.Stock)
	return p.Stock, nil
}

// Issue removes qty units from the named product and returns the new stock
// level. The quantity must be positive and may not exceed the available
// stock; otherwise the issue is rejected with an InsufficientStockError and
// the stock is left untouched.
func (l *Ledger) Issue(name string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if p.Stock < qty {
		return 0, &InsufficientStockError{Name: name, Available: p.Stock, Requested: qty}
	}
	p.Stock -= qty
	l.log.Info("stock_issued", "ledger", l.name, "product", name, "quantity", qty, "stock", p.Stock)
	return p.Stock, nil
}

// CheckReorder reports whether the named product's stock is at or below the
// given reorder point, together with the stock level it observed. When the
// alert condition holds, a reorder alert is sent to the sink. Both the
// decision and the returned stock come from the same snapshot.
func (l *Ledger) CheckReorder(name string, reorderPoint int64) (bool, int64, error) {
	l.mu.RLock()
	p, ok := l.byName[name]
	if !ok {
		l.mu.RUnlock()
		return false, 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	stock := p.Stock
	category := p.Category
	l.mu.RUnlock()
	if stock > reorderPoint {
		return false, stock, nil
	}
	l.log.Warn("reorder_point_reached", "ledger", l.name, "product", name, "stock", stock, "reorder_point", reorderPoint)
	if l.sink != nil {
		l.sink.Notify(alert.NewEvent(l.name, name, category, stock, reorderPoint))
	}
	return true, stock, nil
}

// PlanningInput carries the demand figures used to compute a stock plan.
type PlanningInput struct {
	DemandStdDev   float64
	ServiceDays    int
	AvgDailyDemand float64
	LeadTimeDays   int
	AnnualDemand   float64
}

// Plan holds the planning figures computed for a product.
type Plan struct {
	SafetyStock       int64
	ReorderPoint      int64
	EconomicOrderQty  int64
	AnnualHoldingCost decimal.Decimal
}

// Plan computes safety stock, reorder point, and economic order quantity for
// the named product. The stored holding cost is per unit per month; EOQ
// works on the annualized figure.
func (l *Ledger) Plan(name string, in PlanningInput) (Plan, error) {
	l.mu.RLock()
	p, ok := l.byName[name]
	if !ok {
		l.mu.RUnlock()
		return Plan{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	holdingCost := p.HoldingCost
	orderCost := p.OrderCost
	l.mu.RUnlock()

	safety, err := planning.SafetyStock(in.DemandStdDev, in.ServiceDays, in.AvgDailyDemand)
	if err != nil {
		return Plan{}, err
	}
	reorder, err := planning.ReorderPoint(in.LeadTimeDays, in.AvgDailyDemand, safety)
	if err != nil {
		return Plan{}, err
	}
	annualHolding := holdingCost.Mul(monthsPerYear)
	eoq, err := planning.EconomicOrderQuantity(in.AnnualDemand, orderCost, annualHolding)
	if err != nil {
		return Plan{}, err
	}
	l.log.Info("plan_computed",
		"ledger", l.name,
		"product", name,
		"safety_stock", safety,
		"reorder_point", reorder,
		"economic_order_qty", eoq,
	)
	return Plan{
		SafetyStock:       safety,
		ReorderPoint:      reorder,
		EconomicOrderQty:  eoq,
		AnnualHoldingCost: annualHolding,
	}, nil
}

// Get returns a copy of the named product.
func (l *Ledger) Get(name string) (model.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.byName[name]
	if !ok {
		return model.Product{}, false
	}
	return *p, true
}

// List returns copies of all products in registration order.
func (l *Ledger) List() []model.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Product, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, *l.byName[name])
	}
	return out
}

// Len returns the number of registered products.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byName)
}
