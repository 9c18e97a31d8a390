package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fairyhunter13/beverage-stock-service/internal/model"
)

// Line is a single product row in a stock report.
type Line struct {
	Name     string         `json:"name"`
	Category model.Category `json:"category"`
	Stock    int64          `json:"stock"`
}

// Report is a point-in-time snapshot of every product in the ledger, in
// registration order.
type Report struct {
	Ledger      string    `json:"ledger"`
	GeneratedAt time.Time `json:"generated_at"`
	Lines       []Line    `json:"products"`
}

// Empty reports whether the ledger had no products at snapshot time.
func (r Report) Empty() bool { return len(r.Lines) == 0 }

// String renders the report as a plain-text banner.
func (r Report) String() string {
	rule := strings.Repeat("=", 60)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nSTOCK REPORT: %s\n%s\n", rule, r.Ledger, rule)
	if r.Empty() {
		b.WriteString("no products registered\n")
	} else {
		for _, ln := range r.Lines {
			fmt.Fprintf(&b, "- %s (%s) - stock: %d\n", ln.Name, ln.Category, ln.Stock)
		}
	}
	b.WriteString(rule)
	return b.String()
}

// Report snapshots the current ledger contents.
func (l *Ledger) Report() Report {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rep := Report{
		Ledger:      l.name,
		GeneratedAt: time.Now().UTC(),
		Lines:       make([]Line, 0, len(l.order)),
	}
	for _, name := range l.order {
		p := l.byName[name]
		rep.Lines = append(rep.Lines, Line{Name: p.Name, Category: p.Category, Stock: p.Stock})
	}
	return rep
}
