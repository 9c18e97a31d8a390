// Package alert carries reorder alerts from the ledger to downstream sinks
// through a buffered queue with autoscaling delivery workers.
package alert

import (
	"io"
	"log/slog"
	"time"

	"github.com/fairyhunter13/beverage-stock-service/internal/model"
	"github.com/google/uuid"
)

// Event is a single reorder alert. Sequence is assigned by the dispatcher
// when the event enters the queue.
type Event struct {
	ID           string         `json:"id"`
	Sequence     uint64         `json:"sequence"`
	Ledger       string         `json:"ledger"`
	Product      string         `json:"product"`
	Category     model.Category `json:"category"`
	Stock        int64          `json:"stock"`
	ReorderPoint int64          `json:"reorder_point"`
	FiredAt      time.Time      `json:"fired_at"`
}

// NewEvent builds an Event with a fresh ID and UTC timestamp.
func NewEvent(ledger, product string, category model.Category, stock, reorderPoint int64) Event {
	return Event{
		ID:           uuid.NewString(),
		Ledger:       ledger,
		Product:      product,
		Category:     category,
		Stock:        stock,
		ReorderPoint: reorderPoint,
		FiredAt:      time.Now().UTC(),
	}
}

// Sink receives reorder alerts.
type Sink interface {
	Notify(ev Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Notify(ev Event) { f(ev) }

// LogSink writes alerts to a structured logger at warning level.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink returns a LogSink. A nil logger discards alerts.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogSink{log: log}
}

func (s *LogSink) Notify(ev Event) {
	s.log.Warn("reorder_alert",
		"alert_id", ev.ID,
		"sequence", ev.Sequence,
		"ledger", ev.Ledger,
		"product", ev.Product,
		"category", ev.Category,
		"stock", ev.Stock,
		"reorder_point", ev.ReorderPoint,
	)
}
