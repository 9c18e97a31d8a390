package alert

import (
	"context"
	"sync"
	"time"

	"github.com/fairyhunter13/beverage-stock-service/internal/config"
	"github.com/fairyhunter13/beverage-stock-service/internal/obs"
)

// Dispatcher hands queued alerts to a downstream sink using a pool of
// workers that scales with the backlog. It implements Sink itself, so it can
// be plugged directly into a ledger.
type Dispatcher struct {
	cfg    config.Config
	q      *Queue
	next   Sink
	seq    Sequencer
	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	workerCancels []context.CancelFunc
}

// NewDispatcher constructs a Dispatcher delivering to next.
func NewDispatcher(cfg config.Config, q *Queue, next Sink) *Dispatcher {
	return &Dispatcher{cfg: cfg, q: q, next: next}
}

// Start begins delivery and autoscaling in the background.
func (d *Dispatcher) Start(parent context.Context) {
	d.ctx, d.cancel = context.WithCancel(parent)
	d.q.Start(d.ctx, d.cfg.AlertHighWatermark)
	d.addWorkers(d.cfg.InitialWorkerCount)
	go d.scaler()
}

// Stop cancels background routines and stops workers.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Lock()
	for _, c := range d.workerCancels {
		c()
	}
	d.workerCancels = nil
	d.mu.Unlock()
}

// Notify implements Sink. The alert is numbered and queued for asynchronous
// delivery; once intake is closed it is handed to the downstream sink
// inline so nothing raised during shutdown is lost.
func (d *Dispatcher) Notify(ev Event) {
	ev.Sequence = d.seq.Next()
	if !d.q.Enqueue(ev) {
		d.next.Notify(ev)
	}
}

// scaler adjusts worker count based on backlog and configuration.
func (d *Dispatcher) scaler() {
	t := time.NewTicker(d.cfg.ScaleInterval)
	defer t.Stop()
	idleTicks := 0
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-t.C:
			backlog := d.q.BacklogSize()
			wc := d.WorkerCount()
			if backlog > wc*d.cfg.ScaleUpBacklogPerWorker && wc < d.cfg.WorkerMax {
				d.addWorkers(1)
				idleTicks = 0
				continue
			}
			if backlog == 0 {
				idleTicks++
				if idleTicks >= d.cfg.ScaleDownIdleTicks && wc > d.cfg.WorkerMin {
					d.removeWorkers(1)
					idleTicks = 0
				}
			} else {
				idleTicks = 0
			}
		}
	}
}

// addWorkers spawns n workers.
func (d *Dispatcher) addWorkers(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < n; i++ {
		wctx, cancel := context.WithCancel(d.ctx)
		d.workerCancels = append(d.workerCancels, cancel)
		go d.worker(wctx)
	}
	obs.Logger.Info("alert workers scaled", "worker_count", len(d.workerCancels))
}

// removeWorkers stops up to n workers.
func (d *Dispatcher) removeWorkers(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n > len(d.workerCancels) {
		n = len(d.workerCancels)
	}
	for i := 0; i < n; i++ {
		c := d.workerCancels[len(d.workerCancels)-1]
		d.workerCancels = d.workerCancels[:len(d.workerCancels)-1]
		c()
	}
	obs.Logger.Info("alert workers scaled", "worker_count", len(d.workerCancels))
}

// worker drains alerts from the queue and hands them to the sink.
func (d *Dispatcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.q.Out():
			d.next.Notify(ev)
			d.q.MarkDelivered()
		}
	}
}

// BacklogSize returns pending alerts in the queue.
func (d *Dispatcher) BacklogSize() int { return d.q.BacklogSize() }

// QueueDepth returns backlog plus buffered output items.
func (d *Dispatcher) QueueDepth() int { return d.q.QueueDepth() }

// WorkerCount returns the current number of workers.
func (d *Dispatcher) WorkerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.workerCancels)
}

// IsShuttingDown reports whether new alerts are rejected by the queue.
func (d *Dispatcher) IsShuttingDown() bool { return d.q.IsShuttingDown() }

// CloseIntake disallows future enqueues.
func (d *Dispatcher) CloseIntake() { d.q.CloseIntake() }

// QueueMetrics exposes the underlying queue metrics.
func (d *Dispatcher) QueueMetrics() (enq, delivered uint64, backlog, depth int) {
	return d.q.Metrics()
}

// DrainUntil blocks until the queue is fully drained or context is done.
func (d *Dispatcher) DrainUntil(ctx context.Context) bool {
	for {
		enq, delivered, backlog, depth := d.q.Metrics()
		if backlog == 0 && depth == 0 && enq == delivered {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}
