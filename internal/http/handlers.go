package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/beverage-stock-service/internal/alert"
	"github.com/fairyhunter13/beverage-stock-service/internal/config"
	httpopenapi "github.com/fairyhunter13/beverage-stock-service/internal/http/openapi"
	"github.com/fairyhunter13/beverage-stock-service/internal/ledger"
	"github.com/fairyhunter13/beverage-stock-service/internal/model"
	"github.com/fairyhunter13/beverage-stock-service/internal/obs"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// App carries the dependencies of the HTTP handlers.
type App struct {
	Cfg        config.Config
	Ledger     *ledger.Ledger
	Dispatcher *alert.Dispatcher
	closing    atomic.Bool
	started    time.Time
}

func NewApp(cfg config.Config, led *ledger.Ledger, d *alert.Dispatcher) *App {
	return &App{Cfg: cfg, Ledger: led, Dispatcher: d, started: time.Now()}
}

// StartShutdown flags the API as closing and stops alert intake.
func (a *App) StartShutdown() {
	a.closing.Store(true)
	a.Dispatcher.CloseIntake()
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	HoldingCost decimal.Decimal `json:"holding_cost"`
	OrderCost   decimal.Decimal `json:"order_cost"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type quantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type planRequest struct {
	DemandStdDev   float64 `json:"demand_std_dev"`
	ServiceDays    int     `json:"service_days"`
	AvgDailyDemand float64 `json:"avg_daily_demand"`
	LeadTimeDays   int     `json:"lead_time_days"`
	AnnualDemand   float64 `json:"annual_demand"`
}

type stockResponse struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
	Stock    int64  `json:"stock"`
}

type reorderCheckResponse struct {
	Product      string `json:"product"`
	Stock        int64  `json:"stock"`
	ReorderPoint int64  `json:"reorder_point"`
	Alert        bool   `json:"alert"`
}

type planResponse struct {
	Product           string          `json:"product"`
	SafetyStock       int64           `json:"safety_stock"`
	ReorderPoint      int64           `json:"reorder_point"`
	EconomicOrderQty  int64           `json:"economic_order_qty"`
	AnnualHoldingCost decimal.Decimal `json:"annual_holding_cost"`
}

type reportResponse struct {
	Ledger      string        `json:"ledger"`
	GeneratedAt time.Time     `json:"generated_at"`
	Empty       bool          `json:"empty"`
	Products    []ledger.Line `json:"products"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON rejects non-JSON content types and unknown fields. It writes
// the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// productName extracts the {name} route parameter. With a non-canonically
// escaped request path chi matches on RawPath and hands the segment back
// still percent-escaped; otherwise net/http has already decoded it once.
func productName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	return name
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() || a.Dispatcher.IsShuttingDown() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	var req createProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	p, err := model.NewProduct(req.Name, category, req.HoldingCost, req.OrderCost, req.UnitPrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := a.Ledger.Register(p); err != nil {
		writeDomainError(w, err)
		return
	}
	obs.Logger.Info("product_created",
		"request_id", RequestIDFromContext(r.Context()),
		"product", p.Name,
		"category", p.Category,
	)
	writeJSON(w, http.StatusCreated, p)
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Ledger.List())
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.Ledger.Get(productName(r))
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) receiveStockHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() || a.Dispatcher.IsShuttingDown() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	var req quantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := productName(r)
	stock, err := a.Ledger.Receive(name, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stockResponse{Product: name, Quantity: req.Quantity, Stock: stock})
}

func (a *App) issueStockHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() || a.Dispatcher.IsShuttingDown() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	var req quantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := productName(r)
	stock, err := a.Ledger.Issue(name, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stockResponse{Product: name, Quantity: req.Quantity, Stock: stock})
}

func (a *App) reorderCheckHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("reorder_point")
	if raw == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "reorder_point query parameter is required")
		return
	}
	reorderPoint, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "reorder_point must be an integer")
		return
	}
	name := productName(r)
	fired, stock, err := a.Ledger.CheckReorder(name, reorderPoint)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reorderCheckResponse{
		Product:      name,
		Stock:        stock,
		ReorderPoint: reorderPoint,
		Alert:        fired,
	})
}

func (a *App) planHandler(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := productName(r)
	plan, err := a.Ledger.Plan(name, ledger.PlanningInput{
		DemandStdDev:   req.DemandStdDev,
		ServiceDays:    req.ServiceDays,
		AvgDailyDemand: req.AvgDailyDemand,
		LeadTimeDays:   req.LeadTimeDays,
		AnnualDemand:   req.AnnualDemand,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		Product:           name,
		SafetyStock:       plan.SafetyStock,
		ReorderPoint:      plan.ReorderPoint,
		EconomicOrderQty:  plan.EconomicOrderQty,
		AnnualHoldingCost: plan.AnnualHoldingCost,
	})
}

func (a *App) reportHandler(w http.ResponseWriter, r *http.Request) {
	rep := a.Ledger.Report()
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(rep.String() + "\n"))
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		Ledger:      rep.Ledger,
		GeneratedAt: rep.GeneratedAt,
		Empty:       rep.Empty(),
		Products:    rep.Lines,
	})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	enq, delivered, backlog, depth := a.Dispatcher.QueueMetrics()
	m := map[string]any{
		"alerts_enqueued":  enq,
		"alerts_delivered": delivered,
		"backlog_size":     backlog,
		"queue_depth":      depth,
		"worker_count":     a.Dispatcher.WorkerCount(),
		"products":         a.Ledger.Len(),
		"uptime_sec":       time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
