package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func waitReady(t *testing.T) {
	t.Helper()
	url := fmt.Sprintf("%s/healthz", baseURL())
	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("service not ready")
}

// uniqueName makes product names safe to register on every run against a
// long-lived server.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

type product struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	HoldingCost string `json:"holding_cost"`
	OrderCost   string `json:"order_cost"`
	UnitPrice   string `json:"unit_price"`
	Stock       int64  `json:"stock"`
}

type movement struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
	Stock    int64  `json:"stock"`
}

type reorderCheck struct {
	Product      string `json:"product"`
	Stock        int64  `json:"stock"`
	ReorderPoint int64  `json:"reorder_point"`
	Alert        bool   `json:"alert"`
}

type plan struct {
	Product           string `json:"product"`
	SafetyStock       int64  `json:"safety_stock"`
	ReorderPoint      int64  `json:"reorder_point"`
	EconomicOrderQty  int64  `json:"economic_order_qty"`
	AnnualHoldingCost string `json:"annual_holding_cost"`
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	r, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func registerProduct(t *testing.T, name string) string {
	t.Helper()
	u := baseURL()
	body := fmt.Sprintf(`{"name":%q,"category":"BEER","holding_cost":0.50,"order_cost":150.0,"unit_price":2.50}`, name)
	resp := postJSON(t, u+"/products", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %q: expected 201, got %d", name, resp.StatusCode)
	}
	return name
}

func escape(name string) string {
	// Product names may contain spaces; keep URLs valid.
	return url.PathEscape(name)
}

func TestIntegration_RegisterThenGet(t *testing.T) {
	waitReady(t)
	u := baseURL()
	name := registerProduct(t, uniqueName("Brahma Lata 350ml"))

	resp, err := http.Get(u + "/products/" + escape(name))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var p product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Name != name || p.Category != "BEER" || p.Stock != 0 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestIntegration_StockMovements(t *testing.T) {
	waitReady(t)
	u := baseURL()
	name := registerProduct(t, uniqueName("Skol Lata 350ml"))
	base := u + "/products/" + escape(name)

	resp := postJSON(t, base+"/receive", `{"quantity":500}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("receive: expected 200, got %d", resp.StatusCode)
	}
	var mv movement
	if err := json.NewDecoder(resp.Body).Decode(&mv); err != nil {
		t.Fatal(err)
	}
	if mv.Stock != 500 {
		t.Fatalf("expected stock 500, got %d", mv.Stock)
	}

	for _, qty := range []int64{250, 180} {
		resp := postJSON(t, base+"/issue", fmt.Sprintf(`{"quantity":%d}`, qty))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("issue %d: expected 200, got %d", qty, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&mv); err != nil {
			t.Fatal(err)
		}
		_ = resp.Body.Close()
	}
	if mv.Stock != 70 {
		t.Fatalf("expected stock 70 after issues, got %d", mv.Stock)
	}
}

func TestIntegration_InsufficientStockReportsAvailable(t *testing.T) {
	waitReady(t)
	u := baseURL()
	name := registerProduct(t, uniqueName("Guarana 2L"))
	base := u + "/products/" + escape(name)

	resp := postJSON(t, base+"/receive", `{"quantity":70}`)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("receive: expected 200, got %d", resp.StatusCode)
	}

	resp = postJSON(t, base+"/issue", `{"quantity":250}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	var e struct {
		Error     string `json:"error"`
		Available *int64 `json:"available"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatal(err)
	}
	if e.Error != "insufficient_stock" {
		t.Fatalf("expected insufficient_stock, got %+v", e)
	}
	if e.Available == nil || *e.Available != 70 {
		t.Fatalf("expected available 70, got %+v", e.Available)
	}
}

func TestIntegration_StrictDecoding_UnknownField(t *testing.T) {
	waitReady(t)
	u := baseURL()
	body := `{"name":"x","category":"BEER","holding_cost":1,"order_cost":1,"unit_price":1,"unknown":"x"}`
	resp := postJSON(t, u+"/products", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestIntegration_UnsupportedMediaType(t *testing.T) {
	waitReady(t)
	u := baseURL()
	r, _ := http.NewRequest(http.MethodPost, u+"/products", bytes.NewBufferString("{}"))
	r.Header.Set("Content-Type", "text/plain")
	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.StatusCode)
	}
}
