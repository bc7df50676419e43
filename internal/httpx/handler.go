// Package httpx exposes the shop over HTTP: restocking, order
// processing, stock queries, the audit trail, and the daily report.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/petalworks/flowershop/internal/inventory"
	"github.com/petalworks/flowershop/internal/order"
	"github.com/petalworks/flowershop/internal/pkg/cache"
	"github.com/petalworks/flowershop/internal/pkg/shoperr"
	"github.com/petalworks/flowershop/internal/report"
)

// Handler serves the shop API against one ledger.
type Handler struct {
	ledger *inventory.Ledger

	// cache is nil-safe: report memoization is skipped when unset.
	cache    cache.Cache
	cacheTTL time.Duration

	freshnessDays int
	lowStock      int
}

// HandlerOption customises the handler.
type HandlerOption func(*Handler)

// WithReportCache memoizes the daily report for ttl.
func WithReportCache(c cache.Cache, ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.cache = c
		h.cacheTTL = ttl
	}
}

// WithFreshnessDays sets the default freshness window for restocks.
func WithFreshnessDays(days int) HandlerOption {
	return func(h *Handler) { h.freshnessDays = days }
}

// WithLowStockThreshold sets the report alert threshold.
func WithLowStockThreshold(n int) HandlerOption {
	return func(h *Handler) { h.lowStock = n }
}

// NewHandler builds a handler around the ledger.
func NewHandler(ledger *inventory.Ledger, opts ...HandlerOption) *Handler {
	h := &Handler{
		ledger:        ledger,
		freshnessDays: inventory.DefaultFreshnessDays,
		lowStock:      report.DefaultLowStockThreshold,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddFlower restocks the ledger from raw string inputs.
func (h *Handler) AddFlower(w http.ResponseWriter, r *http.Request) {
	var req AddFlowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "", err.Error())
		return
	}

	days := h.freshnessDays
	if req.FreshnessDays != nil {
		days = *req.FreshnessDays
	}
	f, err := inventory.ParseFlower(req.Name, req.Price, req.Quantity,
		inventory.WithFreshnessDays(days))
	if err != nil {
		writeShopError(w, err)
		return
	}
	if err := h.ledger.Add(r.Context(), f); err != nil {
		writeShopError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapFlower(*f))
}

// ListFlowers returns the current stock snapshot.
func (h *Handler) ListFlowers(w http.ResponseWriter, r *http.Request) {
	flowers, err := h.ledger.Flowers()
	if err != nil {
		writeShopError(w, err)
		return
	}
	out := make([]FlowerResponse, 0, len(flowers))
	for _, f := range flowers {
		out = append(out, mapFlower(f))
	}
	writeJSON(w, http.StatusOK, out)
}

// CheckStock returns the quantity for one flower.
func (h *Handler) CheckStock(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	qty, err := h.ledger.CheckStock(name)
	if err != nil {
		writeShopError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StockResponse{Name: name, Quantity: qty})
}

// CreateOrder builds an order from the request lines and processes it
// in the same call. A processing failure has already rolled the ledger
// back by the time the error response is written.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "", err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeShopError(w, shoperr.InvalidOrder("cannot process an empty order"))
		return
	}

	o, err := order.New(req.Customer, h.ledger)
	if err != nil {
		writeShopError(w, err)
		return
	}
	for _, line := range req.Items {
		qty, err := coerceQuantity(line.Quantity)
		if err != nil {
			writeShopError(w, err)
			return
		}
		if _, err := o.AddItem(line.Name, qty); err != nil {
			writeShopError(w, err)
			return
		}
	}

	summary, err := o.Process(r.Context())
	if err != nil {
		writeShopError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "order processed",
		"order_id", o.ID().String(), "customer", summary.Customer, "total", summary.Total.StringFixed(2))

	writeJSON(w, http.StatusCreated, OrderSummaryResponse{
		OrderID:  o.ID().String(),
		Customer: summary.Customer,
		Items:    summary.Items,
		Total:    summary.Total.StringFixed(2),
		Status:   string(summary.Status),
	})
}

// ListTransactions returns the full audit trail.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	log, err := h.ledger.Log()
	if err != nil {
		writeShopError(w, err)
		return
	}
	out := make([]TransactionResponse, 0, len(log))
	for _, rec := range log {
		out = append(out, TransactionResponse{
			ID:       rec.ID.String(),
			Kind:     string(rec.Kind),
			Flower:   rec.FlowerName,
			Quantity: rec.Quantity,
			Status:   string(rec.Status),
			Error:    rec.Error,
			TraceID:  rec.TraceID,
			SpanID:   rec.SpanID,
			At:       rec.At.Format(time.RFC3339Nano),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// DailyReport returns today's aggregates, served from cache when one is
// configured and fresh.
func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := ""
	if h.cache != nil {
		key = h.cache.Key("report", time.Now().Format("2006-01-02"))
		if cached, ok, err := h.cache.Get(ctx, key); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		} else if err != nil {
			slog.WarnContext(ctx, "report cache read failed", "error", err)
		}
	}

	daily, err := report.Generate(h.ledger, report.WithLowStockThreshold(h.lowStock))
	if err != nil {
		writeShopError(w, err)
		return
	}

	resp := ReportResponse{
		Date:           daily.Date,
		FlowerCount:    daily.FlowerCount,
		UnitsSold:      daily.UnitsSold,
		UnitsRestocked: daily.UnitsRestocked,
		StockAlerts:    make([]StockAlertDTO, 0, len(daily.StockAlerts)),
	}
	for _, a := range daily.StockAlerts {
		resp.StockAlerts = append(resp.StockAlerts, StockAlertDTO{
			Flower:       a.Flower,
			CurrentStock: a.CurrentStock,
			Price:        a.Price.StringFixed(2),
		})
	}

	if h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			if err := h.cache.Set(ctx, key, string(body), h.cacheTTL); err != nil {
				slog.WarnContext(ctx, "report cache write failed", "error", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// coerceQuantity turns a raw quantity into the typed value the core
// expects. Coercion runs before any ledger lookup, so a malformed
// quantity fails ahead of the existence check.
func coerceQuantity(raw RawQuantity) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, shoperr.InvalidItemData("O004", "invalid quantity: %q", string(raw))
	}
	return qty, nil
}

func mapFlower(f inventory.Flower) FlowerResponse {
	return FlowerResponse{
		Name:       f.Name(),
		Price:      f.Price().StringFixed(2),
		Quantity:   f.Quantity(),
		FreshUntil: f.Expiry().Format("2006-01-02"),
	}
}

// writeShopError maps the error taxonomy onto HTTP statuses.
func writeShopError(w http.ResponseWriter, err error) {
	var se *shoperr.Error
	if !errors.As(err, &se) {
		writeError(w, http.StatusInternalServerError, "internal", "", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch se.Kind {
	case shoperr.KindInvalidItemData, shoperr.KindInvalidOrder:
		status = http.StatusBadRequest
	case shoperr.KindNotFound:
		status = http.StatusNotFound
	case shoperr.KindOutOfStock:
		status = http.StatusConflict
	case shoperr.KindExpired:
		status = http.StatusGone
	}
	writeError(w, status, se.Kind.String(), se.Code, se.Message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: kind, Code: code, Message: msg})
}
