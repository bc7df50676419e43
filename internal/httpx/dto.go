package httpx

import "strings"

// RawQuantity accepts a JSON number or a numeric string; the handler
// coerces it to a typed quantity before the order ever consults the
// ledger.
type RawQuantity string

func (q *RawQuantity) UnmarshalJSON(b []byte) error {
	*q = RawQuantity(strings.Trim(string(b), `"`))
	return nil
}

// AddFlowerRequest carries price and quantity as strings: the boundary
// owns input-format coercion, and a malformed value must fail with a
// format code before any stock is touched.
type AddFlowerRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	// FreshnessDays falls back to the server default when omitted.
	FreshnessDays *int `json:"freshness_days,omitempty"`
}

type FlowerResponse struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	FreshUntil string `json:"fresh_until"`
}

type StockResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Customer string         `json:"customer"`
	Items    []OrderLineDTO `json:"items"`
}

type OrderLineDTO struct {
	Name     string      `json:"name"`
	Quantity RawQuantity `json:"quantity"`
}

type OrderSummaryResponse struct {
	OrderID  string         `json:"order_id"`
	Customer string         `json:"customer"`
	Items    map[string]int `json:"items"`
	Total    string         `json:"total"`
	Status   string         `json:"status"`
}

type TransactionResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Flower   string `json:"flower"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	TraceID  string `json:"trace_id,omitempty"`
	SpanID   string `json:"span_id,omitempty"`
	At       string `json:"at"`
}

type StockAlertDTO struct {
	Flower       string `json:"flower"`
	CurrentStock int    `json:"current_stock"`
	Price        string `json:"price"`
}

type ReportResponse struct {
	Date           string          `json:"date"`
	FlowerCount    int             `json:"flower_count"`
	UnitsSold      int             `json:"units_sold"`
	UnitsRestocked int             `json:"units_restocked"`
	StockAlerts    []StockAlertDTO `json:"stock_alerts"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
