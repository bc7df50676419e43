// Package report derives daily aggregate figures from the stock
// ledger. It is a pure read-side consumer: it scans the transaction log
// and the current stock snapshot and mutates nothing.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/petalworks/flowershop/internal/inventory"
	"github.com/petalworks/flowershop/internal/pkg/shoperr"
)

// DefaultLowStockThreshold marks flowers needing a restock alert.
const DefaultLowStockThreshold = 5

// Source is the read-side port the generator consumes.
// *inventory.Ledger satisfies it.
type Source interface {
	Flowers() ([]inventory.Flower, error)
	Log() ([]inventory.TransactionRecord, error)
}

// StockAlert flags a flower running low.
type StockAlert struct {
	Flower       string
	CurrentStock int
	Price        decimal.Decimal
}

// Daily is the aggregate view of one day of shop activity.
type Daily struct {
	Date           string
	FlowerCount    int
	UnitsSold      int
	UnitsRestocked int
	StockAlerts    []StockAlert
}

// Option customises report generation.
type Option func(*generator)

// WithLowStockThreshold overrides the alert threshold.
func WithLowStockThreshold(n int) Option {
	return func(g *generator) { g.lowStock = n }
}

// WithClock overrides the clock stamping the report date.
func WithClock(now func() time.Time) Option {
	return func(g *generator) { g.now = now }
}

type generator struct {
	lowStock int
	now      func() time.Time
}

// Generate builds the daily report. Units sold and restocked count only
// completed transactions; failed attempts stay in the audit trail but
// never move stock. A source that cannot be read fails with a wrapped
// shop error.
func Generate(src Source, opts ...Option) (*Daily, error) {
	g := generator{lowStock: DefaultLowStockThreshold, now: time.Now}
	for _, opt := range opts {
		opt(&g)
	}

	log, err := src.Log()
	if err != nil {
		return nil, shoperr.Wrap(err, shoperr.KindInternal, "R001", "failed to generate report")
	}
	flowers, err := src.Flowers()
	if err != nil {
		return nil, shoperr.Wrap(err, shoperr.KindInternal, "R001", "failed to generate report")
	}

	daily := &Daily{
		Date:        g.now().Format("2006-01-02"),
		FlowerCount: len(flowers),
	}

	for _, rec := range log {
		if rec.Status != inventory.StatusCompleted {
			continue
		}
		switch rec.Kind {
		case inventory.KindRemove:
			daily.UnitsSold += rec.Quantity
		case inventory.KindAdd:
			daily.UnitsRestocked += rec.Quantity
		}
	}

	for _, f := range flowers {
		if f.Quantity() < g.lowStock {
			daily.StockAlerts = append(daily.StockAlerts, StockAlert{
				Flower:       f.Name(),
				CurrentStock: f.Quantity(),
				Price:        f.Price(),
			})
		}
	}

	return daily, nil
}
