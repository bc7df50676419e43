// Package order implements the customer order lifecycle: incremental
// line accumulation with live stock re-validation, and the
// commit-with-rollback protocol that turns an order into ledger
// deductions.
package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petalworks/flowershop/internal/inventory"
	"github.com/petalworks/flowershop/internal/pkg/shoperr"
)

// Status is the lifecycle state of an order. Lines and total may only
// change while the order is new; both terminal states are immutable.
type Status string

const (
	StatusNew       Status = "new"
	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"
)

// Stock is the slice of ledger behaviour an order needs. *inventory.Ledger
// satisfies it.
type Stock interface {
	Flower(name string) (inventory.Flower, bool)
	Remove(ctx context.Context, name string, quantity int) error
	Restore(ctx context.Context, name string, quantity int) error
}

// Order accumulates requested flowers against a shared stock ledger.
// Not safe for concurrent use; one order belongs to one caller.
type Order struct {
	id       uuid.UUID
	customer string
	stock    Stock

	lines map[string]int
	// sequence preserves first-add order for processing; Go maps do not.
	sequence []string

	status Status
	total  decimal.Decimal
	now    func() time.Time
}

// New creates an order drawing from the given stock ledger.
func New(customer string, stock Stock) (*Order, error) {
	if strings.TrimSpace(customer) == "" {
		return nil, shoperr.InvalidOrder("customer name cannot be empty")
	}
	if stock == nil {
		return nil, shoperr.New(shoperr.KindInternal, "O001", "invalid stock ledger reference")
	}
	return &Order{
		id:       uuid.New(),
		customer: customer,
		stock:    stock,
		lines:    make(map[string]int),
		status:   StatusNew,
		total:    decimal.Zero,
		now:      time.Now,
	}, nil
}

// ID returns the order identifier.
func (o *Order) ID() uuid.UUID { return o.id }

// Customer returns the customer name.
func (o *Order) Customer() string { return o.customer }

// Status returns the current lifecycle state.
func (o *Order) Status() Status { return o.status }

// Total returns the running monetary total.
func (o *Order) Total() decimal.Decimal { return o.total }

// Lines returns a snapshot of the requested quantities per flower.
func (o *Order) Lines() map[string]int {
	out := make(map[string]int, len(o.lines))
	for name, qty := range o.lines {
		out[name] = qty
	}
	return out
}

// AddItem requests quantity units of a flower, re-validating against
// live stock. Quantity already requested by earlier lines of this order
// counts against availability even though the ledger has not been
// touched yet. Returns the new running total.
func (o *Order) AddItem(name string, quantity int) (decimal.Decimal, error) {
	if o.status != StatusNew {
		return decimal.Zero, shoperr.InvalidOrder("cannot modify a processed order")
	}
	if strings.TrimSpace(name) == "" {
		return decimal.Zero, shoperr.InvalidItemData("O002", "flower name cannot be empty")
	}
	if quantity <= 0 {
		return decimal.Zero, shoperr.InvalidItemData("O003", "quantity must be positive, got %d", quantity)
	}

	f, ok := o.stock.Flower(name)
	if !ok {
		return decimal.Zero, shoperr.NotFound("O005", name)
	}
	if !f.FreshOn(o.now()) {
		return decimal.Zero, shoperr.Expired(name, f.Expiry())
	}

	available := f.Quantity() - o.lines[name]
	if quantity > available {
		return decimal.Zero, shoperr.OutOfStock(name, quantity, available)
	}

	if _, seen := o.lines[name]; !seen {
		o.sequence = append(o.sequence, name)
	}
	o.lines[name] += quantity
	o.total = o.total.Add(f.Price().Mul(decimal.NewFromInt(int64(quantity))))
	return o.total, nil
}

// Summary describes a fully processed order.
type Summary struct {
	Customer string
	Items    map[string]int
	Total    decimal.Decimal
	Status   Status
}

// Process removes every line from the ledger, one flower at a time, in
// first-add order. On the first failure the lines already removed are
// compensated in the same order, the order becomes failed, and the
// underlying cause is wrapped into a single invalid-order error. The
// ledger records every removal attempt either way, so the audit trail
// survives a failed order.
func (o *Order) Process(ctx context.Context) (Summary, error) {
	if len(o.lines) == 0 {
		return Summary{}, shoperr.InvalidOrder("cannot process an empty order")
	}
	if o.status != StatusNew {
		return Summary{}, shoperr.InvalidOrder("order has already been processed")
	}

	steps := make([]step, 0, len(o.sequence))
	for _, name := range o.sequence {
		steps = append(steps, &removeLineStep{stock: o.stock, flower: name, quantity: o.lines[name]})
	}

	done, err := execute(ctx, steps)
	if err != nil {
		o.status = StatusFailed
		rollback(ctx, done)
		return Summary{}, shoperr.Wrap(err, shoperr.KindInvalidOrder, "E001", "order processing failed")
	}

	o.status = StatusProcessed
	return o.summary(), nil
}

func (o *Order) summary() Summary {
	return Summary{
		Customer: o.customer,
		Items:    o.Lines(),
		Total:    o.total,
		Status:   o.status,
	}
}

func (o *Order) String() string {
	names := make([]string, 0, len(o.lines))
	for name := range o.lines {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", o.lines[name], name))
	}
	return fmt.Sprintf("Order for %s: %s. Total: $%s (%s)",
		o.customer, strings.Join(parts, ", "), o.total.StringFixed(2), o.status)
}
