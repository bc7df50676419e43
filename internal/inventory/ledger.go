package inventory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/petalworks/flowershop/internal/pkg/shoperr"
)

// Ledger is the authoritative store of current stock plus the audit log
// of every mutation attempt.
//
// One mutex guards both the flower map and the log, so the
// validate → check → mutate → log sequence of a single call is atomic
// with respect to other callers.
type Ledger struct {
	mu      sync.Mutex
	flowers map[string]*Flower
	log     []TransactionRecord

	// observer is nil-safe: notifications are skipped when unset.
	observer Observer
	now      func() time.Time
}

// LedgerOption customises a new ledger.
type LedgerOption func(*Ledger)

// WithObserver installs the notification sink.
func WithObserver(o Observer) LedgerOption {
	return func(l *Ledger) { l.observer = o }
}

// WithClock overrides the clock used for freshness checks and record
// timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		flowers: make(map[string]*Flower),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers new stock. When a flower with the same name already
// exists its quantity grows by the new flower's quantity; price and
// expiry are left untouched. Exactly one transaction record is appended
// whatever the outcome, and a failure record is observable before the
// error reaches the caller.
func (l *Ledger) Add(ctx context.Context, f *Flower) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name, quantity := "unknown", 0
	if f != nil {
		name, quantity = f.name, f.quantity
	}
	rec := newRecord(ctx, KindAdd, name, quantity, l.now())
	defer l.append(ctx, &rec, &err)

	if f == nil {
		return shoperr.InvalidItemData("I003", "invalid flower object")
	}
	if existing, ok := l.flowers[f.name]; ok {
		existing.quantity += f.quantity
		return nil
	}
	l.flowers[f.name] = f
	return nil
}

// Remove deducts stock. Validation runs in a fixed order: name, then
// quantity, then existence, then freshness, then sufficiency. A failed
// attempt leaves the stock level exactly as it was. Exactly one
// transaction record is appended whatever the outcome.
func (l *Ledger) Remove(ctx context.Context, name string, quantity int) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := newRecord(ctx, KindRemove, name, quantity, l.now())
	defer l.append(ctx, &rec, &err)

	if strings.TrimSpace(name) == "" {
		return shoperr.InvalidItemData("I004", "flower name cannot be empty")
	}
	if quantity <= 0 {
		return shoperr.InvalidItemData("I005", "quantity must be positive, got %d", quantity)
	}
	f, ok := l.flowers[name]
	if !ok {
		return shoperr.NotFound("I007", name)
	}
	if !f.FreshOn(l.now()) {
		return shoperr.Expired(name, f.expiry)
	}
	if quantity > f.quantity {
		return shoperr.OutOfStock(name, quantity, f.quantity)
	}

	before := f.quantity
	f.quantity -= quantity
	if f.quantity < 0 {
		// The sufficiency check above makes underflow impossible; restore
		// anyway so a check added below the mutation can never leak a
		// partial decrement.
		f.quantity = before
		return shoperr.OutOfStock(name, quantity, before)
	}
	return nil
}

// append finalises the record from the pending operation's error and
// pushes it onto the log. Runs deferred so every exit path of Add and
// Remove logs exactly once.
func (l *Ledger) append(ctx context.Context, rec *TransactionRecord, errp *error) {
	if *errp != nil {
		rec.Status = StatusFailed
		rec.Error = (*errp).Error()
	} else {
		rec.Status = StatusCompleted
	}
	l.log = append(l.log, *rec)
	if l.observer != nil {
		l.observer.TransactionRecorded(ctx, *rec)
	}
}

// Restore adds quantity back to a flower directly, bypassing the audit
// path. It is the compensating action for a partially processed order,
// not a new transaction, so no record is appended.
func (l *Ledger) Restore(ctx context.Context, name string, quantity int) error {
	l.mu.Lock()
	var err error
	if f, ok := l.flowers[name]; ok {
		f.quantity += quantity
	} else {
		err = shoperr.NotFound("I007", name)
	}
	l.mu.Unlock()

	if l.observer != nil {
		l.observer.RollbackAttempted(ctx, name, quantity, err)
	}
	return err
}

// CheckStock returns the current quantity for a flower.
func (l *Ledger) CheckStock(name string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.flowers[name]
	if !ok {
		return 0, shoperr.NotFound("I008", name)
	}
	return f.quantity, nil
}

// Flower returns a copy of the named flower's current state.
func (l *Ledger) Flower(name string) (Flower, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.flowers[name]
	if !ok {
		return Flower{}, false
	}
	return *f, true
}

// Flowers returns a snapshot of every flower currently tracked.
func (l *Ledger) Flowers() ([]Flower, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Flower, 0, len(l.flowers))
	for _, f := range l.flowers {
		out = append(out, *f)
	}
	return out, nil
}

// Log returns a copy of the transaction log in chronological order.
func (l *Ledger) Log() ([]TransactionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]TransactionRecord, len(l.log))
	copy(out, l.log)
	return out, nil
}
