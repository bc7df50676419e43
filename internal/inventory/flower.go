// Package inventory owns the flower catalogue: the Flower value itself
// and the Ledger that tracks stock levels behind an append-only
// transaction log.
package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petalworks/flowershop/internal/pkg/shoperr"
)

// DefaultFreshnessDays is the freshness window applied when a flower is
// created without an explicit one.
const DefaultFreshnessDays = 7

var namePattern = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

// Flower is a single perishable product: identity, price, stock level,
// and the date through which it may be sold.
//
// The name is immutable after construction. Quantity is mutated only by
// the Ledger that owns the flower.
type Flower struct {
	name     string
	price    decimal.Decimal
	quantity int
	expiry   time.Time
}

// FlowerOption customises construction.
type FlowerOption func(*flowerSettings)

type flowerSettings struct {
	freshnessDays int
	now           func() time.Time
}

// WithFreshnessDays overrides the default freshness window.
func WithFreshnessDays(days int) FlowerOption {
	return func(s *flowerSettings) { s.freshnessDays = days }
}

// WithCreationClock overrides the clock used to stamp the expiry date.
func WithCreationClock(now func() time.Time) FlowerOption {
	return func(s *flowerSettings) { s.now = now }
}

// NewFlower validates each field and returns the constructed flower.
// Range failures carry codes distinct from the format failures reported
// by ParseFlower.
func NewFlower(name string, price decimal.Decimal, quantity int, opts ...FlowerOption) (*Flower, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, shoperr.InvalidItemData("F004", "price must be positive")
	}
	if quantity < 0 {
		return nil, shoperr.InvalidItemData("F006", "quantity cannot be negative")
	}

	s := flowerSettings{freshnessDays: DefaultFreshnessDays, now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}

	return &Flower{
		name:     name,
		price:    price,
		quantity: quantity,
		expiry:   s.now().AddDate(0, 0, s.freshnessDays),
	}, nil
}

// ParseFlower builds a flower from raw string inputs, the form they
// arrive in from HTTP bodies and CLI flags. A price or quantity that
// does not parse at all fails with a format code before any range check
// runs.
func ParseFlower(name, price, quantity string, opts ...FlowerOption) (*Flower, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return nil, shoperr.InvalidItemData("F005", "invalid price format: %q", price)
	}
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return nil, shoperr.InvalidItemData("F007", "invalid quantity format: %q", quantity)
	}
	return NewFlower(name, p, q, opts...)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shoperr.InvalidItemData("F002", "flower name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return shoperr.InvalidItemData("F003",
			"invalid flower name %q: only letters, spaces, hyphens, and apostrophes are allowed", name)
	}
	return nil
}

// Name returns the immutable flower name.
func (f *Flower) Name() string { return f.name }

// Price returns the unit price.
func (f *Flower) Price() decimal.Decimal { return f.price }

// Quantity returns the current stock level.
func (f *Flower) Quantity() int { return f.quantity }

// Expiry returns the last instant of the freshness window.
func (f *Flower) Expiry() time.Time { return f.expiry }

// FreshOn reports whether the flower may still be sold on the calendar
// date of t. The expiry day itself counts as fresh.
func (f *Flower) FreshOn(t time.Time) bool {
	return !dateOf(t).After(dateOf(f.expiry))
}

// IsFresh reports freshness against the wall clock.
func (f *Flower) IsFresh() bool { return f.FreshOn(time.Now()) }

func (f *Flower) String() string {
	return fmt.Sprintf("%s: $%s, %d in stock, fresh until %s",
		f.name, f.price.StringFixed(2), f.quantity, f.expiry.Format("2006-01-02"))
}

// dateOf truncates an instant to its calendar date. Freshness compares
// dates, not instants.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
