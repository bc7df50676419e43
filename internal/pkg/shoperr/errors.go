// Package shoperr defines the error taxonomy shared by the inventory,
// order, and report packages.
//
// Every failure the shop can produce is a single discriminated *Error
// carrying a Kind (the machine-checkable category), a stable short code,
// and kind-specific payload fields. Callers branch on the category with
// KindOf/IsKind or errors.As instead of matching message strings.
package shoperr

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the category of a shop error.
type Kind uint8

const (
	// KindInternal covers invalid collaborators and unexpected failures
	// wrapped for uniform handling.
	KindInternal Kind = iota
	// KindInvalidItemData marks a malformed or out-of-range flower field.
	KindInvalidItemData
	// KindInvalidOrder marks an invalid customer, a mutation of a
	// non-new order, or a processing failure.
	KindInvalidOrder
	// KindNotFound marks a flower name absent from the ledger.
	KindNotFound
	// KindOutOfStock marks a request exceeding the available quantity.
	KindOutOfStock
	// KindExpired marks a flower past its freshness window.
	KindExpired
)

func (k Kind) String() string {
	switch k {
	case KindInvalidItemData:
		return "invalid_item_data"
	case KindInvalidOrder:
		return "invalid_order"
	case KindNotFound:
		return "not_found"
	case KindOutOfStock:
		return "out_of_stock"
	case KindExpired:
		return "expired"
	default:
		return "internal"
	}
}

// Error is the one error type used across the shop core.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	// Requested and Available are populated when Kind is KindOutOfStock.
	Requested int
	Available int

	// Expiry is populated when Kind is KindExpired.
	Expiry time.Time

	cause error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	if e.Code == "" {
		return msg
	}
	return "[" + e.Code + "] " + msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches another *Error by Kind, and by Code when the target sets one.
// This lets tests write errors.Is(err, &Error{Kind: KindNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an error of the given kind with a stable code and a
// formatted human-readable message.
func New(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an error of the given kind whose message embeds the cause.
// The cause stays reachable through errors.Unwrap.
func Wrap(cause error, kind Kind, code, format string, args ...any) *Error {
	e := New(kind, code, format, args...)
	e.cause = cause
	return e
}

// InvalidItemData reports a malformed or out-of-range flower field.
func InvalidItemData(code, format string, args ...any) *Error {
	return New(KindInvalidItemData, code, format, args...)
}

// InvalidOrder reports an order that cannot be created, mutated, or
// processed in its current state.
func InvalidOrder(reason string) *Error {
	return New(KindInvalidOrder, "E001", "invalid order: %s", reason)
}

// NotFound reports a flower name absent from the ledger. The code
// identifies the call site, matching the audit conventions of the shop.
func NotFound(code, name string) *Error {
	return New(KindNotFound, code, "flower not found: %s", name)
}

// OutOfStock reports a request exceeding the available quantity,
// carrying both figures for the caller.
func OutOfStock(name string, requested, available int) *Error {
	e := New(KindOutOfStock, "I001",
		"insufficient stock for %s: requested %d, available %d", name, requested, available)
	e.Requested = requested
	e.Available = available
	return e
}

// Expired reports a flower past its freshness window.
func Expired(name string, expiry time.Time) *Error {
	e := New(KindExpired, "I002",
		"flower %q has expired; was fresh until %s", name, expiry.Format("2006-01-02"))
	e.Expiry = expiry
	return e
}

// KindOf extracts the Kind from err. The second return value is false
// when err does not wrap a shop error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindInternal, false
}

// IsKind reports whether err wraps a shop error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
