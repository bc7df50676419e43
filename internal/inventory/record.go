package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// TransactionKind distinguishes the two ledger mutations.
type TransactionKind string

const (
	KindAdd    TransactionKind = "add"
	KindRemove TransactionKind = "remove"
)

// TransactionStatus is the outcome recorded for one mutation attempt.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// TransactionRecord is one immutable row in the ledger's audit log.
// Every attempted add or remove appends exactly one record, whatever
// the outcome, so the log can be replayed to reconstruct what happened
// even after an error.
type TransactionRecord struct {
	// ID uniquely identifies this attempt.
	ID uuid.UUID

	Kind       TransactionKind
	FlowerName string
	Quantity   int
	Status     TransactionStatus

	// Error holds the failure message when Status is StatusFailed.
	Error string

	// TraceID and SpanID are the W3C identifiers of the OpenTelemetry
	// span active when the mutation was attempted. Empty when no span is
	// in flight (e.g. in unit tests); they let an operator jump from an
	// audit row straight to the distributed trace.
	TraceID string
	SpanID  string

	// At is the wall-clock time the attempt started.
	At time.Time
}

func newRecord(ctx context.Context, kind TransactionKind, name string, quantity int, at time.Time) TransactionRecord {
	traceID, spanID := traceInfo(ctx)
	return TransactionRecord{
		ID:         uuid.New(),
		Kind:       kind,
		FlowerName: name,
		Quantity:   quantity,
		Status:     StatusPending,
		TraceID:    traceID,
		SpanID:     spanID,
		At:         at,
	}
}

// traceInfo reads the active span from ctx. Both strings are empty when
// the context carries no valid span.
func traceInfo(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}
