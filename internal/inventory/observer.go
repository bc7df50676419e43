package inventory

import (
	"context"
	"log/slog"
)

// Observer is the sink the ledger notifies at its defined observation
// points: a transaction was recorded, or a compensating rollback was
// attempted. The core never prints; binaries decide what a notification
// becomes.
type Observer interface {
	TransactionRecorded(ctx context.Context, rec TransactionRecord)
	RollbackAttempted(ctx context.Context, flower string, quantity int, err error)
}

// LogObserver forwards every notification to a structured logger. It is
// the default sink for binaries without a richer audit pipeline.
type LogObserver struct {
	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

func (o *LogObserver) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *LogObserver) TransactionRecorded(ctx context.Context, rec TransactionRecord) {
	attrs := []any{
		"kind", string(rec.Kind),
		"flower", rec.FlowerName,
		"quantity", rec.Quantity,
		"status", string(rec.Status),
	}
	if rec.Status == StatusFailed {
		attrs = append(attrs, "error", rec.Error)
		o.logger().WarnContext(ctx, "ledger transaction failed", attrs...)
		return
	}
	o.logger().InfoContext(ctx, "ledger transaction recorded", attrs...)
}

func (o *LogObserver) RollbackAttempted(ctx context.Context, flower string, quantity int, err error) {
	if err != nil {
		o.logger().ErrorContext(ctx, "stock rollback failed",
			"flower", flower, "quantity", quantity, "error", err)
		return
	}
	o.logger().InfoContext(ctx, "stock rolled back", "flower", flower, "quantity", quantity)
}
