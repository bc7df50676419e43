package order

import (
	"context"
	"log/slog"
)

// step is a single unit of work in order processing. Each step carries
// a compensating action that undoes its effect on stock.
type step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// removeLineStep deducts one order line from the ledger. Its
// compensation restores the quantity directly, bypassing the audit path:
// a rollback is not a new transaction.
type removeLineStep struct {
	stock    Stock
	flower   string
	quantity int
}

func (s *removeLineStep) Name() string { return s.flower }

func (s *removeLineStep) Execute(ctx context.Context) error {
	return s.stock.Remove(ctx, s.flower, s.quantity)
}

func (s *removeLineStep) Compensate(ctx context.Context) error {
	return s.stock.Restore(ctx, s.flower, s.quantity)
}

// execute runs the steps sequentially and returns the ones that
// completed before the first failure, so the caller can compensate
// exactly those.
func execute(ctx context.Context, steps []step) ([]step, error) {
	var done []step
	for _, s := range steps {
		if err := s.Execute(ctx); err != nil {
			return done, err
		}
		done = append(done, s)
	}
	return done, nil
}

// rollback compensates the completed steps in the order they were
// processed. It never fails: compensation errors are logged and folded
// into the returned flag, which is diagnostic only — a rollback failure
// must not mask the processing failure that triggered it.
func rollback(ctx context.Context, done []step) bool {
	complete := true
	for _, s := range done {
		if err := s.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to compensate order line",
				"flower", s.Name(), "error", err)
			complete = false
		}
	}
	slog.InfoContext(ctx, "stock rollback finished", "complete", complete, "lines", len(done))
	return complete
}
