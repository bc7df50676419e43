package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/flowershop/internal/pkg/shoperr"
)

type fakeObserver struct {
	mu        sync.Mutex
	recorded  []TransactionRecord
	rollbacks []string
}

func (o *fakeObserver) TransactionRecorded(_ context.Context, rec TransactionRecord) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recorded = append(o.recorded, rec)
}

func (o *fakeObserver) RollbackAttempted(_ context.Context, flower string, _ int, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rollbacks = append(o.rollbacks, flower)
}

func mustFlower(t *testing.T, name, price, quantity string, opts ...FlowerOption) *Flower {
	t.Helper()
	f, err := ParseFlower(name, price, quantity, opts...)
	require.NoError(t, err)
	return f
}

func TestAddMergesExistingStock(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	first := mustFlower(t, "Rose", "4.99", "50", WithFreshnessDays(5))
	require.NoError(t, l.Add(ctx, first))
	require.NoError(t, l.Add(ctx, mustFlower(t, "Rose", "9.99", "20", WithFreshnessDays(1))))

	stock, err := l.CheckStock("Rose")
	require.NoError(t, err)
	assert.Equal(t, 70, stock)

	// Merge touches quantity only; price and expiry stay from the first add.
	got, ok := l.Flower("Rose")
	require.True(t, ok)
	assert.True(t, got.Price().Equal(first.Price()))
	assert.Equal(t, first.Expiry(), got.Expiry())
}

func TestAddRejectsNilFlower(t *testing.T) {
	ctx := context.Background()
	obs := &fakeObserver{}
	l := NewLedger(WithObserver(obs))

	err := l.Add(ctx, nil)
	require.Error(t, err)
	assert.True(t, shoperr.IsKind(err, shoperr.KindInvalidItemData))

	// The failure record is appended and observable even though nothing
	// was mutated.
	log, err := l.Log()
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, KindAdd, log[0].Kind)
	assert.Equal(t, StatusFailed, log[0].Status)
	assert.Equal(t, "unknown", log[0].FlowerName)
	require.Len(t, obs.recorded, 1)
}

func TestRemoveValidationOrder(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	require.NoError(t, l.Add(ctx, mustFlower(t, "Rose", "4.99", "10")))

	t.Run("empty name", func(t *testing.T) {
		err := l.Remove(ctx, "  ", 1)
		assert.True(t, shoperr.IsKind(err, shoperr.KindInvalidItemData))
	})

	t.Run("non-positive quantity fails before existence", func(t *testing.T) {
		err := l.Remove(ctx, "Ghost", 0)
		assert.True(t, shoperr.IsKind(err, shoperr.KindInvalidItemData))
	})

	t.Run("unknown flower", func(t *testing.T) {
		err := l.Remove(ctx, "Ghost", 1)
		assert.True(t, shoperr.IsKind(err, shoperr.KindNotFound))
	})

	t.Run("freshness checked before sufficiency", func(t *testing.T) {
		stale := NewLedger(WithClock(func() time.Time {
			return time.Now().AddDate(0, 0, 3)
		}))
		require.NoError(t, stale.Add(ctx, mustFlower(t, "Lily", "5.99", "5", WithFreshnessDays(1))))

		// Request far more than stocked; expiry must still win.
		err := stale.Remove(ctx, "Lily", 100)
		assert.True(t, shoperr.IsKind(err, shoperr.KindExpired))
	})
}

func TestRemoveOutOfStockLeavesQuantityUntouched(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	require.NoError(t, l.Add(ctx, mustFlower(t, "Rose", "4.99", "50")))

	err := l.Remove(ctx, "Rose", 100)
	require.Error(t, err)

	var se *shoperr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, shoperr.KindOutOfStock, se.Kind)
	assert.Equal(t, 100, se.Requested)
	assert.Equal(t, 50, se.Available)

	stock, err := l.CheckStock("Rose")
	require.NoError(t, err)
	assert.Equal(t, 50, stock)
}

func TestRemoveDecrementsExactly(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	require.NoError(t, l.Add(ctx, mustFlower(t, "Rose", "4.99", "50")))

	require.NoError(t, l.Remove(ctx, "Rose", 8))
	stock, err := l.CheckStock("Rose")
	require.NoError(t, err)
	assert.Equal(t, 42, stock)
}

func TestEveryAttemptAppendsOneRecord(t *testing.T) {
	ctx := context.Background()
	obs := &fakeObserver{}
	l := NewLedger(WithObserver(obs))

	require.NoError(t, l.Add(ctx, mustFlower(t, "Rose", "4.99", "50")))
	require.NoError(t, l.Remove(ctx, "Rose", 5))
	require.Error(t, l.Remove(ctx, "Rose", 500))
	require.Error(t, l.Remove(ctx, "Ghost", 1))

	log, err := l.Log()
	require.NoError(t, err)
	require.Len(t, log, 4)

	assert.Equal(t, StatusCompleted, log[0].Status)
	assert.Equal(t, StatusCompleted, log[1].Status)
	assert.Equal(t, StatusFailed, log[2].Status)
	assert.Equal(t, StatusFailed, log[3].Status)
	assert.Len(t, obs.recorded, 4)

	for _, rec := range log {
		assert.NotEqual(t, "", rec.ID.String())
		assert.False(t, rec.At.IsZero())
	}
}

func TestRemoveUnknownLogsSingleFailedRecord(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	err := l.Remove(ctx, "Ghost", 1)
	require.Error(t, err)
	assert.True(t, shoperr.IsKind(err, shoperr.KindNotFound))

	log, lerr := l.Log()
	require.NoError(t, lerr)
	require.Len(t, log, 1)
	assert.Equal(t, "Ghost", log[0].FlowerName)
	assert.Equal(t, KindRemove, log[0].Kind)
	assert.Equal(t, StatusFailed, log[0].Status)
}

func TestRestoreBypassesAuditLog(t *testing.T) {
	ctx := context.Background()
	obs := &fakeObserver{}
	l := NewLedger(WithObserver(obs))
	require.NoError(t, l.Add(ctx, mustFlower(t, "Rose", "4.99", "50")))
	require.NoError(t, l.Remove(ctx, "Rose", 10))

	require.NoError(t, l.Restore(ctx, "Rose", 10))

	stock, err := l.CheckStock("Rose")
	require.NoError(t, err)
	assert.Equal(t, 50, stock)

	log, err := l.Log()
	require.NoError(t, err)
	assert.Len(t, log, 2) // add + remove only, no record for the restore
	assert.Equal(t, []string{"Rose"}, obs.rollbacks)

	assert.Error(t, l.Restore(ctx, "Ghost", 1))
}

func TestCheckStockUnknown(t *testing.T) {
	l := NewLedger()
	_, err := l.CheckStock("Ghost")
	assert.True(t, shoperr.IsKind(err, shoperr.KindNotFound))
}

func TestSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	require.NoError(t, l.Add(ctx, mustFlower(t, "Rose", "4.99", "50")))

	flowers, err := l.Flowers()
	require.NoError(t, err)
	require.Len(t, flowers, 1)

	require.NoError(t, l.Remove(ctx, "Rose", 10))
	assert.Equal(t, 50, flowers[0].Quantity(), "snapshot must not track later mutations")
}
