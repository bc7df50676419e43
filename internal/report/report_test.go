package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/flowershop/internal/inventory"
	"github.com/petalworks/flowershop/internal/pkg/shoperr"
)

func seededLedger(t *testing.T) *inventory.Ledger {
	t.Helper()
	ctx := context.Background()
	l := inventory.NewLedger()
	for _, row := range []struct{ name, price, qty string }{
		{"Rose", "4.99", "50"},
		{"Tulip", "3.49", "30"},
		{"Lily", "5.99", "4"},
	} {
		f, err := inventory.ParseFlower(row.name, row.price, row.qty)
		require.NoError(t, err)
		require.NoError(t, l.Add(ctx, f))
	}
	require.NoError(t, l.Remove(ctx, "Rose", 8))
	require.NoError(t, l.Remove(ctx, "Tulip", 3))
	require.Error(t, l.Remove(ctx, "Rose", 500)) // failed attempts never count
	return l
}

func TestGenerate(t *testing.T) {
	fixed := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	daily, err := Generate(seededLedger(t), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	assert.Equal(t, "2026-08-23", daily.Date)
	assert.Equal(t, 3, daily.FlowerCount)
	assert.Equal(t, 11, daily.UnitsSold)
	assert.Equal(t, 84, daily.UnitsRestocked)

	require.Len(t, daily.StockAlerts, 1)
	alert := daily.StockAlerts[0]
	assert.Equal(t, "Lily", alert.Flower)
	assert.Equal(t, 4, alert.CurrentStock)
	assert.True(t, alert.Price.Equal(decimal.RequireFromString("5.99")))
}

func TestGenerateThreshold(t *testing.T) {
	daily, err := Generate(seededLedger(t), WithLowStockThreshold(40))
	require.NoError(t, err)

	// Rose dropped to 42; Tulip to 27 and Lily at 4 both alert.
	assert.Len(t, daily.StockAlerts, 2)
}

type faultySource struct {
	flowersErr error
	logErr     error
}

func (s *faultySource) Flowers() ([]inventory.Flower, error) { return nil, s.flowersErr }
func (s *faultySource) Log() ([]inventory.TransactionRecord, error) {
	return nil, s.logErr
}

func TestGenerateWrapsSourceFailures(t *testing.T) {
	cause := errors.New("snapshot unavailable")

	for name, src := range map[string]Source{
		"log":     &faultySource{logErr: cause},
		"flowers": &faultySource{flowersErr: cause},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Generate(src)
			require.Error(t, err)
			assert.True(t, shoperr.IsKind(err, shoperr.KindInternal))
			assert.ErrorIs(t, err, cause)
		})
	}
}
