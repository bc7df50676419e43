package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalworks/flowershop/internal/pkg/shoperr"
)

func TestParseFlowerValidation(t *testing.T) {
	cases := []struct {
		name     string
		flower   string
		price    string
		quantity string
		wantCode string
	}{
		{"plain name", "Rose", "4.99", "50", ""},
		{"name with space and hyphen", "Peace Lily-White", "9.50", "3", ""},
		{"name with apostrophe", "O'Hara Rose", "6.00", "0", ""},
		{"empty name", "", "4.99", "50", "F002"},
		{"whitespace name", "   ", "4.99", "50", "F002"},
		{"name with digit", "Rose2", "4.99", "50", "F003"},
		{"name with symbol", "Rose@", "4.99", "50", "F003"},
		{"zero price", "Rose", "0", "50", "F004"},
		{"negative price", "Rose", "-5.99", "50", "F004"},
		{"unparseable price", "Rose", "cheap", "50", "F005"},
		{"negative quantity", "Rose", "4.99", "-1", "F006"},
		{"unparseable quantity", "Rose", "4.99", "ten", "F007"},
		{"fractional quantity", "Rose", "4.99", "2.5", "F007"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseFlower(tc.flower, tc.price, tc.quantity)
			if tc.wantCode == "" {
				require.NoError(t, err)
				require.NotNil(t, f)
				return
			}
			require.Nil(t, f)
			var se *shoperr.Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, shoperr.KindInvalidItemData, se.Kind)
			assert.Equal(t, tc.wantCode, se.Code)
		})
	}
}

func TestNewFlowerDefaults(t *testing.T) {
	created := time.Date(2026, 8, 3, 15, 30, 0, 0, time.UTC)
	f, err := NewFlower("Rose", decimal.RequireFromString("4.99"), 50,
		WithCreationClock(func() time.Time { return created }))
	require.NoError(t, err)

	assert.Equal(t, "Rose", f.Name())
	assert.Equal(t, 50, f.Quantity())
	assert.True(t, f.Price().Equal(decimal.RequireFromString("4.99")))
	assert.Equal(t, created.AddDate(0, 0, DefaultFreshnessDays), f.Expiry())
}

func TestFlowerFreshnessWindow(t *testing.T) {
	// Scenario: five-day window is fresh on creation.
	f, err := ParseFlower("Rose", "4.99", "50", WithFreshnessDays(5))
	require.NoError(t, err)
	assert.True(t, f.IsFresh())
}

func TestFreshnessBoundary(t *testing.T) {
	created := time.Date(2026, 8, 3, 23, 50, 0, 0, time.UTC)
	f, err := NewFlower("Tulip", decimal.RequireFromString("3.49"), 30,
		WithFreshnessDays(0),
		WithCreationClock(func() time.Time { return created }))
	require.NoError(t, err)

	// A zero-day window stays fresh through the whole creation day and
	// lapses at midnight, whatever the time of day.
	assert.True(t, f.FreshOn(created))
	assert.True(t, f.FreshOn(created.Add(5*time.Minute)))
	assert.False(t, f.FreshOn(created.AddDate(0, 0, 1)))
	assert.False(t, f.FreshOn(created.Add(10*time.Minute))) // crossed midnight
}

func TestFlowerString(t *testing.T) {
	created := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	f, err := NewFlower("Lily", decimal.RequireFromString("5.99"), 20,
		WithFreshnessDays(4),
		WithCreationClock(func() time.Time { return created }))
	require.NoError(t, err)

	assert.Equal(t, "Lily: $5.99, 20 in stock, fresh until 2026-08-07", f.String())
}
