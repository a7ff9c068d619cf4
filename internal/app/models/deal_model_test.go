package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func happyHourDeal() *Deal {
	return &Deal{
		Kind:         DealKindHappyHour,
		StartAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		DaysOfWeek:   []string{"monday"},
		TimeWindows:  []TimeWindow{{Start: "17:00", End: "19:00"}},
		PerUserLimit: 1,
	}
}

func TestDealIsActiveAtInstant(t *testing.T) {
	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	deal := &Deal{
		Kind:         DealKindInstant,
		StartAt:      start,
		EndAt:        end,
		PerUserLimit: 1,
	}
	loc := newYork(t)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"at start", start, true},
		{"mid window", start.Add(3 * time.Hour), true},
		{"at end", end, true},
		{"after end", end.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deal.IsActiveAt(tt.now, loc))
		})
	}
}

func TestDealIsActiveAtHappyHour(t *testing.T) {
	deal := happyHourDeal()
	loc := newYork(t)

	// 2026-06-01 is a Monday.
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"monday 18:00 local", time.Date(2026, 6, 1, 18, 0, 0, 0, loc), true},
		{"tuesday 18:00 local", time.Date(2026, 6, 2, 18, 0, 0, 0, loc), false},
		{"monday just before window", time.Date(2026, 6, 1, 16, 59, 59, 0, loc), false},
		{"monday at window start", time.Date(2026, 6, 1, 17, 0, 0, 0, loc), true},
		{"monday 18:59:59", time.Date(2026, 6, 1, 18, 59, 59, 0, loc), true},
		{"monday 19:00:00 excluded", time.Date(2026, 6, 1, 19, 0, 0, 0, loc), false},
		{"before absolute start", time.Date(2025, 12, 29, 18, 0, 0, 0, loc), false},
		{"after absolute end", time.Date(2027, 1, 4, 18, 0, 0, 0, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deal.IsActiveAt(tt.now, loc))
		})
	}
}

func TestDealIsActiveAtUsesVenueLocalWeekday(t *testing.T) {
	loc := newYork(t)
	deal := happyHourDeal()
	deal.DaysOfWeek = []string{"friday"}
	deal.TimeWindows = []TimeWindow{{Start: "20:00", End: "23:00"}}

	// 2026-06-06 02:00 UTC is Saturday in UTC but Friday 22:00 in New York.
	now := time.Date(2026, 6, 6, 2, 0, 0, 0, time.UTC)
	assert.True(t, deal.IsActiveAt(now, loc))

	utc, err := time.LoadLocation("UTC")
	require.NoError(t, err)
	assert.False(t, deal.IsActiveAt(now, utc))
}

func TestDealIsActiveAtMultipleWindows(t *testing.T) {
	loc := newYork(t)
	deal := happyHourDeal()
	deal.TimeWindows = []TimeWindow{
		{Start: "12:00", End: "14:00"},
		{Start: "17:00", End: "19:00"},
	}

	assert.True(t, deal.IsActiveAt(time.Date(2026, 6, 1, 13, 0, 0, 0, loc), loc))
	assert.True(t, deal.IsActiveAt(time.Date(2026, 6, 1, 18, 0, 0, 0, loc), loc))
	assert.False(t, deal.IsActiveAt(time.Date(2026, 6, 1, 15, 0, 0, 0, loc), loc))
}

func TestDealHasDayIsCaseInsensitive(t *testing.T) {
	deal := happyHourDeal()
	deal.DaysOfWeek = []string{"Monday", "WEDNESDAY"}

	assert.True(t, deal.HasDay(time.Monday))
	assert.True(t, deal.HasDay(time.Wednesday))
	assert.False(t, deal.HasDay(time.Friday))
}

func TestDealExpiryHorizonAt(t *testing.T) {
	loc := newYork(t)

	t.Run("happy hour expires at window end", func(t *testing.T) {
		deal := happyHourDeal()
		now := time.Date(2026, 6, 1, 18, 0, 0, 0, loc)

		expiry, ok := deal.ExpiryHorizonAt(now, loc)
		require.True(t, ok)
		assert.True(t, expiry.Equal(time.Date(2026, 6, 1, 19, 0, 0, 0, loc)))
	})

	t.Run("happy hour capped by deal end", func(t *testing.T) {
		deal := happyHourDeal()
		deal.EndAt = time.Date(2026, 6, 1, 18, 30, 0, 0, loc).UTC()
		now := time.Date(2026, 6, 1, 18, 0, 0, 0, loc)

		expiry, ok := deal.ExpiryHorizonAt(now, loc)
		require.True(t, ok)
		assert.True(t, expiry.Equal(deal.EndAt))
	})

	t.Run("instant expires at deal end", func(t *testing.T) {
		deal := &Deal{
			Kind:         DealKindInstant,
			StartAt:      time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
			EndAt:        time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
			PerUserLimit: 1,
		}
		now := time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)

		expiry, ok := deal.ExpiryHorizonAt(now, loc)
		require.True(t, ok)
		assert.True(t, expiry.Equal(deal.EndAt))
	})

	t.Run("no horizon outside schedule", func(t *testing.T) {
		deal := happyHourDeal()
		now := time.Date(2026, 6, 2, 18, 0, 0, 0, loc)

		_, ok := deal.ExpiryHorizonAt(now, loc)
		assert.False(t, ok)
	})
}

func TestDealValidateSchedule(t *testing.T) {
	valid := func() *Deal { return happyHourDeal() }

	t.Run("valid happy hour", func(t *testing.T) {
		assert.NoError(t, valid().ValidateSchedule())
	})

	t.Run("valid instant", func(t *testing.T) {
		deal := valid()
		deal.Kind = DealKindInstant
		deal.DaysOfWeek = nil
		deal.TimeWindows = nil
		assert.NoError(t, deal.ValidateSchedule())
	})

	tests := []struct {
		name   string
		mutate func(*Deal)
	}{
		{"start after end", func(d *Deal) { d.StartAt, d.EndAt = d.EndAt, d.StartAt }},
		{"start equals end", func(d *Deal) { d.EndAt = d.StartAt }},
		{"per user limit zero", func(d *Deal) { d.PerUserLimit = 0 }},
		{"max redemptions zero", func(d *Deal) { zero := 0; d.MaxRedemptions = &zero }},
		{"no days of week", func(d *Deal) { d.DaysOfWeek = nil }},
		{"unknown day name", func(d *Deal) { d.DaysOfWeek = []string{"funday"} }},
		{"no time windows", func(d *Deal) { d.TimeWindows = nil }},
		{"bad clock format", func(d *Deal) { d.TimeWindows = []TimeWindow{{Start: "5pm", End: "19:00"}} }},
		{"hour out of range", func(d *Deal) { d.TimeWindows = []TimeWindow{{Start: "25:00", End: "26:00"}} }},
		{"window crosses midnight", func(d *Deal) { d.TimeWindows = []TimeWindow{{Start: "22:00", End: "02:00"}} }},
		{"empty window", func(d *Deal) { d.TimeWindows = []TimeWindow{{Start: "17:00", End: "17:00"}} }},
		{"unknown kind", func(d *Deal) { d.Kind = DealKind("FLASH") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := valid()
			tt.mutate(deal)
			assert.Error(t, deal.ValidateSchedule())
		})
	}
}

func TestTimeWindowCovers(t *testing.T) {
	w := TimeWindow{Start: "17:00", End: "19:00"}

	assert.False(t, w.Covers(16*60+59))
	assert.True(t, w.Covers(17*60))
	assert.True(t, w.Covers(18*60+59))
	assert.False(t, w.Covers(19*60))
}
