package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimableDeal() *Deal {
	deal := happyHourDeal()
	deal.Active = true
	deal.ApprovalStatus = DealApprovalApproved
	return deal
}

// Monday 18:00 in New York, inside the 17:00-19:00 window.
func claimInstant(t *testing.T) (time.Time, *time.Location) {
	t.Helper()
	loc := newYork(t)
	return time.Date(2026, 6, 1, 18, 0, 0, 0, loc), loc
}

func TestCheckClaimAllowed(t *testing.T) {
	now, loc := claimInstant(t)

	assert.Nil(t, CheckClaim(claimableDeal(), loc, now, 0, 0))
}

func TestCheckClaimDenials(t *testing.T) {
	now, loc := claimInstant(t)
	max := 10

	tests := []struct {
		name      string
		mutate    func(*Deal)
		userCount int64
		total     int64
		want      DenialReason
	}{
		{
			name:   "kill switch off",
			mutate: func(d *Deal) { d.Active = false },
			want:   DenialDealInactive,
		},
		{
			name:   "not approved",
			mutate: func(d *Deal) { d.ApprovalStatus = DealApprovalPending },
			want:   DenialDealInactive,
		},
		{
			name:   "rejected",
			mutate: func(d *Deal) { d.ApprovalStatus = DealApprovalRejected },
			want:   DenialDealInactive,
		},
		{
			name:   "outside schedule",
			mutate: func(d *Deal) { d.DaysOfWeek = []string{"tuesday"} },
			want:   DenialDealNotInWindow,
		},
		{
			name:      "per user limit reached",
			mutate:    func(d *Deal) {},
			userCount: 1,
			want:      DenialPerUserLimitReached,
		},
		{
			name:   "global quota exhausted",
			mutate: func(d *Deal) { d.MaxRedemptions = &max },
			total:  10,
			want:   DenialGlobalQuotaExhausted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := claimableDeal()
			tt.mutate(deal)

			denial := CheckClaim(deal, loc, now, tt.userCount, tt.total)
			require.NotNil(t, denial)
			assert.Equal(t, tt.want, *denial)
		})
	}
}

func TestCheckClaimPrecedence(t *testing.T) {
	now, loc := claimInstant(t)
	max := 1

	// Every check fails at once; the first in precedence order wins.
	deal := claimableDeal()
	deal.Active = false
	deal.DaysOfWeek = []string{"tuesday"}
	deal.MaxRedemptions = &max

	denial := CheckClaim(deal, loc, now, 5, 5)
	require.NotNil(t, denial)
	assert.Equal(t, DenialDealInactive, *denial)

	// With the kill switch back on, the schedule check is next.
	deal.Active = true
	denial = CheckClaim(deal, loc, now, 5, 5)
	require.NotNil(t, denial)
	assert.Equal(t, DenialDealNotInWindow, *denial)

	// In window, the per-user limit beats the global quota.
	deal.DaysOfWeek = []string{"monday"}
	denial = CheckClaim(deal, loc, now, 5, 5)
	require.NotNil(t, denial)
	assert.Equal(t, DenialPerUserLimitReached, *denial)
}

func TestCheckClaimUnlimitedMaxRedemptions(t *testing.T) {
	now, loc := claimInstant(t)

	deal := claimableDeal()
	deal.PerUserLimit = 100
	deal.MaxRedemptions = nil

	assert.Nil(t, CheckClaim(deal, loc, now, 0, 1_000_000))
}

func TestCheckClaimIsIdempotent(t *testing.T) {
	now, loc := claimInstant(t)

	deal := claimableDeal()
	first := CheckClaim(deal, loc, now, 1, 1)
	for i := 0; i < 10; i++ {
		got := CheckClaim(deal, loc, now, 1, 1)
		require.NotNil(t, got)
		assert.Equal(t, *first, *got)
	}
}

func TestDenialReasonMessages(t *testing.T) {
	reasons := []DenialReason{
		DenialDealInactive,
		DenialDealNotInWindow,
		DenialPerUserLimitReached,
		DenialGlobalQuotaExhausted,
	}
	for _, r := range reasons {
		assert.NotEmpty(t, r.Message())
	}
	assert.NotEmpty(t, DenialReason("SOMETHING_ELSE").Message())
}
