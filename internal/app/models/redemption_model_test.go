package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedemptionCanRedeem(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status RedemptionStatus
		now    time.Time
		want   bool
	}{
		{"issued before expiry", RedemptionStatusIssued, expiry.Add(-time.Hour), true},
		{"issued at expiry", RedemptionStatusIssued, expiry, false},
		{"issued after expiry", RedemptionStatusIssued, expiry.Add(time.Hour), false},
		{"already redeemed", RedemptionStatusRedeemed, expiry.Add(-time.Hour), false},
		{"expired", RedemptionStatusExpired, expiry.Add(-time.Hour), false},
		{"cancelled", RedemptionStatusCancelled, expiry.Add(-time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Redemption{Status: tt.status, ExpiresAt: expiry}
			assert.Equal(t, tt.want, r.CanRedeem(tt.now))
		})
	}
}

func TestRedemptionEffectiveStatusAt(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)

	t.Run("issued past expiry reads as expired before any sweep", func(t *testing.T) {
		r := &Redemption{Status: RedemptionStatusIssued, ExpiresAt: expiry}
		assert.Equal(t, RedemptionStatusExpired, r.EffectiveStatusAt(expiry.Add(time.Second)))
		assert.True(t, r.IsExpiredAt(expiry.Add(time.Second)))
	})

	t.Run("issued at expiry instant is still issued", func(t *testing.T) {
		r := &Redemption{Status: RedemptionStatusIssued, ExpiresAt: expiry}
		assert.Equal(t, RedemptionStatusIssued, r.EffectiveStatusAt(expiry))
	})

	t.Run("terminal states are unaffected by the clock", func(t *testing.T) {
		for _, status := range []RedemptionStatus{
			RedemptionStatusRedeemed,
			RedemptionStatusExpired,
			RedemptionStatusCancelled,
		} {
			r := &Redemption{Status: status, ExpiresAt: expiry}
			assert.Equal(t, status, r.EffectiveStatusAt(expiry.Add(time.Hour)))
			assert.False(t, r.IsExpiredAt(expiry.Add(time.Hour)))
		}
	})
}

func TestRedemptionCanCancel(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status RedemptionStatus
		now    time.Time
		want   bool
	}{
		{"issued before expiry", RedemptionStatusIssued, expiry.Add(-time.Hour), true},
		{"issued past expiry", RedemptionStatusIssued, expiry.Add(time.Hour), false},
		{"already redeemed", RedemptionStatusRedeemed, expiry.Add(-time.Hour), false},
		{"expired", RedemptionStatusExpired, expiry.Add(-time.Hour), false},
		{"cancelled", RedemptionStatusCancelled, expiry.Add(-time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Redemption{Status: tt.status, ExpiresAt: expiry}
			assert.Equal(t, tt.want, r.CanCancel(tt.now))
		})
	}
}

// A voucher the sweep has not yet marked EXPIRED is already terminal for
// every purpose: it reads as EXPIRED and can be neither redeemed nor
// cancelled. Cancelling it would free quota a dead voucher still holds.
func TestRedemptionLogicallyExpiredIsTerminal(t *testing.T) {
	now := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)
	r := &Redemption{Status: RedemptionStatusIssued, ExpiresAt: now.Add(-time.Hour)}

	assert.Equal(t, RedemptionStatusExpired, r.EffectiveStatusAt(now))
	assert.False(t, r.CanRedeem(now))
	assert.False(t, r.CanCancel(now))
}
