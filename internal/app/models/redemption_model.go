package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RedemptionStatus string

const (
	RedemptionStatusIssued    RedemptionStatus = "ISSUED"
	RedemptionStatusRedeemed  RedemptionStatus = "REDEEMED"
	RedemptionStatusExpired   RedemptionStatus = "EXPIRED"
	RedemptionStatusCancelled RedemptionStatus = "CANCELLED"
)

// Redemption is one account's claim of a deal: a voucher identified by a
// short unique code, moving ISSUED -> REDEEMED | EXPIRED | CANCELLED.
type Redemption struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code        string           `gorm:"uniqueIndex" json:"code"`
	DealID      uuid.UUID        `gorm:"type:uuid;index" json:"deal_id"`
	AccountID   uuid.UUID        `gorm:"type:uuid;index" json:"account_id"`
	Status      RedemptionStatus `json:"status"`
	IssuedAt    time.Time        `gorm:"autoCreateTime" json:"issued_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
	RedeemedAt  *time.Time       `json:"redeemed_at,omitempty"`
	CancelledAt *time.Time       `json:"cancelled_at,omitempty"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"deleted_at"`

	Deal *Deal `gorm:"foreignKey:DealID" json:"deal,omitempty"`
}

// IsExpiredAt reports whether an ISSUED voucher is logically past its expiry,
// regardless of whether the background sweep has persisted the transition yet.
func (r *Redemption) IsExpiredAt(now time.Time) bool {
	return r.Status == RedemptionStatusIssued && now.After(r.ExpiresAt)
}

// EffectiveStatusAt is the status a reader should report: an ISSUED voucher
// past its expiry counts as EXPIRED even before the sweep runs.
func (r *Redemption) EffectiveStatusAt(now time.Time) RedemptionStatus {
	if r.IsExpiredAt(now) {
		return RedemptionStatusExpired
	}
	return r.Status
}

// CanRedeem reports whether the voucher may transition to REDEEMED: only from
// ISSUED, and only strictly before expiry. Expiry is always re-checked against
// the clock here, never trusted from the persisted status alone.
func (r *Redemption) CanRedeem(now time.Time) bool {
	return r.Status == RedemptionStatusIssued && now.Before(r.ExpiresAt)
}

// CanCancel reports whether the voucher may transition to CANCELLED: only
// from ISSUED, and not once it is logically expired. A cancellation frees
// quota, so a voucher the sweep has not yet marked EXPIRED must not slip
// back into circulation through this path.
func (r *Redemption) CanCancel(now time.Time) bool {
	return r.Status == RedemptionStatusIssued && !r.IsExpiredAt(now)
}

type RedeemVoucherRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}
