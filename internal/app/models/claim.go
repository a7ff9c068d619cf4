package models

import "time"

// DenialReason is a machine-readable code for why a claim was refused.
type DenialReason string

const (
	DenialDealInactive         DenialReason = "DEAL_INACTIVE"
	DenialDealNotInWindow      DenialReason = "DEAL_NOT_IN_WINDOW"
	DenialPerUserLimitReached  DenialReason = "PER_USER_LIMIT_REACHED"
	DenialGlobalQuotaExhausted DenialReason = "GLOBAL_QUOTA_EXHAUSTED"
)

// Message returns the user-facing copy for a denial.
func (r DenialReason) Message() string {
	switch r {
	case DenialDealInactive:
		return "This deal is not currently available"
	case DenialDealNotInWindow:
		return "This deal is not currently active"
	case DenialPerUserLimitReached:
		return "You've already claimed this deal the maximum number of times"
	case DenialGlobalQuotaExhausted:
		return "This deal has been fully claimed"
	default:
		return "This deal cannot be claimed"
	}
}

// CheckClaim decides whether one more claim is permitted. userCount and
// totalCount are the existing non-cancelled redemption counts for the
// (account, deal) pair and for the deal overall; the caller reads them inside
// the same transaction that commits the claim. Checks run in precedence
// order and the first failure wins. Returns nil when the claim is allowed.
// Pure: repeated calls with the same inputs yield the same answer.
func CheckClaim(deal *Deal, loc *time.Location, now time.Time, userCount, totalCount int64) *DenialReason {
	deny := func(r DenialReason) *DenialReason { return &r }

	if !deal.Active || deal.ApprovalStatus != DealApprovalApproved {
		return deny(DenialDealInactive)
	}
	if !deal.IsActiveAt(now, loc) {
		return deny(DenialDealNotInWindow)
	}
	if userCount >= int64(deal.PerUserLimit) {
		return deny(DenialPerUserLimitReached)
	}
	if deal.MaxRedemptions != nil && totalCount >= int64(*deal.MaxRedemptions) {
		return deny(DenialGlobalQuotaExhausted)
	}
	return nil
}
