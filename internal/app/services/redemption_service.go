package services

import (
	"context"
	"errors"
	"time"

	appError "github.com/chaimkastel/happy-hour-app-sub002/internal/app/errors"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/pkg"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxCodeAttempts bounds voucher code regeneration on unique-index collision.
const maxCodeAttempts = 5

const ReasonInvalidVoucherState = "INVALID_VOUCHER_STATE"
const ReasonCodeGenerationFailed = "CODE_GENERATION_FAILED"

type RedemptionService struct {
	db           *gorm.DB
	auditService *AuditService
	now          func() time.Time
}

func NewRedemptionService(db *gorm.DB, auditService *AuditService) *RedemptionService {
	return &RedemptionService{
		db:           db,
		auditService: auditService,
		now:          time.Now,
	}
}

// ClaimDeal runs the end-to-end claim: quota check plus voucher issuance in
// one transaction. The deal row is locked FOR UPDATE so concurrent claims for
// the same deal serialize; the redemption counts are read under that lock,
// which closes the check-then-act race on both the per-user and the global
// quota.
func (s *RedemptionService) ClaimDeal(dealId string, account *models.Account) (*models.Redemption, error) {
	dealUUID, err := uuid.Parse(dealId)
	if err != nil {
		return nil, appError.NewBadRequestError("Invalid deal ID format")
	}

	now := s.now()
	var redemption *models.Redemption

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var deal models.Deal
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", dealUUID).First(&deal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appError.NewNotFoundError("Deal not found")
			}
			return appError.NewInternalServerError(err, "Failed to get deal")
		}

		var venue models.Venue
		if err := tx.Where("id = ?", deal.VenueID).First(&venue).Error; err != nil {
			return appError.NewInternalServerError(err, "Failed to get venue")
		}
		loc, err := venue.Location()
		if err != nil {
			return appError.NewInternalServerError(err, "Failed to resolve venue timezone")
		}

		var userCount, totalCount int64
		err = tx.Model(&models.Redemption{}).
			Where("deal_id = ? AND account_id = ? AND status <> ?", deal.ID, account.ID, models.RedemptionStatusCancelled).
			Count(&userCount).Error
		if err != nil {
			return appError.NewInternalServerError(err, "Failed to count redemptions")
		}
		err = tx.Model(&models.Redemption{}).
			Where("deal_id = ? AND status <> ?", deal.ID, models.RedemptionStatusCancelled).
			Count(&totalCount).Error
		if err != nil {
			return appError.NewInternalServerError(err, "Failed to count redemptions")
		}

		if denial := models.CheckClaim(&deal, loc, now, userCount, totalCount); denial != nil {
			return appError.NewConflictError(denial.Message()).WithReason(string(*denial))
		}

		expiresAt, ok := deal.ExpiryHorizonAt(now, loc)
		if !ok {
			// CheckClaim passed, so the deal is active and a horizon exists.
			return appError.NewInternalServerError(errors.New("no expiry horizon for active deal"), "Failed to issue voucher")
		}

		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			code, err := pkg.GenerateVoucherCode()
			if err != nil {
				return appError.NewInternalServerError(err, "Failed to generate voucher code")
			}

			candidate := &models.Redemption{
				Code:      code,
				DealID:    deal.ID,
				AccountID: account.ID,
				Status:    models.RedemptionStatusIssued,
				IssuedAt:  now,
				ExpiresAt: expiresAt,
			}
			err = tx.Create(candidate).Error
			if err == nil {
				redemption = candidate
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return appError.NewInternalServerError(err, "Failed to create redemption")
			}
		}

		return appError.NewServiceUnavailableError("Failed to generate a unique voucher code").
			WithReason(ReasonCodeGenerationFailed)
	})
	if err != nil {
		return nil, err
	}

	s.auditService.LogAudit("redemptions", redemption.ID, models.AuditActionCreate, nil, redemption, &account.ID)

	return redemption, nil
}

// RedeemVoucher marks an ISSUED voucher as REDEEMED. Expiry is re-checked
// against the clock here: an ISSUED voucher past its expiry is refused even
// if the background sweep has not persisted the EXPIRED status yet.
func (s *RedemptionService) RedeemVoucher(code string, actor *models.Account) (*models.Redemption, error) {
	now := s.now()
	var redemption *models.Redemption

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Redemption
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", code).First(&r).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appError.NewNotFoundError("Voucher not found")
			}
			return appError.NewInternalServerError(err, "Failed to get voucher")
		}

		if err := s.authorizeDealActor(tx, r.DealID, actor); err != nil {
			return err
		}

		if !r.CanRedeem(now) {
			return appError.NewConflictError("Voucher is " + string(r.EffectiveStatusAt(now)) + " and cannot be redeemed").
				WithReason(ReasonInvalidVoucherState)
		}

		r.Status = models.RedemptionStatusRedeemed
		r.RedeemedAt = &now
		if err := tx.Save(&r).Error; err != nil {
			return appError.NewInternalServerError(err, "Failed to redeem voucher")
		}

		redemption = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditService.LogAudit("redemptions", redemption.ID, models.AuditActionStatusChange,
		map[string]any{"status": models.RedemptionStatusIssued},
		map[string]any{"status": models.RedemptionStatusRedeemed},
		&actor.ID)

	return redemption, nil
}

// CancelRedemption voids an ISSUED voucher (deal pulled, staff action).
// Cancelled vouchers stop counting toward quotas, so the holder may claim
// the deal again.
func (s *RedemptionService) CancelRedemption(redemptionId string, actor *models.Account) (*models.Redemption, error) {
	redemptionUUID, err := uuid.Parse(redemptionId)
	if err != nil {
		return nil, appError.NewBadRequestError("Invalid redemption ID format")
	}

	now := s.now()
	var redemption *models.Redemption

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var r models.Redemption
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", redemptionUUID).First(&r).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appError.NewNotFoundError("Redemption not found")
			}
			return appError.NewInternalServerError(err, "Failed to get redemption")
		}

		if err := s.authorizeDealActor(tx, r.DealID, actor); err != nil {
			return err
		}

		if !r.CanCancel(now) {
			return appError.NewConflictError("Voucher is " + string(r.EffectiveStatusAt(now)) + " and cannot be cancelled").
				WithReason(ReasonInvalidVoucherState)
		}

		r.Status = models.RedemptionStatusCancelled
		r.CancelledAt = &now
		if err := tx.Save(&r).Error; err != nil {
			return appError.NewInternalServerError(err, "Failed to cancel redemption")
		}

		redemption = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditService.LogAudit("redemptions", redemption.ID, models.AuditActionStatusChange,
		map[string]any{"status": models.RedemptionStatusIssued},
		map[string]any{"status": models.RedemptionStatusCancelled},
		&actor.ID)

	return redemption, nil
}

func (s *RedemptionService) GetRedemption(redemptionId string, actor *models.Account) (*models.Redemption, error) {
	redemptionUUID, err := uuid.Parse(redemptionId)
	if err != nil {
		return nil, appError.NewBadRequestError("Invalid redemption ID format")
	}

	var redemption models.Redemption
	err = s.db.Preload("Deal").Where("id = ?", redemptionUUID).First(&redemption).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appError.NewNotFoundError("Redemption not found")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get redemption")
	}

	if redemption.AccountID != actor.ID && !actor.IsAdmin() {
		if err := s.authorizeDealActor(s.db, redemption.DealID, actor); err != nil {
			return nil, err
		}
	}

	redemption.Status = redemption.EffectiveStatusAt(s.now())
	return &redemption, nil
}

func (s *RedemptionService) GetRedemptionsByAccount(accountID uuid.UUID, limit, offset int) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	query := s.db.Preload("Deal").Where("account_id = ?", accountID).Order("issued_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&redemptions).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to get redemptions")
	}

	now := s.now()
	for i := range redemptions {
		redemptions[i].Status = redemptions[i].EffectiveStatusAt(now)
	}

	return redemptions, nil
}

func (s *RedemptionService) GetRedemptionsByDeal(dealId string, actor *models.Account, limit, offset int) ([]models.Redemption, error) {
	dealUUID, err := uuid.Parse(dealId)
	if err != nil {
		return nil, appError.NewBadRequestError("Invalid deal ID format")
	}

	if err := s.authorizeDealActor(s.db, dealUUID, actor); err != nil {
		return nil, err
	}

	var redemptions []models.Redemption
	query := s.db.Where("deal_id = ?", dealUUID).Order("issued_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&redemptions).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to get redemptions")
	}

	now := s.now()
	for i := range redemptions {
		redemptions[i].Status = redemptions[i].EffectiveStatusAt(now)
	}

	return redemptions, nil
}

// ExpireOverdueRedemptions persists EXPIRED for ISSUED vouchers past their
// expiry. Reporting hygiene only: reads and redeems already treat those rows
// as expired, so this job is idempotent and safe to run at any frequency.
func (s *RedemptionService) ExpireOverdueRedemptions() (int64, error) {
	result := s.db.Model(&models.Redemption{}).
		Where("status = ? AND expires_at < ?", models.RedemptionStatusIssued, s.now()).
		Update("status", models.RedemptionStatusExpired)
	if result.Error != nil {
		return 0, appError.NewInternalServerError(result.Error, "Failed to expire redemptions")
	}
	return result.RowsAffected, nil
}

// RunExpirySweeper runs the expiry sweep on a ticker until ctx is cancelled.
func (s *RedemptionService) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logrus.Infof("expiry sweeper started, interval %s", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept, err := s.ExpireOverdueRedemptions()
			if err != nil {
				logrus.Errorf("expiry sweep failed: %v", err)
				continue
			}
			if swept > 0 {
				logrus.Infof("expiry sweep marked %d vouchers expired", swept)
			}
		}
	}
}

// authorizeDealActor permits the merchant owning the deal's venue, or an
// admin.
func (s *RedemptionService) authorizeDealActor(tx *gorm.DB, dealID uuid.UUID, actor *models.Account) error {
	if actor.IsAdmin() {
		return nil
	}

	var deal models.Deal
	if err := tx.Where("id = ?", dealID).First(&deal).Error; err != nil {
		return appError.NewInternalServerError(err, "Failed to get deal")
	}
	var venue models.Venue
	if err := tx.Where("id = ?", deal.VenueID).First(&venue).Error; err != nil {
		return appError.NewInternalServerError(err, "Failed to get venue")
	}
	if venue.MerchantID != actor.ID {
		return appError.NewForbiddenError("Voucher belongs to another merchant's deal")
	}
	return nil
}
