package services

import (
	"time"

	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/errors"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/infrastructures"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	venueService *VenueService
	auditService *AuditService
	now          func() time.Time
}

func NewDealService(db *gorm.DB, validator *infrastructures.Validator, venueService *VenueService, auditService *AuditService) *DealService {
	return &DealService{
		db:           db,
		validator:    validator,
		venueService: venueService,
		auditService: auditService,
		now:          time.Now,
	}
}

func (s *DealService) CreateDeal(actor *models.Account, req *models.DealCreateRequest) (*models.Deal, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	venue, err := s.venueService.GetVenue(req.VenueID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && venue.MerchantID != actor.ID {
		return nil, errors.NewForbiddenError("Venue belongs to another merchant")
	}

	deal := &models.Deal{
		VenueID:            venue.ID,
		Title:              req.Title,
		Description:        req.Description,
		Kind:               req.Kind,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		StartAt:            req.StartAt.UTC(),
		EndAt:              req.EndAt.UTC(),
		DaysOfWeek:         req.DaysOfWeek,
		TimeWindows:        req.TimeWindows,
		MaxRedemptions:     req.MaxRedemptions,
		PerUserLimit:       req.PerUserLimit,
		Active:             true,
		ApprovalStatus:     models.DealApprovalPending,
	}

	if err := deal.ValidateSchedule(); err != nil {
		return nil, errors.NewUnprocessableEntityError(err.Error())
	}

	if err := s.db.Create(deal).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create deal")
	}

	s.auditService.LogAudit("deals", deal.ID, models.AuditActionCreate, nil, deal, &actor.ID)

	return deal, nil
}

func (s *DealService) GetDeal(dealId string) (*models.Deal, error) {
	dealUUID, err := uuid.Parse(dealId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid deal ID format")
	}

	var deal models.Deal
	err = s.db.Preload("Venue").Where("id = ?", dealUUID).First(&deal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Deal not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get deal")
	}

	return &deal, nil
}

type DealListFilter struct {
	VenueID   *uuid.UUID
	Kind      *models.DealKind
	ActiveNow bool
}

// GetDeals lists approved deals. With ActiveNow set, the candidate set is
// filtered through the schedule evaluator at the current instant in each
// venue's timezone before pagination, so page totals describe the claimable
// set rather than the stored one.
func (s *DealService) GetDeals(pagination *models.PaginationRequest, filter *DealListFilter) (*models.Pagination[[]models.Deal], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	base := s.db.Model(&models.Deal{}).Where("approval_status = ?", models.DealApprovalApproved)
	if filter != nil && filter.VenueID != nil {
		base = base.Where("venue_id = ?", *filter.VenueID)
	}
	if filter != nil && filter.Kind != nil {
		base = base.Where("kind = ?", *filter.Kind)
	}
	if filter != nil && filter.ActiveNow {
		base = base.Where("active = ?", true)
	}

	// Window membership is decided in Go against each venue's timezone, so
	// the evaluator cannot run in SQL. The active-now path loads the
	// candidate set, filters, then slices the page; the plain path counts
	// and pages in the database.
	if filter != nil && filter.ActiveNow {
		var candidates []models.Deal
		err := base.Session(&gorm.Session{}).Preload("Venue").
			Order("created_at DESC").
			Find(&candidates).Error
		if err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to get deals")
		}

		now := s.now()
		filtered := make([]models.Deal, 0, len(candidates))
		for _, deal := range candidates {
			if deal.Venue == nil {
				continue
			}
			loc, err := deal.Venue.Location()
			if err != nil {
				continue
			}
			if deal.IsActiveAt(now, loc) {
				filtered = append(filtered, deal)
			}
		}

		start := offset
		if start > len(filtered) {
			start = len(filtered)
		}
		end := start + pagination.Limit
		if end > len(filtered) {
			end = len(filtered)
		}

		return paginateDeals(pagination, len(filtered), filtered[start:end]), nil
	}

	var totalItems int64
	if err := base.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count deals")
	}

	var deals []models.Deal
	err := base.Session(&gorm.Session{}).Preload("Venue").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(offset).
		Find(&deals).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get deals")
	}

	return paginateDeals(pagination, int(totalItems), deals), nil
}

func paginateDeals(pagination *models.PaginationRequest, totalItems int, items []models.Deal) *models.Pagination[[]models.Deal] {
	totalPages := (totalItems + pagination.Limit - 1) / pagination.Limit

	return &models.Pagination[[]models.Deal]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      items,
	}
}

func (s *DealService) UpdateDeal(dealId string, actor *models.Account, req *models.DealUpdateRequest) (*models.Deal, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	deal, err := s.GetDeal(dealId)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeDealActor(deal, actor); err != nil {
		return nil, err
	}

	if req.Title != nil {
		deal.Title = *req.Title
	}
	if req.Description != nil {
		deal.Description = req.Description
	}
	if req.DiscountPercentage != nil {
		deal.DiscountPercentage = req.DiscountPercentage
	}
	if req.DiscountAmount != nil {
		deal.DiscountAmount = req.DiscountAmount
	}
	if req.StartAt != nil {
		deal.StartAt = req.StartAt.UTC()
	}
	if req.EndAt != nil {
		deal.EndAt = req.EndAt.UTC()
	}
	if req.DaysOfWeek != nil {
		deal.DaysOfWeek = req.DaysOfWeek
	}
	if req.TimeWindows != nil {
		deal.TimeWindows = req.TimeWindows
	}
	if req.MaxRedemptions != nil {
		deal.MaxRedemptions = req.MaxRedemptions
	}
	if req.PerUserLimit != nil {
		deal.PerUserLimit = *req.PerUserLimit
	}
	if req.Active != nil {
		deal.Active = *req.Active
	}

	if err := deal.ValidateSchedule(); err != nil {
		return nil, errors.NewUnprocessableEntityError(err.Error())
	}

	if err := s.db.Save(deal).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update deal")
	}

	s.auditService.LogAudit("deals", deal.ID, models.AuditActionUpdate, nil, deal, &actor.ID)

	return deal, nil
}

// DeleteDeal soft-deletes a deal. The row is kept because redemptions
// reference it; the kill switch is flipped so a restore starts inactive.
func (s *DealService) DeleteDeal(dealId string, actor *models.Account) error {
	deal, err := s.GetDeal(dealId)
	if err != nil {
		return err
	}

	if err := s.authorizeDealActor(deal, actor); err != nil {
		return err
	}

	if err := s.db.Model(deal).Update("active", false).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to deactivate deal")
	}
	if err := s.db.Delete(deal).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete deal")
	}

	s.auditService.LogAudit("deals", deal.ID, models.AuditActionDelete, deal, nil, &actor.ID)

	return nil
}

func (s *DealService) ApproveDeal(dealId string, actor *models.Account) (*models.Deal, error) {
	return s.setApproval(dealId, actor, models.DealApprovalApproved)
}

func (s *DealService) RejectDeal(dealId string, actor *models.Account) (*models.Deal, error) {
	return s.setApproval(dealId, actor, models.DealApprovalRejected)
}

func (s *DealService) setApproval(dealId string, actor *models.Account, status models.DealApprovalStatus) (*models.Deal, error) {
	deal, err := s.GetDeal(dealId)
	if err != nil {
		return nil, err
	}

	previous := deal.ApprovalStatus
	deal.ApprovalStatus = status

	if err := s.db.Save(deal).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update deal approval status")
	}

	s.auditService.LogAudit("deals", deal.ID, models.AuditActionStatusChange,
		map[string]any{"approval_status": previous},
		map[string]any{"approval_status": status},
		&actor.ID)

	return deal, nil
}

func (s *DealService) authorizeDealActor(deal *models.Deal, actor *models.Account) error {
	if actor.IsAdmin() {
		return nil
	}
	if deal.Venue == nil || deal.Venue.MerchantID != actor.ID {
		return errors.NewForbiddenError("Deal belongs to another merchant")
	}
	return nil
}
