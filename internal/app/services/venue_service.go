package services

import (
	"time"

	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/errors"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/infrastructures"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VenueService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewVenueService(db *gorm.DB, validator *infrastructures.Validator) *VenueService {
	return &VenueService{
		db:        db,
		validator: validator,
	}
}

func (s *VenueService) CreateVenue(merchantID uuid.UUID, req *models.VenueCreateRequest) (*models.Venue, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, errors.NewUnprocessableEntityError("Unknown IANA timezone: " + req.Timezone)
	}

	venue := &models.Venue{
		MerchantID: merchantID,
		Name:       req.Name,
		Address:    req.Address,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Timezone:   req.Timezone,
	}

	if err := s.db.Create(venue).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create venue")
	}

	return venue, nil
}

func (s *VenueService) GetVenue(venueId string) (*models.Venue, error) {
	venueUUID, err := uuid.Parse(venueId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid venue ID format")
	}

	var venue models.Venue
	err = s.db.Where("id = ?", venueUUID).First(&venue).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Venue not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get venue")
	}

	return &venue, nil
}

func (s *VenueService) GetVenues(pagination *models.PaginationRequest, merchantID *uuid.UUID) (*models.Pagination[[]models.Venue], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	countQuery := s.db.Model(&models.Venue{})
	if merchantID != nil {
		countQuery = countQuery.Where("merchant_id = ?", *merchantID)
	}

	var totalItems int64
	if err := countQuery.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count venues")
	}

	query := s.db.Order("created_at DESC")
	if merchantID != nil {
		query = query.Where("merchant_id = ?", *merchantID)
	}

	var venues []models.Venue
	if err := query.Limit(pagination.Limit).Offset(offset).Find(&venues).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get venues")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Venue]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      venues,
	}, nil
}

func (s *VenueService) UpdateVenue(venueId string, actor *models.Account, req *models.VenueUpdateRequest) (*models.Venue, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	venue, err := s.GetVenue(venueId)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeVenueActor(venue, actor); err != nil {
		return nil, err
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, errors.NewUnprocessableEntityError("Unknown IANA timezone: " + *req.Timezone)
		}
		venue.Timezone = *req.Timezone
	}
	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Address != nil {
		venue.Address = req.Address
	}
	if req.Latitude != nil {
		venue.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		venue.Longitude = req.Longitude
	}

	if err := s.db.Save(venue).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update venue")
	}

	return venue, nil
}

func (s *VenueService) DeleteVenue(venueId string, actor *models.Account) error {
	venue, err := s.GetVenue(venueId)
	if err != nil {
		return err
	}

	if err := s.authorizeVenueActor(venue, actor); err != nil {
		return err
	}

	if err := s.db.Delete(venue).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete venue")
	}

	return nil
}

func (s *VenueService) authorizeVenueActor(venue *models.Venue, actor *models.Account) error {
	if actor.IsAdmin() {
		return nil
	}
	if venue.MerchantID != actor.ID {
		return errors.NewForbiddenError("Venue belongs to another merchant")
	}
	return nil
}
