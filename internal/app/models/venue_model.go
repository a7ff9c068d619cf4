package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Venue struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MerchantID uuid.UUID      `gorm:"type:uuid;index" json:"merchant_id"`
	Name       string         `json:"name"`
	Address    *string        `json:"address,omitempty"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	Timezone   string         `json:"timezone"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// Location resolves the venue's IANA timezone. Timezone is validated on
// create and update, so failures here mean the tzdata on the host changed
// underneath us.
func (v *Venue) Location() (*time.Location, error) {
	return time.LoadLocation(v.Timezone)
}

type VenueCreateRequest struct {
	Name      string   `json:"name" validate:"required,max=255"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Timezone  string   `json:"timezone" validate:"required"`
}

type VenueUpdateRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Timezone  *string  `json:"timezone,omitempty"`
}
