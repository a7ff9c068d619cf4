package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DealKind string

const (
	DealKindHappyHour DealKind = "HAPPY_HOUR"
	DealKindInstant   DealKind = "INSTANT"
)

type DealApprovalStatus string

const (
	DealApprovalPending  DealApprovalStatus = "PENDING"
	DealApprovalApproved DealApprovalStatus = "APPROVED"
	DealApprovalRejected DealApprovalStatus = "REJECTED"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TimeWindow is a local time-of-day interval, half-open at the end: a window
// ending at 19:00 excludes 19:00:00 exactly. Start and End are "HH:MM".
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// parseClock converts "HH:MM" to minutes since local midnight.
func parseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return h*60 + m, nil
}

// Covers reports whether the given minute-of-day falls inside [Start, End).
// Windows are validated at deal creation, so parse errors report not covered.
func (w TimeWindow) Covers(minuteOfDay int) bool {
	start, err := parseClock(w.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(w.End)
	if err != nil {
		return false
	}
	return minuteOfDay >= start && minuteOfDay < end
}

type Deal struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VenueID            uuid.UUID          `gorm:"type:uuid;index" json:"venue_id"`
	Title              string             `json:"title"`
	Description        *string            `json:"description,omitempty"`
	Kind               DealKind           `json:"kind"`
	DiscountPercentage *decimal.Decimal   `gorm:"type:decimal(5,2)" json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal   `gorm:"type:decimal(18,2)" json:"discount_amount,omitempty"`
	StartAt            time.Time          `json:"start_at"`
	EndAt              time.Time          `json:"end_at"`
	DaysOfWeek         []string           `gorm:"serializer:json" json:"days_of_week,omitempty"`
	TimeWindows        []TimeWindow       `gorm:"serializer:json" json:"time_windows,omitempty"`
	MaxRedemptions     *int               `json:"max_redemptions,omitempty"`
	PerUserLimit       int                `json:"per_user_limit"`
	Active             bool               `json:"active"`
	ApprovalStatus     DealApprovalStatus `json:"approval_status"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"deleted_at"`

	Venue *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
}

// HasDay reports whether the deal's recurring schedule includes the weekday.
func (d *Deal) HasDay(day time.Weekday) bool {
	for _, name := range d.DaysOfWeek {
		if wd, ok := weekdayNames[strings.ToLower(name)]; ok && wd == day {
			return true
		}
	}
	return false
}

// IsActiveAt reports whether the deal's schedule covers the given instant,
// with local civil time resolved in the venue's timezone. It ignores the
// merchant kill switch and approval status; callers check those separately.
// The result depends on wall-clock time and must be re-evaluated on every
// claim attempt.
func (d *Deal) IsActiveAt(now time.Time, loc *time.Location) bool {
	if now.Before(d.StartAt) || now.After(d.EndAt) {
		return false
	}
	if d.Kind == DealKindInstant {
		return true
	}
	local := now.In(loc)
	if !d.HasDay(local.Weekday()) {
		return false
	}
	minute := local.Hour()*60 + local.Minute()
	for _, w := range d.TimeWindows {
		if w.Covers(minute) {
			return true
		}
	}
	return false
}

// ExpiryHorizonAt returns when a voucher issued at the given instant expires:
// the end of the currently matched happy-hour window in venue local time, or
// the deal's absolute end for INSTANT deals, whichever comes first. The second
// return is false when the deal is not active at the instant.
func (d *Deal) ExpiryHorizonAt(now time.Time, loc *time.Location) (time.Time, bool) {
	if !d.IsActiveAt(now, loc) {
		return time.Time{}, false
	}
	if d.Kind == DealKindInstant {
		return d.EndAt, true
	}
	local := now.In(loc)
	minute := local.Hour()*60 + local.Minute()
	for _, w := range d.TimeWindows {
		if !w.Covers(minute) {
			continue
		}
		end, err := parseClock(w.End)
		if err != nil {
			continue
		}
		windowEnd := time.Date(local.Year(), local.Month(), local.Day(), end/60, end%60, 0, 0, loc)
		if windowEnd.After(d.EndAt) {
			return d.EndAt, true
		}
		return windowEnd.UTC(), true
	}
	return time.Time{}, false
}

// ValidateSchedule enforces the structural invariants of the deal's temporal
// and quota fields. Happy-hour windows crossing midnight (start >= end) are
// rejected rather than wrapped.
func (d *Deal) ValidateSchedule() error {
	if !d.StartAt.Before(d.EndAt) {
		return fmt.Errorf("start_at must be before end_at")
	}
	if d.PerUserLimit < 1 {
		return fmt.Errorf("per_user_limit must be at least 1")
	}
	if d.MaxRedemptions != nil && *d.MaxRedemptions < 1 {
		return fmt.Errorf("max_redemptions must be at least 1 when set")
	}
	switch d.Kind {
	case DealKindInstant:
		return nil
	case DealKindHappyHour:
		if len(d.DaysOfWeek) == 0 {
			return fmt.Errorf("happy hour deals require at least one day of week")
		}
		for _, name := range d.DaysOfWeek {
			if _, ok := weekdayNames[strings.ToLower(name)]; !ok {
				return fmt.Errorf("unknown day of week %q", name)
			}
		}
		if len(d.TimeWindows) == 0 {
			return fmt.Errorf("happy hour deals require at least one time window")
		}
		for _, w := range d.TimeWindows {
			start, err := parseClock(w.Start)
			if err != nil {
				return err
			}
			end, err := parseClock(w.End)
			if err != nil {
				return err
			}
			if start >= end {
				return fmt.Errorf("time window %s-%s must not cross midnight", w.Start, w.End)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown deal kind %q", d.Kind)
	}
}

type DealCreateRequest struct {
	VenueID            string           `json:"venue_id" validate:"required,uuid"`
	Title              string           `json:"title" validate:"required,max=255"`
	Description        *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Kind               DealKind         `json:"kind" validate:"required,oneof=HAPPY_HOUR INSTANT"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	StartAt            time.Time        `json:"start_at" validate:"required"`
	EndAt              time.Time        `json:"end_at" validate:"required"`
	DaysOfWeek         []string         `json:"days_of_week,omitempty"`
	TimeWindows        []TimeWindow     `json:"time_windows,omitempty"`
	MaxRedemptions     *int             `json:"max_redemptions,omitempty"`
	PerUserLimit       int              `json:"per_user_limit" validate:"min=1"`
}

type DealUpdateRequest struct {
	Title              *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Description        *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	StartAt            *time.Time       `json:"start_at,omitempty"`
	EndAt              *time.Time       `json:"end_at,omitempty"`
	DaysOfWeek         []string         `json:"days_of_week,omitempty"`
	TimeWindows        []TimeWindow     `json:"time_windows,omitempty"`
	MaxRedemptions     *int             `json:"max_redemptions,omitempty"`
	PerUserLimit       *int             `json:"per_user_limit,omitempty" validate:"omitempty,min=1"`
	Active             *bool            `json:"active,omitempty"`
}
