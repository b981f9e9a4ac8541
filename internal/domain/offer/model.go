package offer

import (
	"errors"
	"strings"
	"time"
)

// Target constants — what an offer applies to.
const (
	TargetCourse   = "course"
	TargetService  = "service"
	TargetSitewide = "sitewide"
)

// Domain errors
var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptyCode       = errors.New("code is required")
	ErrInvalidDiscount = errors.New("discount_pct must be between 1 and 100")
	ErrInvalidTarget   = errors.New("target must be one of: course, service, sitewide")
	ErrEmptyTargetID   = errors.New("target_id is required for course and service offers")
	ErrInvalidWindow   = errors.New("valid_until must be after valid_from")
)

// Offer is a time-boxed promotional discount.
type Offer struct {
	ID          string
	Title       string
	Description string
	Code        string // promo code, stored uppercase
	DiscountPct int
	Target      string
	TargetID    string // course or service ID; empty for sitewide
	ValidFrom   time.Time
	ValidUntil  time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks that the Offer has valid data.
// PRE: Offer struct is populated
// POST: Returns nil if valid, error otherwise; Code is normalised to uppercase
func (o *Offer) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return ErrEmptyTitle
	}
	o.Code = strings.ToUpper(strings.TrimSpace(o.Code))
	if o.Code == "" {
		return ErrEmptyCode
	}
	if o.DiscountPct < 1 || o.DiscountPct > 100 {
		return ErrInvalidDiscount
	}
	switch o.Target {
	case TargetCourse, TargetService:
		if o.TargetID == "" {
			return ErrEmptyTargetID
		}
	case TargetSitewide:
	default:
		return ErrInvalidTarget
	}
	if !o.ValidFrom.IsZero() && !o.ValidUntil.IsZero() && !o.ValidUntil.After(o.ValidFrom) {
		return ErrInvalidWindow
	}
	return nil
}

// IsExpired reports whether the offer's validity window has passed.
func (o *Offer) IsExpired(now time.Time) bool {
	return !o.ValidUntil.IsZero() && now.After(o.ValidUntil)
}

// IsLive reports whether the offer is active and inside its validity window.
// PRE: now is the current time
// POST: Returns true only when Active and within [ValidFrom, ValidUntil]
func (o *Offer) IsLive(now time.Time) bool {
	if !o.Active {
		return false
	}
	if !o.ValidFrom.IsZero() && now.Before(o.ValidFrom) {
		return false
	}
	return !o.IsExpired(now)
}
