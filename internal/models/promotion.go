package models

import (
	"errors"
	"strings"
	"time"
)

// PromotionKind identifies the storefront slot a promotion occupies
type PromotionKind string

const (
	DealOfTheWeek PromotionKind = "deal_of_the_week"
	FlashSale     PromotionKind = "flash_sale"
)

// Promotion represents a named deadline advertised on the storefront
// (flash sale banner, deal-of-the-week hero section)
type Promotion struct {
	ID              int           `json:"id" db:"id"`
	Kind            PromotionKind `json:"kind" db:"kind"`
	Name            string        `json:"name" db:"name"`
	DiscountPercent int           `json:"discount_percent" db:"discount_percent"`
	EndsAt          time.Time     `json:"ends_at" db:"ends_at"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

// PromotionCreateRequest represents the data needed to create a promotion
type PromotionCreateRequest struct {
	Kind            PromotionKind `json:"kind"`
	Name            string        `json:"name"`
	DiscountPercent int           `json:"discount_percent"`
	EndsAt          time.Time     `json:"ends_at"`
}

// Countdown is the remaining time to a promotion deadline, floored at
// zero. The seconds component is discarded; display granularity is
// minutes.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// RemainingUntil computes the countdown from now to target. Once the
// target has passed the countdown is all zeros, never negative.
func RemainingUntil(target, now time.Time) Countdown {
	if !target.After(now) {
		return Countdown{}
	}

	seconds := int(target.Sub(now) / time.Second)

	return Countdown{
		Days:    seconds / 86400,
		Hours:   (seconds % 86400) / 3600,
		Minutes: (seconds % 3600) / 60,
	}
}

// IsOver returns true if the countdown has run out
func (c Countdown) IsOver() bool {
	return c.Days == 0 && c.Hours == 0 && c.Minutes == 0
}

// Validate validates the promotion data
func (p *Promotion) Validate() error {
	return validatePromotionFields(p.Kind, p.Name, p.DiscountPercent, p.EndsAt)
}

// Validate validates promotion creation data
func (req *PromotionCreateRequest) Validate() error {
	return validatePromotionFields(req.Kind, req.Name, req.DiscountPercent, req.EndsAt)
}

func validatePromotionFields(kind PromotionKind, name string, discountPercent int, endsAt time.Time) error {
	if err := validatePromotionKind(kind); err != nil {
		return err
	}

	if name == "" {
		return errors.New("promotion name is required")
	}

	if len(name) > 200 {
		return errors.New("promotion name must be less than 200 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("promotion name cannot be only whitespace")
	}

	if discountPercent < 1 || discountPercent > 99 {
		return errors.New("discount percent must be between 1 and 99")
	}

	if endsAt.IsZero() {
		return errors.New("end time is required")
	}

	return nil
}

// validatePromotionKind validates a promotion kind
func validatePromotionKind(kind PromotionKind) error {
	switch kind {
	case DealOfTheWeek, FlashSale:
		return nil
	default:
		return errors.New("invalid promotion kind")
	}
}

// IsActive returns true if the promotion deadline has not passed
func (p *Promotion) IsActive(now time.Time) bool {
	return p.EndsAt.After(now)
}

// Remaining returns the countdown to the promotion deadline
func (p *Promotion) Remaining(now time.Time) Countdown {
	return RemainingUntil(p.EndsAt, now)
}

// KindDisplayName returns a human-readable name for the promotion kind
func (p *Promotion) KindDisplayName() string {
	switch p.Kind {
	case DealOfTheWeek:
		return "Deal of the Week"
	case FlashSale:
		return "Flash Sale"
	default:
		return string(p.Kind)
	}
}
