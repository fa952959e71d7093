package models

import (
	"testing"
	"time"
)

func TestRemainingUntil(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   Countdown
	}{
		{
			name:   "days hours and minutes remaining",
			target: now.Add(2*24*time.Hour + 3*time.Hour + 10*time.Minute),
			want:   Countdown{Days: 2, Hours: 3, Minutes: 10},
		},
		{
			name:   "under a minute rounds down to zero",
			target: now.Add(59 * time.Second),
			want:   Countdown{},
		},
		{
			name:   "seconds are discarded",
			target: now.Add(5*time.Minute + 59*time.Second),
			want:   Countdown{Minutes: 5},
		},
		{
			name:   "exactly at the deadline",
			target: now,
			want:   Countdown{},
		},
		{
			name:   "deadline already passed",
			target: now.Add(-1 * time.Second),
			want:   Countdown{},
		},
		{
			name:   "long past deadline stays at zero",
			target: now.Add(-30 * 24 * time.Hour),
			want:   Countdown{},
		},
		{
			name:   "exactly one day",
			target: now.Add(24 * time.Hour),
			want:   Countdown{Days: 1},
		},
		{
			name:   "just under one day",
			target: now.Add(24*time.Hour - time.Minute),
			want:   Countdown{Hours: 23, Minutes: 59},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingUntil(tt.target, now)
			if got != tt.want {
				t.Errorf("RemainingUntil() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRemainingUntil_NeverNegative(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	offsets := []time.Duration{
		-time.Second, -time.Minute, -time.Hour, -48 * time.Hour,
		0, time.Second, time.Hour, 100 * 24 * time.Hour,
	}
	for _, offset := range offsets {
		got := RemainingUntil(now.Add(offset), now)
		if got.Days < 0 || got.Hours < 0 || got.Minutes < 0 {
			t.Errorf("RemainingUntil(now%+v) = %+v has a negative component", offset, got)
		}
	}
}

func TestCountdown_IsOver(t *testing.T) {
	tests := []struct {
		name      string
		countdown Countdown
		want      bool
	}{
		{"all zero", Countdown{}, true},
		{"minutes left", Countdown{Minutes: 1}, false},
		{"hours left", Countdown{Hours: 2}, false},
		{"days left", Countdown{Days: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.countdown.IsOver(); got != tt.want {
				t.Errorf("IsOver() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromotionCreateRequest_Validate(t *testing.T) {
	endsAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     PromotionCreateRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid flash sale",
			req: PromotionCreateRequest{
				Kind:            FlashSale,
				Name:            "Spring Flash Sale",
				DiscountPercent: 25,
				EndsAt:          endsAt,
			},
			wantErr: false,
		},
		{
			name: "valid deal of the week",
			req: PromotionCreateRequest{
				Kind:            DealOfTheWeek,
				Name:            "Picture Book of the Week",
				DiscountPercent: 40,
				EndsAt:          endsAt,
			},
			wantErr: false,
		},
		{
			name: "invalid kind",
			req: PromotionCreateRequest{
				Kind:            "clearance",
				Name:            "Clearance",
				DiscountPercent: 10,
				EndsAt:          endsAt,
			},
			wantErr: true,
			errMsg:  "invalid promotion kind",
		},
		{
			name: "empty name",
			req: PromotionCreateRequest{
				Kind:            FlashSale,
				Name:            "",
				DiscountPercent: 10,
				EndsAt:          endsAt,
			},
			wantErr: true,
			errMsg:  "promotion name is required",
		},
		{
			name: "whitespace only name",
			req: PromotionCreateRequest{
				Kind:            FlashSale,
				Name:            "   ",
				DiscountPercent: 10,
				EndsAt:          endsAt,
			},
			wantErr: true,
			errMsg:  "promotion name cannot be only whitespace",
		},
		{
			name: "discount too low",
			req: PromotionCreateRequest{
				Kind:            FlashSale,
				Name:            "Flash Sale",
				DiscountPercent: 0,
				EndsAt:          endsAt,
			},
			wantErr: true,
			errMsg:  "discount percent must be between 1 and 99",
		},
		{
			name: "discount too high",
			req: PromotionCreateRequest{
				Kind:            FlashSale,
				Name:            "Flash Sale",
				DiscountPercent: 100,
				EndsAt:          endsAt,
			},
			wantErr: true,
			errMsg:  "discount percent must be between 1 and 99",
		},
		{
			name: "missing end time",
			req: PromotionCreateRequest{
				Kind:            FlashSale,
				Name:            "Flash Sale",
				DiscountPercent: 10,
			},
			wantErr: true,
			errMsg:  "end time is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("Validate() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestPromotion_IsActive(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	promo := &Promotion{
		Kind:            FlashSale,
		Name:            "Flash Sale",
		DiscountPercent: 20,
		EndsAt:          now.Add(time.Hour),
	}
	if !promo.IsActive(now) {
		t.Error("promotion ending in the future should be active")
	}

	promo.EndsAt = now
	if promo.IsActive(now) {
		t.Error("promotion ending exactly now should not be active")
	}

	promo.EndsAt = now.Add(-time.Hour)
	if promo.IsActive(now) {
		t.Error("promotion ending in the past should not be active")
	}
}

func TestPromotion_KindDisplayName(t *testing.T) {
	tests := []struct {
		kind PromotionKind
		want string
	}{
		{DealOfTheWeek, "Deal of the Week"},
		{FlashSale, "Flash Sale"},
		{"other", "other"},
	}

	for _, tt := range tests {
		p := &Promotion{Kind: tt.kind}
		if got := p.KindDisplayName(); got != tt.want {
			t.Errorf("KindDisplayName() = %v, want %v", got, tt.want)
		}
	}
}
