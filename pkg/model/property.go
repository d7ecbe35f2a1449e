package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HostID        string    `json:"host_id" bson:"host_id" validate:"required,mongodb"`
	DisplayName   string    `json:"display_name" bson:"display_name" validate:"required,min=2,max=120"`
	City          string    `json:"city" bson:"city" validate:"required,min=2,max=80"`
	NightlyRate   int64     `json:"nightly_rate" bson:"nightly_rate" validate:"min=0"`
	CleaningFee   int64     `json:"cleaning_fee" bson:"cleaning_fee" validate:"min=0"`
	MaxGuests     int       `json:"max_guests" bson:"max_guests" validate:"required,min=1,max=50"`
	PreviewImages []string  `json:"preview_images" bson:"preview_images" validate:"omitempty,dive,url"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// RateCard is the pricing input a property exposes to the checkout core.
// Amounts are major currency units (whole dollars in the source domain).
type RateCard struct {
	BaseNightlyRate decimal.Decimal `json:"base_nightly_rate"`
	CleaningFee     decimal.Decimal `json:"cleaning_fee"`
}

// RateCard converts the stored integer rates into decimal money amounts.
func (p *Property) RateCard() RateCard {
	return RateCard{
		BaseNightlyRate: decimal.NewFromInt(p.NightlyRate),
		CleaningFee:     decimal.NewFromInt(p.CleaningFee),
	}
}
