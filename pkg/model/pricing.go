package model

import (
	"github.com/shopspring/decimal"
)

// DateRange is an unvalidated check-in/check-out pair as received from the
// client. Whether the strings parse as dates at all, and whether check_out
// falls after check_in, is the stay validator's concern, not the type's.
type DateRange struct {
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
}

// PriceBreakdown is the money breakdown for one stay. All amounts are major
// currency units. Built fresh per pricing request and never mutated.
type PriceBreakdown struct {
	Nights       int             `json:"nights"`
	NightlyTotal decimal.Decimal `json:"nightly_total"`
	CleaningFee  decimal.Decimal `json:"cleaning_fee"`
	ServiceFee   decimal.Decimal `json:"service_fee"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

type CheckoutRequest struct {
	PropertyID string `json:"property_id" validate:"required,mongodb"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	Guests     int    `json:"guests,omitempty" validate:"omitempty,min=1,max=50"`
}

func (r *CheckoutRequest) DateRange() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}
