package pricing

import (
	"errors"
	"stayhub/pkg/model"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeRate = errors.New("rate card amounts cannot be negative")

	ErrNegativeNights = errors.New("night count cannot be negative")
)

// Calculator turns a validated night count and a property's rate card into
// a money breakdown. It is pure: same inputs, same breakdown, no clock and
// no ambient state. The fee percentage arrives through the constructor so
// tests never touch the environment.
type Calculator struct {
	feeRate decimal.Decimal
}

func NewCalculator(serviceFeePercent int) *Calculator {
	return &Calculator{
		feeRate: decimal.NewFromInt(int64(serviceFeePercent)).Div(decimal.NewFromInt(100)),
	}
}

// Price computes the breakdown for a stay. The service fee rounds half away
// from zero to a whole major unit; the nightly total is exact.
func (c *Calculator) Price(nights int, card model.RateCard) (*model.PriceBreakdown, error) {
	if nights < 0 {
		return nil, ErrNegativeNights
	}
	if card.BaseNightlyRate.IsNegative() || card.CleaningFee.IsNegative() {
		return nil, ErrNegativeRate
	}

	nightlyTotal := card.BaseNightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	serviceFee := nightlyTotal.Mul(c.feeRate).Round(0)
	totalAmount := nightlyTotal.Add(card.CleaningFee).Add(serviceFee)

	return &model.PriceBreakdown{
		Nights:       nights,
		NightlyTotal: nightlyTotal,
		CleaningFee:  card.CleaningFee,
		ServiceFee:   serviceFee,
		TotalAmount:  totalAmount,
	}, nil
}
