package service

import (
	"context"
	"errors"
	"fmt"
	checkouterrors "stayhub/internal/checkout/errors"
	"stayhub/internal/checkout/pricing"
	"stayhub/internal/checkout/session"
	"stayhub/internal/checkout/validator"
	propertieserrors "stayhub/internal/properties/errors"
	"stayhub/internal/properties/repository"
	"stayhub/pkg/config"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/model"
	"stayhub/pkg/sanitizer"
)

// PaymentGateway is the slice of the payment provider the checkout flow
// needs. *client.PaymentProvider satisfies it.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req *model.PaymentSessionRequest) (*model.PaymentSessionResponse, error)
	SessionStatus(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error)
	BillingPortalURL(ctx context.Context, customerID string) (string, error)
}

type CheckoutService interface {
	Quote(ctx context.Context, req *model.CheckoutRequest) (*model.PriceBreakdown, error)
	CreateSession(ctx context.Context, req *model.CheckoutRequest) (*model.PaymentSessionHandle, error)
	SessionStatus(ctx context.Context, sessionID string) (*model.SessionStatus, error)
	PortalURL(ctx context.Context, customerID string) (*model.PortalResponse, error)
}

type checkoutService struct {
	properties repository.PropertyRepository
	validator  *validator.StayValidator
	calculator *pricing.Calculator
	builder    *session.Builder
	gateway    PaymentGateway
	cfg        *config.Config
}

func NewCheckoutService(
	properties repository.PropertyRepository,
	stayValidator *validator.StayValidator,
	calculator *pricing.Calculator,
	builder *session.Builder,
	gateway PaymentGateway,
	cfg *config.Config,
) CheckoutService {
	return &checkoutService{
		properties: properties,
		validator:  stayValidator,
		calculator: calculator,
		builder:    builder,
		gateway:    gateway,
		cfg:        cfg,
	}
}

func (s *checkoutService) Quote(ctx context.Context, req *model.CheckoutRequest) (*model.PriceBreakdown, error) {
	property, nights, err := s.resolveStay(ctx, req)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.price(nights, property)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Debug("Quote computed",
		"property_id", property.ID,
		"nights", nights,
		"total", breakdown.TotalAmount,
	)

	return breakdown, nil
}

func (s *checkoutService) CreateSession(ctx context.Context, req *model.CheckoutRequest) (*model.PaymentSessionHandle, error) {
	property, nights, err := s.resolveStay(ctx, req)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.price(nights, property)
	if err != nil {
		return nil, err
	}

	display := model.DisplayMetadata{
		Name:          sanitizer.NormalizeDisplayName(property.DisplayName),
		Description:   stayDescription(nights, req.CheckIn, req.CheckOut),
		PreviewImages: sanitizer.NormalizeImageURLs(property.PreviewImages),
	}

	sessionReq, err := s.builder.BuildRequest(breakdown, display)
	if err != nil {
		s.cfg.Log.Error("Failed to build payment session request",
			"property_id", property.ID,
			"error", err,
		)
		return nil, err
	}

	handle, err := s.builder.Submit(ctx, s.gateway, sessionReq)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Payment session created",
		"property_id", property.ID,
		"nights", nights,
		"total", breakdown.TotalAmount,
	)

	return handle, nil
}

func (s *checkoutService) SessionStatus(ctx context.Context, sessionID string) (*model.SessionStatus, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("Session ID cannot be empty")
	}

	resp, err := s.gateway.SessionStatus(ctx, sessionID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch session status",
			"session_id", sessionID,
			"error", err,
		)
		return nil, apperrors.PaymentSessionFailed(err)
	}

	lastFour, err := session.ExtractCardLastFour(resp)
	if err != nil {
		s.cfg.Log.Error("Payment provider returned an unexpected payment method shape",
			"session_id", sessionID,
			"error", err,
		)
		return nil, apperrors.Internal("Unexpected payment provider response", err)
	}

	return &model.SessionStatus{
		ID:            resp.ID,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		CardLastFour:  lastFour,
	}, nil
}

func (s *checkoutService) PortalURL(ctx context.Context, customerID string) (*model.PortalResponse, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	url, err := s.gateway.BillingPortalURL(ctx, customerID)
	if err != nil {
		s.cfg.Log.Error("Failed to create billing portal session",
			"customer_id", customerID,
			"error", err,
		)
		return nil, apperrors.PaymentSessionFailed(err)
	}

	return &model.PortalResponse{URL: url}, nil
}

// resolveStay validates the request, loads the property and counts nights.
// Shared by Quote and CreateSession so both price the exact same stay.
func (s *checkoutService) resolveStay(ctx context.Context, req *model.CheckoutRequest) (*model.Property, int, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Checkout request validation failed",
			"property_id", req.PropertyID,
			"error", err,
		)
		return nil, 0, apperrors.Validation("Checkout request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	nights, err := s.validator.Nights(req.DateRange())
	if err != nil {
		if errors.Is(err, checkouterrors.ErrUnparseableDates) {
			return nil, 0, apperrors.InvalidDateRange("unparseable")
		}
		if errors.Is(err, checkouterrors.ErrZeroNights) {
			return nil, 0, apperrors.InvalidDateRange("non-positive duration")
		}
		return nil, 0, apperrors.Internal("Failed to compute stay length", err)
	}

	property, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, 0, apperrors.NotFoundWithID("Property", req.PropertyID)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, 0, apperrors.InvalidInput("Invalid property ID format")
		}
		s.cfg.Log.Error("Failed to load property",
			"property_id", req.PropertyID,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve property", err)
	}

	return property, nights, nil
}

func (s *checkoutService) price(nights int, property *model.Property) (*model.PriceBreakdown, error) {
	breakdown, err := s.calculator.Price(nights, property.RateCard())
	if err != nil {
		if errors.Is(err, pricing.ErrNegativeRate) {
			return nil, apperrors.InvalidRateCard(fmt.Sprintf(
				"Property %s has a negative rate card", property.ID,
			))
		}
		s.cfg.Log.Error("Failed to price stay",
			"property_id", property.ID,
			"nights", nights,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to price stay", err)
	}
	return breakdown, nil
}

func stayDescription(nights int, checkIn, checkOut string) string {
	noun := "nights"
	if nights == 1 {
		noun = "night"
	}
	return fmt.Sprintf("%d %s, %s to %s", nights, noun, checkIn, checkOut)
}
