package session

import (
	"context"
	"fmt"
	"net/url"
	checkouterrors "stayhub/internal/checkout/errors"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	"strings"

	"github.com/shopspring/decimal"
)

// 2-decimal currency assumed; the provider bills in minor units.
var minorUnitsPerMajor = decimal.NewFromInt(100)

// SessionIDPlaceholder is substituted by the payment provider with its own
// session identifier when the guest is redirected back.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

const paymentMode = "payment"

// Provider is the slice of the external payment API the builder needs.
type Provider interface {
	CreateSession(ctx context.Context, req *model.PaymentSessionRequest) (*model.PaymentSessionResponse, error)
}

// Builder constructs payment-session requests from a price breakdown and
// unwraps the provider's response. It holds no state beyond the validated
// return URL and performs no persistence.
type Builder struct {
	returnURL string
	log       *logger.Logger
}

// NewBuilder validates the configured return-URL base once, up front, so a
// misconfigured deployment fails at startup rather than at the first
// checkout.
func NewBuilder(returnURL string, log *logger.Logger) (*Builder, error) {
	u, err := url.Parse(returnURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, apperrors.MalformedReturnURL(fmt.Sprintf("checkout return URL must be an absolute http(s) URL, got: %q", returnURL))
	}
	if strings.Contains(returnURL, SessionIDPlaceholder) {
		return nil, apperrors.MalformedReturnURL("checkout return URL must not already contain the session placeholder")
	}

	return &Builder{
		returnURL: returnURL,
		log:       log,
	}, nil
}

// BuildRequest assembles the provider request for one stay. Only the first
// preview image is forwarded; the provider renders a single thumbnail and
// extra URLs just bloat the payload.
func (b *Builder) BuildRequest(breakdown *model.PriceBreakdown, display model.DisplayMetadata) (*model.PaymentSessionRequest, error) {
	if breakdown.TotalAmount.IsNegative() {
		return nil, apperrors.InvalidAmount(fmt.Sprintf("total amount cannot be negative, got: %s", breakdown.TotalAmount))
	}

	unitAmountMinor := breakdown.TotalAmount.Mul(minorUnitsPerMajor).Round(0).IntPart()

	var images []string
	if len(display.PreviewImages) > 0 {
		images = display.PreviewImages[:1]
	}

	returnURL := b.returnURL + "?session_id=" + SessionIDPlaceholder
	if strings.Count(returnURL, SessionIDPlaceholder) != 1 {
		return nil, apperrors.MalformedReturnURL("return URL must carry exactly one session placeholder")
	}

	return &model.PaymentSessionRequest{
		Mode: paymentMode,
		LineItems: []model.LineItem{
			{
				Description:     lineItemDescription(display.Name, display.Description),
				Images:          images,
				UnitAmountMinor: unitAmountMinor,
				Quantity:        1,
			},
		},
		ReturnURL: returnURL,
	}, nil
}

// Submit sends the request to the provider and extracts the client secret.
// A failed call is surfaced as-is with its cause; it is never retried, since
// a duplicate submission would create a duplicate billable session.
func (b *Builder) Submit(ctx context.Context, provider Provider, req *model.PaymentSessionRequest) (*model.PaymentSessionHandle, error) {
	resp, err := provider.CreateSession(ctx, req)
	if err != nil {
		b.log.Error("Payment session creation failed", "error", err)
		return nil, apperrors.PaymentSessionFailed(err)
	}

	if resp.ClientSecret == "" {
		b.log.Error("Payment provider response missing client secret", "session_id", resp.ID)
		return nil, apperrors.PaymentSessionFailed(checkouterrors.ErrMissingClientSecret)
	}

	return &model.PaymentSessionHandle{ClientSecret: resp.ClientSecret}, nil
}

func lineItemDescription(name, description string) string {
	if description == "" {
		return name
	}
	return name + " | " + description
}

// ExtractCardLastFour reads the card's last four digits from a validated
// session-status response. A card payment without a card block is a shape
// mismatch and fails loudly; a non-card payment yields an empty string.
func ExtractCardLastFour(status *model.SessionStatusResponse) (string, error) {
	if status.PaymentMethod == nil {
		return "", nil
	}
	if status.PaymentMethod.Type != "card" {
		return "", nil
	}
	if status.PaymentMethod.Card == nil || status.PaymentMethod.Card.LastFour == "" {
		return "", fmt.Errorf("session %s reports a card payment without card details", status.ID)
	}
	return status.PaymentMethod.Card.LastFour, nil
}
