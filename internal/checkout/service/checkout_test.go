package service

import (
	"context"
	"errors"
	"fmt"
	"stayhub/internal/checkout/pricing"
	"stayhub/internal/checkout/session"
	"stayhub/internal/checkout/validator"
	propertieserrors "stayhub/internal/properties/errors"
	"stayhub/pkg/config"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	"strings"
	"testing"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockPropertyRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Property, error)
}

func (m *mockPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	return nil
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
}

func (m *mockPropertyRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
	return []*model.Property{}, nil
}

func (m *mockPropertyRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockGateway struct {
	createSessionFunc func(ctx context.Context, req *model.PaymentSessionRequest) (*model.PaymentSessionResponse, error)
	sessionStatusFunc func(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error)
	portalFunc        func(ctx context.Context, customerID string) (string, error)
	lastRequest       *model.PaymentSessionRequest
}

func (m *mockGateway) CreateSession(ctx context.Context, req *model.PaymentSessionRequest) (*model.PaymentSessionResponse, error) {
	m.lastRequest = req
	if m.createSessionFunc != nil {
		return m.createSessionFunc(ctx, req)
	}
	return &model.PaymentSessionResponse{ID: "cs_1", ClientSecret: "cs_1_secret"}, nil
}

func (m *mockGateway) SessionStatus(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error) {
	if m.sessionStatusFunc != nil {
		return m.sessionStatusFunc(ctx, sessionID)
	}
	return &model.SessionStatusResponse{ID: sessionID, Status: "complete", PaymentStatus: "paid"}, nil
}

func (m *mockGateway) BillingPortalURL(ctx context.Context, customerID string) (string, error) {
	if m.portalFunc != nil {
		return m.portalFunc(ctx, customerID)
	}
	return "https://billing.example.com/p/session_1", nil
}

// ────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────

const testPropertyID = "507f1f77bcf86cd799439011"

func seasideLoft() *model.Property {
	return &model.Property{
		ID:          testPropertyID,
		HostID:      "507f1f77bcf86cd799439012",
		DisplayName: "  Seaside   Loft ",
		City:        "Lisbon",
		NightlyRate: 200,
		CleaningFee: 75,
		MaxGuests:   4,
		PreviewImages: []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
		},
	}
}

func newTestService(t *testing.T, repo *mockPropertyRepository, gateway *mockGateway) CheckoutService {
	t.Helper()

	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{Log: log}

	builder, err := session.NewBuilder("https://stayhub.example.com/checkout/return", log)
	if err != nil {
		t.Fatalf("NewBuilder() unexpected error: %v", err)
	}

	return NewCheckoutService(
		repo,
		validator.NewStayValidator(log),
		pricing.NewCalculator(12),
		builder,
		gateway,
		cfg,
	)
}

func quoteRequest() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		PropertyID: testPropertyID,
		CheckIn:    "2025-06-01",
		CheckOut:   "2025-06-05",
	}
}

// ────────────────────────────────────────────────
// Tests for Quote()
// ────────────────────────────────────────────────

func TestQuote(t *testing.T) {
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return seasideLoft(), nil
		},
	}
	svc := newTestService(t, repo, &mockGateway{})

	breakdown, err := svc.Quote(context.Background(), quoteRequest())
	if err != nil {
		t.Fatalf("Quote() unexpected error: %v", err)
	}

	if breakdown.Nights != 4 {
		t.Errorf("Nights = %d, want 4", breakdown.Nights)
	}
	checks := []struct {
		name string
		got  string
		want string
	}{
		{"NightlyTotal", breakdown.NightlyTotal.String(), "800"},
		{"ServiceFee", breakdown.ServiceFee.String(), "96"},
		{"CleaningFee", breakdown.CleaningFee.String(), "75"},
		{"TotalAmount", breakdown.TotalAmount.String(), "971"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestQuote_InvalidDateRange(t *testing.T) {
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return seasideLoft(), nil
		},
	}
	svc := newTestService(t, repo, &mockGateway{})

	tests := []struct {
		name       string
		checkIn    string
		checkOut   string
		wantReason string
	}{
		{name: "impossible date", checkIn: "2025-02-31", checkOut: "2025-03-02", wantReason: "unparseable"},
		{name: "garbage check-out", checkIn: "2025-06-01", checkOut: "next friday", wantReason: "unparseable"},
		{name: "wrong layout", checkIn: "06/01/2025", checkOut: "2025-06-05", wantReason: "unparseable"},
		{name: "same day", checkIn: "2025-06-01", checkOut: "2025-06-01", wantReason: "non-positive duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := quoteRequest()
			req.CheckIn = tt.checkIn
			req.CheckOut = tt.checkOut

			_, err := svc.Quote(context.Background(), req)
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeInvalidDateRange {
				t.Fatalf("Quote() error code = %s, want %s", appErr.Code, apperrors.CodeInvalidDateRange)
			}
			if reason := appErr.Details["reason"]; reason != tt.wantReason {
				t.Errorf("reason = %v, want %s", reason, tt.wantReason)
			}
		})
	}
}

func TestQuote_ReversedRangeStillPrices(t *testing.T) {
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return seasideLoft(), nil
		},
	}
	svc := newTestService(t, repo, &mockGateway{})

	req := quoteRequest()
	req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn

	breakdown, err := svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("Quote() unexpected error: %v", err)
	}
	if breakdown.Nights != 4 {
		t.Errorf("Nights = %d, want 4 for a reversed range", breakdown.Nights)
	}
}

func TestQuote_PropertyNotFound(t *testing.T) {
	svc := newTestService(t, &mockPropertyRepository{}, &mockGateway{})

	_, err := svc.Quote(context.Background(), quoteRequest())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("Quote() error code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestQuote_NegativeRateCard(t *testing.T) {
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			p := seasideLoft()
			p.NightlyRate = -10
			return p, nil
		},
	}
	svc := newTestService(t, repo, &mockGateway{})

	_, err := svc.Quote(context.Background(), quoteRequest())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidRateCard {
		t.Errorf("Quote() error code = %s, want %s", appErr.Code, apperrors.CodeInvalidRateCard)
	}
}

func TestQuote_MalformedRequest(t *testing.T) {
	svc := newTestService(t, &mockPropertyRepository{}, &mockGateway{})

	req := quoteRequest()
	req.PropertyID = "not-an-object-id"

	_, err := svc.Quote(context.Background(), req)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("Quote() error code = %s, want %s", appErr.Code, apperrors.CodeValidation)
	}
}

// ────────────────────────────────────────────────
// Tests for CreateSession()
// ────────────────────────────────────────────────

func TestCreateSession(t *testing.T) {
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return seasideLoft(), nil
		},
	}
	gateway := &mockGateway{}
	svc := newTestService(t, repo, gateway)

	handle, err := svc.CreateSession(context.Background(), quoteRequest())
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	if handle.ClientSecret != "cs_1_secret" {
		t.Errorf("ClientSecret = %q, want %q", handle.ClientSecret, "cs_1_secret")
	}

	req := gateway.lastRequest
	if req == nil {
		t.Fatal("gateway never received a request")
	}
	item := req.LineItems[0]
	if item.UnitAmountMinor != 97100 {
		t.Errorf("UnitAmountMinor = %d, want 97100", item.UnitAmountMinor)
	}
	if !strings.Contains(item.Description, "Seaside Loft") {
		t.Errorf("Description %q should carry the normalized property name", item.Description)
	}
	if !strings.Contains(item.Description, "4 nights") {
		t.Errorf("Description %q should state the night count", item.Description)
	}
	if len(item.Images) != 1 || item.Images[0] != "https://cdn.example.com/a.jpg" {
		t.Errorf("expected only the first preview image, got %v", item.Images)
	}
}

func TestCreateSession_ProviderFailure(t *testing.T) {
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return seasideLoft(), nil
		},
	}
	cause := errors.New("upstream 500")
	gateway := &mockGateway{
		createSessionFunc: func(ctx context.Context, req *model.PaymentSessionRequest) (*model.PaymentSessionResponse, error) {
			return nil, cause
		},
	}
	svc := newTestService(t, repo, gateway)

	_, err := svc.CreateSession(context.Background(), quoteRequest())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodePaymentSession {
		t.Fatalf("CreateSession() error code = %s, want %s", appErr.Code, apperrors.CodePaymentSession)
	}
	if !errors.Is(err, cause) {
		t.Errorf("CreateSession() should preserve the provider cause")
	}
}

// ────────────────────────────────────────────────
// Tests for SessionStatus() and PortalURL()
// ────────────────────────────────────────────────

func TestSessionStatus(t *testing.T) {
	gateway := &mockGateway{
		sessionStatusFunc: func(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error) {
			return &model.SessionStatusResponse{
				ID:            sessionID,
				Status:        "complete",
				PaymentStatus: "paid",
				PaymentMethod: &model.PaymentMethodDetails{
					Type: "card",
					Card: &model.CardDetails{Brand: "visa", LastFour: "4242"},
				},
			}, nil
		},
	}
	svc := newTestService(t, &mockPropertyRepository{}, gateway)

	status, err := svc.SessionStatus(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("SessionStatus() unexpected error: %v", err)
	}
	if status.CardLastFour != "4242" {
		t.Errorf("CardLastFour = %q, want %q", status.CardLastFour, "4242")
	}
	if status.PaymentStatus != "paid" {
		t.Errorf("PaymentStatus = %q, want %q", status.PaymentStatus, "paid")
	}
}

func TestSessionStatus_ShapeMismatch(t *testing.T) {
	gateway := &mockGateway{
		sessionStatusFunc: func(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error) {
			return &model.SessionStatusResponse{
				ID:            sessionID,
				Status:        "complete",
				PaymentStatus: "paid",
				PaymentMethod: &model.PaymentMethodDetails{Type: "card"},
			}, nil
		},
	}
	svc := newTestService(t, &mockPropertyRepository{}, gateway)

	_, err := svc.SessionStatus(context.Background(), "cs_1")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("SessionStatus() error code = %s, want %s", appErr.Code, apperrors.CodeInternal)
	}
}

func TestSessionStatus_EmptyID(t *testing.T) {
	svc := newTestService(t, &mockPropertyRepository{}, &mockGateway{})

	_, err := svc.SessionStatus(context.Background(), "")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("SessionStatus() error code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}
}

func TestPortalURL(t *testing.T) {
	svc := newTestService(t, &mockPropertyRepository{}, &mockGateway{})

	portal, err := svc.PortalURL(context.Background(), "cus_42")
	if err != nil {
		t.Fatalf("PortalURL() unexpected error: %v", err)
	}
	if portal.URL != "https://billing.example.com/p/session_1" {
		t.Errorf("URL = %q", portal.URL)
	}
}

func TestPortalURL_GatewayFailure(t *testing.T) {
	gateway := &mockGateway{
		portalFunc: func(ctx context.Context, customerID string) (string, error) {
			return "", errors.New("circuit open")
		},
	}
	svc := newTestService(t, &mockPropertyRepository{}, gateway)

	_, err := svc.PortalURL(context.Background(), "cus_42")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodePaymentSession {
		t.Errorf("PortalURL() error code = %s, want %s", appErr.Code, apperrors.CodePaymentSession)
	}
}
