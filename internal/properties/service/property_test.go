package service

import (
	"context"
	"errors"
	"fmt"
	propertieserrors "stayhub/internal/properties/errors"
	"stayhub/internal/properties/validator"
	"stayhub/pkg/config"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	"testing"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockPropertyRepository struct {
	createFunc   func(ctx context.Context, p *model.Property) error
	findByIDFunc func(ctx context.Context, id string) (*model.Property, error)
	findAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.Property, error)
	countFunc    func(ctx context.Context) (int64, error)
}

func (m *mockPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
}

func (m *mockPropertyRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Property{}, nil
}

func (m *mockPropertyRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func newTestService(repo *mockPropertyRepository) PropertyService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{Log: log}
	return NewPropertyService(repo, validator.NewPropertyValidator(log), cfg)
}

func validProperty() *model.Property {
	return &model.Property{
		HostID:      "507f1f77bcf86cd799439012",
		DisplayName: "  Seaside   Loft ",
		City:        " Lisbon ",
		NightlyRate: 200,
		CleaningFee: 75,
		MaxGuests:   4,
		PreviewImages: []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
		},
	}
}

// ────────────────────────────────────────────────
// Tests for Create()
// ────────────────────────────────────────────────

func TestCreate_SanitizesBeforePersisting(t *testing.T) {
	var persisted *model.Property
	repo := &mockPropertyRepository{
		createFunc: func(ctx context.Context, p *model.Property) error {
			persisted = p
			return nil
		},
	}
	svc := newTestService(repo)

	p := validProperty()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if persisted.DisplayName != "Seaside Loft" {
		t.Errorf("DisplayName = %q, want %q", persisted.DisplayName, "Seaside Loft")
	}
	if persisted.City != "Lisbon" {
		t.Errorf("City = %q, want %q", persisted.City, "Lisbon")
	}
	if len(persisted.PreviewImages) != 2 {
		t.Errorf("expected duplicate image URL dropped, got %v", persisted.PreviewImages)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := newTestService(&mockPropertyRepository{})

	tests := []struct {
		name   string
		mutate func(p *model.Property)
	}{
		{name: "missing host", mutate: func(p *model.Property) { p.HostID = "" }},
		{name: "short display name", mutate: func(p *model.Property) { p.DisplayName = "x" }},
		{name: "negative nightly rate", mutate: func(p *model.Property) { p.NightlyRate = -1 }},
		{name: "zero max guests", mutate: func(p *model.Property) { p.MaxGuests = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProperty()
			tt.mutate(p)

			err := svc.Create(context.Background(), p)
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("Create() error code = %s, want %s", appErr.Code, apperrors.CodeValidation)
			}
		})
	}
}

func TestCreate_RepositoryFailure(t *testing.T) {
	repo := &mockPropertyRepository{
		createFunc: func(ctx context.Context, p *model.Property) error {
			return errors.New("write concern not satisfied")
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), validProperty())
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("Create() error code = %s, want %s", appErr.Code, apperrors.CodeInternal)
	}
}

// ────────────────────────────────────────────────
// Tests for GetByID() and GetAll()
// ────────────────────────────────────────────────

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockPropertyRepository{})

	_, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439011")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("GetByID() error code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "nope")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("GetByID() error code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}
}

func TestGetAll_LimitNormalization(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	repo := &mockPropertyRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
			gotLimit = limit
			gotOffset = offset
			return []*model.Property{}, nil
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name       string
		limit      int
		offset     int64
		wantLimit  int
		wantOffset int64
	}{
		{name: "zero limit uses default", limit: 0, offset: 0, wantLimit: 10, wantOffset: 0},
		{name: "oversized limit capped", limit: 500, offset: 0, wantLimit: 100, wantOffset: 0},
		{name: "negative offset floored", limit: 20, offset: -5, wantLimit: 20, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.GetAll(context.Background(), tt.limit, tt.offset); err != nil {
				t.Fatalf("GetAll() unexpected error: %v", err)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", gotLimit, tt.wantLimit)
			}
			if gotOffset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", gotOffset, tt.wantOffset)
			}
		})
	}
}

func TestGetAll_CountFailure(t *testing.T) {
	repo := &mockPropertyRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			return 0, errors.New("count timed out")
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.GetAll(context.Background(), 10, 0)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("GetAll() error code = %s, want %s", appErr.Code, apperrors.CodeInternal)
	}
}
