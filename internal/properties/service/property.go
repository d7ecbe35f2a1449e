package service

import (
	"context"
	"errors"
	propertieserrors "stayhub/internal/properties/errors"
	"stayhub/internal/properties/repository"
	"stayhub/internal/properties/validator"
	"stayhub/pkg/config"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/model"
	"stayhub/pkg/sanitizer"
	"sync"
)

type PropertyService interface {
	Create(ctx context.Context, p *model.Property) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	validator *validator.PropertyValidator
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	validator *validator.PropertyValidator,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *propertyService) Create(ctx context.Context, p *model.Property) error {
	s.sanitize(p)

	if err := s.validator.Validate(p); err != nil {
		s.cfg.Log.Warn("Property validation failed",
			"display_name", p.DisplayName,
			"host_id", p.HostID,
			"error", err,
		)
		return apperrors.Validation("Property validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.cfg.Log.Error("Failed to create property",
			"display_name", p.DisplayName,
			"host_id", p.HostID,
			"error", err,
		)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created successfully",
		"id", p.ID,
		"display_name", p.DisplayName,
		"city", p.City,
	)

	return nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid property ID format")
		}
		s.cfg.Log.Error("Failed to get property by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve property", err)
	}

	return p, nil
}

func (s *propertyService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var properties []*model.Property
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count properties", "error", err)
			errCount = apperrors.Internal("Failed to count properties", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		properties, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all properties",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve properties", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return properties, count, nil
}

func (s *propertyService) sanitize(p *model.Property) {
	p.DisplayName = sanitizer.NormalizeDisplayName(p.DisplayName)
	p.City = sanitizer.NormalizeCity(p.City)
	p.PreviewImages = sanitizer.NormalizeImageURLs(p.PreviewImages)
}
