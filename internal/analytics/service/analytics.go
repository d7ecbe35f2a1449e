package service

import (
	"context"
	"stayhub/internal/analytics/repository"
	"stayhub/pkg/config"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/kafka"
	"stayhub/pkg/model"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	weekWindow = 168 * time.Hour
	// A month is a fixed 30-day window, not a calendar month.
	monthWindow = 720 * time.Hour

	breakdownDayLabel = "Jan 2"

	EventTypeClickRecorded = "click.recorded"
)

// EventPublisher is the slice of the Kafka producer the analytics flow
// needs. *kafka.Producer satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type AnalyticsService interface {
	Record(ctx context.Context, subjectID string) (*model.ClickEvent, error)
	Metrics(ctx context.Context, subjectID string) (*model.ClickMetrics, error)
}

type analyticsService struct {
	repo      repository.ClickEventRepository
	publisher EventPublisher
	location  *time.Location
	now       func() time.Time
	cfg       *config.Config
}

// NewAnalyticsService builds the click-analytics service. A nil publisher
// disables event emission; a nil location falls back to the host timezone,
// which decides where "today" starts and how days are bucketed.
func NewAnalyticsService(
	repo repository.ClickEventRepository,
	publisher EventPublisher,
	location *time.Location,
	cfg *config.Config,
) AnalyticsService {
	if location == nil {
		location = time.Local
	}
	return &analyticsService{
		repo:      repo,
		publisher: publisher,
		location:  location,
		now:       time.Now,
		cfg:       cfg,
	}
}

func (s *analyticsService) Record(ctx context.Context, subjectID string) (*model.ClickEvent, error) {
	if err := validateSubjectID(subjectID); err != nil {
		return nil, err
	}

	event := &model.ClickEvent{
		ID:         uuid.NewString(),
		SubjectID:  subjectID,
		OccurredAt: s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to record click event",
			"subject_id", subjectID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to record click", err)
	}

	s.publish(ctx, event)

	return event, nil
}

// publish emits the click event downstream. Emission is best-effort: the
// click is already persisted, so a broker outage must not fail the request.
func (s *analyticsService) publish(ctx context.Context, event *model.ClickEvent) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(event.SubjectID).
		WithValue(event).
		WithEventType(EventTypeClickRecorded).
		WithSource("analytics").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish click event",
			"subject_id", event.SubjectID,
			"event_id", event.ID,
			"error", err,
		)
	}
}

func (s *analyticsService) Metrics(ctx context.Context, subjectID string) (*model.ClickMetrics, error) {
	if err := validateSubjectID(subjectID); err != nil {
		return nil, err
	}

	now := s.now().In(s.location)

	// The 30-day breakdown window covers every rolling window, so one
	// bounded fetch feeds today, week, month and the histogram.
	since := now.Add(-monthWindow)

	timestamps, err := s.repo.FindTimestampsBySubject(ctx, subjectID, since)
	if err != nil {
		s.cfg.Log.Error("Failed to read click events",
			"subject_id", subjectID,
			"error", err,
		)
		return nil, apperrors.MetricsUnavailable(err)
	}

	allTime, err := s.repo.CountBySubject(ctx, subjectID)
	if err != nil {
		s.cfg.Log.Error("Failed to count click events",
			"subject_id", subjectID,
			"error", err,
		)
		return nil, apperrors.MetricsUnavailable(err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	weekStart := now.Add(-weekWindow)

	metrics := &model.ClickMetrics{
		AllTime:        allTime,
		DailyBreakdown: model.DailyBreakdown{},
	}

	var lastLabel string
	for _, ts := range timestamps {
		local := ts.In(s.location)

		if !local.Before(midnight) {
			metrics.Today++
		}
		if !local.Before(weekStart) {
			metrics.Week++
		}
		metrics.Month++

		label := local.Format(breakdownDayLabel)
		if label != lastLabel {
			metrics.DailyBreakdown = append(metrics.DailyBreakdown, model.DayCount{Label: label})
			lastLabel = label
		}
		metrics.DailyBreakdown[len(metrics.DailyBreakdown)-1].Count++
	}

	return metrics, nil
}

func validateSubjectID(subjectID string) error {
	if subjectID == "" {
		return apperrors.InvalidInput("Subject ID cannot be empty")
	}
	if _, err := primitive.ObjectIDFromHex(subjectID); err != nil {
		return apperrors.InvalidInput("Invalid subject ID format")
	}
	return nil
}
