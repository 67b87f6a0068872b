package service

import (
	"context"
	"errors"

	"go-gin-event-map/internal/metrics"
	"go-gin-event-map/internal/model"
	"go-gin-event-map/internal/query"
	"go-gin-event-map/internal/repository"
	apperrors "go-gin-event-map/pkg/app_errors"
	"go-gin-event-map/pkg/logger"

	"go.uber.org/zap"
)

type VenueService interface {
	GetByID(ctx context.Context, id int) (*model.VenueResponse, error)
	// ListEvents 列出引用該場地的活動（反向關聯，唯讀）
	ListEvents(ctx context.Context, venueID int) ([]model.EventResponse, error)
}

type VenueServiceImpl struct {
	repo      repository.VenueRepository
	eventRepo repository.EventRepository
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewVenueService(repo repository.VenueRepository, eventRepo repository.EventRepository, m *metrics.Metrics) VenueService {
	if m == nil {
		m = metrics.New(nil)
	}
	return &VenueServiceImpl{
		repo:      repo,
		eventRepo: eventRepo,
		metrics:   m,
		log:       logger.WithComponent("service"),
	}
}

func (s *VenueServiceImpl) GetByID(ctx context.Context, id int) (*model.VenueResponse, error) {
	venue, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.Queries.WithLabelValues("get_venue", "ok").Inc()
	return query.ProjectVenue(venue), nil
}

func (s *VenueServiceImpl) ListEvents(ctx context.Context, venueID int) ([]model.EventResponse, error) {
	venue, err := s.find(ctx, venueID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByVenue(ctx, venueID)
	if err != nil {
		s.metrics.Queries.WithLabelValues("list_venue_events", "error").Inc()
		return nil, repositoryError("list events by venue", err)
	}

	out := make([]model.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, query.Project(e, venue))
	}
	s.metrics.Queries.WithLabelValues("list_venue_events", "ok").Inc()
	s.metrics.ResultSize.WithLabelValues("list_venue_events").Observe(float64(len(out)))
	return out, nil
}

func (s *VenueServiceImpl) find(ctx context.Context, id int) (*model.Venue, error) {
	if id <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	s.log.Info("Getting venue", zap.Int("venue_id", id))
	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrVenueNotFound) {
			s.metrics.Queries.WithLabelValues("get_venue", "not_found").Inc()
			return nil, err
		}
		s.metrics.Queries.WithLabelValues("get_venue", "error").Inc()
		return nil, repositoryError("find venue", err)
	}
	return venue, nil
}
