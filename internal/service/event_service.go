package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go-gin-event-map/internal/metrics"
	"go-gin-event-map/internal/model"
	"go-gin-event-map/internal/query"
	"go-gin-event-map/internal/repository"
	apperrors "go-gin-event-map/pkg/app_errors"
	"go-gin-event-map/pkg/logger"

	"go.uber.org/zap"
)

type EventService interface {
	// List 解析原始查詢參數後執行 Search；格式錯誤的參數只會停用對應的過濾條件
	List(ctx context.Context, raw query.RawParams) ([]model.EventResponse, error)
	Search(ctx context.Context, req model.QueryRequest) ([]model.EventResponse, error)
	GetByID(ctx context.Context, id int) (*model.EventResponse, error)
}

type EventServiceImpl struct {
	repo      repository.EventRepository
	venueRepo repository.VenueRepository
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewEventService(repo repository.EventRepository, venueRepo repository.VenueRepository, m *metrics.Metrics) EventService {
	if m == nil {
		m = metrics.New(nil)
	}
	return &EventServiceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		metrics:   m,
		log:       logger.WithComponent("service"),
	}
}

func (s *EventServiceImpl) List(ctx context.Context, raw query.RawParams) ([]model.EventResponse, error) {
	req, issues := query.ParseRequest(raw)
	for _, issue := range issues {
		s.metrics.RejectedParams.WithLabelValues(issue.Param).Inc()
		s.log.Warn("Rejected filter parameter, filter disabled for this request",
			zap.String("param", issue.Param),
			zap.String("value", issue.Value),
			zap.String("reason", issue.Reason),
		)
	}

	s.log.Info("Getting events",
		zap.Bool("bbox_active", req.Box.Active()),
		zap.Float64p("ne_lat", req.Box.NorthEast.Lat),
		zap.Float64p("ne_lng", req.Box.NorthEast.Lng),
		zap.Float64p("sw_lat", req.Box.SouthWest.Lat),
		zap.Float64p("sw_lng", req.Box.SouthWest.Lng),
		zap.Strings("genres", req.Genres),
		zap.Timep("start_after", req.StartAfter),
		zap.Timep("start_before", req.StartBefore),
	)
	return s.Search(ctx, req)
}

func (s *EventServiceImpl) Search(ctx context.Context, req model.QueryRequest) ([]model.EventResponse, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		s.metrics.Queries.WithLabelValues("list", "error").Inc()
		return nil, repositoryError("list events", err)
	}

	pipeline := query.NewPipeline(req)
	matched := pipeline.Apply(events)
	s.log.Debug("Applied filter pipeline",
		zap.Strings("stages", pipeline.Stages()),
		zap.Int("candidates", len(events)),
		zap.Int("matched", len(matched)),
	)

	venues := s.resolveVenues(ctx, matched)
	out := make([]model.EventResponse, 0, len(matched))
	for _, e := range matched {
		out = append(out, query.Project(e, venueOf(e, venues)))
	}

	s.metrics.Queries.WithLabelValues("list", "ok").Inc()
	s.metrics.ResultSize.WithLabelValues("list").Observe(float64(len(out)))
	return out, nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.EventResponse, error) {
	if id <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	s.log.Info("Getting event", zap.Int("event_id", id))
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			s.metrics.Queries.WithLabelValues("get", "not_found").Inc()
			return nil, err
		}
		s.metrics.Queries.WithLabelValues("get", "error").Inc()
		return nil, repositoryError("find event", err)
	}

	var venue *model.Venue
	if event.VenueID != nil {
		venue = s.resolveVenue(ctx, event.ID, *event.VenueID)
	}
	resp := query.Project(event, venue)

	s.metrics.Queries.WithLabelValues("get", "ok").Inc()
	return &resp, nil
}

// resolveVenues 批次查詢活動引用的場地。
// 查詢失敗時降級為不帶場地的結果並記錄 log，不讓整個查詢失敗。
func (s *EventServiceImpl) resolveVenues(ctx context.Context, events []*model.Event) map[int]*model.Venue {
	seen := make(map[int]struct{})
	var ids []int
	for _, e := range events {
		if e.VenueID == nil {
			continue
		}
		if _, ok := seen[*e.VenueID]; ok {
			continue
		}
		seen[*e.VenueID] = struct{}{}
		ids = append(ids, *e.VenueID)
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Ints(ids)

	venues, err := s.venueRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.metrics.VenueLookups.WithLabelValues("error").Add(float64(len(ids)))
		s.log.Warn("Failed to resolve venues, returning events without venue", zap.Ints("venue_ids", ids), zap.Error(err))
		return nil
	}
	for _, id := range ids {
		if _, ok := venues[id]; ok {
			s.metrics.VenueLookups.WithLabelValues("ok").Inc()
			continue
		}
		s.metrics.VenueLookups.WithLabelValues("dangling").Inc()
		s.log.Debug("Dangling venue reference", zap.Int("venue_id", id))
	}
	return venues
}

func (s *EventServiceImpl) resolveVenue(ctx context.Context, eventID, venueID int) *model.Venue {
	venue, err := s.venueRepo.FindByID(ctx, venueID)
	switch {
	case err == nil:
		s.metrics.VenueLookups.WithLabelValues("ok").Inc()
		return venue
	case errors.Is(err, apperrors.ErrVenueNotFound):
		s.metrics.VenueLookups.WithLabelValues("dangling").Inc()
		s.log.Debug("Dangling venue reference", zap.Int("event_id", eventID), zap.Int("venue_id", venueID))
	default:
		s.metrics.VenueLookups.WithLabelValues("error").Inc()
		s.log.Warn("Failed to resolve venue, returning event without venue",
			zap.Int("event_id", eventID), zap.Int("venue_id", venueID), zap.Error(err))
	}
	return nil
}

func venueOf(e *model.Event, venues map[int]*model.Venue) *model.Venue {
	if e.VenueID == nil {
		return nil
	}
	return venues[*e.VenueID]
}

func repositoryError(op string, err error) error {
	if errors.Is(err, apperrors.ErrRepositoryUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrRepositoryUnavailable, err)
}
