package mocks

import (
	"context"

	"go-gin-event-map/internal/model"
	"go-gin-event-map/internal/query"

	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) List(ctx context.Context, raw query.RawParams) ([]model.EventResponse, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventResponse), args.Error(1)
}

func (m *EventServiceMock) Search(ctx context.Context, req model.QueryRequest) ([]model.EventResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventResponse), args.Error(1)
}

func (m *EventServiceMock) GetByID(ctx context.Context, id int) (*model.EventResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventResponse), args.Error(1)
}

type VenueServiceMock struct {
	mock.Mock
}

func NewVenueServiceMock() *VenueServiceMock {
	return &VenueServiceMock{}
}

func (m *VenueServiceMock) GetByID(ctx context.Context, id int) (*model.VenueResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VenueResponse), args.Error(1)
}

func (m *VenueServiceMock) ListEvents(ctx context.Context, venueID int) ([]model.EventResponse, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventResponse), args.Error(1)
}
