package query

import (
	"time"

	"go-gin-event-map/internal/model"
)

func ptr[T any](v T) *T { return &v }

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// nycEvents 三筆曼哈頓活動，與 data/seed.yaml 相同
func nycEvents() []*model.Event {
	return []*model.Event{
		{
			ID:        1,
			Title:     "Jazz Night at Central Park",
			StartUTC:  baseTime.Add(24 * time.Hour),
			EndUTC:    ptr(baseTime.Add(27 * time.Hour)),
			Latitude:  40.7829,
			Longitude: -73.9654,
			Genres:    []string{"Jazz", "Music"},
			VenueID:   ptr(1),
		},
		{
			ID:        2,
			Title:     "Street Art Festival",
			StartUTC:  baseTime.Add(48 * time.Hour),
			Latitude:  40.7614,
			Longitude: -73.9776,
			Genres:    []string{"Art"},
		},
		{
			ID:        3,
			Title:     "Acoustic Coffee Session",
			StartUTC:  baseTime.Add(6 * time.Hour),
			Latitude:  40.7505,
			Longitude: -73.9934,
			Genres:    []string{"Acoustic", "Music"},
			VenueID:   ptr(2),
		},
	}
}

func ids(events []*model.Event) []int {
	out := make([]int, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func manhattanBox() model.BoundingBox {
	return model.BoundingBox{
		NorthEast: model.Corner{Lat: ptr(40.800), Lng: ptr(-73.900)},
		SouthWest: model.Corner{Lat: ptr(40.700), Lng: ptr(-74.100)},
	}
}
