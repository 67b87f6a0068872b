package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go-gin-event-map/internal/metrics"
	"go-gin-event-map/internal/model"
	"go-gin-event-map/internal/repository"
	"go-gin-event-map/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSeedRouter 以 data/seed.yaml 建立完整的 router（記憶體 repository + 真實 service）
func setupSeedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d, err := repository.LoadDataset(filepath.Join("..", "..", "data", "seed.yaml"))
	require.NoError(t, err)
	store, err := repository.NewMemoryStore(d)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	return NewRouter(
		service.NewEventService(store.Events(), store.Venues(), m),
		service.NewVenueService(store.Venues(), store.Events(), m),
		reg,
	)
}

func getEvents(t *testing.T, router *gin.Engine, url string) []model.EventResponse {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", url, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var events []model.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	return events
}

func eventIDs(events []model.EventResponse) []int {
	out := make([]int, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestRouter_EventQueries(t *testing.T) {
	router := setupSeedRouter(t)

	t.Run("BoundingBox", func(t *testing.T) {
		events := getEvents(t, router, "/api/events?northEast_Lat=40.800&northEast_Lng=-73.900&southWest_Lat=40.700&southWest_Lng=-74.100")

		assert.Equal(t, []int{1, 2, 3}, eventIDs(events))
		for _, e := range events {
			assert.True(t, e.Latitude >= 40.700 && e.Latitude <= 40.800)
			assert.True(t, e.Longitude >= -74.100 && e.Longitude <= -73.900)
		}
	})

	t.Run("GenreCaseInsensitive", func(t *testing.T) {
		events := getEvents(t, router, "/events?genres=jazz")

		assert.Equal(t, []int{1}, eventIDs(events))
		require.NotNil(t, events[0].Venue)
		assert.Equal(t, "Central Park Bandshell", events[0].Venue.Name)
	})

	t.Run("StartAfterAll", func(t *testing.T) {
		events := getEvents(t, router, "/events?startAfter=2030-01-01T00:00:00Z")

		assert.Empty(t, events)
	})

	t.Run("PartialBox", func(t *testing.T) {
		events := getEvents(t, router, "/events?northEast_Lat=1&northEast_Lng=1")

		assert.Equal(t, []int{1, 2, 3}, eventIDs(events))
	})

	t.Run("MalformedParamsAreLenient", func(t *testing.T) {
		events := getEvents(t, router, "/events?northEast_Lat=abc&northEast_Lng=1&southWest_Lat=0&southWest_Lng=0&startBefore=someday")

		assert.Equal(t, []int{1, 2, 3}, eventIDs(events))
	})

	t.Run("ContradictoryTimeRange", func(t *testing.T) {
		events := getEvents(t, router, "/events?startAfter=2025-06-03T00:00:00Z&startBefore=2025-06-01T00:00:00Z")

		assert.Empty(t, events)
	})
}

func TestRouter_EventLookup(t *testing.T) {
	router := setupSeedRouter(t)

	t.Run("Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/events/3", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var event model.EventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
		assert.Equal(t, "Acoustic Coffee Session", event.Title)
		require.NotNil(t, event.Venue)
		assert.Equal(t, 2, event.Venue.ID)
	})

	t.Run("NotFoundIsNotFabricated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/events/42", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "Event 42")
	})
}

func TestRouter_Venues(t *testing.T) {
	router := setupSeedRouter(t)

	events := getEvents(t, router, "/venues/2/events")
	assert.Equal(t, []int{3}, eventIDs(events))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/venues/9/events", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_System(t *testing.T) {
	router := setupSeedRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	getEvents(t, router, "/events?southWest_Lat=north&northEast_Lat=1&northEast_Lng=1&southWest_Lng=1")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `eventmap_rejected_params_total{param="southWest_Lat"} 1`)
	assert.Contains(t, w.Body.String(), `eventmap_queries_total{operation="list",outcome="ok"} 1`)
}
