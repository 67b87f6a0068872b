package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-gin-event-map/internal/model"
	"go-gin-event-map/internal/service/mocks"
	apperrors "go-gin-event-map/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupVenueTestRouter(mockService *mocks.VenueServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	NewVenueHandler(mockService).RegisterRoutes(router)
	return router
}

func TestGetVenue(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewVenueServiceMock()
		router := setupVenueTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, 1).Return(&model.VenueResponse{ID: 1, Name: "Bandshell"}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/venues/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"name":"Bandshell","address":"","latitude":0,"longitude":0,"description":null}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := mocks.NewVenueServiceMock()
		router := setupVenueTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, 5).Return(nil, apperrors.ErrVenueNotFound).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/venues/5", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := mocks.NewVenueServiceMock()
		router := setupVenueTestRouter(mockService)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/venues/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestListVenueEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewVenueServiceMock()
		router := setupVenueTestRouter(mockService)

		mockService.On("ListEvents", mock.Anything, 1).Return([]model.EventResponse{sampleEvent(1)}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/venues/1/events", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidInput", func(t *testing.T) {
		mockService := mocks.NewVenueServiceMock()
		router := setupVenueTestRouter(mockService)

		mockService.On("ListEvents", mock.Anything, 2).Return(nil, apperrors.ErrInvalidInput).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/venues/2/events", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - unexpected error", func(t *testing.T) {
		mockService := mocks.NewVenueServiceMock()
		router := setupVenueTestRouter(mockService)

		mockService.On("ListEvents", mock.Anything, 3).Return(nil, errors.New("boom")).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/venues/3/events", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
