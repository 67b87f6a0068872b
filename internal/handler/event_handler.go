package handler

import (
	"net/http"

	"go-gin-event-map/internal/query"
	"go-gin-event-map/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	for _, prefix := range routePrefixes {
		router := r.Group(prefix)
		{
			router.GET("events", h.List)
			router.GET("events/:id", h.GetByID)
		}
	}
}

// List GET /events?northEast_Lat=&northEast_Lng=&southWest_Lat=&southWest_Lng=&genres=&startAfter=&startBefore=
func (h *EventHandler) List(c *gin.Context) {
	var params query.RawParams
	if err := BindQuery(c, &params); err != nil {
		return
	}
	events, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		handleError(c, err, "ListEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c, "id", "event")
	if !ok {
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}
