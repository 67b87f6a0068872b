package handler

import (
	"net/http"

	"go-gin-event-map/internal/service"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	service service.VenueService
}

func NewVenueHandler(service service.VenueService) *VenueHandler {
	return &VenueHandler{service: service}
}

func (h *VenueHandler) RegisterRoutes(r *gin.Engine) {
	for _, prefix := range routePrefixes {
		router := r.Group(prefix)
		{
			router.GET("venues/:id", h.GetByID)
			router.GET("venues/:id/events", h.ListEvents)
		}
	}
}

func (h *VenueHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c, "id", "venue")
	if !ok {
		return
	}
	venue, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "GetVenue")
		return
	}
	c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) ListEvents(c *gin.Context) {
	id, ok := bindID(c, "id", "venue")
	if !ok {
		return
	}
	events, err := h.service.ListEvents(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, "ListVenueEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}
