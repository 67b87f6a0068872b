package handler

import (
	"net/http"

	"go-gin-event-map/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter 組裝所有路由與 middleware
func NewRouter(eventService service.EventService, venueService service.VenueService, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	NewEventHandler(eventService).RegisterRoutes(router)
	NewVenueHandler(venueService).RegisterRoutes(router)
	return router
}
