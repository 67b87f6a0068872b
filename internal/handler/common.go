package handler

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "go-gin-event-map/pkg/app_errors"
	"go-gin-event-map/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 同時掛在根路徑與 /api 之下
var routePrefixes = []string{"/", "/api"}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// bindID 解析正整數路徑參數，失敗時直接回應 400
func bindID(c *gin.Context, name, label string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " id"})
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(
		zap.String("operation", operation),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrVenueNotFound):
		log.Warn("Venue not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, apperrors.ErrRepositoryUnavailable):
		log.Error("Repository unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
