// Package api exposes the snapshot service over HTTP.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/snapshot"
)

const (
	Version = "1.0.0"

	msgInternal    = "Internal server error"
	msgNotFound    = "Route not found"
	msgInvalidBody = "Invalid request body"

	// StatusClientClosedRequest is recorded when the caller disconnects
	// before the response is ready.
	StatusClientClosedRequest = 499
)

// SnapshotService is implemented by *snapshot.Service.
type SnapshotService interface {
	CreateSnapshot(ctx context.Context, id models.BusinessIdentity) (*models.Snapshot, error)
	RegenerateHeadline(ctx context.Context, name, location string) (*models.HeadlineResponse, error)
}

type Handler struct {
	service SnapshotService
	log     logrus.FieldLogger
}

func NewHandler(service SnapshotService, log logrus.FieldLogger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogging(h.log), Recovery(h.log))

	router.GET("/", h.ServeInfo)
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.POST("/business-data", h.HandleBusinessData)
	router.GET("/regenerate-headline", h.HandleRegenerateHeadline)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgNotFound})
	})
	return router
}

func (h *Handler) ServeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIInfo{
		Message: "GrowthProAI Business Dashboard API",
		Version: Version,
		Endpoints: map[string]string{
			"POST /business-data":      "Get business data with name and location",
			"GET /regenerate-headline": "Get a new AI-generated headline",
		},
	})
}

// HandleBusinessData answers POST /business-data.
func (h *Handler) HandleBusinessData(c *gin.Context) {
	var id models.BusinessIdentity
	if err := c.ShouldBindJSON(&id); err != nil && !errors.Is(err, io.EOF) {
		h.log.WithError(err).Debug("malformed business-data body")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
		return
	}

	snap, err := h.service.CreateSnapshot(c.Request.Context(), id)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// HandleRegenerateHeadline answers GET /regenerate-headline?name=&location=.
func (h *Handler) HandleRegenerateHeadline(c *gin.Context) {
	resp, err := h.service.RegenerateHeadline(c.Request.Context(), c.Query("name"), c.Query("location"))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) sendError(c *gin.Context, err error) {
	switch {
	case snapshot.IsValidation(err):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled):
		// The client went away; nobody is left to read a response.
		h.log.WithField("path", c.Request.URL.Path).Debug("request cancelled by client")
		c.AbortWithStatus(StatusClientClosedRequest)
	default:
		h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("snapshot service failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgInternal})
	}
}
