package dispatch

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/metrics"
)

// Server exposes the dispatcher over HTTP: one event endpoint plus health
// and metrics.
type Server struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewServer(dispatcher *Dispatcher, logger *zap.Logger) *Server {
	return &Server{dispatcher: dispatcher, logger: logger}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/v1/events", s.handleEvent)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

// handleEvent maps dispatch outcomes onto the historical HTTP contract:
// skipped events are 200 no-ops, validation problems are 400s, everything
// else is a 500 with the error message as the body.
func (s *Server) handleEvent(c *gin.Context) {
	metrics.EventsReceived.Inc()

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	ref, err := ParseEvent(raw)
	if err != nil {
		metrics.EventsRejected.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.dispatcher.Dispatch(c.Request.Context(), ref)
	switch {
	case err == nil:
		metrics.JobsSubmitted.Inc()
		c.JSON(http.StatusOK, gin.H{
			"message":     "job submitted",
			"jobId":       result.JobID,
			"jobName":     result.JobName,
			"userMediaId": result.UserMediaID,
			"taskId":      result.TaskID,
		})
	case errors.Is(err, ErrNotUpload), errors.Is(err, ErrDuplicate):
		metrics.EventsSkipped.Inc()
		c.JSON(http.StatusOK, gin.H{"message": err.Error()})
	case errors.Is(err, ErrInvalidKey), errors.Is(err, ErrMissingMetadata):
		metrics.EventsRejected.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("dispatch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
