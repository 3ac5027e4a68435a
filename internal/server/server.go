package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bond-monitor/internal/interfaces"
	"bond-monitor/internal/logger"
	"bond-monitor/internal/requestlog"
	"bond-monitor/internal/types"
)

// Server is the HTTP face of the reporter. Transport encoding and status
// mapping live here; the pipeline itself knows nothing about HTTP.
type Server struct {
	reporter interfaces.Reporter
}

func New(reporter interfaces.Reporter) *Server {
	return &Server{reporter: reporter}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/monitor/:username/:filter/:from_date", s.handleMonitor)
	return r
}

func (s *Server) handleMonitor(c *gin.Context) {
	username := c.Param("username")
	filter := c.Param("filter")
	fromDate := c.Param("from_date")

	start := time.Now()
	records, err := s.reporter.Run(c.Request.Context(), username, filter, fromDate)

	status := http.StatusOK
	errMsg := ""
	if err != nil {
		status = statusFor(err)
		errMsg = err.Error()
	}
	if logErr := requestlog.Append(requestlog.Entry{
		Username:   username,
		Filter:     filter,
		FromDate:   fromDate,
		Status:     status,
		DurationMs: time.Since(start).Milliseconds(),
		Error:      errMsg,
	}); logErr != nil {
		logger.Warn(c.Request.Context(), "Failed to append request log", "error", logErr)
	}

	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func statusFor(err error) int {
	var pe *types.PermissionError
	if errors.As(err, &pe) {
		return http.StatusForbidden
	}
	var se *types.SchemaError
	var ve *types.ValueError
	if errors.As(err, &se) || errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
