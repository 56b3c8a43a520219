package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-zone-diff/internal/analyzer"
	"go-zone-diff/internal/config"
	apperrors "go-zone-diff/internal/errors"
	"go-zone-diff/internal/logger"
	"go-zone-diff/internal/observer"
	"go-zone-diff/internal/repository"
	"go-zone-diff/internal/service"
	"go-zone-diff/pkg/models"
	"go-zone-diff/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRunsLimit = 50

// Dependencies groups what the HTTP handlers need. History and Metrics are optional.
type Dependencies struct {
	Service service.ComparisonService
	History repository.HistoryRepository
	Metrics *observer.MetricsObserver
	Config  *config.Config
}

// NewHandler creates the gin engine serving the comparison API
func NewHandler(deps Dependencies) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(deps.Config.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/zones", listZones(deps.Service))
	roots, outputBase := deps.Config.RequestPathLimits()
	paths := validation.NewRestrictedPathValidator(roots, outputBase)
	r.POST("/compare", compareFolders(deps.Service, deps.Config, paths))
	if deps.Metrics != nil {
		r.GET("/metrics", metrics(deps.Metrics))
	}
	if deps.History != nil {
		r.GET("/runs", listRuns(deps.History))
		r.GET("/runs/:id", getRun(deps.History))
	}

	return r
}

func compareFolders(svc service.ComparisonService, cfg *config.Config, paths *validation.PathValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		// Log request start
		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing comparison request")

		var req models.CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		// Client paths must stay inside the configured roots and output base
		if err := checkRequestPaths(paths, req); err != nil {
			respondError(c, http.StatusBadRequest, "directory not allowed", err)
			return
		}

		// Request values override the server defaults
		opts := analyzer.DefaultOptions().
			WithOpacity(cfg.Opacity).
			WithWorkers(cfg.Workers)
		if req.Opacity != nil {
			opts = opts.WithOpacity(*req.Opacity)
		}

		report, err := svc.Compare(ctx, service.CompareRequest{
			LeftDir:   req.LeftDir,
			RightDir:  req.RightDir,
			OutputDir: req.OutputDir,
			Options:   opts,
		})
		if err != nil {
			// A run cut short by the request deadline is reported as a timeout
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !apperrors.IsType(err, apperrors.ErrorTypeTimeout) {
				err = apperrors.NewTimeoutError("comparison timed out", err)
			}
			respondError(c, apperrors.GetStatusCode(err), "comparison failed", err)
			return
		}

		// Log successful completion
		logger.WithFields(logrus.Fields{
			"run_id":             report.RunID,
			"left_dir":           report.LeftRoot,
			"right_dir":          report.RightRoot,
			"records":            report.Summary.Total,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Comparison completed successfully")

		c.JSON(http.StatusOK, report)
	}
}

func checkRequestPaths(paths *validation.PathValidator, req models.CompareRequest) error {
	left, err := paths.ValidateRoot(req.LeftDir)
	if err != nil {
		return err
	}
	right, err := paths.ValidateRoot(req.RightDir)
	if err != nil {
		return err
	}
	if req.OutputDir == "" {
		return nil
	}
	return paths.ValidateOutputDir(req.OutputDir, left, right)
}

func listZones(svc service.ComparisonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Zones())
	}
}

func metrics(m *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.GetMetrics())
	}
}

func listRuns(history repository.HistoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultRunsLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondError(c, http.StatusBadRequest, "invalid limit", apperrors.NewValidationError("limit must be a non-negative integer", err))
				return
			}
			limit = n
		}

		runs, err := history.ListRuns(c.Request.Context(), limit)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to list runs", err)
			return
		}
		if runs == nil {
			runs = []models.RunSummary{}
		}
		c.JSON(http.StatusOK, runs)
	}
}

func getRun(history repository.HistoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid run id", apperrors.NewValidationError("run id must be a UUID", err))
			return
		}

		report, err := history.GetRun(c.Request.Context(), id)
		if errors.Is(err, repository.ErrRunNotFound) {
			respondError(c, http.StatusNotFound, "run not found", apperrors.NewNotFoundError("no run with this id", err))
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to load run", err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err.Err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
