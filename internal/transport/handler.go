package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-photo-validator/internal/config"
	apperrors "go-photo-validator/internal/errors"
	"go-photo-validator/internal/logger"
	"go-photo-validator/internal/observer"
	"go-photo-validator/internal/service"
	"go-photo-validator/pkg/models"
	"go-photo-validator/pkg/taxonomy"
)

const version = "1.0.0"

// imageField is the multipart field carrying the photo
const imageField = "image"

// MetricsProvider exposes validation counters
type MetricsProvider interface {
	GetMetrics() observer.Metrics
}

// ReadinessChecker reports whether the face detector has been loaded
type ReadinessChecker interface {
	Ready() bool
}

func NewHandler(svc service.ValidationService, metrics MetricsProvider, detector ReadinessChecker, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		localeResolver(),
	)

	// Configure routes
	r.GET("/health", healthCheck(detector))
	r.POST("/validate", validatePhoto(svc, cfg))
	r.POST("/validate/url", validatePhotoURL(svc, cfg))
	r.POST("/errors/classify", classifyError(svc))
	r.GET("/errors", listErrors(svc))
	r.GET("/errors/:category", getError(svc))
	r.GET("/metrics", getMetrics(metrics))

	return r
}

func validatePhoto(svc service.ValidationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logRequest(c, "Processing photo validation request")

		data, err := readUpload(c)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid upload", err)
			return
		}

		resp, err := svc.ValidatePhoto(ctx, data)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "photo validation failed", err)
			return
		}

		logCompletion(c, resp)
		c.JSON(http.StatusOK, resp)
	}
}

func validatePhotoURL(svc service.ValidationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logRequest(c, "Processing photo URL validation request")

		var req models.URLValidationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if tooLarge(err) {
				respondError(c, http.StatusRequestEntityTooLarge, "request body too large", bodyTooLargeError(err))
				return
			}
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := svc.ValidatePhotoURL(ctx, req.URL)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "photo validation failed", err)
			return
		}

		logCompletion(c, resp)
		c.JSON(http.StatusOK, resp)
	}
}

func classifyError(svc service.ValidationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ClassifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}
		if strings.TrimSpace(req.Message) == "" && strings.TrimSpace(req.Detail) == "" {
			respondError(c, http.StatusBadRequest, "invalid request format",
				apperrors.NewValidationError("message or detail is required", nil))
			return
		}

		c.JSON(http.StatusOK, svc.ClassifyRemoteError(c.Request.Context(), req.Message, req.Detail))
	}
}

func listErrors(svc service.ValidationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.CatalogResponse{Errors: svc.Catalog(c.Request.Context())})
	}
}

func getError(svc service.ValidationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := svc.LookupErrorInfo(c.Request.Context(), strings.ToUpper(c.Param("category")))
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "unknown category", err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func getMetrics(metrics MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

func healthCheck(detector ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "available",
			"version":        version,
			"time":           time.Now().UTC().Format(time.RFC3339),
			"detector_ready": detector.Ready(),
		})
	}
}

// readUpload returns the bytes of the multipart image field.
func readUpload(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if tooLarge(err) {
			return nil, bodyTooLargeError(err)
		}
		return nil, apperrors.NewValidationError(fmt.Sprintf("multipart field %q is required", imageField), err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read upload", err)
	}
	return data, nil
}

func logRequest(c *gin.Context, msg string) {
	logger.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"ip":         c.ClientIP(),
	}).Info(msg)
}

func logCompletion(c *gin.Context, resp *models.ValidationResponse) {
	fields := logrus.Fields{
		"id":                 resp.ID,
		"path":               c.Request.URL.Path,
		"processing_time_ms": int64(resp.ProcessingTimeSec * 1000),
		"is_valid":           resp.Result.IsValid,
		"failed_open":        resp.FailedOpen,
	}
	if resp.Result.ErrorType != nil {
		fields["error_type"] = *resp.Result.ErrorType
	}
	logger.WithFields(fields).Info("Photo validation completed successfully")
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			respondError(c, http.StatusRequestEntityTooLarge, "request body too large",
				apperrors.NewTooLargeError(fmt.Sprintf("body is %d bytes, limit is %d", c.Request.ContentLength, maxBytes), nil))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// localeResolver picks the catalog language from ?lang= or Accept-Language.
func localeResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := taxonomy.MatchLocale(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Request = c.Request.WithContext(taxonomy.ContextWithLocale(c.Request.Context(), loc))
		c.Next()
	}
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

func bodyTooLargeError(err error) error {
	return apperrors.NewTooLargeError("request body too large", err)
}

// errorTypeOf returns the taxonomy category of an application error, if any.
func errorTypeOf(err error) *taxonomy.ErrorCategory {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Category != "" {
		return appErr.Category.Ptr()
	}
	return nil
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
		Error:     http.StatusText(code),
		Message:   fmt.Sprintf("%s: %v", message, err),
		ErrorType: errorTypeOf(err),
	})
}
