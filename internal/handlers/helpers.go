package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "herdbook/internal/errors"
	"herdbook/internal/logger"
	"herdbook/internal/middleware"
	"herdbook/internal/services"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads an id path parameter.
// Returns ErrInvalidInput if the parameter is empty.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseFlexibleTime accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseFlexibleTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use RFC3339 or YYYY-MM-DD", v)
}

// parseOptionalDate parses a request date that may be absent.
func parseOptionalDate(v *string, field string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+field+" format, use RFC3339 or YYYY-MM-DD")
	}
	return &t, nil
}

// parseDateRange reads the from_date/to_date query parameters.
func parseDateRange(c *gin.Context) (from, to *time.Time, err error) {
	if v := c.Query("from_date"); v != "" {
		if from, err = parseOptionalDate(&v, "from_date"); err != nil {
			return nil, nil, err
		}
	}
	if v := c.Query("to_date"); v != "" {
		if to, err = parseOptionalDate(&v, "to_date"); err != nil {
			return nil, nil, err
		}
	}
	return from, to, nil
}

func parseRecordFilter(c *gin.Context) (services.RecordFilter, error) {
	var filter services.RecordFilter
	from, to, err := parseDateRange(c)
	if err != nil {
		return filter, err
	}
	filter.FromDate, filter.ToDate = from, to
	if v := c.Query("animal_id"); v != "" {
		filter.AnimalID = &v
	}
	return filter, nil
}

// auditSync records ledger sync failures so they can be found and repaired
// alongside the reconciliation runs.
func auditSync(audit services.AuditServicer, c *gin.Context, userID, resourceType, resourceID string, out services.SyncOutcome) {
	if out.Status != services.SyncFailed {
		return
	}
	audit.Log(userID, "LEDGER_SYNC_FAILED", resourceType, resourceID, c.ClientIP(),
		map[string]interface{}{"description_key": out.DescriptionKey, "error": out.Error})
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
