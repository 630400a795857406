package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var validationErrors = []error{
	domain.ErrInvalidElapsed,
	domain.ErrInvalidTimerState,
	domain.ErrCourseNameEmpty,
	domain.ErrNotesTooLong,
	domain.ErrInvalidRotation,
	domain.ErrRotationWithoutItems,
	domain.ErrTaskNameEmpty,
	domain.ErrDuplicateTaskID,
	domain.ErrEmptySequence,
	domain.ErrInvalidWeeklySchedule,
	domain.ErrInvalidBehavior,
	domain.ErrInvalidHistoryType,
	domain.ErrHistoryNameEmpty,
	domain.ErrSubtaskNotContainer,
	domain.ErrPasswordTooShort,
}

var conflictErrors = []error{
	domain.ErrDayCompleted,
	domain.ErrNoCurrentTask,
	domain.ErrTimerAlreadyRunning,
	domain.ErrTimerNotRunning,
	domain.ErrTimerNotPaused,
	domain.ErrStateConflict,
	domain.ErrHistoryItemDuplicate,
}

var notFoundErrors = []error{
	domain.ErrStateNotFound,
	domain.ErrTaskNotFound,
	domain.ErrSubtaskNotFound,
	domain.ErrCourseNotFound,
	domain.ErrGeneralTaskNotFound,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func abortWith(c *gin.Context, status int, msg, code string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, Code: code})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoPendingTasks):
		abortWith(c, http.StatusBadRequest, err.Error(), "no_pending_tasks")

	case isAny(err, validationErrors):
		abortWith(c, http.StatusBadRequest, err.Error(), "validation_error")

	case isAny(err, conflictErrors):
		abortWith(c, http.StatusConflict, err.Error(), "state_conflict")

	case isAny(err, notFoundErrors):
		abortWith(c, http.StatusNotFound, err.Error(), "not_found")

	case errors.Is(err, domain.ErrInvalidCredentials):
		abortWith(c, http.StatusUnauthorized, "invalid credentials", "invalid_credentials")

	case errors.Is(err, domain.ErrNotImplemented):
		abortWith(c, http.StatusNotImplemented, err.Error(), "not_implemented")

	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
		abortWith(c, http.StatusInternalServerError, "internal server error", "internal_error")
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"code":    "invalid_body",
		"details": err.Error(),
	})
}
