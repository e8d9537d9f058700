package handler

import (
	"errors"
	"net/http"

	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/logger"
	"drivebuddy-admin/internal/middleware"
	appErrors "drivebuddy-admin/pkg/errors"
	"drivebuddy-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByCode = map[string]int{
	appErrors.CodeValidation:           http.StatusBadRequest,
	appErrors.CodeNotFound:             http.StatusNotFound,
	appErrors.CodeInvalidState:         http.StatusConflict,
	appErrors.CodeConflict:             http.StatusConflict,
	appErrors.CodeStaleRequest:         http.StatusConflict,
	appErrors.CodeNotificationDelivery: http.StatusBadGateway,
	appErrors.CodeUpstream:             http.StatusBadGateway,
	appErrors.CodeNetwork:              http.StatusServiceUnavailable,
	appErrors.CodePersistence:          http.StatusInternalServerError,
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		status, ok := statusByCode[appErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			logger.WithRequestID(middleware.GetRequestID(c)).Error("Request failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("code", appErr.Code),
				zap.Error(err),
			)
		}
		c.JSON(status, utils.Response{Success: false, Error: appErr.Message, Code: appErr.Code})
		return
	}

	logger.Error("Internal server error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}

// requireSession aborts with 401 when the auth middleware did not run.
func requireSession(c *gin.Context) (session.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		c.Abort()
		return session.Session{}, false
	}
	return sess, true
}
