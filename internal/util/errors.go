package util

import (
	"net/http"

	"go.uber.org/zap"
)

func InternalServerErrorResponse(w http.ResponseWriter, r *http.Request, err error, logger *zap.SugaredLogger) {
	logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func UnprocessableEntityErrorResponse(w http.ResponseWriter, r *http.Request, err error, logger *zap.SugaredLogger) {
	logWarning("unprocessable entity error", r, err, logger)
	writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
}

func NotFoundErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string, logger *zap.SugaredLogger) {
	logWarning("not found error", r, err, logger)
	writeJSONError(w, http.StatusNotFound, message)
}

func UnauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error, logger *zap.SugaredLogger) {
	logWarning("unauthorized error", r, err, logger)
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func ForbiddenErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string, logger *zap.SugaredLogger) {
	logWarning("forbidden error", r, err, logger)
	writeJSONError(w, http.StatusForbidden, message)
}

func logWarning(message string, r *http.Request, err error, logger *zap.SugaredLogger) {
	logger.Warnw(message, "method", r.Method, "path", r.URL.Path, "error", err.Error())
}
