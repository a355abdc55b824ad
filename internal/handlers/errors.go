package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

var errNotYourOrder = errors.New("you are not authorized to view this order")

// respondWithError maps use case errors onto HTTP statuses by their
// message shape. Repositories and use cases return stable phrasing for
// the cases the client needs to distinguish.
func respondWithError(c *gin.Context, logger logrus.FieldLogger, err error) {
	msg := err.Error()

	var httpStatus int
	switch {
	case strings.Contains(msg, "not found"):
		httpStatus = http.StatusNotFound
	case strings.Contains(msg, "not authorized"):
		httpStatus = http.StatusForbidden
	case strings.Contains(msg, "invalid email or password"),
		strings.Contains(msg, "invalid session token"),
		strings.Contains(msg, "session expired"):
		httpStatus = http.StatusUnauthorized
	case strings.Contains(msg, "already"):
		httpStatus = http.StatusConflict
	case strings.Contains(msg, "cannot change order status"):
		httpStatus = http.StatusConflict
	case strings.Contains(msg, "internal error"),
		strings.Contains(msg, "failed to"):
		httpStatus = http.StatusInternalServerError
	default:
		httpStatus = http.StatusBadRequest
	}

	if httpStatus >= 500 {
		logger.Errorf("Handler Error: %v (HTTP %d)", err, httpStatus)
		c.JSON(httpStatus, ErrorResponse{Error: "Internal server error"})
		return
	}

	logger.Warnf("Handler Error: %v (HTTP %d)", err, httpStatus)
	c.JSON(httpStatus, ErrorResponse{Error: msg})
}
