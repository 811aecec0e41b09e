package api

import (
	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/logger"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
	Kind  string `json:"kind,omitempty" example:"slot_already_booked"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// RespondError writes err with the status derived from its kind. Untyped
// errors are logged and hidden behind a generic message.
func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal || kind == apperr.KindUnavailable {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: apperr.Message(err), Kind: string(kind)})
}
