package controllers

import (
	"net/http"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/domain"
	"sport-reel-generator/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ValidationErrorKind:
		return http.StatusBadRequest
	case domain.TimeoutErrorKind:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func abortWithPipelineError(c *gin.Context, logger outbound.LoggerPort, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithFields(err, "request failed", map[string]interface{}{
			"path": c.FullPath(),
			"kind": kind,
		})
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: err.Error(),
		Kind:  string(kind),
	})
}
