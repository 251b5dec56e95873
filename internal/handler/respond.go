package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/utils"
)

// respondServiceError maps a typed service error onto the HTTP boundary.
// Untyped errors are reported as 500 with a generic message; the cause is
// logged by the service layer, never echoed to the caller.
func respondServiceError(c *gin.Context, err error, fallbackMessage string) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		utils.InternalServerErrorResponse(c, fallbackMessage)
		return
	}

	switch svcErr.Kind {
	case service.ErrKindNotFound:
		utils.NotFoundResponse(c, svcErr.Message)
	case service.ErrKindConflict:
		utils.ConflictResponse(c, svcErr.Message)
	case service.ErrKindAlreadyProcessed,
		service.ErrKindRoomFull,
		service.ErrKindCapacityViolation,
		service.ErrKindInvalidInput,
		service.ErrKindBelowMinimumNotice,
		service.ErrKindNotOnNotice,
		service.ErrKindNotActive:
		utils.BadRequestResponse(c, svcErr.Message, nil)
	default:
		utils.InternalServerErrorResponse(c, fallbackMessage)
	}
}
